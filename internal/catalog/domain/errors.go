package domain

import "errors"

var (
	// ErrValidation indicates that the caller supplied an invalid request (page window, dates, product data).
	ErrValidation = errors.New("validation failed")
	// ErrQuery indicates that the product store was unreachable, timed out or rejected the query.
	ErrQuery = errors.New("query failed")
	// ErrProductNotFound indicates that no product exists for the given identifier.
	ErrProductNotFound = errors.New("product not found")
	// ErrStorage indicates that an image could not be written to or removed from object storage.
	ErrStorage = errors.New("image storage failed")
	// ErrCacheMiss is returned by ProductCache lookups when the key is absent.
	ErrCacheMiss = errors.New("key not found in cache")
)
