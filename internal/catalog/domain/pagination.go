package domain

import (
	"fmt"
	"math"
)

// PageResult describes the extent of a result set relative to the requested page.
type PageResult struct {
	TotalItems   int64 `json:"totalItems"`
	TotalPages   int64 `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
	ItemsPerPage int   `json:"itemsPerPage"`
}

// Window is the offset/limit slice of a result set to fetch for one page.
type Window struct {
	Skip       int64
	Limit      int64
	TotalPages int64
}

// Paginate computes the fetch window for page and the page count for totalItems.
// Pages past the last one are not clamped: the window simply starts after the
// last record and the fetch comes back empty. A skip that would overflow int64
// saturates at math.MaxInt64.
func Paginate(totalItems int64, page, itemsPerPage int) (Window, error) {
	if itemsPerPage <= 0 {
		return Window{}, fmt.Errorf("%w: itemsPerPage must be a positive integer, got %d", ErrValidation, itemsPerPage)
	}
	if page < 1 {
		return Window{}, fmt.Errorf("%w: page must be a positive integer, got %d", ErrValidation, page)
	}
	if totalItems < 0 {
		totalItems = 0
	}
	perPage := int64(itemsPerPage)
	skip := int64(math.MaxInt64)
	if before := int64(page - 1); before <= math.MaxInt64/perPage {
		skip = before * perPage
	}
	return Window{
		Skip:       skip,
		Limit:      perPage,
		TotalPages: ceilDiv(totalItems, perPage),
	}, nil
}

func ceilDiv(n, d int64) int64 {
	q := n / d
	if n%d != 0 {
		q++
	}
	return q
}

// Result builds the PageResult reported to the client for this window.
func (w Window) Result(totalItems int64, page, itemsPerPage int) PageResult {
	return PageResult{
		TotalItems:   totalItems,
		TotalPages:   w.TotalPages,
		CurrentPage:  page,
		ItemsPerPage: itemsPerPage,
	}
}
