package domain

import "time"

// Product is a catalog entry. Category is optional and empty when unset.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Images    []string  `json:"images"`
	Category  string    `json:"category,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SearchResult is one page of products plus the extent of the whole result set.
type SearchResult struct {
	Products   []*Product `json:"products"`
	Pagination PageResult `json:"pagination"`
}
