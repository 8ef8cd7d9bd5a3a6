// Package browse models the catalog page a shopper is looking at: the active
// filters, the page window and the last fetched results. State values are
// never mutated; Reduce returns a new State for every Action.
package browse

import "github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"

const DefaultItemsPerPage = 20

// State is a snapshot of the browse view.
type State struct {
	Filters      domain.FilterSpec
	Page         int
	ItemsPerPage int
	Products     []*domain.Product
	Pagination   domain.PageResult
	Loading      bool
	Error        string
}

// Initial returns the state of a freshly opened catalog page. itemsPerPage < 1
// falls back to DefaultItemsPerPage.
func Initial(itemsPerPage int) State {
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}
	return State{
		Filters:      domain.FilterSpec{SortOrder: domain.DefaultSortOrder},
		Page:         1,
		ItemsPerPage: itemsPerPage,
		Products:     []*domain.Product{},
	}
}

// Request is the search envelope sent to the catalog search endpoint.
type Request struct {
	SearchQuery        string   `json:"searchQuery"`
	StartDate          string   `json:"startDate,omitempty"`
	EndDate            string   `json:"endDate,omitempty"`
	MinPrice           string   `json:"minPrice,omitempty"`
	MaxPrice           string   `json:"maxPrice,omitempty"`
	SelectedCategories []string `json:"selectedCategories"`
	SortOrder          string   `json:"sortOrder"`
	Page               int      `json:"page"`
	ItemsPerPage       int      `json:"itemsPerPage"`
}

// Request builds the search envelope for the current filters and page.
func (s State) Request() Request {
	r := Request{
		SearchQuery:        s.Filters.SearchQuery,
		MinPrice:           s.Filters.MinPrice,
		MaxPrice:           s.Filters.MaxPrice,
		SelectedCategories: append([]string{}, s.Filters.SelectedCategories...),
		SortOrder:          string(s.Filters.SortOrder),
		Page:               s.Page,
		ItemsPerPage:       s.ItemsPerPage,
	}
	if s.Filters.StartDate != nil {
		r.StartDate = s.Filters.StartDate.String()
	}
	if s.Filters.EndDate != nil {
		r.EndDate = s.Filters.EndDate.String()
	}
	return r
}

// HasActiveFilters reports whether any filter narrows the result set.
func (s State) HasActiveFilters() bool {
	f := s.Filters
	return f.SearchQuery != "" || f.StartDate != nil || f.EndDate != nil ||
		f.MinPrice != "" || f.MaxPrice != "" || len(f.SelectedCategories) > 0
}

// IsSelected reports whether category is among the selected categories.
func (s State) IsSelected(category string) bool {
	for _, c := range s.Filters.SelectedCategories {
		if c == category {
			return true
		}
	}
	return false
}
