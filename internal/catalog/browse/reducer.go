package browse

import "github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"

// Action is an event applied to a State by Reduce.
type Action interface {
	isAction()
}

type (
	SetSearchQuery  struct{ Query string }
	SetDateRange    struct{ Start, End *domain.Date }
	SetPriceRange   struct{ Min, Max string }
	ToggleCategory  struct{ Category string }
	SetCategories   struct{ Categories []string }
	SetSortOrder    struct{ Order domain.SortOrder }
	ClearFilters    struct{}
	SetPage         struct{ Page int }
	SetItemsPerPage struct{ ItemsPerPage int }
	FetchStarted    struct{}
	FetchSucceeded  struct{ Result domain.SearchResult }
	FetchFailed     struct{ Message string }
)

func (SetSearchQuery) isAction()  {}
func (SetDateRange) isAction()    {}
func (SetPriceRange) isAction()   {}
func (ToggleCategory) isAction()  {}
func (SetCategories) isAction()   {}
func (SetSortOrder) isAction()    {}
func (ClearFilters) isAction()    {}
func (SetPage) isAction()         {}
func (SetItemsPerPage) isAction() {}
func (FetchStarted) isAction()    {}
func (FetchSucceeded) isAction()  {}
func (FetchFailed) isAction()     {}

// Reduce applies a to s and returns the resulting state. Every change to the
// filters, the sort order or the page size moves back to page 1. Out of range
// SetPage and SetItemsPerPage values leave s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetSearchQuery:
		s.Filters.SearchQuery = a.Query
		return firstPage(s)
	case SetDateRange:
		s.Filters.StartDate = copyDate(a.Start)
		s.Filters.EndDate = copyDate(a.End)
		return firstPage(s)
	case SetPriceRange:
		s.Filters.MinPrice = a.Min
		s.Filters.MaxPrice = a.Max
		return firstPage(s)
	case ToggleCategory:
		s.Filters.SelectedCategories = toggle(s.Filters.SelectedCategories, a.Category)
		return firstPage(s)
	case SetCategories:
		s.Filters.SelectedCategories = append([]string{}, a.Categories...)
		return firstPage(s)
	case SetSortOrder:
		s.Filters.SortOrder = a.Order
		return firstPage(s)
	case ClearFilters:
		s.Filters = domain.FilterSpec{SortOrder: domain.DefaultSortOrder}
		return firstPage(s)
	case SetPage:
		if a.Page < 1 {
			return s
		}
		s.Page = a.Page
		return s
	case SetItemsPerPage:
		if a.ItemsPerPage < 1 {
			return s
		}
		s.ItemsPerPage = a.ItemsPerPage
		return firstPage(s)
	case FetchStarted:
		s.Loading = true
		s.Error = ""
		return s
	case FetchSucceeded:
		s.Products = append([]*domain.Product{}, a.Result.Products...)
		s.Pagination = a.Result.Pagination
		s.Loading = false
		s.Error = ""
		return s
	case FetchFailed:
		s.Loading = false
		s.Error = a.Message
		return s
	}
	return s
}

func firstPage(s State) State {
	s.Page = 1
	return s
}

func toggle(selected []string, category string) []string {
	out := make([]string, 0, len(selected)+1)
	found := false
	for _, c := range selected {
		if c == category {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		out = append(out, category)
	}
	return out
}

func copyDate(d *domain.Date) *domain.Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
