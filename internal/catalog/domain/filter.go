package domain

import (
	"fmt"
	"time"
)

// SortOrder selects the ordering of search results.
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortOldest       SortOrder = "oldest"
	SortPriceLowHigh SortOrder = "price-low-high"
	SortPriceHighLow SortOrder = "price-high-low"
)

// DefaultSortOrder applies when no or an unknown sort order is requested.
const DefaultSortOrder = SortNewest

const (
	dateLayout         = "2006-01-02"
	endOfDayNanosecond = 999 * int(time.Millisecond)
)

// IsValid reports whether s is one of the known sort orders.
func (s SortOrder) IsValid() bool {
	switch s {
	case SortNewest, SortOldest, SortPriceLowHigh, SortPriceHighLow:
		return true
	}
	return false
}

// Date is a calendar date without a time of day or location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate accepts "2006-01-02" or an RFC 3339 timestamp. For timestamps the calendar
// date is taken as written, in the timestamp's own offset.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return DateOf(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// StartOfDay is 00:00:00.000 of the date in loc.
func (d Date) StartOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// EndOfDay is 23:59:59.999 of the date in loc.
func (d Date) EndOfDay(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 23, 59, 59, endOfDayNanosecond, loc)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// FilterSpec holds the user-selected search criteria for a catalog query.
// MinPrice and MaxPrice keep the raw text the user typed; text that does not
// parse as a number imposes no bound.
type FilterSpec struct {
	SearchQuery        string
	StartDate          *Date
	EndDate            *Date
	MinPrice           string
	MaxPrice           string
	SelectedCategories []string
	SortOrder          SortOrder
}

// PageRequest selects a 1-based page of ItemsPerPage results.
type PageRequest struct {
	Page         int
	ItemsPerPage int
}

// Validate checks the page window. maxItemsPerPage <= 0 means no upper limit.
func (r PageRequest) Validate(maxItemsPerPage int) error {
	if r.ItemsPerPage < 1 {
		return fmt.Errorf("%w: itemsPerPage must be a positive integer, got %d", ErrValidation, r.ItemsPerPage)
	}
	if maxItemsPerPage > 0 && r.ItemsPerPage > maxItemsPerPage {
		return fmt.Errorf("%w: itemsPerPage must not exceed %d, got %d", ErrValidation, maxItemsPerPage, r.ItemsPerPage)
	}
	if r.Page < 1 {
		return fmt.Errorf("%w: page must be a positive integer, got %d", ErrValidation, r.Page)
	}
	return nil
}
