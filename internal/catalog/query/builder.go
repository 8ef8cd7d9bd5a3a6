// Package query turns a catalog FilterSpec into a typed predicate and sort order.
package query

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
)

// Builder computes day boundaries for date filters in its location.
type Builder struct {
	loc *time.Location
}

// NewBuilder returns a Builder for loc. A nil loc means UTC.
func NewBuilder(loc *time.Location) *Builder {
	if loc == nil {
		loc = time.UTC
	}
	return &Builder{loc: loc}
}

// Build is a pure translation of spec into a conjunction of active filters and a sort order.
func (b *Builder) Build(spec domain.FilterSpec) (domain.Predicate, domain.Sort) {
	var terms []domain.Predicate

	if strings.TrimSpace(spec.SearchQuery) != "" {
		terms = append(terms, domain.TextMatch{Field: domain.FieldName, Substring: spec.SearchQuery})
	}

	if categories := nonEmpty(spec.SelectedCategories); len(categories) > 0 {
		terms = append(terms, domain.Membership{Field: domain.FieldCategory, Values: categories})
	}

	if spec.StartDate != nil || spec.EndDate != nil {
		r := domain.TimeRange{Field: domain.FieldCreatedAt}
		if spec.StartDate != nil {
			from := spec.StartDate.StartOfDay(b.loc)
			r.From = &from
		}
		if spec.EndDate != nil {
			to := spec.EndDate.EndOfDay(b.loc)
			r.To = &to
		}
		terms = append(terms, r)
	}

	minPrice, hasMin := ParsePrice(spec.MinPrice)
	maxPrice, hasMax := ParsePrice(spec.MaxPrice)
	if hasMin || hasMax {
		r := domain.NumberRange{Field: domain.FieldPrice}
		if hasMin {
			r.Min = &minPrice
		}
		if hasMax {
			r.Max = &maxPrice
		}
		terms = append(terms, r)
	}

	return domain.And{Terms: terms}, SortFor(spec.SortOrder)
}

// SortFor maps a sort order to its sort key. Unknown orders sort newest first.
func SortFor(order domain.SortOrder) domain.Sort {
	switch order {
	case domain.SortOldest:
		return domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Ascending}
	case domain.SortPriceLowHigh:
		return domain.Sort{Field: domain.FieldPrice, Direction: domain.Ascending}
	case domain.SortPriceHighLow:
		return domain.Sort{Field: domain.FieldPrice, Direction: domain.Descending}
	default:
		return domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Descending}
	}
}

// ParsePrice parses a user-typed price bound. Empty, non-numeric, NaN and
// infinite values report ok=false and impose no bound.
func ParsePrice(raw string) (value float64, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
