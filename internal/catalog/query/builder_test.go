package query

import (
	"testing"
	"time"

	"github.com/Abdurahmanit/GroupProject/catalog-service/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(name, category string, price float64, created time.Time) *domain.Product {
	return &domain.Product{ID: name, Name: name, Category: category, Price: price, CreatedAt: created}
}

func date(y int, m time.Month, d int) *domain.Date {
	return &domain.Date{Year: y, Month: m, Day: d}
}

func TestBuild_EmptySpecMatchesAll(t *testing.T) {
	pred, sort := NewBuilder(nil).Build(domain.FilterSpec{})

	assert.True(t, domain.IsMatchAll(pred))
	assert.Equal(t, domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Descending}, sort)
	assert.True(t, pred.Matches(product("anything", "", 0, time.Time{})))
}

func TestBuild_BlankInputsImposeNoConstraint(t *testing.T) {
	pred, _ := NewBuilder(nil).Build(domain.FilterSpec{
		SearchQuery:        "   ",
		SelectedCategories: []string{"", " "},
		MinPrice:           "",
		MaxPrice:           "abc",
	})

	assert.True(t, domain.IsMatchAll(pred))
}

func TestBuild_SearchTextIsCaseInsensitiveSubstring(t *testing.T) {
	pred, _ := NewBuilder(nil).Build(domain.FilterSpec{SearchQuery: "Shoe"})

	assert.True(t, pred.Matches(product("Running SHOES", "", 10, time.Now())))
	assert.True(t, pred.Matches(product("snowshoe", "", 10, time.Now())))
	assert.False(t, pred.Matches(product("Sandals", "", 10, time.Now())))
}

func TestBuild_SearchTextKeepsSurroundingSpaces(t *testing.T) {
	pred, _ := NewBuilder(nil).Build(domain.FilterSpec{SearchQuery: "red "})

	assert.True(t, pred.Matches(product("Big red bag", "", 10, time.Now())))
	assert.False(t, pred.Matches(product("redwood chair", "", 10, time.Now())))
	assert.Equal(t, domain.And{Terms: []domain.Predicate{
		domain.TextMatch{Field: domain.FieldName, Substring: "red "},
	}}, pred)
}

func TestBuild_CategoriesAreOrMatched(t *testing.T) {
	pred, _ := NewBuilder(nil).Build(domain.FilterSpec{SelectedCategories: []string{"shoes", "bags"}})

	assert.False(t, pred.Matches(product("cap", "hats", 5, time.Now())))
	assert.True(t, pred.Matches(product("tote", "bags", 5, time.Now())))
	assert.True(t, pred.Matches(product("boot", "shoes", 5, time.Now())))
	assert.False(t, pred.Matches(product("mystery", "", 5, time.Now())))
}

func TestBuild_DateRangeCoversWholeDays(t *testing.T) {
	b := NewBuilder(time.UTC)
	pred, _ := b.Build(domain.FilterSpec{
		StartDate: date(2024, time.March, 10),
		EndDate:   date(2024, time.March, 12),
	})

	and, ok := pred.(domain.And)
	require.True(t, ok)
	require.Len(t, and.Terms, 1)
	r, ok := and.Terms[0].(domain.TimeRange)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), *r.From)
	assert.Equal(t, time.Date(2024, time.March, 12, 23, 59, 59, 999_000_000, time.UTC), *r.To)

	tests := []struct {
		name    string
		created time.Time
		want    bool
	}{
		{"just before start", time.Date(2024, time.March, 9, 23, 59, 59, 999_000_000, time.UTC), false},
		{"start of first day", time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC), true},
		{"middle", time.Date(2024, time.March, 11, 13, 0, 0, 0, time.UTC), true},
		{"last millisecond", time.Date(2024, time.March, 12, 23, 59, 59, 999_000_000, time.UTC), true},
		{"next day", time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pred.Matches(product("p", "", 1, tt.created)))
		})
	}
}

func TestBuild_DateBoundsUseBuilderLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	pred, _ := NewBuilder(loc).Build(domain.FilterSpec{StartDate: date(2024, time.May, 1)})

	r := pred.(domain.And).Terms[0].(domain.TimeRange)
	assert.Nil(t, r.To)
	assert.True(t, r.From.Equal(time.Date(2024, time.April, 30, 21, 0, 0, 0, time.UTC)))
}

func TestBuild_PriceBounds(t *testing.T) {
	tests := []struct {
		name    string
		min     string
		max     string
		price   float64
		want    bool
		anyTerm bool
	}{
		{"min only inclusive", "10", "", 10, true, true},
		{"below min", "10", "", 9.99, false, true},
		{"max only inclusive", "", "20", 20, true, true},
		{"above max", "", "20", 20.01, false, true},
		{"both bounds", " 5 ", "7.5", 6, true, true},
		{"unparseable min ignored", "abc", "", 1, true, false},
		{"NaN ignored", "NaN", "", 1, true, false},
		{"infinity ignored", "", "+Inf", 1e9, true, false},
		{"unparseable min keeps valid max", "abc", "3", 4, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, _ := NewBuilder(nil).Build(domain.FilterSpec{MinPrice: tt.min, MaxPrice: tt.max})
			assert.Equal(t, tt.want, pred.Matches(product("p", "", tt.price, time.Now())))
			assert.Equal(t, !tt.anyTerm, domain.IsMatchAll(pred))
		})
	}
}

func TestBuild_UnparseableMinPriceBehavesAsAbsent(t *testing.T) {
	b := NewBuilder(nil)
	withGarbage, _ := b.Build(domain.FilterSpec{MinPrice: "abc", MaxPrice: "50"})
	withoutMin, _ := b.Build(domain.FilterSpec{MaxPrice: "50"})

	assert.Equal(t, withoutMin, withGarbage)
}

func TestBuild_AllFiltersAreConjunctive(t *testing.T) {
	created := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	pred, _ := NewBuilder(nil).Build(domain.FilterSpec{
		SearchQuery:        "bag",
		SelectedCategories: []string{"bags"},
		StartDate:          date(2024, time.June, 1),
		EndDate:            date(2024, time.June, 1),
		MinPrice:           "10",
		MaxPrice:           "100",
	})

	assert.Len(t, pred.(domain.And).Terms, 4)
	assert.True(t, pred.Matches(product("Leather bag", "bags", 50, created)))
	assert.False(t, pred.Matches(product("Leather bag", "shoes", 50, created)))
	assert.False(t, pred.Matches(product("Leather bag", "bags", 500, created)))
	assert.False(t, pred.Matches(product("Leather bag", "bags", 50, created.AddDate(0, 0, 1))))
	assert.False(t, pred.Matches(product("Leather belt", "bags", 50, created)))
}

func TestSortFor(t *testing.T) {
	tests := []struct {
		order domain.SortOrder
		want  domain.Sort
	}{
		{domain.SortNewest, domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Descending}},
		{domain.SortOldest, domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Ascending}},
		{domain.SortPriceLowHigh, domain.Sort{Field: domain.FieldPrice, Direction: domain.Ascending}},
		{domain.SortPriceHighLow, domain.Sort{Field: domain.FieldPrice, Direction: domain.Descending}},
		{"", domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Descending}},
		{"cheapest", domain.Sort{Field: domain.FieldCreatedAt, Direction: domain.Descending}},
	}
	for _, tt := range tests {
		t.Run(string(tt.order), func(t *testing.T) {
			assert.Equal(t, tt.want, SortFor(tt.order))
		})
	}
}
