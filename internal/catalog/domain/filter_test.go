package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want Date
	}{
		{"2024-03-10", Date{2024, time.March, 10}},
		{"2024-12-31T23:30:00Z", Date{2024, time.December, 31}},
		{"2024-01-01T00:30:00+03:00", Date{2024, time.January, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.String(), got.String())
		})
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2024-13-01", "10/03/2024", "2024-02-30"} {
		_, err := ParseDate(in)
		assert.ErrorIs(t, err, ErrValidation, in)
	}
}

func TestDate_DayBounds(t *testing.T) {
	d := Date{2024, time.February, 29}

	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), d.StartOfDay(time.UTC))
	assert.Equal(t, time.Date(2024, time.February, 29, 23, 59, 59, 999_000_000, time.UTC), d.EndOfDay(time.UTC))
	assert.Equal(t, "2024-02-29", d.String())
}

func TestSortOrder_IsValid(t *testing.T) {
	for _, s := range []SortOrder{SortNewest, SortOldest, SortPriceLowHigh, SortPriceHighLow} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, SortOrder("").IsValid())
	assert.False(t, SortOrder("price").IsValid())
	assert.Equal(t, SortNewest, DefaultSortOrder)
}
