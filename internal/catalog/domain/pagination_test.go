package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		page      int
		perPage   int
		wantSkip  int64
		wantPages int64
		wantLimit int64
	}{
		{"empty result set", 0, 1, 10, 0, 0, 10},
		{"exact multiple", 30, 2, 10, 10, 3, 10},
		{"partial last page", 23, 3, 10, 20, 3, 10},
		{"single item", 1, 1, 20, 0, 1, 20},
		{"one per page", 5, 5, 1, 4, 5, 1},
		{"page past the end is not clamped", 5, 3, 10, 20, 1, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Paginate(tt.total, tt.page, tt.perPage)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSkip, w.Skip)
			assert.Equal(t, tt.wantLimit, w.Limit)
			assert.Equal(t, tt.wantPages, w.TotalPages)
		})
	}
}

func TestPaginate_TotalPagesIsCeiling(t *testing.T) {
	for total := int64(0); total <= 50; total++ {
		for perPage := 1; perPage <= 12; perPage++ {
			w, err := Paginate(total, 1, perPage)
			require.NoError(t, err)

			p := int64(perPage)
			assert.GreaterOrEqual(t, w.TotalPages*p, total)
			if total > 0 {
				assert.Less(t, (w.TotalPages-1)*p, total)
			} else {
				assert.Zero(t, w.TotalPages)
			}
		}
	}
}

func TestPaginate_RejectsNonPositiveItemsPerPage(t *testing.T) {
	for _, perPage := range []int{0, -1, -20} {
		_, err := Paginate(10, 1, perPage)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestPaginate_HugePageSaturatesSkip(t *testing.T) {
	tests := []struct {
		page    int
		perPage int
	}{
		{math.MaxInt64, 10},
		{1 << 62, 4},
		{math.MaxInt64, 1 << 62},
	}
	for _, tt := range tests {
		w, err := Paginate(25, tt.page, tt.perPage)
		require.NoError(t, err)
		assert.Equal(t, int64(math.MaxInt64), w.Skip)
		assert.Equal(t, int64(tt.perPage), w.Limit)
	}

	w, err := Paginate(25, math.MaxInt64, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, w.TotalPages)
}

func TestPaginate_RejectsNonPositivePage(t *testing.T) {
	_, err := Paginate(10, 0, 10)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestPaginate_TotalPagesNearMaxInt64(t *testing.T) {
	w, err := Paginate(math.MaxInt64, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64/2+1), w.TotalPages)
}

func TestWindow_Result(t *testing.T) {
	w, err := Paginate(42, 2, 20)
	require.NoError(t, err)

	assert.Equal(t, PageResult{TotalItems: 42, TotalPages: 3, CurrentPage: 2, ItemsPerPage: 20}, w.Result(42, 2, 20))
}

func TestPageRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     PageRequest
		max     int
		wantErr bool
	}{
		{"first page", PageRequest{Page: 1, ItemsPerPage: 20}, 100, false},
		{"at the limit", PageRequest{Page: 3, ItemsPerPage: 100}, 100, false},
		{"no limit configured", PageRequest{Page: 1, ItemsPerPage: 5000}, 0, false},
		{"zero page", PageRequest{Page: 0, ItemsPerPage: 20}, 100, true},
		{"negative page", PageRequest{Page: -2, ItemsPerPage: 20}, 100, true},
		{"zero per page", PageRequest{Page: 1, ItemsPerPage: 0}, 100, true},
		{"negative per page", PageRequest{Page: 1, ItemsPerPage: -1}, 100, true},
		{"over the limit", PageRequest{Page: 1, ItemsPerPage: 101}, 100, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.max)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			assert.NoError(t, err)
		})
	}
}
