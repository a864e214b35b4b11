package paginate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalized(t *testing.T) {
	p := Params{}.Normalized()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)

	p = Params{Page: -3, PerPage: 0}.Normalized()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultPerPage, p.PerPage)

	p = Params{Page: 4, PerPage: 25}.Normalized()
	assert.Equal(t, 4, p.Page)
	assert.Equal(t, 25, p.PerPage)
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, perPage, want int
	}{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{95, 10, 10},
		{5, 0, 1}, // invalid page size falls back to the default
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.n, tt.perPage), "n=%d perPage=%d", tt.n, tt.perPage)
	}
}

func TestSlice(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i
	}

	page, meta := Slice(items, Params{Page: 1, PerPage: 10})
	assert.Len(t, page, 10)
	assert.Equal(t, 0, page[0])
	assert.Equal(t, Meta{Page: 1, PerPage: 10, Total: 25, TotalPages: 3}, meta)

	page, meta = Slice(items, Params{Page: 3, PerPage: 10})
	assert.Len(t, page, 5)
	assert.Equal(t, 20, page[0])
	assert.Equal(t, 3, meta.Page)

	// Pages past the end come back empty, not as an error.
	page, meta = Slice(items, Params{Page: 9, PerPage: 10})
	assert.Empty(t, page)
	assert.Equal(t, 25, meta.Total)

	page, meta = Slice([]int{}, Params{})
	assert.Empty(t, page)
	assert.Equal(t, 1, meta.TotalPages)
}

func TestCollectAllStopsOnEnvelope(t *testing.T) {
	calls := 0
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		calls++
		return []int{page}, &Meta{Page: page, TotalPages: 3}, nil
	}
	all, err := CollectAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, all)
	assert.Equal(t, 3, calls)
}

func TestCollectAllStopsOnShortPage(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		if page == 1 {
			full := make([]int, perPage)
			return full, nil, nil
		}
		return []int{1, 2}, nil, nil
	}
	all, err := CollectAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Len(t, all, FetchAllPerPage+2)
}

func TestCollectAllStopsOnEmptyPage(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		if page > 2 {
			return nil, nil, nil
		}
		full := make([]int, perPage)
		return full, nil, nil
	}
	all, err := CollectAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Len(t, all, 2*FetchAllPerPage)
}

func TestCollectAllIterationCap(t *testing.T) {
	// An upstream that keeps returning the same full page forever must not
	// loop indefinitely.
	calls := 0
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		calls++
		full := make([]int, perPage)
		return full, nil, nil
	}
	all, err := CollectAll(context.Background(), fetch)
	require.NoError(t, err)
	assert.Equal(t, MaxPageIterations, calls)
	assert.Len(t, all, MaxPageIterations*FetchAllPerPage)
}

func TestCollectAllPropagatesErrors(t *testing.T) {
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		if page == 2 {
			return nil, nil, fmt.Errorf("boom")
		}
		full := make([]int, perPage)
		return full, nil, nil
	}
	_, err := CollectAll(context.Background(), fetch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2")
}

func TestCollectAllHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fetch := func(ctx context.Context, page, perPage int) ([]int, *Meta, error) {
		t.Fatal("fetch should not run after cancellation")
		return nil, nil, nil
	}
	_, err := CollectAll(ctx, fetch)
	assert.ErrorIs(t, err, context.Canceled)
}

type widget struct {
	ID string `json:"id"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantIDs  []string
		wantMeta *Meta
		wantErr  bool
	}{
		{
			name:    "bare array",
			body:    `[{"id":"a"},{"id":"b"}]`,
			wantIDs: []string{"a", "b"},
		},
		{
			name:     "data with pagination",
			body:     `{"data":[{"id":"a"}],"pagination":{"page":2,"perPage":10,"total":21,"totalPages":3}}`,
			wantIDs:  []string{"a"},
			wantMeta: &Meta{Page: 2, PerPage: 10, Total: 21, TotalPages: 3},
		},
		{
			name:     "items with meta",
			body:     `{"items":[{"id":"x"}],"meta":{"page":1,"total":1}}`,
			wantIDs:  []string{"x"},
			wantMeta: &Meta{Page: 1, Total: 1},
		},
		{
			name:    "results without envelope",
			body:    `{"results":[{"id":"r"}]}`,
			wantIDs: []string{"r"},
		},
		{
			name:    "object with no list",
			body:    `{"message":"ok"}`,
			wantIDs: []string{},
		},
		{
			name:    "not json",
			body:    `<html>nope</html>`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, meta, err := DecodeList[widget]([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]string, 0, len(items))
			for _, it := range items {
				ids = append(ids, it.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}
