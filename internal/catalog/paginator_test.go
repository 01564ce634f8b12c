package catalog

import (
	"testing"

	"github.com/Veraticus/dex/internal/model"
	"github.com/Veraticus/dex/internal/pokeapi/pokeapitest"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestPageCount(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{n: 0, size: 12, want: 0},
		{n: 1, size: 12, want: 1},
		{n: 12, size: 12, want: 1},
		{n: 13, size: 12, want: 2},
		{n: 25, size: 12, want: 3},
		{n: 150, size: 12, want: 13},
		{n: 5, size: 0, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PageCount(tt.n, tt.size), "PageCount(%d, %d)", tt.n, tt.size)
	}
}

func TestPage_TilesView(t *testing.T) {
	for _, n := range []int{0, 1, 11, 12, 13, 24, 25, 150} {
		view := pokeapitest.Generate(n)
		pages := PageCount(n, DefaultPageSize)

		var joined []model.Pokemon
		for k := 1; k <= pages; k++ {
			page := Page(view, DefaultPageSize, k)
			assert.NotEmpty(t, page, "page %d of %d records", k, n)
			assert.LessOrEqual(t, len(page), DefaultPageSize)
			joined = append(joined, page...)
		}

		if diff := cmp.Diff(names(view), names(joined)); diff != "" {
			t.Errorf("pages of %d records do not reconstruct the view:\n%s", n, diff)
		}
	}
}

func TestPage_OutOfRange(t *testing.T) {
	view := pokeapitest.Generate(25)

	assert.Empty(t, Page(view, 12, 0))
	assert.Empty(t, Page(view, 12, -1))
	assert.Empty(t, Page(view, 12, 4))
	assert.Empty(t, Page(view, 0, 1))
}

func TestPaginator_TwentyFiveRecords(t *testing.T) {
	view := pokeapitest.Generate(25)
	p := NewPaginator(view, 12)

	assert.Equal(t, 3, p.PageCount())
	assert.Equal(t, 1, p.Page())
	assert.Len(t, p.Items(), 12)

	assert.True(t, p.SetPage(3))
	items := p.Items()
	assert.Len(t, items, 1)
	assert.Equal(t, view[24].Name, items[0].Name)

	assert.Equal(t, PageInfo{Page: 3, PageSize: 12, Total: 25, TotalPages: 3}, p.Info())
}

func TestPaginator_Navigation(t *testing.T) {
	p := NewPaginator(pokeapitest.Generate(30), 12)

	assert.False(t, p.Prev(), "already on first page")
	assert.True(t, p.Next())
	assert.Equal(t, 2, p.Page())
	assert.True(t, p.Last())
	assert.Equal(t, 3, p.Page())
	assert.False(t, p.Next(), "already on last page")
	assert.False(t, p.SetPage(99), "clamped to last page")
	assert.Equal(t, 3, p.Page())
	assert.True(t, p.First())
	assert.Equal(t, 1, p.Page())

	p.SetPage(2)
	p.SetView(pokeapitest.Generate(5))
	assert.Equal(t, 1, p.Page(), "new view starts at page 1")
}

func TestPaginator_EmptyView(t *testing.T) {
	p := NewPaginator(nil, 0)

	assert.Equal(t, DefaultPageSize, p.PageSize())
	assert.Zero(t, p.PageCount())
	assert.Equal(t, 1, p.Page())
	assert.Empty(t, p.Items())
	assert.False(t, p.Next())
	assert.False(t, p.Last())
	assert.Equal(t, PageInfo{Page: 1, PageSize: DefaultPageSize}, p.Info())
}

func TestPageAt(t *testing.T) {
	view := pokeapitest.Generate(25)

	tests := []struct {
		name      string
		k         int
		wantLen   int
		wantInfo  PageInfo
		wantOutOf bool
	}{
		{"first", 1, 12, PageInfo{Page: 1, PageSize: 12, Total: 25, TotalPages: 3}, false},
		{"last is partial", 3, 1, PageInfo{Page: 3, PageSize: 12, Total: 25, TotalPages: 3}, false},
		{"past the end keeps k", 9, 0, PageInfo{Page: 9, PageSize: 12, Total: 25, TotalPages: 3}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, info := PageAt(view, 12, tt.k)
			assert.Len(t, items, tt.wantLen)
			assert.NotNil(t, items)
			assert.Equal(t, tt.wantInfo, info)
			assert.Equal(t, tt.wantOutOf, info.OutOfRange())
		})
	}

	_, info := PageAt(nil, 12, 1)
	assert.False(t, info.OutOfRange(), "page 1 of an empty view")
}
