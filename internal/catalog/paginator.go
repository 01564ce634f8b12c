package catalog

import "github.com/Veraticus/dex/internal/model"

// DefaultPageSize is the number of cards per page.
const DefaultPageSize = 12

// PageInfo describes one page of a view.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// PageCount returns ceil(n/size), zero for an empty view.
func PageCount(n, size int) int {
	if n <= 0 || size <= 0 {
		return 0
	}
	return (n + size - 1) / size
}

// Page returns the 1-based page k of view: view[(k-1)*size : k*size]
// clipped to the view. Out-of-range pages are empty.
func Page[T any](view []T, size, k int) []T {
	if size <= 0 || k < 1 {
		return nil
	}
	start := (k - 1) * size
	if start >= len(view) {
		return nil
	}
	end := min(start+size, len(view))
	return view[start:end]
}

// PageAt returns page k of view with its PageInfo. Unlike Paginator it does
// not clamp: an out-of-range k yields no records and keeps k in the info.
func PageAt(view []model.Pokemon, size, k int) ([]model.Pokemon, PageInfo) {
	if size <= 0 {
		size = DefaultPageSize
	}
	items := Page(view, size, k)
	if items == nil {
		items = []model.Pokemon{}
	}
	return items, PageInfo{
		Page:       k,
		PageSize:   size,
		Total:      len(view),
		TotalPages: PageCount(len(view), size),
	}
}

// OutOfRange reports whether the page lies past the end of a non-empty
// view. Page 1 of an empty view is in range.
func (i PageInfo) OutOfRange() bool {
	return i.Page < 1 || i.Page > max(i.TotalPages, 1)
}

// Paginator tracks the current page of a filtered view.
// It never re-derives the view; SetView replaces it and resets to page 1.
type Paginator struct {
	view []model.Pokemon
	size int
	page int
}

// NewPaginator creates a paginator over view. A non-positive size falls back
// to DefaultPageSize.
func NewPaginator(view []model.Pokemon, size int) *Paginator {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator{view: view, size: size, page: 1}
}

// SetView replaces the view and resets to the first page.
func (p *Paginator) SetView(view []model.Pokemon) {
	p.view = view
	p.page = 1
}

// Page returns the current 1-based page index.
func (p *Paginator) Page() int {
	return p.page
}

// PageSize returns the fixed page size.
func (p *Paginator) PageSize() int {
	return p.size
}

// PageCount returns the number of pages in the view.
func (p *Paginator) PageCount() int {
	return PageCount(len(p.view), p.size)
}

// Items returns the records on the current page.
func (p *Paginator) Items() []model.Pokemon {
	return Page(p.view, p.size, p.page)
}

// SetPage moves to page k, clamped to [1, PageCount]. It reports whether the
// page changed.
func (p *Paginator) SetPage(k int) bool {
	k = min(k, p.PageCount())
	k = max(k, 1)
	if k == p.page {
		return false
	}
	p.page = k
	return true
}

// Next moves forward one page.
func (p *Paginator) Next() bool { return p.SetPage(p.page + 1) }

// Prev moves back one page.
func (p *Paginator) Prev() bool { return p.SetPage(p.page - 1) }

// First moves to page 1.
func (p *Paginator) First() bool { return p.SetPage(1) }

// Last moves to the final page.
func (p *Paginator) Last() bool { return p.SetPage(p.PageCount()) }

// Info summarizes the current page.
func (p *Paginator) Info() PageInfo {
	return PageInfo{
		Page:       p.page,
		PageSize:   p.size,
		Total:      len(p.view),
		TotalPages: p.PageCount(),
	}
}
