// Package listing holds the in-memory list behaviors shared by pages:
// fixed-size pagination and case-insensitive search over an original list.
package listing

// DefaultPageSize is the number of rows shown per page.
const DefaultPageSize = 10

// Paginator slices an ordered sequence into fixed-size pages. The current
// page is always within [1, max(TotalPages, 1)].
type Paginator[T any] struct {
	items []T
	size  int
	page  int
}

// NewPaginator returns a paginator positioned on page 1. A non-positive size
// falls back to DefaultPageSize.
func NewPaginator[T any](items []T, size int) *Paginator[T] {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Paginator[T]{items: items, size: size, page: 1}
}

// Reset replaces the underlying sequence and moves back to page 1.
func (p *Paginator[T]) Reset(items []T) {
	p.items = items
	p.page = 1
}

// Len returns the number of items across all pages.
func (p *Paginator[T]) Len() int { return len(p.items) }

// Size returns the page size.
func (p *Paginator[T]) Size() int { return p.size }

// Page returns the current 1-based page number.
func (p *Paginator[T]) Page() int { return p.page }

// TotalPages returns ceil(Len / Size).
func (p *Paginator[T]) TotalPages() int {
	return (len(p.items) + p.size - 1) / p.size
}

// Visible returns the items on the current page.
func (p *Paginator[T]) Visible() []T {
	start := (p.page - 1) * p.size
	if start >= len(p.items) {
		return nil
	}
	end := min(start+p.size, len(p.items))
	return p.items[start:end]
}

// Pages lists every page number, for numbered navigation.
func (p *Paginator[T]) Pages() []int {
	total := p.TotalPages()
	pages := make([]int, total)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// HasPrevious reports whether Previous would move.
func (p *Paginator[T]) HasPrevious() bool { return p.page > 1 }

// HasNext reports whether Next would move.
func (p *Paginator[T]) HasNext() bool { return p.page < p.TotalPages() }

// First jumps to page 1.
func (p *Paginator[T]) First() { p.Goto(1) }

// Previous moves back one page, staying put on page 1.
func (p *Paginator[T]) Previous() { p.Goto(p.page - 1) }

// Next moves forward one page, staying put on the last page.
func (p *Paginator[T]) Next() { p.Goto(p.page + 1) }

// Last jumps to the final page.
func (p *Paginator[T]) Last() { p.Goto(p.TotalPages()) }

// Goto jumps to page n, clamped to the valid range.
func (p *Paginator[T]) Goto(n int) {
	last := max(p.TotalPages(), 1)
	p.page = min(max(n, 1), last)
}
