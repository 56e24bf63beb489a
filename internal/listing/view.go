package listing

// View composes a Filter and a Paginator: the original list, the current
// filtered list derived from it, and the page shown of the current list.
type View[T any] struct {
	filter *Filter[T]
	pager  *Paginator[T]
	query  string
}

// NewView starts with the current list equal to the original on page 1.
func NewView[T any](original []T, fields Fields[T], pageSize int) *View[T] {
	filter := NewFilter(original, fields)
	return &View[T]{
		filter: filter,
		pager:  NewPaginator(filter.Apply(""), pageSize),
	}
}

// Search re-derives the current list from the original and resets to page 1.
func (v *View[T]) Search(query string) {
	v.query = query
	v.pager.Reset(v.filter.Apply(query))
}

// Query returns the last applied search query.
func (v *View[T]) Query() string { return v.query }

// Original returns the unfiltered list.
func (v *View[T]) Original() []T { return v.filter.Original() }

// Current returns the filtered list across all pages.
func (v *View[T]) Current() []T { return v.pager.items }

// Pager exposes navigation over the current list.
func (v *View[T]) Pager() *Paginator[T] { return v.pager }
