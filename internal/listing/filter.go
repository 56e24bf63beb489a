package listing

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Fields extracts the searchable text of an item.
type Fields[T any] func(T) []string

// Filter matches a query against the designated fields of an original list.
// The original slice is never modified.
type Filter[T any] struct {
	original []T
	fields   Fields[T]
}

// NewFilter keeps original as the reference list for every Apply.
func NewFilter[T any](original []T, fields Fields[T]) *Filter[T] {
	return &Filter[T]{original: original, fields: fields}
}

// Original returns the unfiltered list.
func (f *Filter[T]) Original() []T { return f.original }

// Apply returns the items where any field contains query, ignoring case. A
// blank query returns a copy of the original list in its original order.
func (f *Filter[T]) Apply(query string) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return slices.Clone(f.original)
	}
	out := make([]T, 0, len(f.original))
	if f.fields == nil {
		return out
	}
	folder := cases.Fold()
	needle := folder.String(query)
	for _, item := range f.original {
		for _, field := range f.fields(item) {
			if strings.Contains(folder.String(field), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}
