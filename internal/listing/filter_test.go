package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookx-web/internal/models"
)

func bookFields(b models.Book) []string { return []string{b.Title, b.Author} }

func shelf() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Dune", Author: "Frank Herbert"},
		{ID: 2, Title: "Foundation", Author: "Isaac Asimov"},
		{ID: 3, Title: "Hyperion", Author: "Dan Simmons"},
	}
}

func TestFilterMatchesTitleIgnoringCase(t *testing.T) {
	got := NewFilter(shelf(), bookFields).Apply("dune")

	require.Len(t, got, 1)
	assert.Equal(t, "Dune", got[0].Title)
}

func TestFilterMatchesAnyField(t *testing.T) {
	got := NewFilter(shelf(), bookFields).Apply("ASIMOV")

	require.Len(t, got, 1)
	assert.Equal(t, int64(2), got[0].ID)
}

func TestFilterMatchesSubstringAcrossItems(t *testing.T) {
	got := NewFilter(shelf(), bookFields).Apply("on")

	assert.Equal(t, []int64{2, 3}, ids(got))
}

func TestFilterBlankQueryReturnsOriginal(t *testing.T) {
	original := shelf()
	f := NewFilter(original, bookFields)

	for _, q := range []string{"", "   ", "\t\n"} {
		got := f.Apply(q)
		assert.Equal(t, original, got, "query %q", q)
	}
}

func TestFilterIsPure(t *testing.T) {
	original := shelf()
	f := NewFilter(original, bookFields)

	first := f.Apply("an")
	second := f.Apply("an")

	assert.Equal(t, first, second)
	assert.Equal(t, shelf(), original)
	assert.Equal(t, shelf(), f.Original())
}

func TestFilterFoldsUnicodeCase(t *testing.T) {
	books := []models.Book{{ID: 7, Title: "Straße der Ölsucher"}}

	assert.Len(t, NewFilter(books, bookFields).Apply("ÖLSUCHER"), 1)
}

func TestFilterWithoutFieldsMatchesNothing(t *testing.T) {
	assert.Empty(t, NewFilter(shelf(), nil).Apply("dune"))
}

func ids(books []models.Book) []int64 {
	out := make([]int64, 0, len(books))
	for _, b := range books {
		out = append(out, b.ID)
	}
	return out
}
