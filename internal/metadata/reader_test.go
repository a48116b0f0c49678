package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookstoreSchema = `
types:
  - name: Isbn
    base: string
  - name: BookId
    extends: Isbn
  - name: Book
    extends: Item
    members:
      - {name: title, type: string}
      - {name: id, type: BookId}
      - {name: created, type: dateTime, nillable: true}
  - name: Shelf
    members:
      - {name: books, type: "Book[]"}
`

func TestParse(t *testing.T) {
	reader, err := Parse(strings.NewReader(bookstoreSchema))
	require.NoError(t, err)

	assert.Len(t, reader.Types(), 4)

	book, found := reader.TryGetType("Book")
	require.True(t, found)
	assert.Equal(t, "Item", book.Extends)
	assert.Len(t, book.Members, 3)

	_, found = reader.TryGetType("Missing")
	assert.False(t, found)

	assert.Equal(t, []MemberTuple{
		{ComplexType: "Book", MemberType: "string", MemberName: "title"},
		{ComplexType: "Book", MemberType: "BookId", MemberName: "id"},
		{ComplexType: "Book", MemberType: "dateTime", MemberName: "created", Nillable: true},
		{ComplexType: "Shelf", MemberType: "Book[]", MemberName: "books"},
	}, reader.Members())

	assert.Equal(t, []HierarchyFact{
		{ComplexType: "Isbn", ParentOrAlias: "string", IsAliasToPrimitive: true},
		{ComplexType: "BookId", ParentOrAlias: "Isbn"},
		{ComplexType: "Book", ParentOrAlias: "Item"},
	}, reader.Facts())
}

func TestParseEmptyDocument(t *testing.T) {
	reader, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, reader.Types())
	assert.Empty(t, reader.Members())
}

func TestParseRejectsUnnamedType(t *testing.T) {
	_, err := Parse(strings.NewReader("types:\n  - base: string\n"))
	assert.ErrorIs(t, err, ErrEmptyTypeName)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("types: [unterminated"))
	assert.Error(t, err)
}

func TestNewReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.yaml")
	require.NoError(t, os.WriteFile(path, []byte(bookstoreSchema), 0o644))

	reader, err := NewReader(path)
	require.NoError(t, err)
	assert.Len(t, reader.Types(), 4)

	_, err = NewReader(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/schema.yaml" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(bookstoreSchema))
	}))
	defer server.Close()

	assert.True(t, IsRemote(server.URL))
	assert.False(t, IsRemote("schema.yaml"))

	reader, err := Fetch(context.Background(), nil, server.URL+"/schema.yaml")
	require.NoError(t, err)
	assert.Len(t, reader.Types(), 4)

	_, err = Fetch(context.Background(), nil, server.URL+"/other.yaml")
	assert.Error(t, err)
}
