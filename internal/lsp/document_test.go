package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentStore_OpenGetClose(t *testing.T) {
	store := NewDocumentStore()
	uri := "file:///src/main.rsc"

	store.Open(uri, "1 + 2", 1)
	doc := store.Get(uri)
	require.NotNil(t, doc)
	assert.Equal(t, uri, doc.URI)
	assert.Equal(t, "1 + 2", doc.Content)
	assert.Equal(t, 1, doc.Version)

	store.Close(uri)
	assert.Nil(t, store.Get(uri))
}

func TestDocumentStore_Update(t *testing.T) {
	store := NewDocumentStore()
	uri := "file:///src/main.rsc"
	store.Open(uri, "1", 1)
	before := store.Get(uri)

	assert.True(t, store.Update(uri, "2", 2))
	assert.Equal(t, "2", store.Get(uri).Content)
	assert.Equal(t, "1", before.Content, "snapshots are not mutated")

	assert.False(t, store.Update(uri, "stale", 1))
	assert.Equal(t, "2", store.Get(uri).Content)

	assert.False(t, store.Update("file:///other.rsc", "x", 1))
	assert.Nil(t, store.Get("file:///other.rsc"))
}

func TestDocumentStore_List(t *testing.T) {
	store := NewDocumentStore()
	store.Open("file:///b.rsc", "", 1)
	store.Open("file:///a.rsc", "", 1)

	assert.Equal(t, []string{"file:///a.rsc", "file:///b.rsc"}, store.List())
}

func TestDocument_Positions(t *testing.T) {
	doc := newDocument("file:///x.rsc", "ab\ncde\n\nf", 1)
	assert.Equal(t, []int{0, 3, 7, 8}, doc.Lines)

	tests := []struct {
		pos    Position
		offset int
	}{
		{Position{0, 0}, 0},
		{Position{0, 2}, 2},
		{Position{1, 0}, 3},
		{Position{1, 2}, 5},
		{Position{2, 0}, 7},
		{Position{3, 0}, 8},
		{Position{3, 1}, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.offset, doc.PositionToOffset(tt.pos), "PositionToOffset(%v)", tt.pos)
		assert.Equal(t, tt.pos, doc.OffsetToPosition(tt.offset), "OffsetToPosition(%d)", tt.offset)
	}

	// Out of range values are clamped.
	assert.Equal(t, 9, doc.PositionToOffset(Position{9, 0}))
	assert.Equal(t, 9, doc.PositionToOffset(Position{3, 50}))
	assert.Equal(t, Position{0, 0}, doc.OffsetToPosition(-3))
	assert.Equal(t, Position{3, 1}, doc.OffsetToPosition(100))

	assert.Equal(t, Range{End: Position{3, 1}}, doc.FullRange())
}

func TestDocument_WordAndLineBefore(t *testing.T) {
	doc := newDocument("file:///x.rsc", "x = 1\nfunc (count : in", 1)

	assert.Equal(t, "in", doc.WordBefore(Position{1, 16}))
	assert.Equal(t, "", doc.WordBefore(Position{1, 14}))
	assert.Equal(t, "cou", doc.WordBefore(Position{1, 9}))
	assert.Equal(t, "func (count : in", doc.LineBefore(Position{1, 16}))
	assert.Equal(t, "x =", doc.LineBefore(Position{0, 3}))
}

func TestURIConversion(t *testing.T) {
	tests := []struct {
		uri  string
		path string
	}{
		{"file:///home/me/main.rsc", "/home/me/main.rsc"},
		{"file:///home/me/with%20space.rsc", "/home/me/with space.rsc"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.path, URIToPath(tt.uri))
	}

	assert.Equal(t, "file:///home/me/with%20space.rsc", PathToURI("/home/me/with space.rsc"))
	assert.Equal(t, "file:///a.rsc", PathToURI("file:///a.rsc"))
}
