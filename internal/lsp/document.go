package lsp

import (
	"net/url"
	"sort"
	"strings"
	"sync"
)

// Document is an immutable snapshot of an open text document.
type Document struct {
	URI     string // file:///path/to/main.rsc
	Content string
	Version int
	Lines   []int // byte offsets of line starts
}

func newDocument(uri, content string, version int) *Document {
	return &Document{
		URI:     uri,
		Content: content,
		Version: version,
		Lines:   computeLineOffsets(content),
	}
}

// DocumentStore manages open documents in memory.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]*Document
}

// NewDocumentStore creates a new document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]*Document),
	}
}

// Open adds or replaces a document.
func (s *DocumentStore) Open(uri, content string, version int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.documents[uri] = newDocument(uri, content, version)
}

// Close removes a document from the store.
func (s *DocumentStore) Close(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.documents, uri)
}

// Get retrieves a document by URI, or nil.
func (s *DocumentStore) Get(uri string) *Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.documents[uri]
}

// Update replaces the content of an open document. Updates for documents
// that are not open, or older than the stored version, are ignored.
func (s *DocumentStore) Update(uri, content string, version int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[uri]
	if !ok || version < doc.Version {
		return false
	}
	s.documents[uri] = newDocument(uri, content, version)
	return true
}

// List returns all open document URIs, sorted.
func (s *DocumentStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	uris := make([]string, 0, len(s.documents))
	for uri := range s.documents {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	return uris
}

func computeLineOffsets(content string) []int {
	offsets := []int{0}
	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

// PositionToOffset converts a Position to a byte offset, clamped to the
// document.
func (d *Document) PositionToOffset(pos Position) int {
	line := int(pos.Line)
	if line >= len(d.Lines) {
		return len(d.Content)
	}

	offset := d.Lines[line] + int(pos.Character)
	if offset > len(d.Content) {
		return len(d.Content)
	}
	return offset
}

// OffsetToPosition converts a byte offset to a Position.
func (d *Document) OffsetToPosition(offset int) Position {
	offset = max(0, min(offset, len(d.Content)))

	// Last line starting at or before offset.
	line := sort.Search(len(d.Lines), func(i int) bool { return d.Lines[i] > offset }) - 1

	//nolint:gosec // G115: line numbers and lengths are bounded by the content size
	return Position{Line: uint32(line), Character: uint32(offset - d.Lines[line])}
}

// FullRange covers the whole document.
func (d *Document) FullRange() Range {
	return Range{End: d.OffsetToPosition(len(d.Content))}
}

// WordBefore returns the identifier characters immediately before pos.
func (d *Document) WordBefore(pos Position) string {
	end := d.PositionToOffset(pos)
	start := end
	for start > 0 && isWordChar(d.Content[start-1]) {
		start--
	}
	return d.Content[start:end]
}

// LineBefore returns the text of pos's line up to pos.
func (d *Document) LineBefore(pos Position) string {
	end := d.PositionToOffset(pos)
	start := strings.LastIndexByte(d.Content[:end], '\n') + 1
	return d.Content[start:end]
}

func isWordChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '_'
}

// URIToPath converts a file:// URI to a file system path. Other URIs are
// returned unchanged.
func URIToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// PathToURI converts a file system path to a file:// URI.
func PathToURI(path string) string {
	if strings.HasPrefix(path, "file://") {
		return path
	}
	return (&url.URL{Scheme: "file", Path: path}).String()
}
