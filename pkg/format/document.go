package format

import "strings"

// Fragment is a piece of output text together with the style marker that
// precedes it.
type Fragment struct {
	Style Style
	Text  string
}

// Document is the append-only result of formatting. Fragments are never
// edited once written.
type Document struct {
	frags []Fragment
	size  int
}

func (d *Document) append(f Fragment) {
	d.frags = append(d.frags, f)
	d.size += len(f.Text)
}

// Fragments returns the fragments in output order. The slice must not be
// modified.
func (d *Document) Fragments() []Fragment {
	return d.frags
}

// Len returns the length in bytes of the plain text.
func (d *Document) Len() int {
	return d.size
}

// String returns the plain text with every style marker dropped.
func (d *Document) String() string {
	var b strings.Builder
	b.Grow(d.size)
	for _, f := range d.frags {
		b.WriteString(f.Text)
	}
	return b.String()
}
