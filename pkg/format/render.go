package format

import (
	"bufio"
	"io"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/net/html"
)

// Renderer turns a Document into bytes for a particular output device.
// Write errors surface from the final flush.
type Renderer interface {
	Render(w io.Writer, doc *Document) error
}

// PlainRenderer writes the text and ignores every marker.
type PlainRenderer struct{}

func (PlainRenderer) Render(w io.Writer, doc *Document) error {
	bw := bufio.NewWriter(w)
	for _, f := range doc.Fragments() {
		_, _ = bw.WriteString(f.Text)
	}
	return bw.Flush()
}

// ANSIRenderer writes terminal escape sequences for each style marker.
type ANSIRenderer struct {
	Profile termenv.Profile
	Palette Palette
}

// NewANSIRenderer returns a renderer for the given colour profile using the
// default palette.
func NewANSIRenderer(profile termenv.Profile) *ANSIRenderer {
	return &ANSIRenderer{Profile: profile, Palette: DefaultPalette()}
}

func (r *ANSIRenderer) Render(w io.Writer, doc *Document) error {
	palette := r.Palette
	if palette == nil {
		palette = DefaultPalette()
	}

	bw := bufio.NewWriter(w)
	for _, f := range doc.Fragments() {
		switch {
		case f.Style == Reset:
			if r.Profile != termenv.Ascii {
				_, _ = bw.WriteString(termenv.CSI + termenv.ResetSeq + "m")
			}
		case f.Style.Colored():
			if seq := r.Profile.Color(palette[f.Style]).Sequence(false); seq != "" {
				_, _ = bw.WriteString(termenv.CSI + seq + "m")
			}
		}
		_, _ = bw.WriteString(f.Text)
	}
	return bw.Flush()
}

// HTMLRenderer writes a <pre> block with one <span> per styled fragment.
// Class names are ClassPrefix followed by the style name.
type HTMLRenderer struct {
	ClassPrefix string
}

func (r HTMLRenderer) Render(w io.Writer, doc *Document) error {
	prefix := r.ClassPrefix
	if prefix == "" {
		prefix = "rsc-"
	}

	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(`<pre class="` + prefix + `source">`)
	for _, f := range doc.Fragments() {
		switch {
		case f.Style.Colored():
			_, _ = bw.WriteString(`<span class="` + prefix + f.Style.String() + `">`)
			_, _ = bw.WriteString(html.EscapeString(f.Text))
			_, _ = bw.WriteString(`</span>`)
		default:
			_, _ = bw.WriteString(html.EscapeString(f.Text))
		}
	}
	_, _ = bw.WriteString("</pre>\n")
	return bw.Flush()
}

// Strip removes terminal escape sequences from text rendered by an
// ANSIRenderer.
func Strip(s string) string {
	return ansi.Strip(s)
}
