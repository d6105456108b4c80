// Package output decides how the CLI writes to its streams: which document
// renderer to use, whether colour is allowed and how headings, warnings and
// errors are styled.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"golang.org/x/term"
)

// Mode is the output mode selected with --output.
type Mode string

// Output modes.
const (
	ModeAuto  Mode = "auto"
	ModePlain Mode = "plain"
	ModeANSI  Mode = "ansi"
	ModeHTML  Mode = "html"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out     io.Writer
	errOut  io.Writer
	mode    Mode
	isTTY   bool
	profile termenv.Profile
	palette format.Palette
	styles  *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	if mode == ModeAuto {
		mode = ModePlain
		if isTTY {
			mode = ModeANSI
		}
	}

	profile := termenv.Ascii
	if mode == ModeANSI {
		profile = termenv.ANSI256
		if isTTY {
			profile = termenv.NewOutput(out).EnvColorProfile()
		}
	}

	lg := lipgloss.NewRenderer(out)
	lg.SetColorProfile(profile)

	return &Renderer{
		out:     out,
		errOut:  errOut,
		mode:    mode,
		isTTY:   isTTY,
		profile: profile,
		palette: format.DefaultPalette(),
		styles:  NewStyles(lg),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetPalette replaces the colours used for ANSI documents.
func (r *Renderer) SetPalette(p format.Palette) {
	if p != nil {
		r.palette = p
	}
}

// Mode returns the effective mode; auto has already been resolved.
func (r *Renderer) Mode() Mode { return r.mode }

// IsTTY reports whether stdout is a terminal.
func (r *Renderer) IsTTY() bool { return r.isTTY }

// Styles returns the styles for CLI chrome.
func (r *Renderer) Styles() *Styles { return r.styles }

// Writer returns the stdout writer.
func (r *Renderer) Writer() io.Writer { return r.out }

// ErrWriter returns the stderr writer.
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }

// DocumentRenderer returns the format renderer for the current mode.
func (r *Renderer) DocumentRenderer() format.Renderer {
	switch r.mode {
	case ModeANSI:
		return &format.ANSIRenderer{Profile: r.profile, Palette: r.palette}
	case ModeHTML:
		return format.HTMLRenderer{}
	default:
		return format.PlainRenderer{}
	}
}

// Document writes a formatted document to stdout.
func (r *Renderer) Document(doc *format.Document) error {
	return r.DocumentRenderer().Render(r.out, doc)
}

// Println writes a line to stdout.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output to stdout.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Warning writes a styled warning line to stderr.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: ")+msg)
}

// Error writes a styled error line to stderr.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: ")+msg)
}
