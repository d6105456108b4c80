package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used around documents: headings, file
// names and status lines.
type Styles struct {
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	File    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style

	renderer *lipgloss.Renderer
}

// NewStyles builds the styles for a lipgloss renderer. The renderer's colour
// profile decides whether colours are emitted at all.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("5")),
		Muted:    r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:     r.NewStyle().Bold(true),
		File:     r.NewStyle().Underline(true),
		Success:  r.NewStyle().Foreground(lipgloss.Color("2")),
		Warning:  r.NewStyle().Foreground(lipgloss.Color("3")),
		Error:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		renderer: r,
	}
}

// Swatch renders text in the given colour.
func (s *Styles) Swatch(color, text string) string {
	return s.renderer.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
