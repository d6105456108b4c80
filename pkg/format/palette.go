package format

import (
	"fmt"
	"sort"
)

// Palette maps colored styles to colour specs understood by termenv: an
// ANSI index ("5"), an xterm-256 index ("141") or a hex colour ("#ff00ff").
type Palette map[Style]string

// DefaultPalette returns the stock terminal colours.
func DefaultPalette() Palette {
	return Palette{
		Number:   "6",  // cyan
		Text:     "15", // bright white
		Keyword:  "5",  // magenta
		Variable: "2",  // green
		Boolean:  "3",  // yellow
		Type:     "12", // bright blue
	}
}

// ParsePalette builds a palette from style names to colour specs, starting
// from DefaultPalette. Unknown style names are an error.
func ParsePalette(colors map[string]string) (Palette, error) {
	p := DefaultPalette()

	names := make([]string, 0, len(colors))
	for name := range colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s, err := ParseStyle(name)
		if err != nil {
			return nil, fmt.Errorf("palette: %w", err)
		}
		if colors[name] == "" {
			return nil, fmt.Errorf("palette: empty colour for %s", name)
		}
		p[s] = colors[name]
	}
	return p, nil
}

// Names returns the palette keyed by style name.
func (p Palette) Names() map[string]string {
	out := make(map[string]string, len(p))
	for s, c := range p {
		out[s.String()] = c
	}
	return out
}
