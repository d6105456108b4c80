package format

import "fmt"

// Style is the semantic category of a fragment of formatted source. Styles
// are abstract; a Renderer decides what each one looks like.
type Style uint8

const (
	// None marks layout (spaces, padding, newlines). It carries no marker and
	// inherits whatever the output device is currently showing.
	None Style = iota
	Text
	Number
	Keyword
	Variable
	Boolean
	Type
	// Reset closes a completed statement line.
	Reset
)

var styleNames = [...]string{
	None:     "none",
	Text:     "text",
	Number:   "number",
	Keyword:  "keyword",
	Variable: "variable",
	Boolean:  "boolean",
	Type:     "type",
	Reset:    "reset",
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("style(%d)", s)
}

// Colored reports whether s is a category a palette assigns a colour to.
func (s Style) Colored() bool {
	return s >= Text && s <= Type
}

// ColoredStyles returns the styles that carry a colour, in declaration order.
func ColoredStyles() []Style {
	return []Style{Text, Number, Keyword, Variable, Boolean, Type}
}

// ParseStyle maps a style name (as used in configuration) to its Style.
func ParseStyle(name string) (Style, error) {
	for _, s := range ColoredStyles() {
		if styleNames[s] == name {
			return s, nil
		}
	}
	return None, fmt.Errorf("unknown style %q", name)
}
