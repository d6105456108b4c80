package commands

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/spf13/cobra"
)

// NewStylesCommand creates the styles command.
func NewStylesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "Show the style tags and their palette colours",
		Long: `List every style tag the formatter attaches to fragments, with the
colour used for it in ANSI output.

Colours are overridden in the palette section of the configuration file:

  palette:
    keyword: "#ff79c6"
    number: "141"`,
		Args: cobra.NoArgs,
		RunE: runStyles,
	}
}

func runStyles(cmd *cobra.Command, _ []string) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	r := cmdCtx.Renderer
	palette := cmdCtx.Engine.Palette()
	titleCaser := cases.Title(language.English)

	r.Println(r.Styles().Header.Render("Styles"))
	for _, s := range format.ColoredStyles() {
		name := titleCaser.String(s.String())
		r.Printf("  %-10s %-9s %s\n", name, palette[s], r.Styles().Swatch(palette[s], sampleFor(s)))
	}
	r.Println()
	r.Println(r.Styles().Muted.Render(fmt.Sprintf("%s and %s fragments are never coloured",
		titleCaser.String(format.None.String()), titleCaser.String(format.Reset.String()))))
	return nil
}

// sampleFor returns a short piece of source text carrying style s.
func sampleFor(s format.Style) string {
	switch s {
	case format.Number:
		return "42"
	case format.Text:
		return "+ ( ) { }"
	case format.Keyword:
		return "func while"
	case format.Variable:
		return "counter"
	case format.Boolean:
		return "true"
	case format.Type:
		return "int bool"
	default:
		return s.String()
	}
}
