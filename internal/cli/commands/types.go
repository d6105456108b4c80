package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/spf13/cobra"
)

// TypesOptions holds options for the types command.
type TypesOptions struct {
	All  bool // List every expression, not only top-level statements
	JSON bool // Emit rows and diagnostics as JSON
}

// typesReport is the JSON shape of the types command.
type typesReport struct {
	File        string              `json:"file"`
	Rows        []engine.Row        `json:"rows"`
	Diagnostics []engine.Diagnostic `json:"diagnostics"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand() *cobra.Command {
	opts := &TypesOptions{}
	cmd := &cobra.Command{
		Use:   "types <file>",
		Short: "Show the resolved type of each expression",
		Long: `Parse and type-check a source file, then print the type attached to
each top-level expression. Use --all to list every expression in the tree.

Names that are not bound inside the file are typed from the globals section
of the configuration file; anything else stays unresolved.`,
		Example: `  # Types of top-level statements
  rsc types main.rsc

  # Every expression, as JSON
  rsc types --all --json main.rsc

  # Read from stdin
  echo 'func (x : int) { x + 1 }' | rsc types -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(cmd, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.All, "all", "a", false, "List every expression")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")

	return cmd
}

func runTypes(cmd *cobra.Command, path string, opts *TypesOptions) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}

	var src []byte
	if path == "-" {
		src, err = io.ReadAll(cmd.InOrStdin())
		path = "<stdin>"
	} else {
		src, err = os.ReadFile(path) //nolint:gosec // G304: path is a user-supplied CLI argument
	}
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	analysis, err := cmdCtx.Engine.Resolve(path, string(src), cmdCtx.Env)
	if analysis == nil {
		return err
	}
	if err != nil {
		cmdCtx.Renderer.Warning(err.Error())
	}

	rows := analysis.TopLevel()
	if opts.All {
		rows = analysis.Rows()
	}
	diags := analysis.Diagnostics()

	if opts.JSON {
		enc := json.NewEncoder(cmdCtx.Renderer.Writer())
		enc.SetIndent("", "  ")
		return enc.Encode(typesReport{File: path, Rows: rows, Diagnostics: diags})
	}

	renderTypes(cmdCtx, rows, opts.All)
	for _, d := range diags {
		cmdCtx.Renderer.Error(fmt.Sprintf("%s:%d:%d: %s", path, d.Line, d.Column, d.Message))
	}
	if len(diags) > 0 {
		return fmt.Errorf("%d type error(s)", len(diags))
	}
	return nil
}

func renderTypes(cmdCtx *CommandContext, rows []engine.Row, all bool) {
	r := cmdCtx.Renderer
	if len(rows) == 0 {
		r.Println(r.Styles().Muted.Render("(no expressions)"))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)

	if all {
		t.AppendHeader(table.Row{"ID", "Position", "Shape", "Expression", "Type"})
	} else {
		t.AppendHeader(table.Row{"Position", "Shape", "Expression", "Type"})
	}
	for _, row := range rows {
		pos := fmt.Sprintf("%d:%d", row.Line, row.Column)
		if all {
			t.AppendRow(table.Row{row.ID, pos, row.Shape, row.Text, row.Type})
		} else {
			t.AppendRow(table.Row{pos, row.Shape, row.Text, row.Type})
		}
	}
	t.Render()
}
