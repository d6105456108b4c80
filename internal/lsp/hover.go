package lsp

import (
	"strings"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
)

// getHover describes the innermost expression under the cursor: its
// canonical text and type, plus the parameter list for functions.
func (s *Server) getHover(params HoverParams) *Hover {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	analysis, _ := s.analyze(doc)
	if analysis == nil {
		return nil
	}

	id, ok := analysis.ExprAt(doc.PositionToOffset(params.Position))
	if !ok {
		return nil
	}

	r := spanRange(doc, analysis.Tree.Expr(id).Span)
	return &Hover{
		Contents: MarkupContent{Kind: "markdown", Value: hoverText(analysis, id)},
		Range:    &r,
	}
}

func hoverText(analysis *engine.Analysis, id ast.ExprID) string {
	row := analysis.Row(id)

	var b strings.Builder
	b.WriteString("```rsc\n")
	b.WriteString(row.Text)
	b.WriteString("\n```\n\n")
	b.WriteString(row.Shape)
	b.WriteString(": `")
	b.WriteString(row.Type)
	b.WriteString("`")

	if sig, ok := analysis.Signature(analysis.Tree.TypeOf(id)); ok {
		params := make([]string, len(sig.Params))
		for i, p := range sig.Params {
			params[i] = p.String()
		}
		b.WriteString("\n\nparameters: `(")
		b.WriteString(strings.Join(params, ", "))
		b.WriteString(")`")
	}
	return b.String()
}
