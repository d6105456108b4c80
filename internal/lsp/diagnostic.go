package lsp

import (
	"errors"

	"github.com/prithivirajmurugan/rs-compiler/internal/engine"
	"github.com/prithivirajmurugan/rs-compiler/pkg/parser"
	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
)

// Diagnostic codes.
const (
	CodeSyntax    = "syntax"
	CodeType      = "type"
	CodeMalformed = "malformed"
)

const diagnosticSource = "rsc"

// analyze parses and resolves the document. The analysis is nil only when
// the tree could not be built at all.
func (s *Server) analyze(doc *Document) (*engine.Analysis, error) {
	return s.engine.Resolve(URIToPath(doc.URI), doc.Content, s.env)
}

// publishDiagnostics sends the current diagnostics for uri.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     doc.Version,
		Diagnostics: s.getDiagnostics(doc),
	})
}

// getDiagnostics reports syntax errors first, then type errors, each in
// source order.
func (s *Server) getDiagnostics(doc *Document) []Diagnostic {
	diags := []Diagnostic{}

	analysis, err := s.analyze(doc)
	if err != nil {
		var list parser.ErrorList
		if errors.As(err, &list) {
			for _, pe := range list {
				diags = append(diags, Diagnostic{
					Range:    pointRange(doc, pe.Pos),
					Severity: DiagnosticSeverityError,
					Code:     CodeSyntax,
					Source:   diagnosticSource,
					Message:  pe.Message,
				})
			}
		} else {
			diags = append(diags, Diagnostic{
				Severity: DiagnosticSeverityError,
				Code:     CodeMalformed,
				Source:   diagnosticSource,
				Message:  err.Error(),
			})
		}
	}
	if analysis == nil {
		return diags
	}

	for _, d := range analysis.Result.Diagnostics {
		diags = append(diags, Diagnostic{
			Range:    spanRange(doc, d.Span),
			Severity: DiagnosticSeverityError,
			Code:     CodeType,
			Source:   diagnosticSource,
			Message:  d.Message,
		})
	}
	return diags
}

// spanRange converts a source span to an LSP range.
func spanRange(doc *Document, span token.Span) Range {
	if !span.IsValid() {
		return Range{}
	}
	return Range{
		Start: doc.OffsetToPosition(span.Start.Offset),
		End:   doc.OffsetToPosition(span.End.Offset),
	}
}

// pointRange covers the one character at pos, or an empty range at the end
// of the document.
func pointRange(doc *Document, pos token.Position) Range {
	start := doc.OffsetToPosition(pos.Offset)
	end := start
	if pos.Offset < len(doc.Content) && doc.Content[pos.Offset] != '\n' {
		end.Character++
	}
	return Range{Start: start, End: end}
}
