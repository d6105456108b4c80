package lsp

// maxTabSize bounds the indentation width taken from the client.
const maxTabSize = 16

// getFormattingEdits returns one edit replacing the whole document with its
// formatted text. Documents with syntax errors are left alone, as are
// documents that are already formatted.
func (s *Server) getFormattingEdits(params DocumentFormattingParams) []TextEdit {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return nil
	}

	indent := s.engine.IndentWidth()
	if params.Options.InsertSpaces && params.Options.TabSize > 0 && params.Options.TabSize <= maxTabSize {
		indent = params.Options.TabSize
	}

	formatted, err := s.engine.FormatWidth(URIToPath(doc.URI), doc.Content, indent)
	if err != nil {
		s.logger.Debug("not formatting document with errors", "uri", doc.URI, "error", err)
		return []TextEdit{}
	}
	if formatted.String() == doc.Content {
		return []TextEdit{}
	}

	return []TextEdit{{Range: doc.FullRange(), NewText: formatted.String()}}
}
