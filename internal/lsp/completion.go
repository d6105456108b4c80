package lsp

import (
	"regexp"
	"sort"
	"strings"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
)

// annotationContext matches a line ending inside a parameter annotation,
// e.g. "func (n : in".
var annotationContext = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*\s*:\s*[A-Za-z_]*$`)

var typeNames = []string{"int", "bool"}

var keywords = []string{"else", "false", "func", "if", "rec", "return", "true", "while"}

var snippets = []CompletionItem{
	{Label: "func", Detail: "function literal", InsertText: "func (${1:x} : ${2:int}) {\n\t$0\n}"},
	{Label: "if", Detail: "conditional", InsertText: "if ${1:cond} {\n\t$0\n}"},
	{Label: "ifelse", Detail: "conditional with else", InsertText: "if ${1:cond} {\n\t$2\n} else {\n\t$0\n}"},
	{Label: "while", Detail: "loop", InsertText: "while ${1:cond} {\n\t$0\n}"},
}

// getCompletions proposes type names inside parameter annotations, and
// keywords, snippets and known names everywhere else. Proposals are
// filtered by the word before the cursor.
func (s *Server) getCompletions(params CompletionParams) []CompletionItem {
	doc := s.documents.Get(params.TextDocument.URI)
	if doc == nil {
		return []CompletionItem{}
	}

	prefix := doc.WordBefore(params.Position)
	items := []CompletionItem{}
	add := func(item CompletionItem) {
		if strings.HasPrefix(item.Label, prefix) {
			items = append(items, item)
		}
	}

	if annotationContext.MatchString(doc.LineBefore(params.Position)) {
		for _, name := range typeNames {
			add(CompletionItem{Label: name, Kind: CompletionItemKindTypeParameter, Detail: "type"})
		}
		return items
	}

	for _, kw := range keywords {
		add(CompletionItem{Label: kw, Kind: CompletionItemKindKeyword})
	}
	for _, sn := range snippets {
		sn.Kind = CompletionItemKindSnippet
		sn.InsertTextFormat = InsertTextFormatSnippet
		add(sn)
	}
	for _, name := range s.knownNames(doc) {
		if name == prefix {
			continue
		}
		add(CompletionItem{Label: name, Kind: CompletionItemKindVariable, Detail: s.globalType(name)})
	}
	return items
}

// knownNames lists the globals and every name assigned, declared as a
// parameter or referenced in doc, sorted and without duplicates.
func (s *Server) knownNames(doc *Document) []string {
	seen := map[string]bool{}

	if b, ok := s.env.(interface{ Names() []string }); ok {
		for _, name := range b.Names() {
			seen[name] = true
		}
	}

	if analysis, _ := s.analyze(doc); analysis != nil {
		ast.Inspect(analysis.Tree, func(_ ast.ExprID, e *ast.Expr) bool {
			switch n := e.Node.(type) {
			case *ast.AssignExpr:
				seen[n.Identifier.Literal] = true
			case *ast.VariableExpr:
				seen[n.Identifier.Literal] = true
			case *ast.FuncExpr:
				for _, p := range n.Params {
					seen[p.Identifier.Literal] = true
				}
			}
			return true
		})
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// globalType returns the configured type of a global name, or "".
func (s *Server) globalType(name string) string {
	if s.env == nil {
		return ""
	}
	if typ, ok := s.env.Lookup(name); ok {
		return typ.String()
	}
	return ""
}
