package engine

import (
	"strconv"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/prithivirajmurugan/rs-compiler/pkg/resolve"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// Analysis is a parsed and resolved source.
type Analysis struct {
	Name   string
	Tree   *ast.Tree
	Result *resolve.Result
}

// Row describes one expression of an analysis.
type Row struct {
	ID     ast.ExprID `json:"id"`
	Shape  string     `json:"shape"`
	Line   int        `json:"line"`
	Column int        `json:"column"`
	Text   string     `json:"text"`
	Type   string     `json:"type"`
}

// Diagnostic is a resolve diagnostic flattened for display.
type Diagnostic struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// Resolve parses src and runs the resolver over it. Free variables are
// typed from env, which may be nil.
func (e *Engine) Resolve(name, src string, env resolve.Env) (*Analysis, error) {
	e.logger.Debug("resolving", "file", name, "bytes", len(src))

	tree, err := e.parse(name, src)
	if tree == nil {
		return nil, err
	}

	res := resolve.Resolve(tree, resolve.Options{
		Env:    env,
		Logger: e.logger.With("file", name),
	})
	return &Analysis{Name: name, Tree: tree, Result: res}, err
}

// Rows lists every expression reachable from the top-level statements in
// pre-order, with its canonical text and attached type.
func (a *Analysis) Rows() []Row {
	var rows []Row
	ast.Inspect(a.Tree, func(id ast.ExprID, _ *ast.Expr) bool {
		rows = append(rows, a.Row(id))
		return true
	})
	return rows
}

// TopLevel returns the types of the top-level expression statements, in
// order. Return statements are skipped.
func (a *Analysis) TopLevel() []Row {
	var rows []Row
	for _, item := range a.Tree.Items {
		stmt, ok := a.Tree.Stmt(item).Node.(*ast.ExprStmt)
		if !ok {
			continue
		}
		rows = append(rows, a.Row(stmt.Expr))
	}
	return rows
}

// Row describes the expression id.
func (a *Analysis) Row(id ast.ExprID) Row {
	e := a.Tree.Expr(id)
	return Row{
		ID:     id,
		Shape:  e.Kind().String(),
		Line:   e.Span.Start.Line,
		Column: e.Span.Start.Column,
		Text:   format.Expression(a.Tree, id).String(),
		Type:   typeName(e.Type),
	}
}

// ExprAt returns the innermost expression whose span covers the byte
// offset.
func (a *Analysis) ExprAt(offset int) (ast.ExprID, bool) {
	var (
		best  ast.ExprID
		found bool
	)
	ast.Inspect(a.Tree, func(id ast.ExprID, e *ast.Expr) bool {
		if !e.Span.Contains(offset) {
			return !e.Span.IsValid()
		}
		best, found = id, true
		return true
	})
	return best, found
}

// Diagnostics returns the resolve diagnostics in report order.
func (a *Analysis) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(a.Result.Diagnostics))
	for i, d := range a.Result.Diagnostics {
		out[i] = Diagnostic{
			Line:    d.Span.Start.Line,
			Column:  d.Span.Start.Column,
			Message: d.Message,
		}
	}
	return out
}

// typeName spells function types with their table index, which
// types.Type.String leaves out.
func typeName(t types.Type) string {
	if idx, ok := t.FunctionIndex(); ok {
		return t.String() + "#" + strconv.Itoa(int(idx))
	}
	return t.String()
}

// Signature returns the parameter types behind a function type issued by
// this analysis.
func (a *Analysis) Signature(t types.Type) (resolve.Signature, bool) {
	idx, ok := t.FunctionIndex()
	if !ok {
		return resolve.Signature{}, false
	}
	list, ok := a.Result.Functions.(*resolve.FunctionList)
	if !ok {
		return resolve.Signature{}, false
	}
	return list.Lookup(idx)
}
