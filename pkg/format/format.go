package format

import "github.com/prithivirajmurugan/rs-compiler/pkg/ast"

// Option configures formatting.
type Option func(*printer)

// WithIndentWidth sets the number of spaces per block level.
func WithIndentWidth(n int) Option {
	return func(p *printer) {
		if n >= 0 {
			p.indentWidth = n
		}
	}
}

// Format renders every top-level statement of t.
func Format(t *ast.Tree, opts ...Option) *Document {
	p := newPrinter(opts...)
	ast.Walk[depth](p, 0, t)
	return p.doc
}

// Statement renders a single statement line.
func Statement(t *ast.Tree, id ast.StmtID, opts ...Option) *Document {
	p := newPrinter(opts...)
	p.VisitStmt(0, t, id)
	return p.doc
}

// Expression renders a single expression without padding or line end.
func Expression(t *ast.Tree, id ast.ExprID, opts ...Option) *Document {
	p := newPrinter(opts...)
	p.VisitExpr(0, t, id)
	return p.doc
}
