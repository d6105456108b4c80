// Package format reconstructs source text from a syntax tree.
package format

import (
	"strconv"
	"strings"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
)

const defaultIndentWidth = 2

// depth is the block nesting level. It is the traversal context of the
// printer, so leaving a block restores the enclosing level without any
// bookkeeping.
type depth int

// printer implements every Visitor method itself; there is no default to
// fall back on, so a new shape cannot be skipped silently.
type printer struct {
	doc         *Document
	indentWidth int
}

var _ ast.Visitor[depth] = (*printer)(nil)

func newPrinter(opts ...Option) *printer {
	p := &printer{
		doc:         &Document{},
		indentWidth: defaultIndentWidth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *printer) write(style Style, s string) {
	p.doc.append(Fragment{Style: style, Text: s})
}

func (p *printer) keyword(s string)  { p.write(Keyword, s) }
func (p *printer) text(s string)     { p.write(Text, s) }
func (p *printer) variable(s string) { p.write(Variable, s) }
func (p *printer) space()            { p.write(None, " ") }
func (p *printer) writeln()          { p.write(None, "\n") }
func (p *printer) reset()            { p.write(Reset, "") }

func (p *printer) writeIndent(d depth) {
	if n := int(d) * p.indentWidth; n > 0 {
		p.write(None, strings.Repeat(" ", n))
	}
}

// formatList prints count items separated by sep.
func (p *printer) formatList(count int, format func(i int), sep string) {
	for i := 0; i < count; i++ {
		if i > 0 {
			p.text(sep)
			p.space()
		}
		format(i)
	}
}

// ---------- Statements ----------

// VisitStmt renders one statement line: padding, the statement, a reset
// marker and a newline.
func (p *printer) VisitStmt(d depth, t *ast.Tree, id ast.StmtID) {
	p.writeIndent(d)
	ast.DispatchStmt[depth](p, d, t, id)
	p.reset()
	p.writeln()
}

func (p *printer) VisitExpr(d depth, t *ast.Tree, id ast.ExprID) {
	ast.DispatchExpr[depth](p, d, t, id)
}

func (p *printer) VisitExprStmt(d depth, t *ast.Tree, s *ast.ExprStmt, _ ast.StmtID) {
	p.VisitExpr(d, t, s.Expr)
}

func (p *printer) VisitReturnStmt(d depth, t *ast.Tree, s *ast.ReturnStmt, _ ast.StmtID) {
	p.keyword("return")
	if s.HasValue() {
		p.space()
		p.VisitExpr(d, t, s.Value)
	}
}

// ---------- Expressions ----------

func (p *printer) VisitNumberExpr(_ depth, _ *ast.Tree, e *ast.NumberExpr, _ ast.ExprID) {
	lit := e.Token.Literal
	if lit == "" {
		lit = strconv.FormatInt(e.Value, 10)
	}
	p.write(Number, lit)
}

func (p *printer) VisitBooleanExpr(_ depth, _ *ast.Tree, e *ast.BooleanExpr, _ ast.ExprID) {
	p.write(Boolean, strconv.FormatBool(e.Value))
}

func (p *printer) VisitVariableExpr(_ depth, _ *ast.Tree, e *ast.VariableExpr, _ ast.ExprID) {
	p.variable(e.Identifier.Literal)
}

func (p *printer) VisitUnaryExpr(d depth, t *ast.Tree, e *ast.UnaryExpr, _ ast.ExprID) {
	p.text(e.Op.String())
	p.VisitExpr(d, t, e.Operand)
}

func (p *printer) VisitBinaryExpr(d depth, t *ast.Tree, e *ast.BinaryExpr, _ ast.ExprID) {
	p.VisitExpr(d, t, e.Left)
	p.space()
	p.text(e.Op.String())
	p.space()
	p.VisitExpr(d, t, e.Right)
}

func (p *printer) VisitParenExpr(d depth, t *ast.Tree, e *ast.ParenExpr, _ ast.ExprID) {
	p.text("(")
	p.VisitExpr(d, t, e.Inner)
	p.text(")")
}

func (p *printer) VisitAssignExpr(d depth, t *ast.Tree, e *ast.AssignExpr, _ ast.ExprID) {
	p.variable(e.Identifier.Literal)
	p.space()
	p.text("=")
	p.space()
	p.VisitExpr(d, t, e.Value)
}

func (p *printer) VisitCallExpr(d depth, t *ast.Tree, e *ast.CallExpr, _ ast.ExprID) {
	p.VisitExpr(d, t, e.Callee)
	p.text("(")
	p.formatList(len(e.Args), func(i int) { p.VisitExpr(d, t, e.Args[i]) }, ",")
	p.text(")")
}

// VisitBlockExpr opens the block on the current line, renders its statements
// one level deeper and closes it without a trailing newline.
func (p *printer) VisitBlockExpr(d depth, t *ast.Tree, e *ast.BlockExpr, _ ast.ExprID) {
	p.text("{")
	p.writeln()
	for _, stmt := range e.Stmts {
		p.VisitStmt(d+1, t, stmt)
	}
	p.writeIndent(d)
	p.text("}")
}

func (p *printer) VisitIfExpr(d depth, t *ast.Tree, e *ast.IfExpr, _ ast.ExprID) {
	p.keyword("if")
	p.space()
	p.VisitExpr(d, t, e.Cond)
	p.space()
	p.VisitExpr(d, t, e.Then)
	if e.HasElse() {
		p.space()
		p.keyword("else")
		p.space()
		p.VisitExpr(d, t, e.Else)
	}
}

func (p *printer) VisitWhileExpr(d depth, t *ast.Tree, e *ast.WhileExpr, _ ast.ExprID) {
	p.keyword("while")
	p.space()
	p.VisitExpr(d, t, e.Cond)
	p.space()
	p.VisitExpr(d, t, e.Body)
}

// VisitFuncExpr writes "func (a : int, b : bool) body", or "func  body" when
// there are no parameters.
func (p *printer) VisitFuncExpr(d depth, t *ast.Tree, e *ast.FuncExpr, _ ast.ExprID) {
	p.keyword("func")
	p.space()
	if len(e.Params) == 0 {
		p.space()
	} else {
		p.text("(")
		p.formatList(len(e.Params), func(i int) {
			param := &e.Params[i]
			p.variable(param.Identifier.Literal)
			p.space()
			p.text(":")
			p.space()
			p.write(Type, param.Annotation.TypeName.Literal)
		}, ",")
		p.text(")")
		p.space()
	}
	p.VisitExpr(d, t, e.Body)
}

// VisitRecExpr never follows the reference; the function it names is the
// one being printed.
func (p *printer) VisitRecExpr(depth, *ast.Tree, *ast.RecExpr, ast.ExprID) {
	p.keyword("rec")
}

// VisitErrorExpr echoes the source the parser gave up on.
func (p *printer) VisitErrorExpr(_ depth, _ *ast.Tree, e *ast.ErrorExpr, _ ast.ExprID) {
	p.text(e.Span.Literal)
}
