// Package resolve attaches types to the expressions of a parsed tree.
//
// The pass is post-order: children are typed before their parent, and each
// expression's type is derived from its children's. Operand checks report
// a Diagnostic and carry on; they never stop the pass.
//
// Unresolved operands are not checked, since nothing is known about them yet.
// An Error operand is assignable to everything, so a broken subtree produces
// a single diagnostic rather than a cascade.
package resolve

import (
	"fmt"
	"log/slog"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// Options configures a resolve pass.
type Options struct {
	// Functions receives one signature per function literal. A fresh
	// FunctionList is used when nil.
	Functions FunctionTable
	// Env types free variables. Variables are Unresolved when nil.
	Env Env
	// Logger defaults to a discarding logger.
	Logger *slog.Logger
}

// Diagnostic is a typing problem found at one expression.
type Diagnostic struct {
	Expr    ast.ExprID
	Span    token.Span
	Message string
}

func (d Diagnostic) String() string {
	if d.Span.IsValid() {
		return fmt.Sprintf("%d:%d: %s", d.Span.Start.Line, d.Span.Start.Column, d.Message)
	}
	return fmt.Sprintf("expression %d: %s", d.Expr, d.Message)
}

// Result is the outcome of a resolve pass. The types themselves live on the
// tree.
type Result struct {
	Diagnostics []Diagnostic
	Functions   FunctionTable
}

// OK reports whether the pass found no problems.
func (r *Result) OK() bool {
	return len(r.Diagnostics) == 0
}

type resolver struct {
	ast.Walker[struct{}]
	functions FunctionTable
	env       Env
	logger    *slog.Logger
	diags     []Diagnostic
}

var (
	_ ast.Visitor[struct{}]      = (*resolver)(nil)
	_ ast.ParamVisitor[struct{}] = (*resolver)(nil)
)

// Resolve types every expression reachable from t's items. Expression and
// parameter annotations are overwritten in place.
func Resolve(t *ast.Tree, opts Options) *Result {
	r := &resolver{
		functions: opts.Functions,
		env:       opts.Env,
		logger:    opts.Logger,
	}
	if r.functions == nil {
		r.functions = &FunctionList{}
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	r.Self = r

	ast.Walk[struct{}](r, struct{}{}, t)

	r.logger.Debug("resolved tree",
		slog.Int("expressions", t.ExprCount()),
		slog.Int("diagnostics", len(r.diags)))

	return &Result{Diagnostics: r.diags, Functions: r.functions}
}

func (r *resolver) report(t *ast.Tree, id ast.ExprID, format string, args ...any) {
	r.diags = append(r.diags, Diagnostic{
		Expr:    id,
		Span:    t.Expr(id).Span,
		Message: fmt.Sprintf(format, args...),
	})
}

// expect reports when the operand's type cannot stand where want is needed.
func (r *resolver) expect(t *ast.Tree, operand ast.ExprID, want types.Type, what string) {
	got := t.TypeOf(operand)
	if !got.IsResolved() || got.AssignableTo(want) {
		return
	}
	r.report(t, operand, "%s expects %s, found %s", what, want, got)
}

// ---------- Leaves ----------

func (r *resolver) VisitNumberExpr(_ struct{}, t *ast.Tree, _ *ast.NumberExpr, id ast.ExprID) {
	t.SetType(id, types.Int)
}

func (r *resolver) VisitBooleanExpr(_ struct{}, t *ast.Tree, _ *ast.BooleanExpr, id ast.ExprID) {
	t.SetType(id, types.Bool)
}

func (r *resolver) VisitVariableExpr(_ struct{}, t *ast.Tree, e *ast.VariableExpr, id ast.ExprID) {
	typ := types.Unresolved
	if r.env != nil {
		if found, ok := r.env.Lookup(e.Identifier.Literal); ok {
			typ = found
		}
	}
	t.SetType(id, typ)
}

func (r *resolver) VisitRecExpr(_ struct{}, t *ast.Tree, _ *ast.RecExpr, id ast.ExprID) {
	t.SetType(id, types.Unresolved)
}

func (r *resolver) VisitErrorExpr(_ struct{}, t *ast.Tree, _ *ast.ErrorExpr, id ast.ExprID) {
	t.SetType(id, types.Error)
}

// ---------- Operators ----------

func (r *resolver) VisitUnaryExpr(c struct{}, t *ast.Tree, e *ast.UnaryExpr, id ast.ExprID) {
	r.Walker.VisitUnaryExpr(c, t, e, id)

	want := types.Int
	if e.Op == ast.Not {
		want = types.Bool
	}
	r.expect(t, e.Operand, want, "operator "+e.Op.String())
	t.SetType(id, want)
}

func (r *resolver) VisitBinaryExpr(c struct{}, t *ast.Tree, e *ast.BinaryExpr, id ast.ExprID) {
	r.Walker.VisitBinaryExpr(c, t, e, id)

	what := "operator " + e.Op.String()
	switch {
	case e.Op.IsLogical():
		r.expect(t, e.Left, types.Bool, what)
		r.expect(t, e.Right, types.Bool, what)
		t.SetType(id, types.Bool)

	case e.Op.IsEquality():
		left, right := t.TypeOf(e.Left), t.TypeOf(e.Right)
		if left.IsResolved() && right.IsResolved() && !left.AssignableTo(right) {
			r.report(t, id, "%s cannot compare %s with %s", what, left, right)
		}
		t.SetType(id, types.Bool)

	case e.Op.IsComparison():
		r.expect(t, e.Left, types.Int, what)
		r.expect(t, e.Right, types.Int, what)
		t.SetType(id, types.Bool)

	default:
		r.expect(t, e.Left, types.Int, what)
		r.expect(t, e.Right, types.Int, what)
		t.SetType(id, types.Int)
	}
}

func (r *resolver) VisitParenExpr(c struct{}, t *ast.Tree, e *ast.ParenExpr, id ast.ExprID) {
	r.Walker.VisitParenExpr(c, t, e, id)
	t.SetType(id, t.TypeOf(e.Inner))
}

func (r *resolver) VisitAssignExpr(c struct{}, t *ast.Tree, e *ast.AssignExpr, id ast.ExprID) {
	r.Walker.VisitAssignExpr(c, t, e, id)

	value := t.TypeOf(e.Value)
	if r.env != nil {
		if target, ok := r.env.Lookup(e.Identifier.Literal); ok && value.IsResolved() && !value.AssignableTo(target) {
			r.report(t, id, "cannot assign %s to %s of type %s", value, e.Identifier.Literal, target)
		}
	}
	t.SetType(id, value)
}

func (r *resolver) VisitCallExpr(c struct{}, t *ast.Tree, e *ast.CallExpr, id ast.ExprID) {
	r.Walker.VisitCallExpr(c, t, e, id)
	t.SetType(id, types.Unresolved)
}

// ---------- Control flow ----------

func (r *resolver) VisitBlockExpr(c struct{}, t *ast.Tree, e *ast.BlockExpr, id ast.ExprID) {
	r.Walker.VisitBlockExpr(c, t, e, id)

	typ := types.Void
	if n := len(e.Stmts); n > 0 {
		if last, ok := t.Stmt(e.Stmts[n-1]).Node.(*ast.ExprStmt); ok {
			typ = t.TypeOf(last.Expr)
		}
	}
	t.SetType(id, typ)
}

func (r *resolver) VisitIfExpr(c struct{}, t *ast.Tree, e *ast.IfExpr, id ast.ExprID) {
	r.Walker.VisitIfExpr(c, t, e, id)

	r.expect(t, e.Cond, types.Bool, "if condition")
	typ := types.Void
	if e.HasElse() && t.TypeOf(e.Then) == t.TypeOf(e.Else) {
		typ = t.TypeOf(e.Then)
	}
	t.SetType(id, typ)
}

func (r *resolver) VisitWhileExpr(c struct{}, t *ast.Tree, e *ast.WhileExpr, id ast.ExprID) {
	r.Walker.VisitWhileExpr(c, t, e, id)

	r.expect(t, e.Cond, types.Bool, "while condition")
	t.SetType(id, types.Void)
}

// ---------- Functions ----------

// VisitParam resolves a parameter's annotation. Unknown type names are
// reported at the function and resolve to Error.
func (r *resolver) VisitParam(_ struct{}, t *ast.Tree, p *ast.Param, fn ast.ExprID, _ int) {
	name := p.Annotation.TypeName.Literal
	typ, ok := types.ParseName(name)
	if !ok {
		r.report(t, fn, "unknown type %q for parameter %s", name, p.Identifier.Literal)
		typ = types.Error
	}
	p.Annotation.Resolved = typ
}

func (r *resolver) VisitFuncExpr(c struct{}, t *ast.Tree, e *ast.FuncExpr, id ast.ExprID) {
	r.Walker.VisitFuncExpr(c, t, e, id)

	sig := Signature{Params: make([]types.Type, len(e.Params))}
	for i := range e.Params {
		sig.Params[i] = e.Params[i].Annotation.Resolved
	}
	t.SetType(id, types.Function(r.functions.Declare(sig)))
}
