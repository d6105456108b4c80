package ast

// Walker supplies the default behaviour for every Visitor method: composite
// entry points dispatch on shape, composite shapes recurse into their
// children and leaves do nothing.
//
// Embed it in a pass and set Self to the pass itself so recursion goes back
// through the pass's overrides:
//
//	type counter struct {
//		ast.Walker[struct{}]
//		calls int
//	}
//
//	c := &counter{}
//	c.Self = c
//
// A Walker whose Self is nil walks with its own defaults, so a bare Walker
// visits every node, but overrides of a pass that forgot to set Self are
// only reached for the node the walk started at.
//
// Children are visited in a fixed order: binary left then right, call callee
// then arguments, if condition then branches, block statements in order,
// func parameters then body.
type Walker[C any] struct {
	Self Visitor[C]
}

var _ Visitor[struct{}] = Walker[struct{}]{}

func (w Walker[C]) self() Visitor[C] {
	if w.Self == nil {
		return w
	}
	return w.Self
}

func (w Walker[C]) VisitStmt(c C, t *Tree, id StmtID) {
	DispatchStmt(w.self(), c, t, id)
}

func (w Walker[C]) VisitExpr(c C, t *Tree, id ExprID) {
	DispatchExpr(w.self(), c, t, id)
}

func (w Walker[C]) VisitExprStmt(c C, t *Tree, s *ExprStmt, _ StmtID) {
	w.self().VisitExpr(c, t, s.Expr)
}

func (w Walker[C]) VisitReturnStmt(c C, t *Tree, s *ReturnStmt, _ StmtID) {
	if s.HasValue() {
		w.self().VisitExpr(c, t, s.Value)
	}
}

func (Walker[C]) VisitNumberExpr(C, *Tree, *NumberExpr, ExprID)     {}
func (Walker[C]) VisitBooleanExpr(C, *Tree, *BooleanExpr, ExprID)   {}
func (Walker[C]) VisitVariableExpr(C, *Tree, *VariableExpr, ExprID) {}
func (Walker[C]) VisitRecExpr(C, *Tree, *RecExpr, ExprID)           {}
func (Walker[C]) VisitErrorExpr(C, *Tree, *ErrorExpr, ExprID)       {}

func (w Walker[C]) VisitUnaryExpr(c C, t *Tree, e *UnaryExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Operand)
}

func (w Walker[C]) VisitBinaryExpr(c C, t *Tree, e *BinaryExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Left)
	w.self().VisitExpr(c, t, e.Right)
}

func (w Walker[C]) VisitParenExpr(c C, t *Tree, e *ParenExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Inner)
}

func (w Walker[C]) VisitAssignExpr(c C, t *Tree, e *AssignExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Value)
}

func (w Walker[C]) VisitCallExpr(c C, t *Tree, e *CallExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Callee)
	for _, arg := range e.Args {
		w.self().VisitExpr(c, t, arg)
	}
}

func (w Walker[C]) VisitBlockExpr(c C, t *Tree, e *BlockExpr, _ ExprID) {
	for _, stmt := range e.Stmts {
		w.self().VisitStmt(c, t, stmt)
	}
}

func (w Walker[C]) VisitIfExpr(c C, t *Tree, e *IfExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Cond)
	w.self().VisitExpr(c, t, e.Then)
	if e.HasElse() {
		w.self().VisitExpr(c, t, e.Else)
	}
}

func (w Walker[C]) VisitWhileExpr(c C, t *Tree, e *WhileExpr, _ ExprID) {
	w.self().VisitExpr(c, t, e.Cond)
	w.self().VisitExpr(c, t, e.Body)
}

func (w Walker[C]) VisitFuncExpr(c C, t *Tree, e *FuncExpr, id ExprID) {
	if pv, ok := w.self().(ParamVisitor[C]); ok {
		for i := range e.Params {
			pv.VisitParam(c, t, &e.Params[i], id, i)
		}
	}
	w.self().VisitExpr(c, t, e.Body)
}
