package ast

// Inspect calls fn for every expression reachable from the tree's items, in
// pre-order. If fn returns false the children of that expression are
// skipped.
func Inspect(t *Tree, fn func(id ExprID, e *Expr) bool) {
	in := &inspector{fn: fn}
	in.Self = in
	Walk[struct{}](in, struct{}{}, t)
}

// InspectExpr is like Inspect but starts at a single expression.
func InspectExpr(t *Tree, root ExprID, fn func(id ExprID, e *Expr) bool) {
	in := &inspector{fn: fn}
	in.Self = in
	in.VisitExpr(struct{}{}, t, root)
}

type inspector struct {
	Walker[struct{}]
	fn func(id ExprID, e *Expr) bool
}

func (in *inspector) VisitExpr(c struct{}, t *Tree, id ExprID) {
	if in.fn(id, t.Expr(id)) {
		DispatchExpr[struct{}](in, c, t, id)
	}
}
