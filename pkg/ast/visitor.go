package ast

import "fmt"

// Visitor is implemented by every pass over a Tree.
//
// C is the traversal context. It is passed by value, so a callback that
// descends with a modified context (one level deeper, a different expected
// type) gets the caller's context back when the call returns.
//
// There is one method per shape. A pass that does not care about a shape
// still has to say so, either explicitly or by embedding Walker; a type
// missing a method does not satisfy the interface. Adding a shape therefore
// breaks the build of every pass until it handles the new shape.
type Visitor[C any] interface {
	// VisitStmt and VisitExpr are the composite entry points. They are
	// expected to call DispatchStmt and DispatchExpr, optionally with work
	// done around the dispatch.
	VisitStmt(c C, t *Tree, id StmtID)
	VisitExpr(c C, t *Tree, id ExprID)

	VisitExprStmt(c C, t *Tree, s *ExprStmt, id StmtID)
	VisitReturnStmt(c C, t *Tree, s *ReturnStmt, id StmtID)

	VisitNumberExpr(c C, t *Tree, e *NumberExpr, id ExprID)
	VisitBooleanExpr(c C, t *Tree, e *BooleanExpr, id ExprID)
	VisitVariableExpr(c C, t *Tree, e *VariableExpr, id ExprID)
	VisitUnaryExpr(c C, t *Tree, e *UnaryExpr, id ExprID)
	VisitBinaryExpr(c C, t *Tree, e *BinaryExpr, id ExprID)
	VisitParenExpr(c C, t *Tree, e *ParenExpr, id ExprID)
	VisitAssignExpr(c C, t *Tree, e *AssignExpr, id ExprID)
	VisitCallExpr(c C, t *Tree, e *CallExpr, id ExprID)
	VisitBlockExpr(c C, t *Tree, e *BlockExpr, id ExprID)
	VisitIfExpr(c C, t *Tree, e *IfExpr, id ExprID)
	VisitWhileExpr(c C, t *Tree, e *WhileExpr, id ExprID)
	VisitFuncExpr(c C, t *Tree, e *FuncExpr, id ExprID)
	VisitRecExpr(c C, t *Tree, e *RecExpr, id ExprID)
	VisitErrorExpr(c C, t *Tree, e *ErrorExpr, id ExprID)
}

// ParamVisitor is implemented by passes that want to see function
// parameters. Walker.VisitFuncExpr delivers each parameter, in declaration
// order, before visiting the body.
type ParamVisitor[C any] interface {
	VisitParam(c C, t *Tree, p *Param, fn ExprID, index int)
}

// DispatchStmt resolves id and invokes the callback for its shape.
func DispatchStmt[C any](v Visitor[C], c C, t *Tree, id StmtID) {
	switch s := t.Stmt(id).Node.(type) {
	case *ExprStmt:
		v.VisitExprStmt(c, t, s, id)
	case *ReturnStmt:
		v.VisitReturnStmt(c, t, s, id)
	default:
		panic(fmt.Sprintf("ast: unhandled statement %T", s))
	}
}

// DispatchExpr resolves id and invokes the callback for its shape.
func DispatchExpr[C any](v Visitor[C], c C, t *Tree, id ExprID) {
	switch e := t.Expr(id).Node.(type) {
	case *NumberExpr:
		v.VisitNumberExpr(c, t, e, id)
	case *BooleanExpr:
		v.VisitBooleanExpr(c, t, e, id)
	case *VariableExpr:
		v.VisitVariableExpr(c, t, e, id)
	case *UnaryExpr:
		v.VisitUnaryExpr(c, t, e, id)
	case *BinaryExpr:
		v.VisitBinaryExpr(c, t, e, id)
	case *ParenExpr:
		v.VisitParenExpr(c, t, e, id)
	case *AssignExpr:
		v.VisitAssignExpr(c, t, e, id)
	case *CallExpr:
		v.VisitCallExpr(c, t, e, id)
	case *BlockExpr:
		v.VisitBlockExpr(c, t, e, id)
	case *IfExpr:
		v.VisitIfExpr(c, t, e, id)
	case *WhileExpr:
		v.VisitWhileExpr(c, t, e, id)
	case *FuncExpr:
		v.VisitFuncExpr(c, t, e, id)
	case *RecExpr:
		v.VisitRecExpr(c, t, e, id)
	case *ErrorExpr:
		v.VisitErrorExpr(c, t, e, id)
	default:
		panic(fmt.Sprintf("ast: unhandled expression %T", e))
	}
}

// Walk visits every top-level statement of t in order.
func Walk[C any](v Visitor[C], c C, t *Tree) {
	for _, id := range t.Items {
		v.VisitStmt(c, t, id)
	}
}
