package ast

import (
	"errors"
	"fmt"
)

// DanglingRefError reports a node that refers to an identifier the tree
// does not contain.
type DanglingRefError struct {
	Owner string // e.g. "expression 4 (call)"
	Field string
	Ref   int32
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("%s: %s refers to missing node %d", e.Owner, e.Field, e.Ref)
}

// Validate checks that every identifier stored in the tree resolves to a
// live node. All dangling references are reported, joined into one error.
func (t *Tree) Validate() error {
	var errs []error

	expr := func(owner, field string, id ExprID) {
		if !t.HasExpr(id) {
			errs = append(errs, &DanglingRefError{Owner: owner, Field: field, Ref: int32(id)})
		}
	}
	optExpr := func(owner, field string, id ExprID) {
		if id != NoExpr {
			expr(owner, field, id)
		}
	}
	stmt := func(owner, field string, id StmtID) {
		if !t.HasStmt(id) {
			errs = append(errs, &DanglingRefError{Owner: owner, Field: field, Ref: int32(id)})
		}
	}

	for i, id := range t.Items {
		stmt("tree", fmt.Sprintf("item %d", i), id)
	}

	for _, s := range t.stmts {
		owner := fmt.Sprintf("statement %d (%s)", s.ID, s.Kind())
		switch n := s.Node.(type) {
		case *ExprStmt:
			expr(owner, "expression", n.Expr)
		case *ReturnStmt:
			optExpr(owner, "value", n.Value)
		}
	}

	for _, e := range t.exprs {
		owner := fmt.Sprintf("expression %d (%s)", e.ID, e.Kind())
		switch n := e.Node.(type) {
		case *UnaryExpr:
			expr(owner, "operand", n.Operand)
		case *BinaryExpr:
			expr(owner, "left", n.Left)
			expr(owner, "right", n.Right)
		case *ParenExpr:
			expr(owner, "inner", n.Inner)
		case *AssignExpr:
			expr(owner, "value", n.Value)
		case *CallExpr:
			expr(owner, "callee", n.Callee)
			for i, arg := range n.Args {
				expr(owner, fmt.Sprintf("argument %d", i), arg)
			}
		case *BlockExpr:
			for i, st := range n.Stmts {
				stmt(owner, fmt.Sprintf("statement %d", i), st)
			}
		case *IfExpr:
			expr(owner, "condition", n.Cond)
			expr(owner, "then", n.Then)
			optExpr(owner, "else", n.Else)
		case *WhileExpr:
			expr(owner, "condition", n.Cond)
			expr(owner, "body", n.Body)
		case *FuncExpr:
			expr(owner, "body", n.Body)
		}
	}

	return errors.Join(errs...)
}
