package ast

import (
	"strconv"

	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
)

// The constructors below build nodes without source positions. They are
// used by tests and by tools that synthesize code; the parser calls AddExpr
// and AddStmt directly so it can attach spans.

// NewNumber adds an integer literal.
func (t *Tree) NewNumber(value int64) ExprID {
	return t.AddExpr(&NumberExpr{Value: value, Token: token.Text(strconv.FormatInt(value, 10))}, token.Span{})
}

// NewBoolean adds a boolean literal.
func (t *Tree) NewBoolean(value bool) ExprID {
	return t.AddExpr(&BooleanExpr{Value: value, Token: token.Text(strconv.FormatBool(value))}, token.Span{})
}

// NewVariable adds a reference to name.
func (t *Tree) NewVariable(name string) ExprID {
	return t.AddExpr(&VariableExpr{Identifier: token.Text(name)}, token.Span{})
}

// NewUnary adds a prefix operation.
func (t *Tree) NewUnary(op UnaryOp, operand ExprID) ExprID {
	return t.AddExpr(&UnaryExpr{Op: op, Operand: operand}, token.Span{})
}

// NewBinary adds an infix operation.
func (t *Tree) NewBinary(op BinaryOp, left, right ExprID) ExprID {
	return t.AddExpr(&BinaryExpr{Op: op, Left: left, Right: right}, token.Span{})
}

// NewParen wraps inner in parentheses.
func (t *Tree) NewParen(inner ExprID) ExprID {
	return t.AddExpr(&ParenExpr{Inner: inner}, token.Span{})
}

// NewAssign adds an assignment of value to name.
func (t *Tree) NewAssign(name string, value ExprID) ExprID {
	return t.AddExpr(&AssignExpr{Identifier: token.Text(name), Value: value}, token.Span{})
}

// NewCall adds a call of callee with args.
func (t *Tree) NewCall(callee ExprID, args ...ExprID) ExprID {
	return t.AddExpr(&CallExpr{Callee: callee, Args: args}, token.Span{})
}

// NewBlock adds a block of statements.
func (t *Tree) NewBlock(stmts ...StmtID) ExprID {
	return t.AddExpr(&BlockExpr{Stmts: stmts}, token.Span{})
}

// NewIf adds a conditional. Pass NoExpr for a missing else branch.
func (t *Tree) NewIf(cond, then, els ExprID) ExprID {
	return t.AddExpr(&IfExpr{Cond: cond, Then: then, Else: els}, token.Span{})
}

// NewWhile adds a loop.
func (t *Tree) NewWhile(cond, body ExprID) ExprID {
	return t.AddExpr(&WhileExpr{Cond: cond, Body: body}, token.Span{})
}

// NewFunc adds a function literal.
func (t *Tree) NewFunc(params []Param, body ExprID) ExprID {
	return t.AddExpr(&FuncExpr{Params: params, Body: body}, token.Span{})
}

// NewRec adds a self-reference marker.
func (t *Tree) NewRec() ExprID {
	return t.AddExpr(&RecExpr{Token: token.Text("rec")}, token.Span{})
}

// NewError adds an error node covering the given source text.
func (t *Tree) NewError(literal string) ExprID {
	return t.AddExpr(&ErrorExpr{Span: token.Text(literal)}, token.Span{})
}

// NewExprStmt adds an expression statement.
func (t *Tree) NewExprStmt(expr ExprID) StmtID {
	return t.AddStmt(&ExprStmt{Expr: expr}, token.Span{})
}

// NewReturn adds a return statement. Pass NoExpr for a bare return.
func (t *Tree) NewReturn(value ExprID) StmtID {
	return t.AddStmt(&ReturnStmt{Value: value}, token.Span{})
}

// NewParam builds a parameter declared as name : typeName.
func NewParam(name, typeName string) Param {
	return Param{
		Identifier: token.Text(name),
		Annotation: StaticTypeAnnotation{TypeName: token.Text(typeName)},
	}
}
