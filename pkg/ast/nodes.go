package ast

import (
	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// ExprKind identifies the shape of an expression.
type ExprKind uint8

const (
	NumberKind ExprKind = iota
	BooleanKind
	VariableKind
	UnaryKind
	BinaryKind
	ParenKind
	AssignKind
	CallKind
	BlockKind
	IfKind
	WhileKind
	FuncKind
	RecKind
	ErrorKind

	numExprKinds
)

var exprKindNames = [...]string{
	NumberKind:   "number",
	BooleanKind:  "boolean",
	VariableKind: "variable",
	UnaryKind:    "unary",
	BinaryKind:   "binary",
	ParenKind:    "parenthesized",
	AssignKind:   "assignment",
	CallKind:     "call",
	BlockKind:    "block",
	IfKind:       "if",
	WhileKind:    "while",
	FuncKind:     "func",
	RecKind:      "rec",
	ErrorKind:    "error",
}

func (k ExprKind) String() string {
	if k < numExprKinds {
		return exprKindNames[k]
	}
	return "unknown"
}

// ExprKinds returns every expression shape in declaration order.
func ExprKinds() []ExprKind {
	kinds := make([]ExprKind, 0, numExprKinds)
	for k := ExprKind(0); k < numExprKinds; k++ {
		kinds = append(kinds, k)
	}
	return kinds
}

// StmtKind identifies the shape of a statement.
type StmtKind uint8

const (
	ExprStmtKind StmtKind = iota
	ReturnKind
)

func (k StmtKind) String() string {
	switch k {
	case ExprStmtKind:
		return "expression"
	case ReturnKind:
		return "return"
	default:
		return "unknown"
	}
}

// ExprNode is the payload of an expression. The set of implementations is
// closed to this package.
type ExprNode interface {
	Kind() ExprKind
	exprNode()
}

// StmtNode is the payload of a statement. The set of implementations is
// closed to this package.
type StmtNode interface {
	Kind() StmtKind
	stmtNode()
}

// ---------- Expressions ----------

// NumberExpr is an integer literal.
type NumberExpr struct {
	Value int64
	Token token.TextSpan
}

// BooleanExpr is true or false.
type BooleanExpr struct {
	Value bool
	Token token.TextSpan
}

// VariableExpr is a reference to a name.
type VariableExpr struct {
	Identifier token.TextSpan
}

// UnaryExpr is a prefix operator applied to an operand.
type UnaryExpr struct {
	Op      UnaryOp
	Operand ExprID
}

// BinaryExpr is an infix operator applied to two operands.
type BinaryExpr struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

// ParenExpr is an expression wrapped in parentheses.
type ParenExpr struct {
	Inner ExprID
}

// AssignExpr stores Value into the variable named by Identifier.
type AssignExpr struct {
	Identifier token.TextSpan
	Value      ExprID
}

// CallExpr applies Callee to Args.
type CallExpr struct {
	Callee ExprID
	Args   []ExprID
}

// BlockExpr is a braced sequence of statements.
type BlockExpr struct {
	Stmts []StmtID
}

// IfExpr is a conditional. Else is NoExpr when there is no else branch.
type IfExpr struct {
	Cond ExprID
	Then ExprID
	Else ExprID
}

// HasElse reports whether the conditional has an else branch.
func (e *IfExpr) HasElse() bool { return e.Else.IsValid() }

// WhileExpr is a loop.
type WhileExpr struct {
	Cond ExprID
	Body ExprID
}

// StaticTypeAnnotation is a written type. TypeName keeps the spelling from
// the source even when it does not resolve.
type StaticTypeAnnotation struct {
	TypeName token.TextSpan
	Resolved types.Type
}

// Param is one declared parameter of a function.
type Param struct {
	Identifier token.TextSpan
	Annotation StaticTypeAnnotation
}

// FuncExpr is a function literal.
type FuncExpr struct {
	Params []Param
	Body   ExprID
}

// RecExpr refers to the function currently being defined.
type RecExpr struct {
	Token token.TextSpan
}

// ErrorExpr stands in for source the parser could not shape into an
// expression.
type ErrorExpr struct {
	Span token.TextSpan
}

func (*NumberExpr) Kind() ExprKind   { return NumberKind }
func (*BooleanExpr) Kind() ExprKind  { return BooleanKind }
func (*VariableExpr) Kind() ExprKind { return VariableKind }
func (*UnaryExpr) Kind() ExprKind    { return UnaryKind }
func (*BinaryExpr) Kind() ExprKind   { return BinaryKind }
func (*ParenExpr) Kind() ExprKind    { return ParenKind }
func (*AssignExpr) Kind() ExprKind   { return AssignKind }
func (*CallExpr) Kind() ExprKind     { return CallKind }
func (*BlockExpr) Kind() ExprKind    { return BlockKind }
func (*IfExpr) Kind() ExprKind       { return IfKind }
func (*WhileExpr) Kind() ExprKind    { return WhileKind }
func (*FuncExpr) Kind() ExprKind     { return FuncKind }
func (*RecExpr) Kind() ExprKind      { return RecKind }
func (*ErrorExpr) Kind() ExprKind    { return ErrorKind }

func (*NumberExpr) exprNode()   {}
func (*BooleanExpr) exprNode()  {}
func (*VariableExpr) exprNode() {}
func (*UnaryExpr) exprNode()    {}
func (*BinaryExpr) exprNode()   {}
func (*ParenExpr) exprNode()    {}
func (*AssignExpr) exprNode()   {}
func (*CallExpr) exprNode()     {}
func (*BlockExpr) exprNode()    {}
func (*IfExpr) exprNode()       {}
func (*WhileExpr) exprNode()    {}
func (*FuncExpr) exprNode()     {}
func (*RecExpr) exprNode()      {}
func (*ErrorExpr) exprNode()    {}

// ---------- Statements ----------

// ExprStmt evaluates an expression.
type ExprStmt struct {
	Expr ExprID
}

// ReturnStmt leaves the enclosing function. Value is NoExpr for a bare
// return.
type ReturnStmt struct {
	Value ExprID
}

// HasValue reports whether the return carries a value.
func (s *ReturnStmt) HasValue() bool { return s.Value.IsValid() }

func (*ExprStmt) Kind() StmtKind   { return ExprStmtKind }
func (*ReturnStmt) Kind() StmtKind { return ReturnKind }

func (*ExprStmt) stmtNode()   {}
func (*ReturnStmt) stmtNode() {}
