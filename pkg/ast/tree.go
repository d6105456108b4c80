// Package ast defines the syntax tree of the language and the visitor
// protocol every compiler pass implements.
//
// Nodes live in two append-only tables owned by a Tree, one for statements
// and one for expressions. Nodes refer to each other by StmtID and ExprID,
// never by pointer, so self-referencing structures (a function body that
// mentions itself through rec) need no cyclic ownership.
package ast

import (
	"fmt"

	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// ExprID identifies an expression within its Tree.
type ExprID int32

// StmtID identifies a statement within its Tree.
type StmtID int32

// Sentinels for absent optional children.
const (
	NoExpr ExprID = -1
	NoStmt StmtID = -1
)

// IsValid reports whether id may refer to a node (it is not the sentinel).
func (id ExprID) IsValid() bool { return id >= 0 }

// IsValid reports whether id may refer to a node (it is not the sentinel).
func (id StmtID) IsValid() bool { return id >= 0 }

// Expr is an entry of the expression table. Node and Span are fixed once
// the expression is added; Type is an annotation later passes may set.
type Expr struct {
	ID   ExprID
	Node ExprNode
	Span token.Span
	Type types.Type
}

// Kind returns the shape of the expression.
func (e *Expr) Kind() ExprKind { return e.Node.Kind() }

// Stmt is an entry of the statement table.
type Stmt struct {
	ID   StmtID
	Node StmtNode
	Span token.Span
}

// Kind returns the shape of the statement.
func (s *Stmt) Kind() StmtKind { return s.Node.Kind() }

// Tree owns every node of one parsed source.
type Tree struct {
	exprs []*Expr
	stmts []*Stmt

	// Items holds the top-level statements in source order.
	Items []StmtID
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// AddExpr appends an expression and returns its identifier.
func (t *Tree) AddExpr(node ExprNode, span token.Span) ExprID {
	id := ExprID(len(t.exprs))
	t.exprs = append(t.exprs, &Expr{ID: id, Node: node, Span: span})
	return id
}

// AddStmt appends a statement and returns its identifier.
func (t *Tree) AddStmt(node StmtNode, span token.Span) StmtID {
	id := StmtID(len(t.stmts))
	t.stmts = append(t.stmts, &Stmt{ID: id, Node: node, Span: span})
	return id
}

// AddItem appends a top-level statement.
func (t *Tree) AddItem(id StmtID) {
	t.Items = append(t.Items, id)
}

// Expr returns the expression with the given id. It panics when id does not
// belong to the tree; identifiers are only ever produced by the tree itself.
func (t *Tree) Expr(id ExprID) *Expr {
	if !t.HasExpr(id) {
		panic(fmt.Sprintf("ast: expression %d out of range [0,%d)", id, len(t.exprs)))
	}
	return t.exprs[id]
}

// Stmt returns the statement with the given id. It panics when id does not
// belong to the tree.
func (t *Tree) Stmt(id StmtID) *Stmt {
	if !t.HasStmt(id) {
		panic(fmt.Sprintf("ast: statement %d out of range [0,%d)", id, len(t.stmts)))
	}
	return t.stmts[id]
}

// HasExpr reports whether id names a live expression.
func (t *Tree) HasExpr(id ExprID) bool {
	return id >= 0 && int(id) < len(t.exprs)
}

// HasStmt reports whether id names a live statement.
func (t *Tree) HasStmt(id StmtID) bool {
	return id >= 0 && int(id) < len(t.stmts)
}

// ExprCount returns the number of expressions in the tree.
func (t *Tree) ExprCount() int { return len(t.exprs) }

// StmtCount returns the number of statements in the tree.
func (t *Tree) StmtCount() int { return len(t.stmts) }

// SetType attaches a resolved type to an expression.
func (t *Tree) SetType(id ExprID, typ types.Type) {
	t.Expr(id).Type = typ
}

// TypeOf returns the type attached to an expression.
func (t *Tree) TypeOf(id ExprID) types.Type {
	return t.Expr(id).Type
}
