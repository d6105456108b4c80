package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tracer records the order in which a walk reaches nodes.
type tracer struct {
	Walker[int]
	events []string
	depths []int
	params []string
}

var _ Visitor[int] = (*tracer)(nil)
var _ ParamVisitor[int] = (*tracer)(nil)

func newTracer() *tracer {
	tr := &tracer{}
	tr.Self = tr
	return tr
}

func (tr *tracer) VisitStmt(c int, t *Tree, id StmtID) {
	tr.events = append(tr.events, "stmt:"+t.Stmt(id).Kind().String())
	DispatchStmt[int](tr, c, t, id)
}

func (tr *tracer) VisitExpr(c int, t *Tree, id ExprID) {
	tr.events = append(tr.events, t.Expr(id).Kind().String())
	tr.depths = append(tr.depths, c)
	DispatchExpr[int](tr, c, t, id)
}

func (tr *tracer) VisitVariableExpr(_ int, _ *Tree, e *VariableExpr, _ ExprID) {
	tr.events[len(tr.events)-1] += ":" + e.Identifier.Literal
}

func (tr *tracer) VisitNumberExpr(_ int, _ *Tree, e *NumberExpr, _ ExprID) {
	tr.events[len(tr.events)-1] += ":" + e.Token.Literal
}

// Blocks descend with a deeper context.
func (tr *tracer) VisitBlockExpr(c int, t *Tree, e *BlockExpr, id ExprID) {
	tr.Walker.VisitBlockExpr(c+1, t, e, id)
}

func (tr *tracer) VisitParam(_ int, _ *Tree, p *Param, _ ExprID, index int) {
	tr.params = append(tr.params, p.Identifier.Literal)
	tr.events = append(tr.events, "param:"+p.Identifier.Literal)
	_ = index
}

func TestWalker_ChildOrder(t *testing.T) {
	t.Run("binary left before right", func(t *testing.T) {
		tree := New()
		bin := tree.NewBinary(Add, tree.NewVariable("a"), tree.NewVariable("b"))
		tree.AddItem(tree.NewExprStmt(bin))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "binary", "variable:a", "variable:b"}, tr.events)
	})

	t.Run("call callee before arguments", func(t *testing.T) {
		tree := New()
		call := tree.NewCall(tree.NewVariable("f"), tree.NewNumber(1), tree.NewNumber(2), tree.NewNumber(3))
		tree.AddItem(tree.NewExprStmt(call))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "call", "variable:f", "number:1", "number:2", "number:3"}, tr.events)
	})

	t.Run("if condition then else", func(t *testing.T) {
		tree := New()
		ifx := tree.NewIf(tree.NewVariable("c"), tree.NewNumber(1), tree.NewNumber(2))
		tree.AddItem(tree.NewExprStmt(ifx))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "if", "variable:c", "number:1", "number:2"}, tr.events)
	})

	t.Run("if without else", func(t *testing.T) {
		tree := New()
		ifx := tree.NewIf(tree.NewVariable("c"), tree.NewNumber(1), NoExpr)
		tree.AddItem(tree.NewExprStmt(ifx))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "if", "variable:c", "number:1"}, tr.events)
	})

	t.Run("block statements in order", func(t *testing.T) {
		tree := New()
		block := tree.NewBlock(
			tree.NewExprStmt(tree.NewNumber(1)),
			tree.NewReturn(tree.NewNumber(2)),
			tree.NewReturn(NoExpr),
		)
		tree.AddItem(tree.NewExprStmt(block))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{
			"stmt:expression", "block",
			"stmt:expression", "number:1",
			"stmt:return", "number:2",
			"stmt:return",
		}, tr.events)
	})

	t.Run("func parameters then body", func(t *testing.T) {
		tree := New()
		fn := tree.NewFunc(
			[]Param{NewParam("x", "int"), NewParam("y", "bool")},
			tree.NewVariable("x"),
		)
		tree.AddItem(tree.NewExprStmt(fn))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "func", "param:x", "param:y", "variable:x"}, tr.events)
	})

	t.Run("while condition then body", func(t *testing.T) {
		tree := New()
		loop := tree.NewWhile(tree.NewBoolean(true), tree.NewAssign("x", tree.NewUnary(Neg, tree.NewParen(tree.NewNumber(4)))))
		tree.AddItem(tree.NewExprStmt(loop))

		tr := newTracer()
		Walk[int](tr, 0, tree)
		assert.Equal(t, []string{"stmt:expression", "while", "boolean", "assignment", "unary", "parenthesized", "number:4"}, tr.events)
	})
}

func TestWalker_ContextIsScoped(t *testing.T) {
	tree := New()
	inner := tree.NewBlock(tree.NewExprStmt(tree.NewNumber(2)))
	outer := tree.NewBlock(
		tree.NewExprStmt(inner),
		tree.NewExprStmt(tree.NewNumber(3)),
	)
	tree.AddItem(tree.NewExprStmt(outer))
	tree.AddItem(tree.NewExprStmt(tree.NewNumber(4)))

	tr := newTracer()
	Walk[int](tr, 0, tree)

	// outer block, inner block, 2, 3, 4
	assert.Equal(t, []int{0, 1, 2, 1, 0}, tr.depths)
}

// shapes implements every method explicitly and records which one ran.
type shapes struct {
	hit []string
}

var _ Visitor[struct{}] = (*shapes)(nil)

func (s *shapes) VisitStmt(c struct{}, t *Tree, id StmtID) { DispatchStmt[struct{}](s, c, t, id) }
func (s *shapes) VisitExpr(c struct{}, t *Tree, id ExprID) { DispatchExpr[struct{}](s, c, t, id) }
func (s *shapes) VisitExprStmt(struct{}, *Tree, *ExprStmt, StmtID) {
	s.hit = append(s.hit, "ExprStmt")
}
func (s *shapes) VisitReturnStmt(struct{}, *Tree, *ReturnStmt, StmtID) {
	s.hit = append(s.hit, "ReturnStmt")
}
func (s *shapes) VisitNumberExpr(struct{}, *Tree, *NumberExpr, ExprID) {
	s.hit = append(s.hit, "number")
}
func (s *shapes) VisitBooleanExpr(struct{}, *Tree, *BooleanExpr, ExprID) {
	s.hit = append(s.hit, "boolean")
}
func (s *shapes) VisitVariableExpr(struct{}, *Tree, *VariableExpr, ExprID) {
	s.hit = append(s.hit, "variable")
}
func (s *shapes) VisitUnaryExpr(struct{}, *Tree, *UnaryExpr, ExprID) {
	s.hit = append(s.hit, "unary")
}
func (s *shapes) VisitBinaryExpr(struct{}, *Tree, *BinaryExpr, ExprID) {
	s.hit = append(s.hit, "binary")
}
func (s *shapes) VisitParenExpr(struct{}, *Tree, *ParenExpr, ExprID) {
	s.hit = append(s.hit, "parenthesized")
}
func (s *shapes) VisitAssignExpr(struct{}, *Tree, *AssignExpr, ExprID) {
	s.hit = append(s.hit, "assignment")
}
func (s *shapes) VisitCallExpr(struct{}, *Tree, *CallExpr, ExprID) {
	s.hit = append(s.hit, "call")
}
func (s *shapes) VisitBlockExpr(struct{}, *Tree, *BlockExpr, ExprID) {
	s.hit = append(s.hit, "block")
}
func (s *shapes) VisitIfExpr(struct{}, *Tree, *IfExpr, ExprID) {
	s.hit = append(s.hit, "if")
}
func (s *shapes) VisitWhileExpr(struct{}, *Tree, *WhileExpr, ExprID) {
	s.hit = append(s.hit, "while")
}
func (s *shapes) VisitFuncExpr(struct{}, *Tree, *FuncExpr, ExprID) {
	s.hit = append(s.hit, "func")
}
func (s *shapes) VisitRecExpr(struct{}, *Tree, *RecExpr, ExprID) {
	s.hit = append(s.hit, "rec")
}
func (s *shapes) VisitErrorExpr(struct{}, *Tree, *ErrorExpr, ExprID) {
	s.hit = append(s.hit, "error")
}

// oneOfEach adds one expression of every shape, in ExprKind order.
func oneOfEach(tree *Tree) []ExprID {
	leaf := tree.NewNumber(0)
	return []ExprID{
		tree.NewNumber(1),
		tree.NewBoolean(false),
		tree.NewVariable("v"),
		tree.NewUnary(Not, leaf),
		tree.NewBinary(Mul, leaf, leaf),
		tree.NewParen(leaf),
		tree.NewAssign("v", leaf),
		tree.NewCall(leaf),
		tree.NewBlock(),
		tree.NewIf(leaf, leaf, NoExpr),
		tree.NewWhile(leaf, leaf),
		tree.NewFunc(nil, leaf),
		tree.NewRec(),
		tree.NewError("@@"),
	}
}

func TestDispatchExpr_EveryShapeHasItsOwnCallback(t *testing.T) {
	tree := New()
	ids := oneOfEach(tree)
	require.Len(t, ids, len(ExprKinds()))

	s := &shapes{}
	for i, id := range ids {
		assert.Equal(t, ExprKinds()[i], tree.Expr(id).Kind())
		s.VisitExpr(struct{}{}, tree, id)
	}

	want := make([]string, 0, len(ExprKinds()))
	for _, k := range ExprKinds() {
		want = append(want, k.String())
	}
	assert.Equal(t, want, s.hit)
}

func TestDispatchStmt_BothShapes(t *testing.T) {
	tree := New()
	s := &shapes{}
	s.VisitStmt(struct{}{}, tree, tree.NewExprStmt(tree.NewNumber(1)))
	s.VisitStmt(struct{}{}, tree, tree.NewReturn(NoExpr))
	assert.Equal(t, []string{"ExprStmt", "ReturnStmt"}, s.hit)
}

func TestInspect(t *testing.T) {
	tree := New()
	fn := tree.NewFunc(nil, tree.NewBlock(
		tree.NewReturn(tree.NewBinary(Add, tree.NewNumber(1), tree.NewNumber(2))),
	))
	tree.AddItem(tree.NewExprStmt(fn))

	var kinds []string
	Inspect(tree, func(_ ExprID, e *Expr) bool {
		kinds = append(kinds, e.Kind().String())
		return true
	})
	assert.Equal(t, []string{"func", "block", "binary", "number", "number"}, kinds)

	kinds = nil
	Inspect(tree, func(_ ExprID, e *Expr) bool {
		kinds = append(kinds, e.Kind().String())
		return e.Kind() != BlockKind
	})
	assert.Equal(t, []string{"func", "block"}, kinds)
}

func TestExprKinds(t *testing.T) {
	kinds := ExprKinds()
	assert.Len(t, kinds, 14)

	seen := map[string]bool{}
	for _, k := range kinds {
		assert.NotEqual(t, "unknown", k.String())
		assert.False(t, seen[k.String()], "duplicate name %s", k)
		seen[k.String()] = true
	}
}

// exprCounter counts expressions but never sets Self.
type exprCounter struct {
	Walker[struct{}]
	n int
}

func (ec *exprCounter) VisitExpr(c struct{}, t *Tree, id ExprID) {
	ec.n++
	DispatchExpr[struct{}](ec, c, t, id)
}

func TestWalker_UnsetSelf(t *testing.T) {
	tree := New()
	body := tree.NewBlock(
		tree.NewExprStmt(tree.NewIf(tree.NewVariable("c"), tree.NewNumber(1), tree.NewUnary(Neg, tree.NewNumber(2)))),
		tree.NewReturn(tree.NewCall(tree.NewVariable("f"), tree.NewParen(tree.NewNumber(3)))),
	)
	tree.AddItem(tree.NewExprStmt(tree.NewFunc(nil, body)))
	tree.AddItem(tree.NewExprStmt(tree.NewWhile(tree.NewBoolean(true), tree.NewAssign("x", tree.NewRec()))))

	t.Run("bare walker visits the whole tree", func(t *testing.T) {
		require.NotPanics(t, func() {
			Walk[struct{}](Walker[struct{}]{}, struct{}{}, tree)
		})
	})

	t.Run("pass without self only sees its entry points", func(t *testing.T) {
		ec := &exprCounter{}
		require.NotPanics(t, func() {
			Walk[struct{}](ec, struct{}{}, tree)
		})
		assert.Equal(t, 0, ec.n, "items are statements, reached through the promoted VisitStmt")

		ec.VisitExpr(struct{}{}, tree, body)
		assert.Equal(t, 1, ec.n)
	})

	t.Run("pass with self sees every expression", func(t *testing.T) {
		ec := &exprCounter{}
		ec.Self = ec
		Walk[struct{}](ec, struct{}{}, tree)
		assert.Equal(t, 15, ec.n)
	})
}
