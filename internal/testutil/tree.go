package testutil

import (
	"testing"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/parser"
	"github.com/stretchr/testify/require"
)

// MustParse parses src and fails the test on any syntax error.
func MustParse(t testing.TB, src string) *ast.Tree {
	t.Helper()
	tree, err := parser.Parse(src)
	require.NoError(t, err, "parse %q", src)
	require.NoError(t, tree.Validate())
	return tree
}

// ItemExpr returns the expression of the i-th top-level statement, which must
// be an expression statement.
func ItemExpr(t testing.TB, tree *ast.Tree, i int) ast.ExprID {
	t.Helper()
	require.Less(t, i, len(tree.Items))
	stmt, ok := tree.Stmt(tree.Items[i]).Node.(*ast.ExprStmt)
	require.True(t, ok, "item %d is a %s statement", i, tree.Stmt(tree.Items[i]).Kind())
	return stmt.Expr
}
