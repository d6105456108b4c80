package format_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"
	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/format"
	"github.com/prithivirajmurugan/rs-compiler/pkg/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// styled lists the marked fragments of doc as "style:text".
func styled(doc *format.Document) []string {
	var out []string
	for _, f := range doc.Fragments() {
		if f.Style != format.None {
			out = append(out, f.Style.String()+":"+f.Text)
		}
	}
	return out
}

func single(build func(t *ast.Tree) ast.StmtID) *ast.Tree {
	t := ast.New()
	t.AddItem(build(t))
	return t
}

func TestFormat_FunctionExample(t *testing.T) {
	tree := single(func(t *ast.Tree) ast.StmtID {
		body := t.NewBlock(t.NewReturn(t.NewAssign("x", t.NewVariable("y"))))
		fn := t.NewFunc([]ast.Param{ast.NewParam("x", "int"), ast.NewParam("y", "int")}, body)
		return t.NewExprStmt(fn)
	})

	doc := format.Format(tree)
	assert.Equal(t, "func (x : int, y : int) {\n  return x = y\n}\n", doc.String())
	assert.Equal(t, []string{
		"keyword:func",
		"text:(", "variable:x", "text::", "type:int", "text:,",
		"variable:y", "text::", "type:int", "text:)",
		"text:{",
		"keyword:return", "variable:x", "text:=", "variable:y", "reset:",
		"text:}", "reset:",
	}, styled(doc))
}

func TestFormat_Shapes(t *testing.T) {
	tests := []struct {
		name  string
		build func(t *ast.Tree) ast.ExprID
		want  string
	}{
		{"number", func(t *ast.Tree) ast.ExprID { return t.NewNumber(42) }, "42"},
		{"boolean", func(t *ast.Tree) ast.ExprID { return t.NewBoolean(false) }, "false"},
		{"variable", func(t *ast.Tree) ast.ExprID { return t.NewVariable("n") }, "n"},
		{"unary", func(t *ast.Tree) ast.ExprID { return t.NewUnary(ast.Not, t.NewVariable("ok")) }, "!ok"},
		{"binary", func(t *ast.Tree) ast.ExprID {
			return t.NewBinary(ast.Add, t.NewNumber(1), t.NewBinary(ast.Mul, t.NewNumber(2), t.NewNumber(3)))
		}, "1 + 2 * 3"},
		{"parenthesized", func(t *ast.Tree) ast.ExprID {
			return t.NewParen(t.NewBinary(ast.LogicalOr, t.NewVariable("a"), t.NewVariable("b")))
		}, "(a || b)"},
		{"assignment", func(t *ast.Tree) ast.ExprID { return t.NewAssign("x", t.NewNumber(1)) }, "x = 1"},
		{"call", func(t *ast.Tree) ast.ExprID {
			return t.NewCall(t.NewVariable("f"), t.NewNumber(1), t.NewNumber(2))
		}, "f(1, 2)"},
		{"call without args", func(t *ast.Tree) ast.ExprID { return t.NewCall(t.NewVariable("f")) }, "f()"},
		{"empty block", func(t *ast.Tree) ast.ExprID { return t.NewBlock() }, "{\n}"},
		{"if", func(t *ast.Tree) ast.ExprID {
			return t.NewIf(t.NewVariable("c"), t.NewNumber(1), ast.NoExpr)
		}, "if c 1"},
		{"if else", func(t *ast.Tree) ast.ExprID {
			return t.NewIf(t.NewVariable("c"), t.NewNumber(1), t.NewNumber(2))
		}, "if c 1 else 2"},
		{"while", func(t *ast.Tree) ast.ExprID {
			return t.NewWhile(t.NewBoolean(true), t.NewAssign("i", t.NewNumber(0)))
		}, "while true i = 0"},
		{"func without params", func(t *ast.Tree) ast.ExprID { return t.NewFunc(nil, t.NewNumber(1)) }, "func  1"},
		{"rec", func(t *ast.Tree) ast.ExprID { return t.NewCall(t.NewRec(), t.NewNumber(3)) }, "rec(3)"},
		{"error", func(t *ast.Tree) ast.ExprID { return t.NewError("@@") }, "@@"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := ast.New()
			id := tt.build(tree)
			assert.Equal(t, tt.want, format.Expression(tree, id).String())
		})
	}
}

func TestFormat_FragmentStyles(t *testing.T) {
	tree := ast.New()
	id := tree.NewIf(
		tree.NewBinary(ast.Lt, tree.NewVariable("n"), tree.NewNumber(2)),
		tree.NewBoolean(true),
		tree.NewCall(tree.NewRec(), tree.NewError("?")),
	)

	assert.Equal(t, []string{
		"keyword:if", "variable:n", "text:<", "number:2",
		"boolean:true",
		"keyword:else", "keyword:rec", "text:(", "text:?", "text:)",
	}, styled(format.Expression(tree, id)))
}

func TestFormat_ReturnWithoutValue(t *testing.T) {
	tree := single(func(t *ast.Tree) ast.StmtID { return t.NewReturn(ast.NoExpr) })
	assert.Equal(t, "return\n", format.Format(tree).String())
}

func TestFormat_Indentation(t *testing.T) {
	build := func() *ast.Tree {
		return single(func(t *ast.Tree) ast.StmtID {
			inner := t.NewBlock(t.NewExprStmt(t.NewNumber(1)))
			return t.NewExprStmt(t.NewBlock(t.NewExprStmt(inner), t.NewReturn(ast.NoExpr)))
		})
	}

	tests := []struct {
		name string
		opts []format.Option
		want string
	}{
		{"default width", nil, "{\n  {\n    1\n  }\n  return\n}\n"},
		{"width four", []format.Option{format.WithIndentWidth(4)}, "{\n    {\n        1\n    }\n    return\n}\n"},
		{"width zero", []format.Option{format.WithIndentWidth(0)}, "{\n{\n1\n}\nreturn\n}\n"},
		{"negative width ignored", []format.Option{format.WithIndentWidth(-3)}, "{\n  {\n    1\n  }\n  return\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format.Format(build(), tt.opts...).String())
		})
	}
}

func TestFormat_ResetEndsEveryStatement(t *testing.T) {
	tree, err := parser.Parse("a = 1\nwhile a < 3 {\n  a = a + 1\n  f(a)\n}\nreturn a\n")
	require.NoError(t, err)

	frags := format.Format(tree).Fragments()
	resets := 0
	for i, f := range frags {
		if f.Style != format.Reset {
			continue
		}
		resets++
		assert.Empty(t, f.Text)
		require.Less(t, i+1, len(frags))
		assert.Equal(t, format.Fragment{Style: format.None, Text: "\n"}, frags[i+1])
	}
	assert.Equal(t, tree.StmtCount(), resets)
}

func TestFormat_StatementAndExpression(t *testing.T) {
	tree, err := parser.Parse("x = 1\nf(x, 2)")
	require.NoError(t, err)
	require.Len(t, tree.Items, 2)

	assert.Equal(t, "f(x, 2)\n", format.Statement(tree, tree.Items[1]).String())

	call := tree.Stmt(tree.Items[1]).Node.(*ast.ExprStmt).Expr
	doc := format.Expression(tree, call)
	assert.Equal(t, "f(x, 2)", doc.String())
	assert.Equal(t, len("f(x, 2)"), doc.Len())
}

func TestFormat_Idempotent(t *testing.T) {
	sources := []string{
		"f = func (n : int, b : bool) {\n  if n < 2 {\n    return n\n  } else {\n    return rec(n - 1) + rec(n - 2)\n  }\n}\n" +
			"while !done {\n  x = -(x + 1) % 3\n}\nf(10, true)\n",
		"g = func  {\n  return\n}\n",
		"a == b != c && d || ~e\n",
	}

	for _, src := range sources {
		tree, err := parser.Parse(src)
		require.NoError(t, err)
		first := format.Format(tree).String()
		assert.Equal(t, src, first)

		again, err := parser.Parse(first)
		require.NoError(t, err)
		assert.Equal(t, first, format.Format(again).String())
	}
}

func TestFormat_IdempotentAfterReformat(t *testing.T) {
	sources := []string{
		"if c\nx\n",
		"while c\n{\n(x)\n}\n",
		"if c\n{ -1 } else\n-2\n",
		"if c x\nelse y\n",
		"x = \n  f(1,\n 2)\n",
		"func\n(x)\n",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			tree, err := parser.Parse(src)
			require.NoError(t, err)
			first := format.Format(tree).String()

			again, err := parser.Parse(first)
			require.NoError(t, err, "formatted output must parse: %q", first)
			assert.Equal(t, first, format.Format(again).String())
		})
	}
}

func TestFormat_BranchesThatWouldJoinTheirCondition(t *testing.T) {
	// Formatting puts a branch on its condition's line, which would change
	// what these mean; the parser refuses them instead.
	for _, src := range []string{"if c\n-1\n", "while c\n(x)\n", "if c\n(1) else 2\n"} {
		_, err := parser.Parse(src)
		assert.Error(t, err, "%q", src)
	}
}

func TestFormat_NormalizesLayout(t *testing.T) {
	tree, err := parser.Parse("func(a:int)   {   return a*2 }  ;  x=1")
	require.NoError(t, err)
	assert.Equal(t, "func (a : int) {\n  return a * 2\n}\nx = 1\n", format.Format(tree).String())
}

func TestRenderers(t *testing.T) {
	tree, err := parser.Parse("x = f(1, true)")
	require.NoError(t, err)
	doc := format.Format(tree)
	plain := "x = f(1, true)\n"

	t.Run("plain", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, format.PlainRenderer{}.Render(&buf, doc))
		assert.Equal(t, plain, buf.String())
	})

	t.Run("ansi", func(t *testing.T) {
		var buf bytes.Buffer
		r := format.NewANSIRenderer(termenv.ANSI256)
		require.NoError(t, r.Render(&buf, doc))
		out := buf.String()

		variable := termenv.CSI + termenv.ANSI256.Color("2").Sequence(false) + "m"
		boolean := termenv.CSI + termenv.ANSI256.Color("3").Sequence(false) + "m"
		reset := termenv.CSI + termenv.ResetSeq + "m"

		assert.True(t, strings.HasPrefix(out, variable+"x"))
		assert.Contains(t, out, boolean+"true")
		assert.True(t, strings.HasSuffix(out, reset+"\n"))
		assert.Equal(t, plain, format.Strip(out))
	})

	t.Run("ascii profile emits no escapes", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, format.NewANSIRenderer(termenv.Ascii).Render(&buf, doc))
		assert.Equal(t, plain, buf.String())
	})

	t.Run("html", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, format.HTMLRenderer{}.Render(&buf, doc))
		out := buf.String()
		assert.True(t, strings.HasPrefix(out, `<pre class="rsc-source"><span class="rsc-variable">x</span>`))
		assert.Contains(t, out, `<span class="rsc-boolean">true</span>`)
		assert.True(t, strings.HasSuffix(out, "</pre>\n"))
	})

	t.Run("html escapes text", func(t *testing.T) {
		escTree, err := parser.Parse("a < b && c")
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, format.HTMLRenderer{ClassPrefix: "x-"}.Render(&buf, format.Format(escTree)))
		assert.Contains(t, buf.String(), `<span class="x-text">&lt;</span>`)
		assert.Contains(t, buf.String(), `<span class="x-text">&amp;&amp;</span>`)
	})
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRenderers_WriteError(t *testing.T) {
	tree, err := parser.Parse("1")
	require.NoError(t, err)
	doc := format.Format(tree)

	renderers := []format.Renderer{format.PlainRenderer{}, format.NewANSIRenderer(termenv.ANSI), format.HTMLRenderer{}}
	for _, r := range renderers {
		assert.EqualError(t, r.Render(failingWriter{}, doc), "disk full")
	}
}

func TestParseStyle(t *testing.T) {
	for _, s := range format.ColoredStyles() {
		got, err := format.ParseStyle(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := format.ParseStyle("reset")
	assert.Error(t, err)
	_, err = format.ParseStyle("bold")
	assert.Error(t, err)
}

func TestParsePalette(t *testing.T) {
	tests := []struct {
		name    string
		in      map[string]string
		want    map[string]string
		wantErr string
	}{
		{
			name: "defaults",
			in:   nil,
			want: format.DefaultPalette().Names(),
		},
		{
			name: "override",
			in:   map[string]string{"keyword": "#ff00ff"},
			want: map[string]string{
				"number": "6", "text": "15", "keyword": "#ff00ff",
				"variable": "2", "boolean": "3", "type": "12",
			},
		},
		{
			name:    "unknown style",
			in:      map[string]string{"comment": "8"},
			wantErr: `palette: unknown style "comment"`,
		},
		{
			name:    "empty colour",
			in:      map[string]string{"type": ""},
			wantErr: "palette: empty colour for type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := format.ParsePalette(tt.in)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Names())
		})
	}
}
