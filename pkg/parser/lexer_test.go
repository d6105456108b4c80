package parser

import (
	"testing"

	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lexAll(src string) []token.Token {
	l := NewLexer(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestLexer_Tokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.TokenType
	}{
		{"empty", "", []token.TokenType{token.EOF}},
		{"number", "42", []token.TokenType{token.NUMBER, token.EOF}},
		{"keywords", "func rec return if else while true false",
			[]token.TokenType{token.FUNC, token.REC, token.RETURN, token.IF, token.ELSE, token.WHILE, token.TRUE, token.FALSE, token.EOF}},
		{"two char operators", "== != <= >= && ||",
			[]token.TokenType{token.EQ, token.NE, token.LE, token.GE, token.ANDAND, token.OROR, token.EOF}},
		{"one char operators", "= ! < > & | ^ ~ + - * / %",
			[]token.TokenType{token.ASSIGN, token.BANG, token.LT, token.GT, token.AMP, token.PIPE, token.CARET, token.TILDE,
				token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.EOF}},
		{"delimiters", "(){},:;",
			[]token.TokenType{token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA, token.COLON, token.SEMICOLON, token.EOF}},
		{"comment", "x // trailing\ny", []token.TokenType{token.IDENT, token.IDENT, token.EOF}},
		{"illegal", "x @ y", []token.TokenType{token.IDENT, token.ILLEGAL, token.IDENT, token.EOF}},
		{"identifier with digits", "x1_y", []token.TokenType{token.IDENT, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks := lexAll(tt.input)
			got := make([]token.TokenType, len(toks))
			for i, tok := range toks {
				got[i] = tok.Type
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	toks := lexAll("ab\n  cd == 1")
	require.Len(t, toks, 5)

	assert.Equal(t, token.Position{Line: 1, Column: 1, Offset: 0}, toks[0].Span.Start)
	assert.Equal(t, token.Position{Line: 1, Column: 3, Offset: 2}, toks[0].Span.End)
	assert.Equal(t, "ab", toks[0].Literal)

	assert.Equal(t, token.Position{Line: 2, Column: 3, Offset: 5}, toks[1].Span.Start)
	assert.Equal(t, "cd", toks[1].Literal)

	assert.Equal(t, "==", toks[2].Literal)
	assert.Equal(t, 2, toks[2].Span.Start.Line)
	assert.Equal(t, 6, toks[2].Span.Start.Column)

	assert.Equal(t, token.EOF, toks[4].Type)
	assert.Equal(t, 12, toks[4].Span.Start.Offset)
}
