// Package token defines the lexical tokens of the language.
package token

import "fmt"

// TokenType represents the type of a lexical token.
//
//nolint:revive // token.TokenType reads clearly at call sites
type TokenType int32

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENT  // x
	NUMBER // 123

	// Operators
	PLUS    // +
	MINUS   // -
	STAR    // *
	SLASH   // /
	PERCENT // %
	AMP     // &
	PIPE    // |
	CARET   // ^
	TILDE   // ~
	BANG    // !
	ASSIGN  // =
	EQ      // ==
	NE      // !=
	LT      // <
	LE      // <=
	GT      // >
	GE      // >=
	ANDAND  // &&
	OROR    // ||

	// Delimiters
	COMMA     // ,
	COLON     // :
	SEMICOLON // ;
	LPAREN    // (
	RPAREN    // )
	LBRACE    // {
	RBRACE    // }

	// Keywords
	ELSE
	FALSE
	FUNC
	IF
	REC
	RETURN
	TRUE
	WHILE
)

var tokenNames = map[TokenType]string{
	EOF:     "EOF",
	ILLEGAL: "ILLEGAL",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",

	PLUS:    "+",
	MINUS:   "-",
	STAR:    "*",
	SLASH:   "/",
	PERCENT: "%",
	AMP:     "&",
	PIPE:    "|",
	CARET:   "^",
	TILDE:   "~",
	BANG:    "!",
	ASSIGN:  "=",
	EQ:      "==",
	NE:      "!=",
	LT:      "<",
	LE:      "<=",
	GT:      ">",
	GE:      ">=",
	ANDAND:  "&&",
	OROR:    "||",

	COMMA:     ",",
	COLON:     ":",
	SEMICOLON: ";",
	LPAREN:    "(",
	RPAREN:    ")",
	LBRACE:    "{",
	RBRACE:    "}",

	ELSE:   "else",
	FALSE:  "false",
	FUNC:   "func",
	IF:     "if",
	REC:    "rec",
	RETURN: "return",
	TRUE:   "true",
	WHILE:  "while",
}

// String returns a human-readable representation of the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TOKEN(%d)", t)
}

var keywords = map[string]TokenType{
	"else":   ELSE,
	"false":  FALSE,
	"func":   FUNC,
	"if":     IF,
	"rec":    REC,
	"return": RETURN,
	"true":   TRUE,
	"while":  WHILE,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// IsKeyword returns true if the token type is a keyword.
func IsKeyword(t TokenType) bool {
	return t >= ELSE && t <= WHILE
}

// IsOperator returns true if the token type is an operator.
func IsOperator(t TokenType) bool {
	return t >= PLUS && t <= OROR
}

// Token represents a lexical token with position information.
type Token struct {
	Type    TokenType
	Literal string
	Span    Span
}

// Pos returns the start position of the token.
func (t Token) Pos() Position {
	return t.Span.Start
}

// TextSpan returns the token's literal and span.
func (t Token) TextSpan() TextSpan {
	return TextSpan{Span: t.Span, Literal: t.Literal}
}
