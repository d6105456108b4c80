// Package parser turns source text into an ast.Tree.
//
// # Grammar
//
//	program    → { stmt [";"] } EOF
//	stmt       → "return" [expr] | expr
//	expr       → IDENT "=" expr | binary
//	binary     → unary { binop unary }        (precedence climbing)
//	unary      → ("-" | "!" | "~") unary | postfix
//	postfix    → primary { "(" [expr { "," expr }] ")" }
//	primary    → NUMBER | "true" | "false" | IDENT | "rec"
//	           | "(" expr ")" | block | if | while | func
//	block      → "{" { stmt [";"] } "}"
//	if         → "if" expr expr ["else" expr]
//	while      → "while" expr expr
//	func       → "func" ["(" [param { "," param }] ")"] expr
//	param      → IDENT ":" IDENT
//
// Newlines end expressions: an infix operator, a call's "(" or a return
// value must start on the line where the previous token ended. An if or
// while branch on the line after its condition must not start with "-" or
// "(", since the formatter joins the two lines.
//
// The parser never gives up. Source it cannot shape becomes an ErrorExpr
// holding the offending text, and the error is recorded; Parse returns the
// tree together with every error found.
package parser

import (
	"fmt"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
)

// Parser parses source text into a tree.
type Parser struct {
	lexer  *Lexer
	prev   token.Token // last consumed token
	token  token.Token // current token
	peek   token.Token // lookahead token
	tree   *ast.Tree
	errors ErrorList
}

// NewParser creates a new parser for the given source.
func NewParser(src string) *Parser {
	p := &Parser{
		lexer: NewLexer(src),
		tree:  ast.New(),
	}
	// Read two tokens to initialize current and peek
	p.nextToken()
	p.nextToken()
	return p
}

// Parse parses src. The returned tree is never nil; the error, when not
// nil, is an ErrorList.
func Parse(src string) (*ast.Tree, error) {
	p := NewParser(src)
	p.parseProgram()
	return p.tree, p.errors.Err()
}

// Errors returns the errors recorded so far.
func (p *Parser) Errors() ErrorList {
	return p.errors
}

// ---------- Token Helpers ----------

// nextToken advances to the next token.
func (p *Parser) nextToken() {
	p.prev = p.token
	p.token = p.peek
	p.peek = p.lexer.NextToken()
}

// check returns true if the current token is of the given type.
func (p *Parser) check(t token.TokenType) bool {
	return p.token.Type == t
}

// match consumes the current token if it matches and returns true.
func (p *Parser) match(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	return false
}

// expect consumes the current token if it matches, otherwise adds an error.
func (p *Parser) expect(t token.TokenType) bool {
	if p.check(t) {
		p.nextToken()
		return true
	}
	p.addError(fmt.Sprintf(ErrUnexpectedToken, describe(p.token), t))
	return false
}

// onSameLine reports whether the current token starts on the line where the
// previous token ended.
func (p *Parser) onSameLine() bool {
	return p.token.Span.Start.Line == p.prev.Span.End.Line
}

// addError adds a parse error at the current token.
func (p *Parser) addError(msg string) {
	p.errors = append(p.errors, &ParseError{
		Pos:     p.token.Pos(),
		Message: msg,
	})
}

// spanFrom returns the span from start to the end of the last consumed token.
func (p *Parser) spanFrom(start token.Position) token.Span {
	return token.Span{Start: start, End: p.prev.Span.End}
}

func describe(tok token.Token) string {
	switch tok.Type {
	case token.EOF:
		return "end of input"
	case token.IDENT, token.NUMBER, token.ILLEGAL:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	default:
		return fmt.Sprintf("%q", tok.Literal)
	}
}

// ---------- Statements ----------

func (p *Parser) parseProgram() {
	for !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			continue
		}
		p.tree.AddItem(p.parseStatement())
	}
}

// parseStatement always consumes at least one token when not at EOF.
func (p *Parser) parseStatement() ast.StmtID {
	start := p.token.Pos()

	if p.check(token.RETURN) {
		p.nextToken()
		value := ast.NoExpr
		if p.onSameLine() && !p.check(token.EOF) && !p.check(token.RBRACE) && !p.check(token.SEMICOLON) {
			value = p.parseExpression()
		}
		return p.tree.AddStmt(&ast.ReturnStmt{Value: value}, p.spanFrom(start))
	}

	expr := p.parseExpression()
	return p.tree.AddStmt(&ast.ExprStmt{Expr: expr}, p.spanFrom(start))
}

func (p *Parser) parseBlock() ast.ExprID {
	start := p.token.Pos()
	p.expect(token.LBRACE)

	var stmts []ast.StmtID
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		if p.match(token.SEMICOLON) {
			continue
		}
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(token.RBRACE)

	return p.tree.AddExpr(&ast.BlockExpr{Stmts: stmts}, p.spanFrom(start))
}
