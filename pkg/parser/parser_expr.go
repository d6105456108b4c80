package parser

import (
	"fmt"
	"strconv"

	"github.com/prithivirajmurugan/rs-compiler/pkg/ast"
	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
)

// Expression parsing uses precedence climbing over ast.BinaryOp.Precedence:
//
//	||  <  &&  <  == !=  <  < <= > >=  <  |  <  ^  <  &  <  + -  <  * / %
//
// All binary operators are left-associative. Assignment is right-associative
// and binds loosest.

// parseExpression parses an assignment or a binary expression.
func (p *Parser) parseExpression() ast.ExprID {
	if p.check(token.IDENT) && p.peek.Type == token.ASSIGN {
		start := p.token.Pos()
		ident := p.token.TextSpan()
		p.nextToken()
		p.nextToken()
		value := p.parseExpression()
		return p.tree.AddExpr(&ast.AssignExpr{Identifier: ident, Value: value}, p.spanFrom(start))
	}
	return p.parseBinary(ast.PrecLogicalOr)
}

// parseBinary parses operators whose precedence is at least minPrec.
func (p *Parser) parseBinary(minPrec int) ast.ExprID {
	start := p.token.Pos()
	left := p.parseUnary()

	for p.onSameLine() {
		op, ok := ast.BinaryOpFor(p.token.Type)
		if !ok || op.Precedence() < minPrec {
			break
		}
		p.nextToken()
		right := p.parseBinary(op.Precedence() + 1)
		left = p.tree.AddExpr(&ast.BinaryExpr{Op: op, Left: left, Right: right}, p.spanFrom(start))
	}

	return left
}

func (p *Parser) parseUnary() ast.ExprID {
	if op, ok := ast.UnaryOpFor(p.token.Type); ok {
		start := p.token.Pos()
		p.nextToken()
		operand := p.parseUnary()
		return p.tree.AddExpr(&ast.UnaryExpr{Op: op, Operand: operand}, p.spanFrom(start))
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() ast.ExprID {
	start := p.token.Pos()
	expr := p.parsePrimary()

	for p.check(token.LPAREN) && p.onSameLine() {
		p.nextToken()
		var args []ast.ExprID
		if !p.check(token.RPAREN) {
			args = append(args, p.parseExpression())
			for p.match(token.COMMA) {
				args = append(args, p.parseExpression())
			}
		}
		p.expect(token.RPAREN)
		expr = p.tree.AddExpr(&ast.CallExpr{Callee: expr, Args: args}, p.spanFrom(start))
	}

	return expr
}

func (p *Parser) parsePrimary() ast.ExprID {
	start := p.token.Pos()

	switch p.token.Type {
	case token.NUMBER:
		tok := p.token
		p.nextToken()
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			p.errors = append(p.errors, &ParseError{Pos: tok.Pos(), Message: fmt.Sprintf(ErrInvalidNumber, tok.Literal)})
			return p.tree.AddExpr(&ast.ErrorExpr{Span: tok.TextSpan()}, tok.Span)
		}
		return p.tree.AddExpr(&ast.NumberExpr{Value: value, Token: tok.TextSpan()}, tok.Span)

	case token.TRUE, token.FALSE:
		tok := p.token
		p.nextToken()
		return p.tree.AddExpr(&ast.BooleanExpr{Value: tok.Type == token.TRUE, Token: tok.TextSpan()}, tok.Span)

	case token.IDENT:
		tok := p.token
		p.nextToken()
		return p.tree.AddExpr(&ast.VariableExpr{Identifier: tok.TextSpan()}, tok.Span)

	case token.REC:
		tok := p.token
		p.nextToken()
		return p.tree.AddExpr(&ast.RecExpr{Token: tok.TextSpan()}, tok.Span)

	case token.LPAREN:
		p.nextToken()
		inner := p.parseExpression()
		p.expect(token.RPAREN)
		return p.tree.AddExpr(&ast.ParenExpr{Inner: inner}, p.spanFrom(start))

	case token.LBRACE:
		return p.parseBlock()

	case token.IF:
		p.nextToken()
		cond := p.parseExpression()
		p.checkBranchStart("if")
		then := p.parseExpression()
		els := ast.NoExpr
		if p.match(token.ELSE) {
			els = p.parseExpression()
		}
		return p.tree.AddExpr(&ast.IfExpr{Cond: cond, Then: then, Else: els}, p.spanFrom(start))

	case token.WHILE:
		p.nextToken()
		cond := p.parseExpression()
		p.checkBranchStart("while")
		body := p.parseExpression()
		return p.tree.AddExpr(&ast.WhileExpr{Cond: cond, Body: body}, p.spanFrom(start))

	case token.FUNC:
		p.nextToken()
		var params []ast.Param
		if p.startsParams() {
			params = p.parseParams()
		}
		body := p.parseExpression()
		return p.tree.AddExpr(&ast.FuncExpr{Params: params, Body: body}, p.spanFrom(start))
	}

	return p.parseError()
}

// checkBranchStart rejects a branch on the line after its condition when the
// branch's first token would extend the condition if both shared a line:
// "if c\n-1" is not "if c - 1", and "while c\n(x)" is not "while c(x)".
// The branch is still parsed so recovery continues.
func (p *Parser) checkBranchStart(keyword string) {
	if p.onSameLine() {
		return
	}
	_, unary := ast.UnaryOpFor(p.token.Type)
	_, binary := ast.BinaryOpFor(p.token.Type)
	if unary && binary || p.check(token.LPAREN) {
		p.addError(fmt.Sprintf(ErrAmbiguousBranch, keyword, describe(p.token)))
	}
}

// startsParams reports whether the "(" after func opens a parameter list
// rather than a parenthesized body.
func (p *Parser) startsParams() bool {
	if !p.check(token.LPAREN) {
		return false
	}
	return p.peek.Type == token.RPAREN || p.peek.Type == token.IDENT && p.isParamAhead()
}

// isParamAhead looks past "( IDENT" for the ":" of a parameter. The lexer is
// cheap to copy, so the lookahead runs on a copy.
func (p *Parser) isParamAhead() bool {
	l := *p.lexer
	return l.NextToken().Type == token.COLON
}

func (p *Parser) parseParams() []ast.Param {
	p.expect(token.LPAREN)

	var params []ast.Param
	for !p.check(token.RPAREN) && !p.check(token.EOF) {
		ident := p.token.TextSpan()
		if !p.expect(token.IDENT) {
			break
		}
		p.expect(token.COLON)
		typeName := p.token.TextSpan()
		if !p.expect(token.IDENT) {
			break
		}
		params = append(params, ast.Param{
			Identifier: ident,
			Annotation: ast.StaticTypeAnnotation{TypeName: typeName},
		})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RPAREN)

	return params
}

// parseError records an error at the current token and turns it into an
// error node. The token is consumed unless it is EOF, so callers always make
// progress.
func (p *Parser) parseError() ast.ExprID {
	tok := p.token
	if tok.Type == token.ILLEGAL {
		p.addError(fmt.Sprintf(ErrIllegalChar, tok.Literal))
	} else {
		p.addError(fmt.Sprintf(ErrExpectedExpr, describe(tok)))
	}
	if tok.Type != token.EOF {
		p.nextToken()
	}
	return p.tree.AddExpr(&ast.ErrorExpr{Span: tok.TextSpan()}, tok.Span)
}
