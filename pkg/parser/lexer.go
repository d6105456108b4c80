package parser

import "github.com/prithivirajmurugan/rs-compiler/pkg/token"

// Lexer tokenizes source text.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // reading position (after current char)
	ch      byte // current char under examination
	line    int  // line of ch (1-based)
	col     int  // column of ch (1-based)
}

// NewLexer creates a new Lexer for the given input.
func NewLexer(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
		col:   0,
	}
	l.readChar()
	return l
}

// readChar advances to the next character.
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}

	if l.readPos >= len(l.input) {
		l.ch = 0 // ASCII NUL = EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	if l.pos > len(l.input) {
		l.pos = len(l.input)
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

// currentPos returns the position of the current character.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		Line:   l.line,
		Column: l.col,
		Offset: l.pos,
	}
}

// NextToken returns the next token.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	start := l.currentPos()

	switch l.ch {
	case 0:
		return token.Token{Type: token.EOF, Span: token.Span{Start: start, End: start}}
	case '+':
		return l.single(token.PLUS, start)
	case '-':
		return l.single(token.MINUS, start)
	case '*':
		return l.single(token.STAR, start)
	case '/':
		return l.single(token.SLASH, start)
	case '%':
		return l.single(token.PERCENT, start)
	case '^':
		return l.single(token.CARET, start)
	case '~':
		return l.single(token.TILDE, start)
	case ',':
		return l.single(token.COMMA, start)
	case ':':
		return l.single(token.COLON, start)
	case ';':
		return l.single(token.SEMICOLON, start)
	case '(':
		return l.single(token.LPAREN, start)
	case ')':
		return l.single(token.RPAREN, start)
	case '{':
		return l.single(token.LBRACE, start)
	case '}':
		return l.single(token.RBRACE, start)
	case '&':
		return l.either('&', token.ANDAND, token.AMP, start)
	case '|':
		return l.either('|', token.OROR, token.PIPE, start)
	case '=':
		return l.either('=', token.EQ, token.ASSIGN, start)
	case '!':
		return l.either('=', token.NE, token.BANG, start)
	case '<':
		return l.either('=', token.LE, token.LT, start)
	case '>':
		return l.either('=', token.GE, token.GT, start)
	}

	switch {
	case isDigit(l.ch):
		for isDigit(l.ch) {
			l.readChar()
		}
		return l.emit(token.NUMBER, start)
	case isLetter(l.ch):
		for isLetter(l.ch) || isDigit(l.ch) {
			l.readChar()
		}
		tok := l.emit(token.IDENT, start)
		tok.Type = token.LookupIdent(tok.Literal)
		return tok
	default:
		return l.single(token.ILLEGAL, start)
	}
}

// emit builds a token covering the input from start up to the current char.
func (l *Lexer) emit(t token.TokenType, start token.Position) token.Token {
	end := l.currentPos()
	return token.Token{
		Type:    t,
		Literal: l.input[start.Offset:end.Offset],
		Span:    token.Span{Start: start, End: end},
	}
}

func (l *Lexer) single(t token.TokenType, start token.Position) token.Token {
	l.readChar()
	return l.emit(t, start)
}

// either reads a two-character token when the next char is second,
// otherwise the one-character token.
func (l *Lexer) either(second byte, two, one token.TokenType, start token.Position) token.Token {
	if l.peekChar() == second {
		l.readChar()
		return l.single(two, start)
	}
	return l.single(one, start)
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r':
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
