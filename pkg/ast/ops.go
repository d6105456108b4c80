package ast

import "github.com/prithivirajmurugan/rs-compiler/pkg/token"

// UnaryOp is a prefix operator.
type UnaryOp uint8

const (
	Neg    UnaryOp = iota // -
	Not                   // !
	BitNot                // ~
)

// String returns the operator's token text.
func (op UnaryOp) String() string {
	switch op {
	case Neg:
		return "-"
	case Not:
		return "!"
	case BitNot:
		return "~"
	default:
		return "?"
	}
}

// UnaryOpFor maps a token type to the unary operator it spells.
func UnaryOpFor(t token.TokenType) (UnaryOp, bool) {
	switch t {
	case token.MINUS:
		return Neg, true
	case token.BANG:
		return Not, true
	case token.TILDE:
		return BitNot, true
	default:
		return 0, false
	}
}

// BinaryOp is an infix operator.
type BinaryOp uint8

const (
	Add BinaryOp = iota
	Sub
	Mul
	Div
	Mod
	BitAnd
	BitOr
	BitXor
	Eq
	Ne
	Lt
	Le
	Gt
	Ge
	LogicalAnd
	LogicalOr
)

var binaryOps = [...]struct {
	text string
	tok  token.TokenType
	prec int
}{
	Add:        {"+", token.PLUS, PrecAdditive},
	Sub:        {"-", token.MINUS, PrecAdditive},
	Mul:        {"*", token.STAR, PrecMultiplicative},
	Div:        {"/", token.SLASH, PrecMultiplicative},
	Mod:        {"%", token.PERCENT, PrecMultiplicative},
	BitAnd:     {"&", token.AMP, PrecBitAnd},
	BitOr:      {"|", token.PIPE, PrecBitOr},
	BitXor:     {"^", token.CARET, PrecBitXor},
	Eq:         {"==", token.EQ, PrecEquality},
	Ne:         {"!=", token.NE, PrecEquality},
	Lt:         {"<", token.LT, PrecComparison},
	Le:         {"<=", token.LE, PrecComparison},
	Gt:         {">", token.GT, PrecComparison},
	Ge:         {">=", token.GE, PrecComparison},
	LogicalAnd: {"&&", token.ANDAND, PrecLogicalAnd},
	LogicalOr:  {"||", token.OROR, PrecLogicalOr},
}

// Binary operator precedence levels, lowest first.
const (
	PrecNone = iota
	PrecLogicalOr
	PrecLogicalAnd
	PrecEquality
	PrecComparison
	PrecBitOr
	PrecBitXor
	PrecBitAnd
	PrecAdditive
	PrecMultiplicative
)

// String returns the operator's token text.
func (op BinaryOp) String() string {
	if int(op) < len(binaryOps) {
		return binaryOps[op].text
	}
	return "?"
}

// Precedence returns the binding power of the operator.
func (op BinaryOp) Precedence() int {
	if int(op) < len(binaryOps) {
		return binaryOps[op].prec
	}
	return PrecNone
}

// IsArithmetic reports whether op takes and yields integers.
func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case Add, Sub, Mul, Div, Mod, BitAnd, BitOr, BitXor:
		return true
	}
	return false
}

// IsComparison reports whether op orders two integers.
func (op BinaryOp) IsComparison() bool {
	return op == Lt || op == Le || op == Gt || op == Ge
}

// IsEquality reports whether op is == or !=.
func (op BinaryOp) IsEquality() bool {
	return op == Eq || op == Ne
}

// IsLogical reports whether op is && or ||.
func (op BinaryOp) IsLogical() bool {
	return op == LogicalAnd || op == LogicalOr
}

// BinaryOpFor maps a token type to the binary operator it spells.
func BinaryOpFor(t token.TokenType) (BinaryOp, bool) {
	for op, info := range binaryOps {
		if info.tok == t {
			return BinaryOp(op), true
		}
	}
	return 0, false
}
