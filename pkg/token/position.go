package token

// Position represents a location in the source code.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
	Offset int // 0-based byte offset
}

// IsValid returns true if the position is valid (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Span represents a range in source code. End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// Contains returns true if the span contains the given offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid returns true if both start and end positions are valid.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Join returns the smallest span covering both s and other.
// An invalid span is ignored.
func (s Span) Join(other Span) Span {
	if !s.IsValid() {
		return other
	}
	if !other.IsValid() {
		return s
	}
	out := s
	if other.Start.Offset < out.Start.Offset {
		out.Start = other.Start
	}
	if other.End.Offset > out.End.Offset {
		out.End = other.End
	}
	return out
}

// TextSpan is a span together with the literal source text it covers.
// Nodes keep the literal so the original spelling can be reproduced even
// when nothing else about the node could be resolved.
type TextSpan struct {
	Span
	Literal string
}

// Text returns a TextSpan carrying only a literal, for nodes that were not
// produced from source.
func Text(literal string) TextSpan {
	return TextSpan{Literal: literal}
}
