package parser

import (
	"fmt"

	"github.com/prithivirajmurugan/rs-compiler/pkg/token"
)

// ParseError represents a parsing error with position information.
type ParseError struct {
	Pos     token.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// ErrorList is every syntax error found in one source, in source order.
type ErrorList []*ParseError

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Unwrap exposes the individual errors to errors.Is and errors.As.
func (l ErrorList) Unwrap() []error {
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errs
}

// Err returns l as an error, or nil when the list is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Common error messages
const (
	ErrUnexpectedToken = "unexpected token %s, expected %s"
	ErrExpectedExpr    = "unexpected token %s, expected expression"
	ErrIllegalChar     = "illegal character %q"
	ErrInvalidNumber   = "invalid number literal %q"
	ErrAmbiguousBranch = "%s branch starting with %s on the next line would join the condition; wrap the branch in braces"
)
