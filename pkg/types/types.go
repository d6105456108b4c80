// Package types defines the static type model of the language.
//
// The set of type tags is closed: Int, Bool, Void, Function, Unresolved and
// Error. Error is the poison element of the lattice. It is assignable to and
// from everything so that one reported mismatch does not cascade into more
// diagnostics for every expression that depends on it.
package types

// Kind identifies a type tag.
type Kind uint8

const (
	// KindUnresolved is the zero Kind so freshly built nodes start out
	// unresolved until a type-assignment pass runs.
	KindUnresolved Kind = iota
	KindInt
	KindBool
	KindVoid
	KindFunction
	KindError
)

var kindNames = [...]string{
	KindUnresolved: "unresolved",
	KindInt:        "int",
	KindBool:       "bool",
	KindVoid:       "void",
	KindFunction:   "function",
	KindError:      "?",
}

// String returns the one-word rendering of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// FunctionIdx indexes the function table of a compilation unit.
// The type model never dereferences it.
type FunctionIdx uint32

// Type is the static type of an expression or the declared type of a
// parameter. It is a comparable value; the zero Type is Unresolved.
type Type struct {
	kind Kind
	fn   FunctionIdx
}

// Predeclared types.
var (
	Int        = Type{kind: KindInt}
	Bool       = Type{kind: KindBool}
	Void       = Type{kind: KindVoid}
	Unresolved = Type{kind: KindUnresolved}
	Error      = Type{kind: KindError}
)

// Function returns the type of the function stored at idx.
func Function(idx FunctionIdx) Type {
	return Type{kind: KindFunction, fn: idx}
}

// Kind returns the tag of t.
func (t Type) Kind() Kind { return t.kind }

// FunctionIndex returns the function table index of a Function type.
func (t Type) FunctionIndex() (FunctionIdx, bool) {
	if t.kind != KindFunction {
		return 0, false
	}
	return t.fn, true
}

// IsError reports whether t is the Error type.
func (t Type) IsError() bool { return t.kind == KindError }

// IsResolved reports whether a type-assignment pass has settled t.
func (t Type) IsResolved() bool { return t.kind != KindUnresolved }

// String renders t without its function index, so two different
// function types print the same.
func (t Type) String() string {
	return t.kind.String()
}

// AssignableTo reports whether a value of type t may be assigned to target.
func (t Type) AssignableTo(target Type) bool {
	return IsAssignable(t, target)
}

// IsAssignable reports whether a value of type source may be stored in a
// location of type target.
//
// Only int to int and bool to bool succeed, plus any pairing that involves
// Error on either side. Function values, void and unresolved types are never
// assignable.
func IsAssignable(source, target Type) bool {
	switch {
	case source.kind == KindInt && target.kind == KindInt:
		return true
	case source.kind == KindBool && target.kind == KindBool:
		return true
	case source.kind == KindError, target.kind == KindError:
		return true
	default:
		return false
	}
}

// ParseName maps a type spelling to its type. Only "int", "bool" and "void"
// are recognised; the caller decides what an unknown name means.
func ParseName(literal string) (Type, bool) {
	switch literal {
	case "int":
		return Int, true
	case "bool":
		return Bool, true
	case "void":
		return Void, true
	default:
		return Unresolved, false
	}
}
