package resolve

import (
	"sort"

	"github.com/prithivirajmurugan/rs-compiler/pkg/types"
)

// FunctionTable hands out indices for function types. A types.Function value
// only means something against the table that issued its index.
type FunctionTable interface {
	Declare(sig Signature) types.FunctionIdx
}

// Signature is the parameter list of a function literal.
type Signature struct {
	Params []types.Type
}

// FunctionList is an in-memory FunctionTable. Indices are positions in
// declaration order.
type FunctionList struct {
	sigs []Signature
}

var _ FunctionTable = (*FunctionList)(nil)

// Declare appends sig and returns its index.
func (l *FunctionList) Declare(sig Signature) types.FunctionIdx {
	l.sigs = append(l.sigs, sig)
	return types.FunctionIdx(len(l.sigs) - 1)
}

// Lookup returns the signature behind idx.
func (l *FunctionList) Lookup(idx types.FunctionIdx) (Signature, bool) {
	if int(idx) >= len(l.sigs) {
		return Signature{}, false
	}
	return l.sigs[idx], true
}

// Len returns the number of declared functions.
func (l *FunctionList) Len() int {
	return len(l.sigs)
}

// Env supplies the types of free variables. The pass does not track scopes;
// every variable is looked up by name alone.
type Env interface {
	Lookup(name string) (types.Type, bool)
}

// Bindings is an Env backed by a map.
type Bindings map[string]types.Type

// Lookup implements Env.
func (b Bindings) Lookup(name string) (types.Type, bool) {
	typ, ok := b[name]
	return typ, ok
}

// Names returns the bound names, sorted.
func (b Bindings) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
