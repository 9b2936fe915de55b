// Package errors defines the kernel's structured error values (spec.md
// §7). Every kernel operation that can fail returns one of these kinds,
// carrying the offending term(s)/type(s); none unwinds the call stack
// abnormally, and any environment extension that fails leaves the
// environment untouched (spec.md §7 "transactional").
//
// Generalized from the teacher's StandardError shape
// (_examples/SeleniaProject-Orizon/internal/errors/standard.go: a
// Category + Code + Message + Context) to the seven closed error kinds
// spec.md §7 names, and from the original kernel's ErrorKind enum
// (_examples/original_source/kernel/src/type_checker.rs) for which
// payload each kind carries.
package errors

import "fmt"

// Kind identifies which of spec.md §7's error categories occurred.
type Kind string

const (
	KindUnboundVariable       Kind = "UNBOUND_VARIABLE"
	KindUnknownDeclaration    Kind = "UNKNOWN_DECLARATION"
	KindUniverseArityMismatch Kind = "UNIVERSE_ARITY_MISMATCH"
	KindNotASort              Kind = "NOT_A_SORT"
	KindNotAFunctionType      Kind = "NOT_A_FUNCTION_TYPE"
	KindTypeMismatch          Kind = "TYPE_MISMATCH"
	KindDuplicateDeclaration  Kind = "DUPLICATE_DECLARATION"
)

// Stringer is satisfied by both *term.Term and *level.Level (plain
// strings satisfy it through the Str wrapper), letting Error stay independent of the term package and
// avoid an import cycle (term depends on nothing in errors, but
// env/check/reduce all depend on both term and errors).
type Stringer interface {
	String() string
}

// Error is the kernel's single error type. Context holds the offending
// values (terms, types, names) relevant to Kind, each rendered lazily via
// its Stringer so that constructing an Error never requires whnf'ing
// anything that hasn't already been whnf'd by the caller.
type Error struct {
	Kind    Kind
	Message string
	Context map[string]Stringer
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Kind, e.Message)
	for _, k := range contextOrder {
		if v, ok := e.Context[k]; ok {
			msg += fmt.Sprintf(" (%s: %s)", k, v.String())
		}
	}
	return msg
}

// contextOrder fixes a deterministic rendering order for common context
// keys so error messages are stable across runs (map iteration isn't).
var contextOrder = []string{"term", "type", "expected", "got", "index", "name", "function", "argument"}

func newErr(kind Kind, msg string, ctx map[string]Stringer) *Error {
	return &Error{Kind: kind, Message: msg, Context: ctx}
}

// strVal adapts a plain string to Stringer for Context maps.
type strVal string

func (s strVal) String() string { return string(s) }

// Str wraps a plain string as error context.
func Str(s string) Stringer { return strVal(s) }

// UnboundVariable reports a de Bruijn index exceeding the context depth.
func UnboundVariable(index, depth int) *Error {
	return newErr(KindUnboundVariable,
		fmt.Sprintf("variable index %d exceeds context depth %d", index, depth),
		map[string]Stringer{"index": strVal(fmt.Sprintf("%d", index))})
}

// UnknownDeclaration reports a Decl(name, _) with no matching environment
// entry.
func UnknownDeclaration(name string) *Error {
	return newErr(KindUnknownDeclaration,
		fmt.Sprintf("unknown declaration %q", name),
		map[string]Stringer{"name": strVal(name)})
}

// UniverseArityMismatch reports an instance vector whose length does not
// match the declaration's universe parameter count.
func UniverseArityMismatch(name string, want, got int) *Error {
	return newErr(KindUniverseArityMismatch,
		fmt.Sprintf("declaration %q expects %d universe argument(s), got %d", name, want, got),
		map[string]Stringer{"name": strVal(name)})
}

// NotASort reports a position requiring a Sort whnf'ing to something
// else.
func NotASort(t Stringer) *Error {
	return newErr(KindNotASort, fmt.Sprintf("%s is not a sort", t.String()),
		map[string]Stringer{"term": t})
}

// NotAFunctionType reports an application whose function's type does not
// whnf to a Prod.
func NotAFunctionType(fn, fnType Stringer) *Error {
	return newErr(KindNotAFunctionType,
		fmt.Sprintf("%s has type %s, which is not a function type", fn.String(), fnType.String()),
		map[string]Stringer{"function": fn, "type": fnType})
}

// TypeMismatch reports an expected/inferred type pair that is not
// convertible; both are carried in whnf (spec.md §7).
func TypeMismatch(expected, got Stringer) *Error {
	return newErr(KindTypeMismatch,
		fmt.Sprintf("expected type %s, got %s", expected.String(), got.String()),
		map[string]Stringer{"expected": expected, "got": got})
}

// DuplicateDeclaration reports re-declaring an already-bound name.
func DuplicateDeclaration(name string) *Error {
	return newErr(KindDuplicateDeclaration,
		fmt.Sprintf("%q is already declared", name),
		map[string]Stringer{"name": strVal(name)})
}
