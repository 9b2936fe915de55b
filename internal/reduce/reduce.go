// Package reduce implements weak-head normalization, full normalization,
// and definitional equality (spec.md §4.4).
//
// Whnf is a small-step machine with an argument stack, and conversion is
// ported close to line-for-line from the original kernel's
// Term::conversion (_examples/original_source/kernel/src/type_checker.rs):
// compare after whnf, then match on head constructors, unfolding a Decl
// on either side when heads disagree.
package reduce

import (
	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

// InferFunc infers the type of a term. Convertible uses it, when set, to
// apply Prop proof irrelevance to App arguments (spec.md §4.4 rule 8):
// once two applications' functions are known convertible, the shared
// function type's domain tells Convertible whether the arguments inhabit
// a Prop, in which case they need not be compared further.
type InferFunc func(t *term.Term) (*term.Term, error)

// Machine bundles the interning pool and environment a reduction needs:
// δ-unfolding consults the environment, everything else only needs the
// pool to build new interned nodes. Infer is supplied by internal/check
// after construction (the checker depends on the reducer, not the other
// way around, so this is wired by assignment rather than by import).
type Machine struct {
	Pool  *term.Pool
	Env   *env.Env
	Infer InferFunc
}

// New creates a reduction Machine over pool and environment e.
func New(pool *term.Pool, e *env.Env) *Machine {
	return &Machine{Pool: pool, Env: e}
}

// Whnf reduces t to weak-head normal form (spec.md §4.4): it reduces the
// head constructor until it is Sort, Prod, Abs, or an App stuck on a Var
// or non-unfoldable Decl. β fires when the head is Abs and the argument
// stack is non-empty; δ fires when the head is an unfoldable Decl.
func (m *Machine) Whnf(t *term.Term) *term.Term {
	head, stack := m.whnfStack(t, nil)
	return m.rebuild(head, stack)
}

// whnfStack peels off App nodes onto stack and reduces the head until no
// more β/δ steps apply, returning the final head and the (possibly
// partially consumed) argument stack. stack is ordered innermost-first:
// stack[0] is the argument closest to the head.
func (m *Machine) whnfStack(t *term.Term, stack []*term.Term) (*term.Term, []*term.Term) {
	for {
		switch t.Kind {
		case term.KindApp:
			stack = append([]*term.Term{t.Arg}, stack...)
			t = t.Fun
		case term.KindAbs:
			if len(stack) == 0 {
				return t, stack
			}
			arg := stack[0]
			stack = stack[1:]
			t = m.Pool.SubstTop(t.Body, arg)
		case term.KindDecl:
			d, err := m.Env.Lookup(t.Name)
			if err != nil || d.Body == nil {
				return t, stack
			}
			body, _, err := m.Env.Instantiate(m.Pool, d, t.Instance)
			if err != nil {
				return t, stack
			}
			t = body
		case term.KindSort:
			return m.Pool.Sort(canonLevel(t.Level)), stack
		default:
			return t, stack
		}
	}
}

func canonLevel(l *level.Level) *level.Level { return level.Canon(l) }

// rebuild re-applies the remaining argument stack (innermost-first) to
// head, reconstructing a whnf application term.
func (m *Machine) rebuild(head *term.Term, stack []*term.Term) *term.Term {
	for _, arg := range stack {
		head = m.Pool.App(head, arg)
	}
	return head
}

// NormalForm computes the full normal form of t by whnf'ing and then
// recursing under binders and into applications (spec.md §4.4 "Full
// normalisation"). It is needed only for `eval` and diagnostics, never
// for conversion.
func (m *Machine) NormalForm(t *term.Term) *term.Term {
	w := m.Whnf(t)
	switch w.Kind {
	case term.KindApp:
		return m.Pool.App(m.NormalForm(w.Fun), m.NormalForm(w.Arg))
	case term.KindAbs:
		return m.Pool.Abs(m.NormalForm(w.Domain), m.NormalForm(w.Body))
	case term.KindProd:
		return m.Pool.Prod(m.NormalForm(w.Domain), m.NormalForm(w.Body))
	default:
		return w
	}
}
