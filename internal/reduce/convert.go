package reduce

import (
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

// Convertible decides definitional equality of t1 and t2 (spec.md §4.4):
// whnf both sides, then compare head constructors structurally, unfolding
// a Decl head on whichever side is stuck on one when the heads otherwise
// disagree, and falling back to one-sided η when one side is an Abs and
// the other is not.
//
// Ported from the original kernel's Term::conversion
// (_examples/original_source/kernel/src/type_checker.rs). Proof
// irrelevance is applied only to the arguments of two applications with
// convertible functions, and only when m.Infer is set (see
// argsIrrelevant); no other case consults a type.
func (m *Machine) Convertible(t1, t2 *term.Term) bool {
	if t1 == t2 {
		return true
	}

	lhs := m.Whnf(t1)
	rhs := m.Whnf(t2)
	if lhs == rhs {
		return true
	}

	switch {
	case lhs.Kind == term.KindSort && rhs.Kind == term.KindSort:
		return level.Equal(lhs.Level, rhs.Level)

	case lhs.Kind == term.KindVar && rhs.Kind == term.KindVar:
		return lhs.Index == rhs.Index

	case lhs.Kind == term.KindProd && rhs.Kind == term.KindProd:
		return m.Convertible(lhs.Domain, rhs.Domain) && m.Convertible(lhs.Body, rhs.Body)

	case lhs.Kind == term.KindAbs && rhs.Kind == term.KindAbs:
		return m.Convertible(lhs.Body, rhs.Body)

	case lhs.Kind == term.KindApp && rhs.Kind == term.KindApp:
		if !m.Convertible(lhs.Fun, rhs.Fun) {
			return false
		}
		if m.argsIrrelevant(lhs.Fun) {
			return true
		}
		return m.Convertible(lhs.Arg, rhs.Arg)

	case lhs.Kind == term.KindDecl && rhs.Kind == term.KindDecl:
		if declEqual(lhs, rhs) {
			return true
		}
		if u, ok := m.unfold(lhs); ok {
			return m.Convertible(u, rhs)
		}
		if u, ok := m.unfold(rhs); ok {
			return m.Convertible(lhs, u)
		}
		return false

	case lhs.Kind == term.KindDecl:
		if u, ok := m.unfold(lhs); ok {
			return m.Convertible(u, rhs)
		}
		return false

	case rhs.Kind == term.KindDecl:
		if u, ok := m.unfold(rhs); ok {
			return m.Convertible(lhs, u)
		}
		return false

	case lhs.Kind == term.KindAbs:
		return m.etaConvertible(lhs, rhs)

	case rhs.Kind == term.KindAbs:
		return m.etaConvertible(rhs, lhs)

	default:
		return false
	}
}

// argsIrrelevant reports whether applications of fn take an argument
// whose type is a proposition (the domain's own type whnfs to Prop), so
// their argument terms may differ without breaking convertibility
// (spec.md §4.4 rule 8, applied at the one place Convertible can cheaply
// establish a common type for two subterms: the shared domain of two
// already-convertible function heads).
func (m *Machine) argsIrrelevant(fn *term.Term) bool {
	if m.Infer == nil {
		return false
	}
	ft, err := m.Infer(fn)
	if err != nil {
		return false
	}
	fw := m.Whnf(ft)
	if fw.Kind != term.KindProd {
		return false
	}
	domTy, err := m.Infer(fw.Domain)
	if err != nil {
		return false
	}
	return m.IsProp(domTy)
}

// declEqual is spec.md §4.4 rule 6's direct clause: two stuck Decl heads
// are convertible outright when they name the same declaration at the
// same universe instance, without needing to unfold either.
func declEqual(lhs, rhs *term.Term) bool {
	if lhs.Name != rhs.Name || len(lhs.Instance) != len(rhs.Instance) {
		return false
	}
	for i, l := range lhs.Instance {
		if !level.Equal(l, rhs.Instance[i]) {
			return false
		}
	}
	return true
}

// unfold replaces a Decl-headed whnf term with its body, reporting false
// (t unchanged) when the declaration has no body (an axiom: genuinely
// stuck) — the caller must not recurse on a false result, or a stuck
// axiom compared against something it never equals would whnf to the
// same term forever.
func (m *Machine) unfold(t *term.Term) (*term.Term, bool) {
	d, err := m.Env.Lookup(t.Name)
	if err != nil || d.Body == nil {
		return t, false
	}
	body, _, err := m.Env.Instantiate(m.Pool, d, t.Instance)
	if err != nil {
		return t, false
	}
	return body, true
}

// etaConvertible implements one-sided η (spec.md §4.4 rule 7): abs ≡ other
// when `(lift_1 other) applied to Var 0` converts to abs's body — i.e.
// abs ≡ λ. (lift_1 other) #0. The type of other is not consulted.
func (m *Machine) etaConvertible(abs, other *term.Term) bool {
	eta := m.Pool.App(m.Pool.Lift(other, 1, 0), m.Pool.Var(0))
	return m.Convertible(abs.Body, eta)
}

// IsProp reports whether sort, after whnf, is Prop (Sort 0). argsIrrelevant
// applies it to the type of a function's domain to decide proof
// irrelevance (spec.md §4.4 rule 8).
func (m *Machine) IsProp(sort *term.Term) bool {
	w := m.Whnf(sort)
	if w.Kind != term.KindSort {
		return false
	}
	n, ok := w.Level.Numeral()
	return ok && n == 0
}
