package term

import "github.com/asm-nop/proost-go/internal/level"

// Lift adds k to every Var(i) in t with i >= c (spec.md §4.2 "lift_k^c").
// It short-circuits when k == 0 or when t has no free index >= c (nothing
// to lift), returning t itself and preserving sharing in both cases.
func (p *Pool) Lift(t *Term, k, c int) *Term {
	if k == 0 || MaxFreeIndex(t) < c {
		return t
	}
	switch t.Kind {
	case KindVar:
		if t.Index >= c {
			return p.Var(t.Index + k)
		}
		return t
	case KindSort, KindDecl:
		return t
	case KindApp:
		return p.App(p.Lift(t.Fun, k, c), p.Lift(t.Arg, k, c))
	case KindAbs:
		return p.Abs(p.Lift(t.Domain, k, c), p.Lift(t.Body, k, c+1))
	case KindProd:
		return p.Prod(p.Lift(t.Domain, k, c), p.Lift(t.Body, k, c+1))
	default:
		panic("term: unknown kind")
	}
}

// Subst replaces Var(c) in t with u (lifted appropriately through
// enclosing binders) and decrements Var(i) for i > c (spec.md §4.2
// "t[c ← u]"). Under a Π/λ the cutoff increases by one. It short-circuits
// when t has no free index >= c, since such a t contains neither Var(c)
// nor any Var(i > c) for Subst to touch, returning t itself and
// preserving sharing.
func (p *Pool) Subst(t *Term, c int, u *Term) *Term {
	if MaxFreeIndex(t) < c {
		return t
	}
	switch t.Kind {
	case KindVar:
		switch {
		case t.Index == c:
			return p.Lift(u, c, 0)
		case t.Index > c:
			return p.Var(t.Index - 1)
		default:
			return t
		}
	case KindSort, KindDecl:
		return t
	case KindApp:
		return p.App(p.Subst(t.Fun, c, u), p.Subst(t.Arg, c, u))
	case KindAbs:
		return p.Abs(p.Subst(t.Domain, c, u), p.Subst(t.Body, c+1, u))
	case KindProd:
		return p.Prod(p.Subst(t.Domain, c, u), p.Subst(t.Body, c+1, u))
	default:
		panic("term: unknown kind")
	}
}

// SubstTop is the common case t[0 ← u], used for β-reduction and the App
// typing rule's codomain substitution (spec.md §4.4/§4.5).
func (p *Pool) SubstTop(t, u *Term) *Term {
	return p.Subst(t, 0, u)
}

// SubstUnivs simultaneously substitutes universe parameters 0..len(vec)-1
// throughout t with the levels in vec (spec.md §4.3 `instantiate`).
func (p *Pool) SubstUnivs(t *Term, vec []*level.Level) *Term {
	switch t.Kind {
	case KindVar:
		return t
	case KindSort:
		return p.Sort(level.SubstVector(t.Level, vec))
	case KindApp:
		return p.App(p.SubstUnivs(t.Fun, vec), p.SubstUnivs(t.Arg, vec))
	case KindAbs:
		return p.Abs(p.SubstUnivs(t.Domain, vec), p.SubstUnivs(t.Body, vec))
	case KindProd:
		return p.Prod(p.SubstUnivs(t.Domain, vec), p.SubstUnivs(t.Body, vec))
	case KindDecl:
		inst := make([]*level.Level, len(t.Instance))
		for i, l := range t.Instance {
			inst[i] = level.SubstVector(l, vec)
		}
		return p.Decl(t.Name, inst)
	default:
		panic("term: unknown kind")
	}
}

// MaxFreeIndex returns the largest de Bruijn index free in t, or -1 if t
// is closed (has no free variables). Lift and Subst call this to
// short-circuit on subterms below their cutoff c, preserving sharing
// (spec.md §4.2 "preserves sharing for subterms whose maximum free index
// is < c").
func MaxFreeIndex(t *Term) int {
	switch t.Kind {
	case KindVar:
		return t.Index
	case KindSort, KindDecl:
		return -1
	case KindApp:
		return max(MaxFreeIndex(t.Fun), MaxFreeIndex(t.Arg))
	case KindAbs, KindProd:
		bodyMax := MaxFreeIndex(t.Body) - 1
		return max(MaxFreeIndex(t.Domain), bodyMax)
	default:
		panic("term: unknown kind")
	}
}
