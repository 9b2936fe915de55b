package reduce

import (
	"errors"
	"testing"

	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

var errNotFound = errors.New("not found")

func TestWhnfBetaReducesApp(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	// (λ. #0) c  -->  c
	id := p.Abs(p.Sort(level.Zero), p.Var(0))
	c := p.Var(9)
	got := m.Whnf(p.App(id, c))
	if got != c {
		t.Fatalf("got %s, want %s", got.String(), c.String())
	}
}

func TestWhnfUnfoldsDefinition(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	body := p.Sort(level.Zero)
	e.Define("one", nil, body, p.Sort(level.Succ(level.Zero)))
	m := New(p, e)

	got := m.Whnf(p.Decl("one", nil))
	if got != body {
		t.Fatalf("got %s, want %s", got.String(), body.String())
	}
}

func TestWhnfStopsOnAxiom(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	e.Declare("Empty", nil, p.Sort(level.Zero))
	m := New(p, e)

	axiom := p.Decl("Empty", nil)
	got := m.Whnf(axiom)
	if got != axiom {
		t.Fatalf("expected axiom to whnf to itself, got %s", got.String())
	}
}

func TestWhnfAppliesArgumentsAcrossDeltaUnfold(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	// def id := λ. #0
	idBody := p.Abs(p.Sort(level.Zero), p.Var(0))
	e.Define("id", nil, idBody, p.Prod(p.Sort(level.Zero), p.Sort(level.Zero)))
	m := New(p, e)

	c := p.Var(7)
	got := m.Whnf(p.App(p.Decl("id", nil), c))
	if got != c {
		t.Fatalf("got %s, want %s", got.String(), c.String())
	}
}

func TestNormalFormRecursesUnderBinders(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	// λ. (λ. #0) #0  -->  λ. #0
	inner := p.App(p.Abs(p.Sort(level.Zero), p.Var(0)), p.Var(0))
	outer := p.Abs(p.Sort(level.Zero), inner)
	got := m.NormalForm(outer)
	want := p.Abs(p.Sort(level.Zero), p.Var(0))
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestConvertibleStructuralMismatchFails(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	a := p.Sort(level.Zero)
	b := p.Sort(level.Succ(level.Zero))
	if m.Convertible(a, b) {
		t.Fatalf("expected Prop and Type 1 to be non-convertible")
	}
}

func TestConvertibleUnfoldsDeclOnMismatch(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	prop := p.Sort(level.Zero)
	e.Define("P", nil, prop, p.Sort(level.Succ(level.Zero)))
	m := New(p, e)

	if !m.Convertible(p.Decl("P", nil), prop) {
		t.Fatalf("expected decl to convert with its unfolded body")
	}
}

// TestConvertibleTwoStuckAxiomsAreNotConvertible guards against the
// infinite recursion that unfold-without-progress used to cause: two
// distinct axioms never unfold, so Convertible must return false rather
// than looping on an unchanged (lhs, rhs) pair forever.
func TestConvertibleTwoStuckAxiomsAreNotConvertible(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	prop := p.Sort(level.Zero)
	e.Declare("Nat", nil, prop)
	e.Declare("Bool", nil, prop)
	m := New(p, e)

	if m.Convertible(p.Decl("Nat", nil), p.Decl("Bool", nil)) {
		t.Fatalf("expected two distinct stuck axioms to be non-convertible")
	}
}

func TestConvertibleSameAxiomIsConvertible(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	e.Declare("Nat", nil, p.Sort(level.Zero))
	m := New(p, e)

	if !m.Convertible(p.Decl("Nat", nil), p.Decl("Nat", nil)) {
		t.Fatalf("expected an axiom to be convertible with itself")
	}
}

func TestConvertibleEta(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	f := p.Var(3) // some closed function-typed variable, free here
	etaExpanded := p.Abs(p.Sort(level.Zero), p.App(p.Lift(f, 1, 0), p.Var(0)))
	if !m.Convertible(etaExpanded, f) {
		t.Fatalf("expected eta-expanded form to convert with f")
	}
}

func TestIsPropDetectsSortZero(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	if !m.IsProp(p.Sort(level.Zero)) {
		t.Fatalf("expected Sort 0 to be Prop")
	}
	if m.IsProp(p.Sort(level.Succ(level.Zero))) {
		t.Fatalf("expected Sort 1 to not be Prop")
	}
}

func TestConvertibleAppliesProofIrrelevanceViaInferHook(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	// P : Prop is a proposition and f : P -> Prop, applied to two distinct
	// free variables p1, p2 standing for proofs of P.
	prop := p.Sort(level.Zero)
	propP := p.Var(50)
	fnType := p.Prod(propP, prop)
	f := p.Var(100)
	m.Infer = func(t *term.Term) (*term.Term, error) {
		switch t {
		case f:
			return fnType, nil
		case propP:
			return prop, nil
		}
		return nil, errNotFound
	}

	p1, p2 := p.Var(1), p.Var(2)
	lhs := p.App(f, p1)
	rhs := p.App(f, p2)
	if !m.Convertible(lhs, rhs) {
		t.Fatalf("expected proof-irrelevant arguments to be convertible")
	}
}

func TestCanonLevelInWhnfSort(t *testing.T) {
	p := term.NewPool()
	m := New(p, env.New())

	// max(0, 0) canonicalizes to 0.
	messy := p.Sort(level.Max(level.Zero, level.Zero))
	got := m.Whnf(messy)
	want := p.Sort(level.Zero)
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}
