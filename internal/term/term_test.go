package term

import (
	"testing"

	"github.com/asm-nop/proost-go/internal/level"
)

func TestInterningSharesIdenticalSubterms(t *testing.T) {
	p := NewPool()
	a := p.Sort(level.Zero)
	b := p.Sort(level.Zero)
	if a != b {
		t.Fatalf("expected structurally identical Sort nodes to be the same pointer")
	}

	abs1 := p.Abs(a, p.Var(0))
	abs2 := p.Abs(b, p.Var(0))
	if abs1 != abs2 {
		t.Fatalf("expected structurally identical Abs nodes to be interned to the same pointer")
	}
}

func TestLiftShortCircuitsOnZero(t *testing.T) {
	p := NewPool()
	tm := p.App(p.Var(0), p.Var(1))
	if p.Lift(tm, 0, 0) != tm {
		t.Fatalf("Lift by 0 should return the same term")
	}
}

func TestLiftAddsToFreeVars(t *testing.T) {
	p := NewPool()
	// λ. #0 #1 — #0 is bound, #1 is free.
	body := p.App(p.Var(0), p.Var(1))
	lifted := p.Lift(body, 2, 1) // cutoff 1: only #1 (>= 1) shifts.
	want := p.App(p.Var(0), p.Var(3))
	if lifted != want {
		t.Fatalf("got %s, want %s", lifted.String(), want.String())
	}
}

func TestSubstTopBeta(t *testing.T) {
	p := NewPool()
	// body = #0 #1 under one binder; substituting #0 with `u` (a free
	// variable, unchanged by a lift of 0) should leave `u #0` (the outer
	// #1 shifts down to #0).
	u := p.Var(42)
	body := p.App(p.Var(0), p.Var(1))
	got := p.SubstTop(body, u)
	want := p.App(u, p.Var(0))
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestSubstUnivsInstantiatesSort(t *testing.T) {
	p := NewPool()
	tm := p.Sort(level.Var(0))
	got := p.SubstUnivs(tm, []*level.Level{level.FromInt(3)})
	want := p.Sort(level.FromInt(3))
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestMaxFreeIndex(t *testing.T) {
	p := NewPool()
	tm := p.Abs(p.Var(5), p.Var(0)) // domain free #5, body bound #0.
	if got := MaxFreeIndex(tm); got != 5 {
		t.Fatalf("expected max free index 5, got %d", got)
	}
	closed := p.Abs(p.Sort(level.Zero), p.Var(0))
	if got := MaxFreeIndex(closed); got != -1 {
		t.Fatalf("expected closed term to report -1, got %d", got)
	}
}
