package env

import (
	"testing"

	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

func TestDeclareThenLookup(t *testing.T) {
	p := term.NewPool()
	e := New()

	prop := p.Sort(level.Zero)
	if _, err := e.Declare("Empty", nil, prop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, err := e.Lookup("Empty")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.IsAxiom() {
		t.Fatalf("expected axiom")
	}
}

func TestDuplicateDeclarationFails(t *testing.T) {
	p := term.NewPool()
	e := New()
	prop := p.Sort(level.Zero)

	if _, err := e.Declare("x", nil, prop); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := e.Declare("x", nil, prop)
	if err == nil {
		t.Fatalf("expected duplicate declaration error")
	}
	kerr, ok := err.(*errors.Error)
	if !ok || kerr.Kind != errors.KindDuplicateDeclaration {
		t.Fatalf("expected DuplicateDeclaration, got %v", err)
	}
}

func TestLookupUnknown(t *testing.T) {
	e := New()
	_, err := e.Lookup("nope")
	kerr, ok := err.(*errors.Error)
	if !ok || kerr.Kind != errors.KindUnknownDeclaration {
		t.Fatalf("expected UnknownDeclaration, got %v", err)
	}
}

func TestInstantiateArityMismatch(t *testing.T) {
	p := term.NewPool()
	e := New()
	sortU := p.Sort(level.Var(0))
	d, _ := e.Declare("id_type", []string{"u"}, sortU)

	_, _, err := e.Instantiate(p, d, nil)
	kerr, ok := err.(*errors.Error)
	if !ok || kerr.Kind != errors.KindUniverseArityMismatch {
		t.Fatalf("expected UniverseArityMismatch, got %v", err)
	}
}

func TestInstantiateSubstitutesUnivs(t *testing.T) {
	p := term.NewPool()
	e := New()
	sortU := p.Sort(level.Var(0))
	d, _ := e.Declare("t", []string{"u"}, sortU)

	_, ty, err := e.Instantiate(p, d, []*level.Level{level.FromInt(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := p.Sort(level.FromInt(2))
	if ty != want {
		t.Fatalf("got %s, want %s", ty, want)
	}
}

func TestSearchIsInsertionOrdered(t *testing.T) {
	p := term.NewPool()
	e := New()
	prop := p.Sort(level.Zero)
	e.Declare("and_intro", nil, prop)
	e.Declare("and_elim_l", nil, prop)
	e.Declare("or_intro", nil, prop)

	got := e.Search("and")
	want := []string{"and_intro", "and_elim_l"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
