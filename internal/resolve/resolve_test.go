package resolve

import (
	"testing"

	"github.com/asm-nop/proost-go/internal/ast"
	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/lexer"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/parser"
	"github.com/asm-nop/proost-go/internal/term"
)

func parseTerm(t *testing.T, src string) ast.Term {
	t.Helper()
	cmd, errs := func() (ast.Command, []error) {
		p := parser.New(lexer.New("", "eval "+src))
		return p.ParseCommand(), p.Errors()
	}()
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return cmd.(*ast.Eval).Term
}

func TestResolveIdentityBody(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	r := New(p, e)

	body := parseTerm(t, "fun (A: Sort u) (x: A) => x")
	got, err := r.ResolveTerm(body, []string{"u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := p.Abs(p.Sort(level.Var(0)), p.Abs(p.Var(0), p.Var(0)))
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestResolveUnboundIdentifierFails(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	r := New(p, e)

	_, err := r.ResolveTerm(parseTerm(t, "nope"), nil)
	kerr, ok := err.(*errors.Error)
	if !ok || kerr.Kind != errors.KindUnknownDeclaration {
		t.Fatalf("expected UnknownDeclaration, got %v", err)
	}
}

func TestResolveDeclReferenceChecksArity(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	r := New(p, e)
	e.Declare("id", []string{"u"}, p.Sort(level.Var(0)))

	if _, err := r.ResolveTerm(parseTerm(t, "id.{0}"), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := r.ResolveTerm(parseTerm(t, "id"), nil)
	kerr, ok := err.(*errors.Error)
	if !ok || kerr.Kind != errors.KindUniverseArityMismatch {
		t.Fatalf("expected UniverseArityMismatch, got %v", err)
	}
}

func TestResolveNonDependentProduct(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	r := New(p, e)

	got, err := r.ResolveTerm(parseTerm(t, "Prop -> Prop"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prop := p.Sort(level.Zero)
	want := p.Prod(prop, prop)
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}

func TestResolveBinderGroupAndWrap(t *testing.T) {
	p := term.NewPool()
	e := env.New()
	r := New(p, e)

	args := []ast.Binder{
		{Name: "A", Type: parseTerm(t, "Sort u")},
		{Name: "x", Type: parseTerm(t, "A")},
	}
	doms, s, err := r.ResolveBinderGroup(args, []string{"u"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	body, err := r.resolveTerm(parseTerm(t, "x"), s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := r.Wrap(doms, body, true)
	want := p.Abs(p.Sort(level.Var(0)), p.Abs(p.Var(0), p.Var(0)))
	if got != want {
		t.Fatalf("got %s, want %s", got.String(), want.String())
	}
}
