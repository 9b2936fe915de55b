package parser

import (
	"testing"

	"github.com/asm-nop/proost-go/internal/ast"
	"github.com/asm-nop/proost-go/internal/lexer"
)

func parse(src string) (ast.Command, []error) {
	p := New(lexer.New("", src))
	cmd := p.ParseCommand()
	return cmd, p.Errors()
}

func TestParseIdentityDefinition(t *testing.T) {
	cmd, errs := parse("def id.{u} (A: Sort u) (x: A) := x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	def, ok := cmd.(*ast.Define)
	if !ok {
		t.Fatalf("expected *ast.Define, got %T", cmd)
	}
	if def.Name != "id" {
		t.Fatalf("got name %q", def.Name)
	}
	if len(def.UnivParams) != 1 || def.UnivParams[0] != "u" {
		t.Fatalf("got univ params %v", def.UnivParams)
	}
	if len(def.Args) != 2 {
		t.Fatalf("got %d args, want 2", len(def.Args))
	}
	if def.Args[0].Name != "A" || def.Args[1].Name != "x" {
		t.Fatalf("got arg names %q, %q", def.Args[0].Name, def.Args[1].Name)
	}
	ident, ok := def.Body.(*ast.Ident)
	if !ok || ident.Name != "x" {
		t.Fatalf("expected body to be ident x, got %#v", def.Body)
	}
}

func TestParseDependentProduct(t *testing.T) {
	cmd, errs := parse("check id : (u: _) (A: Sort u) -> A -> A")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ct, ok := cmd.(*ast.CheckType)
	if !ok {
		t.Fatalf("expected *ast.CheckType, got %T", cmd)
	}
	prod, ok := ct.Type.(*ast.Prod)
	if !ok {
		t.Fatalf("expected *ast.Prod, got %T", ct.Type)
	}
	if len(prod.Binders) != 1 || prod.Binders[0].Name != "u" {
		t.Fatalf("got binders %v", prod.Binders)
	}
	inner, ok := prod.Codomain.(*ast.Prod)
	if !ok || len(inner.Binders) != 1 || inner.Binders[0].Name != "A" {
		t.Fatalf("expected nested product over A, got %#v", prod.Codomain)
	}
}

func TestParseNonDependentArrow(t *testing.T) {
	cmd, errs := parse("check (fun (A: Prop) => A) : Prop -> Prop")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ct := cmd.(*ast.CheckType)
	prod, ok := ct.Type.(*ast.Prod)
	if !ok {
		t.Fatalf("expected *ast.Prod, got %T", ct.Type)
	}
	if prod.Binders[0].Name != "_" {
		t.Fatalf("expected anonymous binder for non-dependent arrow, got %q", prod.Binders[0].Name)
	}
	abs, ok := ct.Term.(*ast.Abs)
	if !ok || len(abs.Binders) != 1 || abs.Binders[0].Name != "A" {
		t.Fatalf("expected fun (A: Prop) => A, got %#v", ct.Term)
	}
}

func TestParseUniverseInstanceAndApplication(t *testing.T) {
	cmd, errs := parse("eval id.{0} Prop (fun P: Prop => P)")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ev := cmd.(*ast.Eval)
	outer, ok := ev.Term.(*ast.App)
	if !ok {
		t.Fatalf("expected outer App, got %#v", ev.Term)
	}
	inner, ok := outer.Fun.(*ast.App)
	if !ok {
		t.Fatalf("expected inner App, got %#v", outer.Fun)
	}
	ident, ok := inner.Fun.(*ast.Ident)
	if !ok || ident.Name != "id" || len(ident.Instance) != 1 {
		t.Fatalf("expected id.{0}, got %#v", inner.Fun)
	}
}

func TestParseKCombinatorArityAnnotation(t *testing.T) {
	cmd, errs := parse("check K.{0,1} : (A: Prop) (B: Type) -> A -> B -> A")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ct := cmd.(*ast.CheckType)
	ident, ok := ct.Term.(*ast.Ident)
	if !ok || ident.Name != "K" || len(ident.Instance) != 2 {
		t.Fatalf("expected K.{0,1}, got %#v", ct.Term)
	}
}

func TestParseSearchAndGetType(t *testing.T) {
	cmd, errs := parse("search and")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	s, ok := cmd.(*ast.Search)
	if !ok || s.Substr != "and" {
		t.Fatalf("expected search and, got %#v", cmd)
	}

	cmd2, errs2 := parse("check Prop")
	if len(errs2) != 0 {
		t.Fatalf("unexpected errors: %v", errs2)
	}
	ct, ok := cmd2.(*ast.CheckType)
	if !ok || ct.Type != nil {
		t.Fatalf("expected bare GetType form, got %#v", cmd2)
	}
}
