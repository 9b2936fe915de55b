// Package ast defines the surface syntax tree for the kernel's front
// end (spec.md §6.1): named terms and universe expressions, produced by
// internal/parser and consumed by internal/resolve.
package ast

import "github.com/asm-nop/proost-go/internal/position"

// Universe is a surface universe expression: a literal, a named
// variable, `ℓ + n`, `max ℓ ℓ'`, or `imax ℓ ℓ'`.
type Universe interface {
	Span() position.Span
	universe()
}

type UniverseLiteral struct {
	Pos position.Span
	N   int
}

type UniverseVar struct {
	Pos  position.Span
	Name string
}

// UniverseOffset is `Base + N`.
type UniverseOffset struct {
	Pos  position.Span
	Base Universe
	N    int
}

type UniverseMax struct {
	Pos         position.Span
	Left, Right Universe
}

type UniverseIMax struct {
	Pos         position.Span
	Left, Right Universe
}

func (u *UniverseLiteral) Span() position.Span { return u.Pos }
func (u *UniverseVar) Span() position.Span     { return u.Pos }
func (u *UniverseOffset) Span() position.Span  { return u.Pos }
func (u *UniverseMax) Span() position.Span     { return u.Pos }
func (u *UniverseIMax) Span() position.Span    { return u.Pos }

func (*UniverseLiteral) universe() {}
func (*UniverseVar) universe()     {}
func (*UniverseOffset) universe()  {}
func (*UniverseMax) universe()     {}
func (*UniverseIMax) universe()    {}

// Term is a surface term: a name reference, Sort expression, function
// application, abstraction, or dependent product.
type Term interface {
	Span() position.Span
	term()
}

// Ident is a reference to a bound name or a global declaration,
// optionally instantiated at explicit universe arguments (`name.{u,v}`).
// Resolution (internal/resolve) decides which case applies.
type Ident struct {
	Pos      position.Span
	Name     string
	Instance []Universe // nil unless `.{...}` was written
}

// SortExpr is `Prop`, `Type k`, or `Sort ℓ`.
type SortExpr struct {
	Pos   position.Span
	Level Universe
}

// App is left-associative juxtaposition `f a`.
type App struct {
	Pos      position.Span
	Fun, Arg Term
}

// Binder is one name bound at a given domain type, as written in a
// single `(x y z : τ)` group or a `fun`/product argument list.
type Binder struct {
	Name string
	Type Term
}

// Abs is `fun (x : τ) (...) => body`, already flattened into one binder
// per name (spec.md §6.1: "each argument group introduces one binder per
// name").
type Abs struct {
	Pos     position.Span
	Binders []Binder
	Body    Term
}

// Prod is `(x : τ) -> u` or the non-dependent `τ -> u` (Binders[i].Name
// is "_" for the latter).
type Prod struct {
	Pos     position.Span
	Binders []Binder
	Codomain Term
}

func (t *Ident) Span() position.Span    { return t.Pos }
func (t *SortExpr) Span() position.Span { return t.Pos }
func (t *App) Span() position.Span      { return t.Pos }
func (t *Abs) Span() position.Span      { return t.Pos }
func (t *Prod) Span() position.Span     { return t.Pos }

func (*Ident) term()    {}
func (*SortExpr) term() {}
func (*App) term()      {}
func (*Abs) term()      {}
func (*Prod) term()     {}

// Command is one top-level input: a definition or a query, per spec.md
// §6.1's command productions.
type Command interface {
	Span() position.Span
	command()
}

// Define is `def NAME.{u...} Args [: T] := term` (spec.md §6.1's four
// Define/DefineCheckType/polymorphic variants collapse into one form,
// per SPEC_FULL.md's open-question resolution: polymorphic iff
// UnivParams is non-nil).
type Define struct {
	Pos        position.Span
	Name       string
	UnivParams []string // nil unless `.{u...}` was written
	Args       []Binder
	Type       Term // nil unless `: T` was written
	Body       Term
}

// CheckType is `check term : T` (Type non-nil) or `check term` (GetType,
// Type nil).
type CheckType struct {
	Pos  position.Span
	Term Term
	Type Term // nil for the bare GetType form
}

// Eval is `eval term`.
type Eval struct {
	Pos  position.Span
	Term Term
}

// Search is `search NAME`.
type Search struct {
	Pos    position.Span
	Substr string
}

// Import is `import file ...`.
type Import struct {
	Pos   position.Span
	Files []string
}

func (c *Define) Span() position.Span    { return c.Pos }
func (c *CheckType) Span() position.Span { return c.Pos }
func (c *Eval) Span() position.Span      { return c.Pos }
func (c *Search) Span() position.Span    { return c.Pos }
func (c *Import) Span() position.Span    { return c.Pos }

func (*Define) command()    {}
func (*CheckType) command() {}
func (*Eval) command()      {}
func (*Search) command()    {}
func (*Import) command()    {}
