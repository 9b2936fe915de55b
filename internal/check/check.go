// Package check implements bidirectional type checking over the kernel's
// term grammar (spec.md §4.5): Infer synthesizes a type, Check verifies
// one against an expected type under definitional equality.
//
// Ported from the original kernel's Term::infer/Term::check
// (_examples/original_source/kernel/src/type_checker.rs), generalized
// from its arena-threaded `self.infer(arena)` style to an explicit
// *env.Env plus Context argument, matching the teacher's practice of
// threading an explicit manager/arena argument through type operations
// (_examples/SeleniaProject-Orizon/internal/types/core.go).
package check

import (
	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/reduce"
	"github.com/asm-nop/proost-go/internal/term"
)

// Context is the typing context Γ of spec.md §3.5: an ordered list of
// binder types, innermost (de Bruijn index 0) first. Each recorded type
// is stored exactly as it was when bound — Infer is responsible for
// lifting it past intervening binders on lookup.
type Context []*term.Term

// push returns the context obtained by entering one more binder whose
// domain is ty.
func (c Context) push(ty *term.Term) Context {
	out := make(Context, len(c)+1)
	out[0] = ty
	copy(out[1:], c)
	return out
}

// Checker couples a term pool, environment, and reduction machine: the
// three process-wide stores a checking operation needs (spec.md §5).
type Checker struct {
	Pool   *term.Pool
	Env    *env.Env
	Reduce *reduce.Machine
}

// New creates a Checker over pool and environment e. The embedded
// reduce.Machine is wired back to Checker.Infer so that Convertible can
// apply Prop proof irrelevance to App arguments (spec.md §4.4 rule 8).
func New(pool *term.Pool, e *env.Env) *Checker {
	m := reduce.New(pool, e)
	c := &Checker{Pool: pool, Env: e, Reduce: m}
	m.Infer = func(t *term.Term) (*term.Term, error) {
		return c.Infer(nil, t)
	}
	return c
}

// Infer synthesizes the type of t under ctx (spec.md §4.5's infer
// table), or fails if t is ill-typed.
func (c *Checker) Infer(ctx Context, t *term.Term) (*term.Term, error) {
	switch t.Kind {
	case term.KindVar:
		if t.Index < 0 || t.Index >= len(ctx) {
			return nil, errors.UnboundVariable(t.Index, len(ctx))
		}
		return c.Pool.Lift(ctx[t.Index], t.Index+1, 0), nil

	case term.KindSort:
		return c.Pool.Sort(level.Succ(t.Level)), nil

	case term.KindProd:
		sDom, err := c.sortOf(ctx, t.Domain)
		if err != nil {
			return nil, err
		}
		sCod, err := c.sortOf(ctx.push(t.Domain), t.Body)
		if err != nil {
			return nil, err
		}
		return c.Pool.Sort(level.Canon(level.IMax(sDom, sCod))), nil

	case term.KindAbs:
		if _, err := c.sortOf(ctx, t.Domain); err != nil {
			return nil, err
		}
		bodyTy, err := c.Infer(ctx.push(t.Domain), t.Body)
		if err != nil {
			return nil, err
		}
		return c.Pool.Prod(t.Domain, bodyTy), nil

	case term.KindApp:
		fnTy, err := c.Infer(ctx, t.Fun)
		if err != nil {
			return nil, err
		}
		fnTyWhnf := c.Reduce.Whnf(fnTy)
		if fnTyWhnf.Kind != term.KindProd {
			return nil, errors.NotAFunctionType(t.Fun, fnTyWhnf)
		}
		if err := c.Check(ctx, t.Arg, fnTyWhnf.Domain); err != nil {
			return nil, err
		}
		return c.Pool.SubstTop(fnTyWhnf.Body, t.Arg), nil

	case term.KindDecl:
		d, err := c.Env.Lookup(t.Name)
		if err != nil {
			return nil, err
		}
		_, ty, err := c.Env.Instantiate(c.Pool, d, t.Instance)
		return ty, err

	default:
		panic("check: unhandled term kind")
	}
}

// sortOf infers the type of t and requires it to whnf to a Sort,
// returning that sort's level (spec.md §4.5: "the checker must compute
// the sort of a type ... require the whnf to be a Sort").
func (c *Checker) sortOf(ctx Context, t *term.Term) (*level.Level, error) {
	ty, err := c.Infer(ctx, t)
	if err != nil {
		return nil, err
	}
	w := c.Reduce.Whnf(ty)
	if w.Kind != term.KindSort {
		return nil, errors.NotASort(w)
	}
	return w.Level, nil
}

// Check asserts Γ ⊢ t : ty (spec.md §4.5: "check is defined as
// infer(Γ,t) ≡ T under conversion").
func (c *Checker) Check(ctx Context, t, ty *term.Term) error {
	tty, err := c.Infer(ctx, t)
	if err != nil {
		return err
	}
	if !c.Reduce.Convertible(tty, ty) {
		return errors.TypeMismatch(c.Reduce.Whnf(ty), c.Reduce.Whnf(tty))
	}
	return nil
}
