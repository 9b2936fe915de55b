// Package resolve binds the named surface syntax of internal/ast to
// the kernel's de Bruijn representation (internal/term, internal/level)
// — the interface boundary spec.md §1 calls out ("we specify only at
// the interface boundary... kernel-level terms carry de Bruijn indices;
// surface-level names are a front-end concern").
//
// Grounded on the teacher's own name-resolution pass
// (_examples/SeleniaProject-Orizon/internal/packagemanager/resolver.go:
// a *Resolver holding a running scope, reporting an error rather than
// guessing on an unresolved or mismatched reference) adapted from
// package-graph resolution to lexical-scope/de-Bruijn resolution.
package resolve

import (
	"github.com/asm-nop/proost-go/internal/ast"
	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

// scope is the resolver's view of the typing context: term-level bound
// names innermost-first (parallel to internal/check.Context) plus the
// universe parameter names in scope for the declaration being resolved.
type scope struct {
	names      []string // names[0] is the innermost (most recently bound)
	univParams []string
}

func (s scope) pushName(name string) scope {
	out := scope{names: make([]string, len(s.names)+1), univParams: s.univParams}
	out.names[0] = name
	copy(out.names[1:], s.names)
	return out
}

func (s scope) indexOf(name string) (int, bool) {
	for i, n := range s.names {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (s scope) univIndexOf(name string) (int, bool) {
	for i, n := range s.univParams {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// Resolver turns ast.Term/ast.Universe into term.Term/level.Level,
// consulting Env for Decl references and arity (spec.md §4.3).
type Resolver struct {
	Pool *term.Pool
	Env  *env.Env
}

// New creates a Resolver over pool and environment e.
func New(pool *term.Pool, e *env.Env) *Resolver {
	return &Resolver{Pool: pool, Env: e}
}

// ResolveUniverse resolves a surface universe expression against the
// universe parameter names in scope.
func (r *Resolver) ResolveUniverse(u ast.Universe, univParams []string) (*level.Level, error) {
	return r.resolveUniverse(u, scope{univParams: univParams})
}

func (r *Resolver) resolveUniverse(u ast.Universe, s scope) (*level.Level, error) {
	switch u := u.(type) {
	case *ast.UniverseLiteral:
		return level.FromInt(u.N), nil

	case *ast.UniverseVar:
		i, ok := s.univIndexOf(u.Name)
		if !ok {
			return nil, errors.UnknownDeclaration(u.Name)
		}
		return level.Var(i), nil

	case *ast.UniverseOffset:
		base, err := r.resolveUniverse(u.Base, s)
		if err != nil {
			return nil, err
		}
		return level.AddConst(base, u.N), nil

	case *ast.UniverseMax:
		l, err := r.resolveUniverse(u.Left, s)
		if err != nil {
			return nil, err
		}
		rr, err := r.resolveUniverse(u.Right, s)
		if err != nil {
			return nil, err
		}
		return level.Max(l, rr), nil

	case *ast.UniverseIMax:
		l, err := r.resolveUniverse(u.Left, s)
		if err != nil {
			return nil, err
		}
		rr, err := r.resolveUniverse(u.Right, s)
		if err != nil {
			return nil, err
		}
		return level.IMax(l, rr), nil

	default:
		panic("resolve: unhandled universe kind")
	}
}

// ResolveTerm resolves a surface term against the given universe
// parameter names, with an empty term-level scope (top-level use; Args
// binders must already have been pushed by the caller for definition
// bodies — see ResolveBinderGroup and ResolveInScope).
func (r *Resolver) ResolveTerm(t ast.Term, univParams []string) (*term.Term, error) {
	return r.resolveTerm(t, scope{univParams: univParams})
}

func (r *Resolver) resolveTerm(t ast.Term, s scope) (*term.Term, error) {
	switch t := t.(type) {
	case *ast.Ident:
		return r.resolveIdent(t, s)

	case *ast.SortExpr:
		lvl, err := r.resolveUniverse(t.Level, s)
		if err != nil {
			return nil, err
		}
		return r.Pool.Sort(lvl), nil

	case *ast.App:
		fn, err := r.resolveTerm(t.Fun, s)
		if err != nil {
			return nil, err
		}
		arg, err := r.resolveTerm(t.Arg, s)
		if err != nil {
			return nil, err
		}
		return r.Pool.App(fn, arg), nil

	case *ast.Abs:
		return r.resolveBinders(t.Binders, t.Body, s, true)

	case *ast.Prod:
		return r.resolveBinders(t.Binders, t.Codomain, s, false)

	default:
		panic("resolve: unhandled term kind")
	}
}

// resolveBinders folds a flattened binder list into nested Abs/Prod
// nodes, pushing one name per binder before resolving the rest.
func (r *Resolver) resolveBinders(binders []ast.Binder, rest ast.Term, s scope, isAbs bool) (*term.Term, error) {
	if len(binders) == 0 {
		return r.resolveTerm(rest, s)
	}
	dom, err := r.resolveTerm(binders[0].Type, s)
	if err != nil {
		return nil, err
	}
	body, err := r.resolveBinders(binders[1:], rest, s.pushName(binders[0].Name), isAbs)
	if err != nil {
		return nil, err
	}
	if isAbs {
		return r.Pool.Abs(dom, body), nil
	}
	return r.Pool.Prod(dom, body), nil
}

func (r *Resolver) resolveIdent(id *ast.Ident, s scope) (*term.Term, error) {
	if i, ok := s.indexOf(id.Name); ok {
		if len(id.Instance) != 0 {
			return nil, errors.UniverseArityMismatch(id.Name, 0, len(id.Instance))
		}
		return r.Pool.Var(i), nil
	}

	d, err := r.Env.Lookup(id.Name)
	if err != nil {
		return nil, err
	}
	if len(id.Instance) != d.Arity() {
		return nil, errors.UniverseArityMismatch(id.Name, d.Arity(), len(id.Instance))
	}
	inst := make([]*level.Level, len(id.Instance))
	for i, u := range id.Instance {
		lvl, err := r.resolveUniverse(u, s)
		if err != nil {
			return nil, err
		}
		inst[i] = lvl
	}
	return r.Pool.Decl(id.Name, inst), nil
}

// ResolveBinderGroup resolves a definition's argument list, returning
// the resolved domain types in binder order (innermost-last) alongside
// the scope extended by all of them — used by kernelapi to build a
// definition's full type and body around a possibly-absent result type.
func (r *Resolver) ResolveBinderGroup(args []ast.Binder, univParams []string) ([]*term.Term, scope, error) {
	s := scope{univParams: univParams}
	doms := make([]*term.Term, len(args))
	for i, b := range args {
		dom, err := r.resolveTerm(b.Type, s)
		if err != nil {
			return nil, scope{}, err
		}
		doms[i] = dom
		s = s.pushName(b.Name)
	}
	return doms, s, nil
}

// ResolveInScope resolves t against a scope previously returned by
// ResolveBinderGroup — used to resolve a definition's body and optional
// result type against the same argument scope (spec.md §6.1: "def NAME
// Args [: T] := term", where T and term share Args' bindings).
func (r *Resolver) ResolveInScope(t ast.Term, s scope) (*term.Term, error) {
	return r.resolveTerm(t, s)
}

// Wrap builds nested Prod (isAbs=false) or Abs (isAbs=true) constructors
// around inner using doms in the same outer-to-inner order
// ResolveBinderGroup returned them. Domains are used as given, without
// lifting: each was already resolved in the scope of the binders before it.
func (r *Resolver) Wrap(doms []*term.Term, inner *term.Term, isAbs bool) *term.Term {
	for i := len(doms) - 1; i >= 0; i-- {
		if isAbs {
			inner = r.Pool.Abs(doms[i], inner)
		} else {
			inner = r.Pool.Prod(doms[i], inner)
		}
	}
	return inner
}
