// Package kernelapi is the façade of spec.md §6.2: it wires C1-C5
// (internal/level, internal/term, internal/env, internal/reduce,
// internal/check) behind one exclusive mutex and dispatches one parsed
// internal/ast.Command at a time (spec.md §6.1's
// Define/CheckType/Eval/Search/Import).
//
// Grounded on the teacher's practice of a thin "manager" type that owns
// every process-wide store and exposes one method per operation
// (_examples/SeleniaProject-Orizon/internal/types/core.go's
// CoreTypeManager), with the mutex held for the duration of one kernel
// operation, matching SPEC_FULL's §5 realization note.
package kernelapi

import (
	"fmt"
	"os"
	"sync"

	"github.com/asm-nop/proost-go/internal/ast"
	"github.com/asm-nop/proost-go/internal/check"
	"github.com/asm-nop/proost-go/internal/env"
	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/lexer"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/parser"
	"github.com/asm-nop/proost-go/internal/resolve"
	"github.com/asm-nop/proost-go/internal/term"
)

// Kernel is the process-wide façade: one term pool, one environment,
// and the checker/resolver built over them. A single exclusive mutex
// serialises each kernel operation (AddAxiom, AddDefinition, InferType,
// CheckType, Whnf, NormalForm), readers and writers alike, so the
// inference and conversion inside one operation see one snapshot. Run
// resolves a command's surface terms before taking the mutex, and
// Lookup, Instantiate and Search do not take it — env.Env and term.Pool
// hold their own finer-grained locks for those paths.
type Kernel struct {
	mu       sync.Mutex
	Pool     *term.Pool
	Env      *env.Env
	Checker  *check.Checker
	Resolver *resolve.Resolver
}

// New creates an empty Kernel.
func New() *Kernel {
	pool := term.NewPool()
	e := env.New()
	return &Kernel{
		Pool:     pool,
		Env:      e,
		Checker:  check.New(pool, e),
		Resolver: resolve.New(pool, e),
	}
}

// AddAxiom is spec.md §6.2's add_axiom: declares name with no body after
// checking ty itself is well-sorted.
func (k *Kernel) AddAxiom(name string, univParams []string, ty *term.Term) (*env.Declaration, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	tyTy, err := k.Checker.Infer(nil, ty)
	if err != nil {
		return nil, err
	}
	if w := k.Checker.Reduce.Whnf(tyTy); w.Kind != term.KindSort {
		return nil, errors.NotASort(w)
	}
	return k.Env.Declare(name, univParams, ty)
}

// AddDefinition is spec.md §6.2's add_definition: checks body against ty
// (or infers ty from body when ty is nil) before recording the
// declaration, so the environment is never extended with an ill-typed
// entry (spec.md §7: "any extension is transactional").
func (k *Kernel) AddDefinition(name string, univParams []string, body, ty *term.Term) (*env.Declaration, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if ty == nil {
		inferred, err := k.Checker.Infer(nil, body)
		if err != nil {
			return nil, err
		}
		ty = inferred
	} else if err := k.Checker.Check(nil, body, ty); err != nil {
		return nil, err
	}
	return k.Env.Define(name, univParams, body, ty)
}

// InferType is spec.md §6.2's infer_type.
func (k *Kernel) InferType(t *term.Term) (*term.Term, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Checker.Infer(nil, t)
}

// CheckType is spec.md §6.2's check_type.
func (k *Kernel) CheckType(t, ty *term.Term) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Checker.Check(nil, t, ty)
}

// Whnf is spec.md §6.2's whnf.
func (k *Kernel) Whnf(t *term.Term) *term.Term {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Checker.Reduce.Whnf(t)
}

// NormalForm is spec.md §6.2's normal_form.
func (k *Kernel) NormalForm(t *term.Term) *term.Term {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.Checker.Reduce.NormalForm(t)
}

// Lookup is spec.md §6.2's lookup.
func (k *Kernel) Lookup(name string) (*env.Declaration, error) {
	return k.Env.Lookup(name) // env.Env serialises this itself.
}

// Instantiate is spec.md §6.2's instantiate.
func (k *Kernel) Instantiate(d *env.Declaration, inst []*level.Level) (bodyOrNil, ty *term.Term, err error) {
	return k.Env.Instantiate(k.Pool, d, inst)
}

// Result is the outcome of running one Command: the textual report the
// host prints, matching what a REPL turns directly into a line of
// output.
type Result struct {
	Text string
}

// RunSource parses and runs every command in src in order, stopping at
// the first error (spec.md §7: "the kernel reports the first error and
// the caller decides whether to continue").
func (k *Kernel) RunSource(filename, src string) ([]Result, error) {
	p := parser.New(lexer.New(filename, src))
	var results []Result
	for {
		if p.AtEOF() {
			break
		}
		cmd := p.ParseCommand()
		if errs := p.Errors(); len(errs) != 0 {
			return results, errs[0]
		}
		if cmd == nil {
			break
		}
		res, err := k.Run(cmd)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// Run dispatches one parsed command (spec.md §6.1's Define, CheckType,
// GetType, Eval, Search, Import) against the kernel, resolving its
// surface terms to de Bruijn form first (internal/resolve).
func (k *Kernel) Run(cmd ast.Command) (Result, error) {
	switch cmd := cmd.(type) {
	case *ast.Define:
		return k.runDefine(cmd)
	case *ast.CheckType:
		return k.runCheckType(cmd)
	case *ast.Eval:
		return k.runEval(cmd)
	case *ast.Search:
		names := k.Env.Search(cmd.Substr)
		return Result{Text: fmt.Sprintf("%v", names)}, nil
	case *ast.Import:
		return k.runImport(cmd)
	default:
		return Result{}, fmt.Errorf("kernelapi: unhandled command %T", cmd)
	}
}

func (k *Kernel) runDefine(cmd *ast.Define) (Result, error) {
	doms, scope, err := k.Resolver.ResolveBinderGroup(cmd.Args, cmd.UnivParams)
	if err != nil {
		return Result{}, err
	}
	body, err := k.Resolver.ResolveInScope(cmd.Body, scope)
	if err != nil {
		return Result{}, err
	}
	fullBody := k.Resolver.Wrap(doms, body, true)

	var fullTy *term.Term
	if cmd.Type != nil {
		ty, err := k.Resolver.ResolveInScope(cmd.Type, scope)
		if err != nil {
			return Result{}, err
		}
		fullTy = k.Resolver.Wrap(doms, ty, false)
	}

	if _, err := k.AddDefinition(cmd.Name, cmd.UnivParams, fullBody, fullTy); err != nil {
		return Result{}, err
	}
	return Result{Text: fmt.Sprintf("%s defined", cmd.Name)}, nil
}

func (k *Kernel) runCheckType(cmd *ast.CheckType) (Result, error) {
	t, err := k.Resolver.ResolveTerm(cmd.Term, nil)
	if err != nil {
		return Result{}, err
	}
	if cmd.Type == nil {
		ty, err := k.InferType(t)
		if err != nil {
			return Result{}, err
		}
		return Result{Text: ty.String()}, nil
	}
	ty, err := k.Resolver.ResolveTerm(cmd.Type, nil)
	if err != nil {
		return Result{}, err
	}
	if err := k.CheckType(t, ty); err != nil {
		return Result{}, err
	}
	return Result{Text: "ok"}, nil
}

func (k *Kernel) runEval(cmd *ast.Eval) (Result, error) {
	t, err := k.Resolver.ResolveTerm(cmd.Term, nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Text: k.NormalForm(t).String()}, nil
}

func (k *Kernel) runImport(cmd *ast.Import) (Result, error) {
	for _, file := range cmd.Files {
		data, err := os.ReadFile(file)
		if err != nil {
			return Result{}, fmt.Errorf("import %s: %w", file, err)
		}
		if _, err := k.RunSource(file, string(data)); err != nil {
			return Result{}, err
		}
	}
	return Result{Text: fmt.Sprintf("imported %d file(s)", len(cmd.Files))}, nil
}
