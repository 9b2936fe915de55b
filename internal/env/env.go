// Package env implements the kernel's global environment (spec.md §3.4,
// §4.3): a persistent, insertion-ordered mapping from declaration name to
// its universe parameters, type, and (for definitions) body.
//
// Grounded on the original kernel's Declaration API surface (referenced
// throughout _examples/original_source/kernel/src/type_checker.rs's
// Declaration::infer/check) and on the teacher's ordered-map idiom for
// deterministic iteration (a map plus a parallel slice of insertion
// order), as used in
// _examples/SeleniaProject-Orizon/internal/packagemanager/registry.go.
package env

import (
	"strings"
	"sync"

	"github.com/asm-nop/proost-go/internal/errors"
	"github.com/asm-nop/proost-go/internal/level"
	"github.com/asm-nop/proost-go/internal/term"
)

// Declaration is one entry of the global environment (spec.md §3.3): a
// name, its universe parameter names (only the count matters to the
// kernel; names are kept for diagnostics), a type, and an optional body.
// Body and Type are closed under the declared universe parameters and
// under no term binders. Declarations are immutable once inserted.
type Declaration struct {
	Name        string
	UnivParams  []string // len(UnivParams) is the declaration's arity
	Body        *term.Term // nil for an axiom
	Type        *term.Term
}

// IsAxiom reports whether d has no body.
func (d *Declaration) IsAxiom() bool { return d.Body == nil }

// Arity returns the number of universe parameters d expects.
func (d *Declaration) Arity() int { return len(d.UnivParams) }

// Env is the process-wide global environment. It follows the
// single-writer/many-reader discipline of spec.md §5: Declare/Define take
// the write lock for the duration of the call; Lookup/Search take the
// read lock for the duration of the call (spec.md §4.3). Instantiate
// takes no lock: it reads only the Declaration it is given.
type Env struct {
	mu     sync.RWMutex
	byName map[string]*Declaration
	order  []string // insertion order, for deterministic Search/printing
}

// New creates an empty global environment.
func New() *Env {
	return &Env{byName: make(map[string]*Declaration)}
}

// Declare records an axiom: a name with universe parameters and a type,
// but no body (spec.md §4.3 "declare"). Fails with DuplicateDeclaration
// if name is already bound.
func (e *Env) Declare(name string, univParams []string, ty *term.Term) (*Declaration, error) {
	return e.insert(&Declaration{Name: name, UnivParams: univParams, Type: ty})
}

// Define records a definition: a name with universe parameters, a body,
// and a type. Define does not re-typecheck the body against the type —
// the caller is responsible (spec.md §4.3 "does not re-typecheck").
func (e *Env) Define(name string, univParams []string, body, ty *term.Term) (*Declaration, error) {
	return e.insert(&Declaration{Name: name, UnivParams: univParams, Body: body, Type: ty})
}

func (e *Env) insert(d *Declaration) (*Declaration, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.byName[d.Name]; exists {
		return nil, errors.DuplicateDeclaration(d.Name)
	}
	e.byName[d.Name] = d
	e.order = append(e.order, d.Name)
	return d, nil
}

// Lookup returns the declaration bound to name, or UnknownDeclaration.
func (e *Env) Lookup(name string) (*Declaration, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	d, ok := e.byName[name]
	if !ok {
		return nil, errors.UnknownDeclaration(name)
	}
	return d, nil
}

// Instantiate substitutes the universe instance vector inst into d's
// type, and its body if present (spec.md §4.3 "instantiate"). Fails with
// UniverseArityMismatch when len(inst) != d.Arity().
func (e *Env) Instantiate(p *term.Pool, d *Declaration, inst []*level.Level) (bodyOrNil, ty *term.Term, err error) {
	if len(inst) != d.Arity() {
		return nil, nil, errors.UniverseArityMismatch(d.Name, d.Arity(), len(inst))
	}
	ty = p.SubstUnivs(d.Type, inst)
	if d.Body == nil {
		return nil, ty, nil
	}
	return p.SubstUnivs(d.Body, inst), ty, nil
}

// Search returns the names of declarations containing substr, in
// insertion order — the "trivial by-name lookup" spec.md's Non-goals
// permit and spec.md §6.1's `search NAME` command performs.
func (e *Env) Search(substr string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out []string
	for _, name := range e.order {
		if strings.Contains(name, substr) {
			out = append(out, name)
		}
	}
	return out
}

// Names returns every declared name in insertion order.
func (e *Env) Names() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]string, len(e.order))
	copy(out, e.order)
	return out
}
