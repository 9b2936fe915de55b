package term

import (
	"sync"

	"github.com/asm-nop/proost-go/internal/level"
)

// Pool is the process-wide (per kernel session) interning pool of
// Section 3.6: "Interned term and level nodes are owned by a process-wide
// pool whose lifetime is the kernel session; they are immutable once
// created." Construction of every Term variant is routed through a Pool
// so that reference equality of two Terms implies structural identity,
// matching spec.md §4.2 ("every construction is routed through it").
//
// Pool follows the single-writer/many-reader discipline of spec.md §5:
// insertion (interning a new node) takes the exclusive lock; a lookup
// that hits an existing node only needs the shared lock to read it, but
// because Go's sync.RWMutex does not support lock upgrade, intern takes
// the write lock outright — grounded on the teacher's stringPoolMu usage
// in CoreTypeManager, which does the same for its string pool.
type Pool struct {
	mu    sync.RWMutex
	nodes map[key]*Term
}

// NewPool creates a fresh, empty interning pool for one kernel session.
func NewPool() *Pool {
	return &Pool{nodes: make(map[key]*Term)}
}

// intern returns the canonical, shared instance of t: if a structurally
// identical term was already interned, that instance is returned;
// otherwise t itself is recorded as canonical.
func (p *Pool) intern(t *Term) *Term {
	k := t.key()

	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.nodes[k]; ok {
		return existing
	}
	p.nodes[k] = t
	return t
}

// Var returns the interned de Bruijn variable occurrence at index i.
func (p *Pool) Var(i int) *Term {
	return p.intern(&Term{Kind: KindVar, Index: i})
}

// Sort returns the interned Sort at universe level lvl.
func (p *Pool) Sort(lvl *level.Level) *Term {
	return p.intern(&Term{Kind: KindSort, Level: lvl})
}

// App returns the interned application of fun to arg.
func (p *Pool) App(fun, arg *Term) *Term {
	return p.intern(&Term{Kind: KindApp, Fun: fun, Arg: arg})
}

// Abs returns the interned lambda abstraction with domain type dom and
// body under one extra binding.
func (p *Pool) Abs(dom, body *Term) *Term {
	return p.intern(&Term{Kind: KindAbs, Domain: dom, Body: body})
}

// Prod returns the interned dependent product with domain dom and
// codomain under one extra binding.
func (p *Pool) Prod(dom, codomain *Term) *Term {
	return p.intern(&Term{Kind: KindProd, Domain: dom, Body: codomain})
}

// Decl returns the interned reference to global declaration name at
// universe instance inst.
func (p *Pool) Decl(name string, inst []*level.Level) *Term {
	cp := make([]*level.Level, len(inst))
	copy(cp, inst)
	return p.intern(&Term{Kind: KindDecl, Name: name, Instance: cp})
}
