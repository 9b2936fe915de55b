// Package term implements the kernel's closed, hash-consed term
// representation (spec.md §3.2/§4.2): the six term variants, an
// interning pool with structural hash-consing, and de Bruijn
// lifting/substitution.
//
// Interning is adapted from the teacher's CoreTypeManager pattern
// (_examples/SeleniaProject-Orizon/internal/types/core.go: a manager
// struct owning a mutex-guarded pool of values) generalized from a
// package-global instance to an explicit *Pool value per kernel session,
// and from the original kernel's arena hash-consing discipline
// (_examples/original_source/kernel/src/memory/arena.rs: build
// unreduced, look up by structural payload, supersede with the
// canonical node).
package term

import (
	"github.com/asm-nop/proost-go/internal/level"
)

// Kind identifies the shape of a Term node.
type Kind int

const (
	KindVar Kind = iota
	KindSort
	KindApp
	KindAbs
	KindProd
	KindDecl
)

// Term is an interned kernel term. Two terms are interned identically
// (pointer-equal) iff they are structurally identical; reference equality
// therefore implies, but is not required for, semantic identity (spec.md
// §4.2 "Interning").
type Term struct {
	Kind Kind

	// KindVar
	Index int // de Bruijn index, i >= 0

	// KindSort
	Level *level.Level

	// KindApp
	Fun, Arg *Term

	// KindAbs / KindProd
	Domain *Term
	Body   *Term // under one extra binding

	// KindDecl
	Name     string
	Instance []*level.Level
}

// key is the structural hash key used by the interning pool.
type key struct {
	kind       Kind
	index      int
	levelStr   string
	fun, arg   *Term
	domain     *Term
	body       *Term
	name       string
	instance   string
}

func (t *Term) key() key {
	k := key{kind: t.Kind}
	switch t.Kind {
	case KindVar:
		k.index = t.Index
	case KindSort:
		k.levelStr = t.Level.String()
	case KindApp:
		k.fun, k.arg = t.Fun, t.Arg
	case KindAbs, KindProd:
		k.domain, k.body = t.Domain, t.Body
	case KindDecl:
		k.name = t.Name
		k.instance = level.VarNames(t.Instance)
	}
	return k
}
