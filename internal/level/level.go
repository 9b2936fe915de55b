// Package level implements the universe-level algebra of the kernel:
// representation, canonicalization, domination, and equality of
// polymorphic universe expressions (spec.md §4.1).
//
// Canonicalization rules are ported from the original kernel's
// Level::normalize (_examples/original_source/kernel/src/memory/level/mod.rs),
// generalized to the multiset-of-atoms canonical form spec.md §3.1/§4.1
// describes explicitly ("every level is kept in a canonical form...
// flattening nested max and removing duplicates").
package level

import (
	"fmt"
	"sort"
	"strings"
)

// Kind identifies the shape of a Level node.
type Kind int

const (
	KindZero Kind = iota
	KindVar
	KindSucc
	KindMax
	KindIMax
)

// Level is a universe level expression. Levels are immutable once
// constructed; use the constructor functions below rather than struct
// literals so future interning can be added without touching callers.
type Level struct {
	Kind Kind
	Var  int    // valid when Kind == KindVar
	Arg  *Level // valid when Kind == KindSucc
	L, R *Level // valid when Kind == KindMax or KindIMax
}

// Zero is the 0 level (the universe of Prop).
var Zero = &Level{Kind: KindZero}

// Var returns the level bound to universe variable index v.
func Var(v int) *Level { return &Level{Kind: KindVar, Var: v} }

// Succ returns the successor of l.
func Succ(l *Level) *Level { return &Level{Kind: KindSucc, Arg: l} }

// Max returns the least upper bound of l and r.
func Max(l, r *Level) *Level { return &Level{Kind: KindMax, L: l, R: r} }

// IMax returns the impredicative maximum of l and r.
func IMax(l, r *Level) *Level { return &Level{Kind: KindIMax, L: l, R: r} }

// FromInt builds the level corresponding to the natural number n.
func FromInt(n int) *Level { return AddConst(Zero, n) }

// AddConst returns l lifted by n successors (l + n).
func AddConst(l *Level, n int) *Level {
	for i := 0; i < n; i++ {
		l = Succ(l)
	}
	return l
}

// atom is one summand of a canonical top-level Max: a numeral, a
// universe variable, or a stuck `imax(base, Var(blockedBy))`, each
// lifted by k successors. Exactly one of the three "which" states holds.
type atom struct {
	which     atomKind
	varID     int
	blockedBy int    // valid when which == atomStuckIMax
	base      *Level // valid when which == atomStuckIMax; already canonical
	k         int
}

type atomKind int

const (
	atomNumeral atomKind = iota
	atomVar
	atomStuckIMax
)

// key returns a string identifying the atom's "family" (ignoring its
// succ offset k), used for dedup and sorting.
func (a atom) key() string {
	switch a.which {
	case atomNumeral:
		return "0"
	case atomVar:
		return fmt.Sprintf("v%d", a.varID)
	default:
		return fmt.Sprintf("i%d:%s", a.blockedBy, a.base.String())
	}
}

// Canon computes the canonical form of l: a Max-chain of deduplicated,
// sorted atoms (a single atom stands for itself).
func Canon(l *Level) *Level {
	return atomsToLevel(dedup(flatten(l, 0)))
}

// flatten decomposes l (lifted by shift successors) into its atoms,
// applying spec.md §4.1's rewrite rules:
//  1. succ(max(a,b)) = max(succ a, succ b) — handled by distributing
//     shift into both arms of a Max before recursing.
//  2. imax(a,0)=0; imax(a,succ _)=max(a,succ _);
//     imax(a,max(b,c))=max(imax(a,b),imax(a,c));
//     imax(a,imax(b,c))=max(imax(a,c),imax(b,c)).
//  3. max flattens and associates/commutes (done by returning a flat
//     atom list rather than a tree).
func flatten(l *Level, shift int) []atom {
	switch l.Kind {
	case KindZero:
		return []atom{{which: atomNumeral, k: shift}}
	case KindVar:
		return []atom{{which: atomVar, varID: l.Var, k: shift}}
	case KindSucc:
		return flatten(l.Arg, shift+1)
	case KindMax:
		return append(flatten(l.L, shift), flatten(l.R, shift)...)
	case KindIMax:
		return flattenIMax(l.L, l.R, shift)
	default:
		panic(fmt.Sprintf("level: unknown kind %d", l.Kind))
	}
}

func flattenIMax(a, b *Level, shift int) []atom {
	bCanon := Canon(b)
	if bCanon.Kind == KindZero {
		return []atom{{which: atomNumeral, k: shift}} // imax(a, 0) = 0
	}
	switch bCanon.Kind {
	case KindSucc:
		// imax(a, succ _) = max(a, succ _)
		return append(flatten(a, shift), flatten(bCanon, shift)...)
	case KindMax:
		// imax(a, max(x,y)) = max(imax(a,x), imax(a,y))
		return append(flattenIMax(a, bCanon.L, shift), flattenIMax(a, bCanon.R, shift)...)
	case KindIMax:
		// imax(a, imax(x,y)) = max(imax(a,y), imax(x,y))
		return append(flattenIMax(a, bCanon.R, shift), flattenIMax(bCanon.L, bCanon.R, shift)...)
	case KindVar:
		// Stuck: the blocking variable could still resolve to 0.
		return []atom{{which: atomStuckIMax, base: Canon(a), blockedBy: bCanon.Var, k: shift}}
	default:
		panic(fmt.Sprintf("level: unknown kind %d", bCanon.Kind))
	}
}

// dedup sorts atoms by family and collapses same-family atoms to the one
// with the largest succ offset (k dominates k' when k >= k').
func dedup(atoms []atom) []atom {
	best := map[string]atom{}
	order := make([]string, 0, len(atoms))
	for _, a := range atoms {
		key := a.key()
		if prev, ok := best[key]; !ok {
			best[key] = a
			order = append(order, key)
		} else if a.k > prev.k {
			best[key] = a
		}
	}
	sort.Strings(order)
	out := make([]atom, 0, len(order))
	for _, key := range order {
		out = append(out, best[key])
	}
	return out
}

func atomToLevel(a atom) *Level {
	var base *Level
	switch a.which {
	case atomNumeral:
		base = Zero
	case atomVar:
		base = Var(a.varID)
	default:
		base = IMax(a.base, Var(a.blockedBy))
	}
	return AddConst(base, a.k)
}

func atomsToLevel(atoms []atom) *Level {
	l := atomToLevel(atoms[0])
	for _, a := range atoms[1:] {
		l = Max(l, atomToLevel(a))
	}
	return l
}

// Equal decides ℓ1 ≡ ℓ2: canonical identity, falling back to mutual
// domination (spec.md §4.1 "Equality decision").
func Equal(l1, l2 *Level) bool {
	c1, c2 := Canon(l1), Canon(l2)
	if sameAtomSet(c1, c2) {
		return true
	}
	return Dominates(c1, c2) && Dominates(c2, c1)
}

func sameAtomSet(a, b *Level) bool {
	as, bs := dedup(flatten(a, 0)), dedup(flatten(b, 0))
	if len(as) != len(bs) {
		return false
	}
	for i := range as {
		if as[i].key() != bs[i].key() || as[i].k != bs[i].k {
			return false
		}
	}
	return true
}

// Dominates reports whether a dominates b (spec.md §4.1): a = b + k for
// some k >= 0, or a is a Max containing an atom that dominates b. Both
// arguments may be arbitrary (not necessarily pre-canonicalized) levels.
func Dominates(a, b *Level) bool {
	aAtoms := dedup(flatten(a, 0))
	bAtoms := dedup(flatten(b, 0))
	for _, ba := range bAtoms {
		if !dominatesAny(aAtoms, ba) {
			return false
		}
	}
	return true
}

func dominatesAny(atoms []atom, target atom) bool {
	for _, a := range atoms {
		if a.key() == target.key() && a.k >= target.k {
			return true
		}
	}
	return false
}

// Subst substitutes level variable v with replacement in l.
func Subst(l *Level, v int, replacement *Level) *Level {
	switch l.Kind {
	case KindZero:
		return l
	case KindVar:
		if l.Var == v {
			return replacement
		}
		return l
	case KindSucc:
		return Succ(Subst(l.Arg, v, replacement))
	case KindMax:
		return Max(Subst(l.L, v, replacement), Subst(l.R, v, replacement))
	case KindIMax:
		return IMax(Subst(l.L, v, replacement), Subst(l.R, v, replacement))
	default:
		panic(fmt.Sprintf("level: unknown kind %d", l.Kind))
	}
}

// SubstVector simultaneously substitutes universe parameters 0..len(vec)-1
// with the levels in vec (used to instantiate a declaration's universe
// parameters, spec.md §4.3 `instantiate`).
func SubstVector(l *Level, vec []*Level) *Level {
	switch l.Kind {
	case KindZero:
		return l
	case KindVar:
		if l.Var >= 0 && l.Var < len(vec) {
			return vec[l.Var]
		}
		return l
	case KindSucc:
		return Succ(SubstVector(l.Arg, vec))
	case KindMax:
		return Max(SubstVector(l.L, vec), SubstVector(l.R, vec))
	case KindIMax:
		return IMax(SubstVector(l.L, vec), SubstVector(l.R, vec))
	default:
		panic(fmt.Sprintf("level: unknown kind %d", l.Kind))
	}
}

// Numeral returns (n, true) when l denotes the concrete natural n.
func (l *Level) Numeral() (int, bool) {
	switch l.Kind {
	case KindZero:
		return 0, true
	case KindSucc:
		if n, ok := l.Arg.Numeral(); ok {
			return n + 1, true
		}
	}
	return 0, false
}

// String renders l in the original kernel's prefix notation (numerals as
// bare integers, `u<i>` for variables, parenthesized operators otherwise).
func (l *Level) String() string {
	if n, ok := l.Numeral(); ok {
		return fmt.Sprintf("%d", n)
	}
	switch l.Kind {
	case KindVar:
		return fmt.Sprintf("u%d", l.Var)
	case KindSucc:
		return fmt.Sprintf("(%s + 1)", l.Arg.String())
	case KindMax:
		return fmt.Sprintf("(max %s %s)", l.L.String(), l.R.String())
	case KindIMax:
		return fmt.Sprintf("(imax %s %s)", l.L.String(), l.R.String())
	default:
		return "0"
	}
}

// VarNames renders a universe instance vector as a comma-separated list,
// used by diagnostics.
func VarNames(levels []*Level) string {
	parts := make([]string, len(levels))
	for i, l := range levels {
		parts[i] = l.String()
	}
	return strings.Join(parts, ", ")
}
