package level

import "testing"

func TestNumeral(t *testing.T) {
	l := FromInt(3)
	n, ok := l.Numeral()
	if !ok || n != 3 {
		t.Fatalf("expected numeral 3, got %d ok=%v", n, ok)
	}
}

func TestMaxIdempotent(t *testing.T) {
	v := Var(0)
	if !Equal(Max(v, v), v) {
		t.Fatalf("max(a,a) should equal a")
	}
}

func TestMaxCommutative(t *testing.T) {
	a, b := Var(0), Var(1)
	if !Equal(Max(a, b), Max(b, a)) {
		t.Fatalf("max should be commutative up to canonical form")
	}
}

func TestIMaxWithZeroRight(t *testing.T) {
	// imax(u, 0) = 0
	got := Canon(IMax(Var(0), Zero))
	if !Equal(got, Zero) {
		t.Fatalf("imax(u,0) should canonicalize to 0, got %s", got)
	}
}

func TestIMaxWithSuccRight(t *testing.T) {
	// imax(u, succ v) = max(u, succ v)
	u, v := Var(0), Var(1)
	got := IMax(u, Succ(v))
	want := Max(u, Succ(v))
	if !Equal(got, want) {
		t.Fatalf("imax(u, succ v) should equal max(u, succ v)")
	}
}

func TestSuccPushesThroughMax(t *testing.T) {
	a, b := Var(0), Var(1)
	got := Succ(Max(a, b))
	want := Max(Succ(a), Succ(b))
	if !Equal(got, want) {
		t.Fatalf("succ(max(a,b)) should equal max(succ a, succ b)")
	}
}

func TestNumericMaxCollapses(t *testing.T) {
	got := Max(FromInt(1), FromInt(3))
	if !Equal(got, FromInt(3)) {
		t.Fatalf("max of two numerals should collapse to the larger")
	}
}

func TestDominationBySucc(t *testing.T) {
	v := Var(0)
	if !Dominates(Succ(v), v) {
		t.Fatalf("succ(v) should dominate v")
	}
	if Dominates(v, Succ(v)) {
		t.Fatalf("v should not dominate succ(v)")
	}
}

func TestCanonIdempotent(t *testing.T) {
	l := Max(Succ(Var(0)), IMax(Var(1), Max(Zero, Succ(Var(2)))))
	c1 := Canon(l)
	c2 := Canon(c1)
	if !Equal(c1, c2) {
		t.Fatalf("canon(canon(l)) should equal canon(l)")
	}
}

func TestSubstVector(t *testing.T) {
	l := Max(Var(0), Succ(Var(1)))
	got := SubstVector(l, []*Level{FromInt(0), FromInt(5)})
	want := FromInt(6)
	if !Equal(got, want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
}
