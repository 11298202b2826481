package semver

import "testing"

func TestConstraintUnifiesOverlapping(t *testing.T) {
	a, _ := NewRange(ClosedAt(v(1, 0, 0)), OpenAt(v(2, 0, 0)))
	b, _ := NewRange(ClosedAt(v(1, 5, 0)), OpenAt(v(3, 0, 0)))

	c := NewConstraint([]Range{a, b})
	if len(c.Ranges()) != 1 {
		t.Fatalf("expected overlapping ranges to unify into one, got %d: %v", len(c.Ranges()), c.Ranges())
	}
	if !c.Satisfies(v(2, 5, 0)) {
		t.Errorf("unified constraint should satisfy %s", v(2, 5, 0))
	}
}

func TestConstraintUnifiesTouchingOpenClosed(t *testing.T) {
	a, _ := NewRange(UnboundedInterval(), OpenAt(v(2, 0, 0)))
	b, _ := NewRange(ClosedAt(v(2, 0, 0)), UnboundedInterval())

	c := NewConstraint([]Range{a, b})
	if len(c.Ranges()) != 1 {
		t.Fatalf("expected touching open/closed ranges to unify, got %d: %v", len(c.Ranges()), c.Ranges())
	}
	if c.Ranges()[0].String() != "at any version" {
		t.Errorf("touching ranges covering everything should unify to the full constraint, got %s", c)
	}
}

func TestConstraintDoesNotUnifyDoublyOpenGap(t *testing.T) {
	a, _ := NewRange(UnboundedInterval(), OpenAt(v(2, 0, 0)))
	b, _ := NewRange(OpenAt(v(2, 0, 0)), UnboundedInterval())

	c := NewConstraint([]Range{a, b})
	if len(c.Ranges()) != 2 {
		t.Fatalf("expected a gap at exactly 2.0.0 to remain two ranges, got %d: %v", len(c.Ranges()), c.Ranges())
	}
	if c.Satisfies(v(2, 0, 0)) {
		t.Errorf("constraint with a doubly-open gap should not satisfy the excluded version")
	}
}

func TestConstraintIntersection(t *testing.T) {
	a := FromRange(From(v(1, 0, 0), Unsafe)) // >=1.0.0
	b := FromRange(From(v(0, 0, 0), Safe))   // [0.0.0, 1.0.0)

	got := a.Intersection(b)
	if !got.IsEmpty() {
		t.Errorf("expected disjoint intersection, got %s", got)
	}

	c := FromRange(From(v(1, 0, 0), Safe)) // [1.0.0, 2.0.0)
	got2 := a.Intersection(c)
	if !got2.Equal(c) {
		t.Errorf("intersection of superset with subset should equal the subset, got %s want %s", got2, c)
	}
}

func TestConstraintUnion(t *testing.T) {
	a := FromRange(From(v(1, 0, 0), Safe)) // [1.0.0, 2.0.0)
	b := FromRange(From(v(3, 0, 0), Safe)) // [3.0.0, 4.0.0)

	got := a.Union(b)
	if len(got.Ranges()) != 2 {
		t.Fatalf("disjoint union should keep two ranges, got %d", len(got.Ranges()))
	}
	if !got.Satisfies(v(1, 5, 0)) || !got.Satisfies(v(3, 5, 0)) || got.Satisfies(v(2, 5, 0)) {
		t.Errorf("union membership incorrect: %s", got)
	}
}

func TestConstraintDifferenceSplits(t *testing.T) {
	whole := FromRange(From(v(1, 0, 0), Unsafe)) // >=1.0.0
	hole, _ := NewRange(ClosedAt(v(2, 0, 0)), OpenAt(v(3, 0, 0)))

	got := whole.Difference(FromRange(hole))
	if len(got.Ranges()) != 2 {
		t.Fatalf("expected removing a middle hole to split into two ranges, got %d: %v", len(got.Ranges()), got.Ranges())
	}
	if got.Satisfies(v(2, 5, 0)) {
		t.Errorf("difference should not satisfy a version inside the removed hole")
	}
	if !got.Satisfies(v(1, 5, 0)) || !got.Satisfies(v(3, 5, 0)) {
		t.Errorf("difference should retain versions outside the hole: %s", got)
	}
}

func TestConstraintDifferenceTotalOverlap(t *testing.T) {
	whole := FromRange(From(v(1, 0, 0), Safe))
	got := whole.Difference(whole)
	if !got.IsEmpty() {
		t.Errorf("difference of a range with itself should be empty, got %s", got)
	}
}

func TestConstraintComplement(t *testing.T) {
	c := FromRange(From(v(1, 0, 0), Safe)) // [1.0.0, 2.0.0)
	comp := c.Complement()

	if comp.Satisfies(v(1, 5, 0)) {
		t.Errorf("complement should not satisfy a version inside the original range")
	}
	if !comp.Satisfies(v(0, 9, 9)) || !comp.Satisfies(v(2, 0, 0)) {
		t.Errorf("complement should satisfy versions outside the original range: %s", comp)
	}
}

func TestConstraintRelation(t *testing.T) {
	a := FromRange(From(v(1, 0, 0), Unsafe)) // >=1.0.0
	b := FromRange(From(v(1, 0, 0), Safe))   // [1.0.0, 2.0.0)
	c := FromRange(From(v(5, 0, 0), Safe))   // [5.0.0, 6.0.0)

	if a.Relation(b) != Superset {
		t.Errorf("a should be a superset of b, got %v", a.Relation(b))
	}
	if b.Relation(a) != Subset {
		t.Errorf("b should be a subset of a, got %v", b.Relation(a))
	}
	if b.Relation(c) != Disjoint {
		t.Errorf("b and c should be disjoint, got %v", b.Relation(c))
	}
	if a.Relation(a) != Equal {
		t.Errorf("a should equal itself, got %v", a.Relation(a))
	}
}

func TestConstraintStringOtherThan(t *testing.T) {
	lo, _ := NewRange(UnboundedInterval(), OpenAt(v(1, 0, 0)))
	hi, _ := NewRange(ClosedAt(v(2, 0, 0)), UnboundedInterval())
	c := NewConstraint([]Range{lo, hi})

	want := "at versions other than 1.0.0 <= v < 2.0.0"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
