package semver

import "strings"

// Relation classifies how two Constraints' covered version sets relate.
type Relation uint8

const (
	Disjoint Relation = iota
	Overlapping
	Subset
	Superset
	Equal
)

// Constraint is a canonical union of disjoint Ranges, kept sorted by
// lower bound. After every mutating operation, adjacent ranges whose
// shared endpoint is not doubly-open are merged back into one — the
// "unification invariant" of spec.md §3.
type Constraint struct {
	ranges []Range
}

// NewConstraint builds a Constraint from an arbitrary list of ranges,
// sorting and unifying them.
func NewConstraint(ranges []Range) Constraint {
	c := Constraint{ranges: append([]Range(nil), ranges...)}
	c.unify()
	return c
}

// Empty is the constraint satisfied by no version.
func Empty() Constraint { return Constraint{} }

// Any is the constraint satisfied by every version.
func Any() Constraint { return NewConstraint([]Range{AnyRange()}) }

// FromRange builds a single-range Constraint.
func FromRange(r Range) Constraint { return Constraint{ranges: []Range{r}} }

// ConstraintFromVersion builds the exact singleton constraint for v.
func ConstraintFromVersion(v Version) Constraint { return FromRange(FromVersion(v)) }

// Ranges returns the constraint's disjoint ranges in sorted order. The
// caller must not mutate the returned slice.
func (c Constraint) Ranges() []Range { return c.ranges }

// IsEmpty reports whether the constraint admits no version at all.
func (c Constraint) IsEmpty() bool { return len(c.ranges) == 0 }

// unify sorts c.ranges by lower bound and coalesces adjacent ranges
// that touch or overlap, per spec.md §4.1.
func (c *Constraint) unify() {
	sortRanges(c.ranges)

	out := c.ranges[:0:0]
	for _, r := range c.ranges {
		if len(out) == 0 {
			out = append(out, r)
			continue
		}
		last := out[len(out)-1]
		if merged, ok := coalesce(last, r); ok {
			out[len(out)-1] = merged
		} else {
			out = append(out, r)
		}
	}
	c.ranges = out
}

func sortRanges(rs []Range) {
	for i := 1; i < len(rs); i++ {
		for j := i; j > 0 && rs[j-1].lower.Cmp(rs[j].lower, true) > 0; j-- {
			rs[j-1], rs[j] = rs[j], rs[j-1]
		}
	}
}

// coalesce attempts to merge b into a, where a.lower <= b.lower. It
// returns ok=false when the two ranges are genuinely disjoint (a gap
// remains between them).
func coalesce(a, b Range) (Range, bool) {
	if b.lower.Kind == Unbounded { // both start unbounded: overlapping
		return NewRange(a.lower, a.upper.Max(b.upper, false))
	}
	switch a.upper.Cmp(b.lower, false) {
	case 1: // a.upper > b.lower: overlapping
		r, ok := NewRange(a.lower, a.upper.Max(b.upper, false))
		return r, ok
	case 0: // touching exactly at the same version
		if a.upper.Kind == Open && b.lower.Kind == Open {
			return Range{}, false
		}
		r, ok := NewRange(a.lower, b.upper)
		return r, ok
	default: // a.upper < b.lower
		if a.upper.Kind == Open && b.lower.Kind == Closed && a.upper.Version.Equal(b.lower.Version) {
			r, ok := NewRange(a.lower, b.upper)
			return r, ok
		}
		return Range{}, false
	}
}

// Satisfies reports whether any of the constraint's ranges admits v.
func (c Constraint) Satisfies(v Version) bool {
	for _, r := range c.ranges {
		if r.Satisfies(v) {
			return true
		}
	}
	return false
}

// Intersection returns the set intersection of c and other.
func (c Constraint) Intersection(other Constraint) Constraint {
	var out []Range
	for _, r := range c.ranges {
		for _, s := range other.ranges {
			if ri, ok := r.Intersection(s); ok {
				out = append(out, ri)
			}
		}
	}
	return NewConstraint(out)
}

// Union returns the set union of c and other.
func (c Constraint) Union(other Constraint) Constraint {
	out := append(append([]Range(nil), c.ranges...), other.ranges...)
	return NewConstraint(out)
}

// Difference returns the versions admitted by c but not by other.
//
// For each range r in c, each range s in other is subtracted from it in
// turn. The case analysis (by how r's lower bound relates to s's lower
// and upper bounds) has six regions: s entirely below r (disjoint or
// touching), s overlapping r's left edge, s containing r, s splitting r
// in two, s overlapping r's right edge, and s entirely above r.
func (c Constraint) Difference(other Constraint) Constraint {
	var out []Range

	for _, r0 := range c.ranges {
		r := r0
		keep := true

		for _, s := range other.ranges {
			switch r.lower.Cmp(s.lower, true) {
			case 1:
				// r starts after s starts.
				switch r.lower.Cmp(s.upper, false) {
				case 1:
					// r starts after s ends entirely: no overlap.
				case 0:
					// r's lower bound coincides with s's upper bound.
					lower := s.upper
					if s.upper.Kind != Open {
						lower = s.upper.Flip()
					}
					if nr, ok := NewRange(lower, r.upper); ok {
						r = nr
					} else {
						keep = false
					}
				default:
					// s's upper bound falls strictly inside r.
					if s.upper.Kind == Unbounded {
						keep = false
						break
					}
					if nr, ok := NewRange(s.upper.Flip(), r.upper); ok {
						r = nr
					} else {
						keep = false
					}
				}
			case -1:
				// r starts before s starts.
				switch r.upper.Cmp(s.lower, false) {
				case -1:
					// r ends before s begins: no overlap.
				case 0:
					upper := s.lower.Flip()
					if r.upper.Kind == Open {
						upper = r.upper
					}
					if nr, ok := NewRange(r.lower, upper); ok {
						r = nr
					} else {
						keep = false
					}
				default:
					if r.upper.Cmp(s.upper, false) <= 0 {
						// s's tail reaches at or past r's tail: trim r's
						// upper edge down to just before s begins.
						if nr, ok := NewRange(r.lower, s.lower.Flip()); ok {
							r = nr
						} else {
							keep = false
						}
					} else {
						// s splits r into two pieces.
						if nr, ok := NewRange(r.lower, s.lower.Flip()); ok {
							out = append(out, nr)
						}
						if nr, ok := NewRange(s.upper.Flip(), r.upper); ok {
							r = nr
						} else {
							keep = false
						}
					}
				}
			default:
				// Equal lower bounds.
				if s.upper == r.upper {
					keep = false
					break
				}
				if s.upper.Kind == Unbounded {
					keep = false
					break
				}
				if nr, ok := NewRange(s.upper.Flip(), r.upper); ok {
					r = nr
				} else {
					keep = false
				}
			}

			if !keep {
				break
			}
		}

		if keep {
			out = append(out, r)
		}
	}

	return NewConstraint(out)
}

// Complement returns the versions not admitted by c.
func (c Constraint) Complement() Constraint {
	return Any().Difference(c)
}

// Relation classifies how c relates to other.
func (c Constraint) Relation(other Constraint) Relation {
	i := c.Intersection(other)
	switch {
	case c.Equal(other):
		return Equal
	case i.Equal(other):
		return Superset
	case i.Equal(c):
		return Subset
	case i.IsEmpty():
		return Disjoint
	default:
		return Overlapping
	}
}

// Equal reports exact set equality (equal canonical range lists).
func (c Constraint) Equal(other Constraint) bool {
	if len(c.ranges) != len(other.ranges) {
		return false
	}
	for i, r := range c.ranges {
		if !r.Equal(other.ranges[i]) {
			return false
		}
	}
	return true
}

func (c Constraint) String() string {
	if len(c.ranges) == 2 {
		a, b := c.ranges[0], c.ranges[1]
		if a.lower.Kind == Unbounded && a.upper.Kind == Open &&
			b.lower.Kind == Closed && b.upper.Kind == Unbounded {
			mid, ok := NewRange(ClosedAt(a.upper.Version), OpenAt(b.lower.Version))
			if ok {
				return "at versions other than " + mid.String()
			}
		}
	}

	parts := make([]string, len(c.ranges))
	for i, r := range c.ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, ", ")
}
