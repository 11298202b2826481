package semver

// Strictness selects how a pinned Version is widened into a Range by
// From.
type Strictness uint8

const (
	// Exact pins the singleton [v, v].
	Exact Strictness = iota
	// Safe allows any version sharing the same major: [v, (major+1).0.0).
	Safe
	// Unsafe allows anything at or above v: [v, Unbounded).
	Unsafe
)

// Range is a single convex, non-empty interval of versions.
type Range struct {
	lower, upper Interval
}

// NewRange constructs a Range from a lower and upper Interval. It
// returns ok=false for any inverted or degenerate-empty pairing: lower
// > upper, or (Open(v), Open(v)), (Open(v), Closed(v)), (Closed(v),
// Open(v)) for the same v — all of which denote an empty set.
func NewRange(lower, upper Interval) (Range, bool) {
	if lower.Kind != Unbounded && upper.Kind != Unbounded && lower.Version.Equal(upper.Version) {
		if !(lower.Kind == Closed && upper.Kind == Closed) {
			return Range{}, false
		}
	}
	if lower.Kind != Unbounded && upper.Kind != Unbounded && upper.Version.Less(lower.Version) {
		return Range{}, false
	}
	return Range{lower: lower, upper: upper}, true
}

// AnyRange is the completely unbounded range.
func AnyRange() Range {
	r, _ := NewRange(UnboundedInterval(), UnboundedInterval())
	return r
}

// FromVersion builds the exact singleton range [v, v].
func FromVersion(v Version) Range {
	r, _ := NewRange(ClosedAt(v), ClosedAt(v))
	return r
}

// From widens v into a Range according to strictness.
func From(v Version, strictness Strictness) Range {
	lower := ClosedAt(v)
	var upper Interval
	switch strictness {
	case Exact:
		upper = ClosedAt(v)
	case Safe:
		upper = OpenAt(v.NextMajor())
	case Unsafe:
		upper = UnboundedInterval()
	}
	r, _ := NewRange(lower, upper)
	return r
}

// Lower returns the range's lower bound interval.
func (r Range) Lower() Interval { return r.lower }

// Upper returns the range's upper bound interval.
func (r Range) Upper() Interval { return r.upper }

// Satisfies reports whether v falls within the half-open range,
// respecting interval openness.
func (r Range) Satisfies(v Version) bool {
	lowerOK := true
	switch r.lower.Kind {
	case Open:
		lowerOK = r.lower.Version.Less(v)
	case Closed:
		lowerOK = !v.Less(r.lower.Version)
	}

	upperOK := true
	switch r.upper.Kind {
	case Open:
		upperOK = v.Less(r.upper.Version)
	case Closed:
		upperOK = !r.upper.Version.Less(v)
	}

	return lowerOK && upperOK
}

// Intersection returns the overlap of r and other, or ok=false if they
// are disjoint.
func (r Range) Intersection(other Range) (Range, bool) {
	lower := r.lower.Max(other.lower, true)
	upper := r.upper.Min(other.upper, false)
	return NewRange(lower, upper)
}

// Equal reports exact structural equality of the two ranges' bounds.
func (r Range) Equal(other Range) bool {
	return r.lower == other.lower && r.upper == other.upper
}

func (r Range) String() string {
	switch {
	case r.lower.Kind == Unbounded && r.upper.Kind == Unbounded:
		return "at any version"
	case r.lower.Kind == Unbounded:
		return r.upper.Show(false)
	case r.upper.Kind == Unbounded:
		return r.lower.Show(true)
	case r.lower.Kind == Closed && r.upper.Kind == Open:
		return r.lower.Version.String() + " <= v < " + r.upper.Version.String()
	case r.lower.Kind == Closed && r.upper.Kind == Closed && r.lower.Version.Equal(r.upper.Version):
		return r.lower.Version.String()
	default:
		return r.lower.Show(true) + " " + r.upper.Show(false)
	}
}
