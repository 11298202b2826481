package resolver

import (
	"fmt"
	"strings"
)

// CauseKind classifies why an Incompatibility exists.
type CauseKind int

const (
	// CauseRoot is the trivial "the root package was chosen" clause
	// that seeds every resolution.
	CauseRoot CauseKind = iota
	// CauseDependency comes directly from a manifest or registry
	// dependency declaration.
	CauseDependency
	// CauseUnavailable marks a package range with no candidate version:
	// none in the index, or none left inside the allowed set.
	CauseUnavailable
	// CauseUnknownPackage marks a name unknown to the registry.
	CauseUnknownPackage
	// CauseDerived is produced by resolving two prior incompatibilities
	// during conflict analysis; Cause.Left/Right point at the two
	// incompatibilities it was combined from.
	CauseDerived
)

// Cause records why an Incompatibility was introduced. Left and Right
// are populated only when Kind == CauseDerived, pointing at the two
// incompatibilities conflict resolution combined to produce this one.
type Cause struct {
	Kind        CauseKind
	Left, Right *Incompatibility
}

// Incompatibility is a clause: the conjunction of its Terms cannot all
// hold simultaneously. Every fact the resolver learns — from a
// manifest dependency, an empty version index, or conflict resolution
// — is represented this way.
type Incompatibility struct {
	Terms []Term
	Cause Cause
}

func newIncompatibility(terms []Term, cause Cause) *Incompatibility {
	return &Incompatibility{Terms: terms, Cause: cause}
}

// NewRootIncompatibility seeds the resolution: the root package is
// decided at its singleton version.
func NewRootIncompatibility(root Term) *Incompatibility {
	return newIncompatibility([]Term{root}, Cause{Kind: CauseRoot})
}

// NewDependencyIncompatibility encodes "depender at this version
// requires dependee to satisfy this range": {depender, not dependee}
// — these cannot both hold, so whenever depender is decided, dependee
// is forced into its range. dependee must be passed as the positive
// term for the required range; it is negated here.
func NewDependencyIncompatibility(depender Term, dependee Term) *Incompatibility {
	return newIncompatibility([]Term{depender, dependee.Negate()}, Cause{Kind: CauseDependency})
}

// NewUnavailableIncompatibility marks pkg as having no candidate
// version at all.
func NewUnavailableIncompatibility(pkg Term) *Incompatibility {
	return newIncompatibility([]Term{pkg}, Cause{Kind: CauseUnavailable})
}

// NewUnknownPackageIncompatibility marks pkg as absent from the
// registry entirely.
func NewUnknownPackageIncompatibility(pkg Term) *Incompatibility {
	return newIncompatibility([]Term{pkg}, Cause{Kind: CauseUnknownPackage})
}

// Combine merges this incompatibility with cause on pkg, eliminating
// pkg's term from both and unioning/intersecting any term the two
// share for another package. This is the heart of conflict-driven
// clause learning: it produces the incompatibility implied by "not
// both of these can hold, and this one only held because of that
// one".
func (inc *Incompatibility) Combine(cause *Incompatibility, pivot PackageId) *Incompatibility {
	merged := make(map[PackageId]Term)
	var order []PackageId

	add := func(t Term) {
		if t.Pkg == pivot {
			return
		}
		if existing, ok := merged[t.Pkg]; ok {
			merged[t.Pkg] = mergeTerms(existing, t)
			return
		}
		merged[t.Pkg] = t
		order = append(order, t.Pkg)
	}

	for _, t := range inc.Terms {
		add(t)
	}
	for _, t := range cause.Terms {
		add(t)
	}

	terms := make([]Term, 0, len(order))
	for _, pkg := range order {
		terms = append(terms, merged[pkg])
	}

	return newIncompatibility(terms, Cause{Kind: CauseDerived, Left: inc, Right: cause})
}

// mergeTerms combines two terms referring to the same package: two
// positive terms intersect their allowed sets, two negative terms
// union their forbidden sets, and a mixed pair becomes a positive term
// on the intersection of the two effective constraints.
func mergeTerms(a, b Term) Term {
	switch {
	case a.Positive && b.Positive:
		return PositiveTerm(a.Pkg, a.Constraint.Intersection(b.Constraint))
	case !a.Positive && !b.Positive:
		return NegativeTerm(a.Pkg, a.Constraint.Union(b.Constraint))
	default:
		eff := a.EffectiveConstraint().Intersection(b.EffectiveConstraint())
		return PositiveTerm(a.Pkg, eff)
	}
}

func showPkg(t Term) string {
	if t.Pkg.IsRoot() {
		return "this project"
	}
	c := t.Constraint
	if !t.Positive {
		c = t.Constraint.Complement()
	}
	return fmt.Sprintf("%s %s", t.Pkg, c)
}

// Show renders the incompatibility as a single line of prose.
func (inc *Incompatibility) Show() string {
	switch inc.Cause.Kind {
	case CauseRoot:
		return "the root package was chosen"
	case CauseDependency:
		depender, dependee := inc.Terms[0], inc.Terms[1]
		return fmt.Sprintf("%s depends on %s", showPkg(depender), showPkg(dependee.Negate()))
	case CauseUnavailable:
		return fmt.Sprintf("%s is unavailable", showPkg(inc.Terms[0]))
	case CauseUnknownPackage:
		return fmt.Sprintf("%s does not appear to exist", inc.Terms[0].Pkg)
	default: // CauseDerived
		switch len(inc.Terms) {
		case 0:
			return "no valid set of package versions could be found"
		case 1:
			return fmt.Sprintf("%s is forbidden", showPkg(inc.Terms[0]))
		case 2:
			return fmt.Sprintf("%s is incompatible with %s", showPkg(inc.Terms[0]), showPkg(inc.Terms[1]))
		default:
			parts := make([]string, len(inc.Terms))
			for i, t := range inc.Terms {
				parts[i] = showPkg(t)
			}
			return "one of " + strings.Join(parts, "; ") + " must be false"
		}
	}
}

func (inc *Incompatibility) String() string { return inc.Show() }
