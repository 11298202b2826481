package resolver

import "github.com/elmtooling/elm-json-go/internal/semver"

// Term is one literal of an Incompatibility clause: a claim that
// Pkg's version either does (Positive) or does not (!Positive) fall
// within Constraint.
type Term struct {
	Pkg        PackageId
	Constraint semver.Constraint
	Positive   bool
}

// PositiveTerm builds a positive term.
func PositiveTerm(pkg PackageId, c semver.Constraint) Term {
	return Term{Pkg: pkg, Constraint: c, Positive: true}
}

// NegativeTerm builds a negative term.
func NegativeTerm(pkg PackageId, c semver.Constraint) Term {
	return Term{Pkg: pkg, Constraint: c, Positive: false}
}

// Negate flips a term's polarity, used when unit propagation derives
// the opposite of the one remaining unsatisfied term in a clause.
func (t Term) Negate() Term {
	return Term{Pkg: t.Pkg, Constraint: t.Constraint, Positive: !t.Positive}
}

// EffectiveConstraint folds polarity into a single constraint: the set
// of versions consistent with this term actually holding. A negative
// term is equivalent to requiring membership in the complement of its
// stated range.
func (t Term) EffectiveConstraint() semver.Constraint {
	if t.Positive {
		return t.Constraint
	}
	return t.Constraint.Complement()
}
