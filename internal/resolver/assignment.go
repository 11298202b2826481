package resolver

import "github.com/elmtooling/elm-json-go/internal/semver"

// AssignmentKind discriminates a trail entry: a decision fixes an
// exact version; a derivation narrows a package's allowed versions as
// a logical consequence of an incompatibility.
type AssignmentKind int

const (
	Decision AssignmentKind = iota
	Derivation
)

// Assignment is one entry of the resolver's trail: the ordered record
// of every decision and derivation made so far, used for unit
// propagation, satisfier search, and backjumping.
type Assignment struct {
	Step  int
	Level int
	Pkg   PackageId
	Kind  AssignmentKind

	// valid when Kind == Decision
	Version semver.Version

	// valid when Kind == Derivation
	Term  Term
	Cause *Incompatibility
}

// EffectiveConstraint returns the constraint this single assignment
// contributes toward its package's cumulative allowed set.
func (a Assignment) EffectiveConstraint() semver.Constraint {
	if a.Kind == Decision {
		return semver.ConstraintFromVersion(a.Version)
	}
	return a.Term.EffectiveConstraint()
}

func (a Assignment) IsDecision() bool { return a.Kind == Decision }
