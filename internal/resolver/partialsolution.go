package resolver

import (
	"errors"

	"github.com/elmtooling/elm-json-go/internal/semver"
)

// errNoVersionsLeft is returned by AddDerivation when a narrowing
// leaves a package with no admissible version at all.
var errNoVersionsLeft = errors.New("no versions left")

// partialSolution is the resolver's mutable trail: every decision and
// derivation made so far, in order, plus the bookkeeping needed to
// answer "what is pkg's cumulative allowed set right now" without
// rescanning the whole trail on every query.
type partialSolution struct {
	trail []Assignment

	nextStep int
	level    int

	decided  map[PackageId]semver.Version
	allowed  map[PackageId]semver.Constraint
	seen     []PackageId
	seenSet  map[PackageId]bool
}

func newPartialSolution() *partialSolution {
	return &partialSolution{
		decided: make(map[PackageId]semver.Version),
		allowed: make(map[PackageId]semver.Constraint),
		seenSet: make(map[PackageId]bool),
	}
}

func (ps *partialSolution) markSeen(pkg PackageId) {
	if ps.seenSet[pkg] {
		return
	}
	ps.seenSet[pkg] = true
	ps.seen = append(ps.seen, pkg)
}

// AllowedSet returns the cumulative constraint derived so far for pkg,
// defaulting to the unconstrained set for a package never touched.
func (ps *partialSolution) AllowedSet(pkg PackageId) semver.Constraint {
	if c, ok := ps.allowed[pkg]; ok {
		return c
	}
	return semver.Any()
}

func (ps *partialSolution) HasDecision(pkg PackageId) bool {
	_, ok := ps.decided[pkg]
	return ok
}

// AddDecision records a decision for pkg. The very first decision (the
// root) is made at level 0; each subsequent decision bumps the level,
// so a decision's own Level is always strictly greater than every
// assignment already on the trail before it.
func (ps *partialSolution) AddDecision(pkg PackageId, version semver.Version) Assignment {
	if len(ps.trail) > 0 {
		ps.level++
	}
	a := Assignment{
		Step:    ps.nextStep,
		Level:   ps.level,
		Pkg:     pkg,
		Kind:    Decision,
		Version: version,
	}
	ps.nextStep++
	ps.trail = append(ps.trail, a)
	ps.decided[pkg] = version
	ps.allowed[pkg] = ps.AllowedSet(pkg).Intersection(a.EffectiveConstraint())
	ps.markSeen(pkg)
	return a
}

// AddDerivation narrows pkg's allowed set by term, attributing the
// narrowing to cause. It reports whether the allowed set actually
// shrank (so the caller knows whether to re-enqueue pkg for
// propagation), and errNoVersionsLeft if the narrowing eliminates
// every version.
func (ps *partialSolution) AddDerivation(term Term, cause *Incompatibility) (Assignment, bool, error) {
	before := ps.AllowedSet(term.Pkg)
	after := before.Intersection(term.EffectiveConstraint())

	a := Assignment{
		Step:  ps.nextStep,
		Level: ps.level,
		Pkg:   term.Pkg,
		Kind:  Derivation,
		Term:  term,
		Cause: cause,
	}

	if after.IsEmpty() {
		return a, false, errNoVersionsLeft
	}

	ps.nextStep++
	ps.trail = append(ps.trail, a)
	ps.allowed[term.Pkg] = after
	ps.markSeen(term.Pkg)

	return a, !after.Equal(before), nil
}

// IsComplete reports whether every package ever referenced has a
// fixed decision.
func (ps *partialSolution) IsComplete() bool {
	for _, pkg := range ps.seen {
		if !ps.HasDecision(pkg) {
			return false
		}
	}
	return true
}

// UndecidedPackages returns every package referenced but not yet
// decided, in first-seen order. The resolver picks among these by
// admissible-version count, not by this order, but first-seen order
// keeps the scan itself deterministic.
func (ps *partialSolution) UndecidedPackages() []PackageId {
	var out []PackageId
	for _, pkg := range ps.seen {
		if !ps.HasDecision(pkg) {
			out = append(out, pkg)
		}
	}
	return out
}

// Satisfier finds the earliest trail entry whose inclusion makes inc
// fully satisfied, and how far back the resolver could backjump if it
// is a decision: the highest level contributed by any OTHER term of
// inc before that point.
func (ps *partialSolution) Satisfier(inc *Incompatibility) (satisfier *Assignment, prevLevel int) {
	referenced := make(map[PackageId]bool, len(inc.Terms))
	for _, t := range inc.Terms {
		referenced[t.Pkg] = true
	}

	cumulative := make(map[PackageId]semver.Constraint, len(inc.Terms))
	cumOf := func(pkg PackageId) semver.Constraint {
		if c, ok := cumulative[pkg]; ok {
			return c
		}
		return semver.Any()
	}

	satisfiedIdx := -1
	for i := range ps.trail {
		a := &ps.trail[i]
		if !referenced[a.Pkg] {
			continue
		}
		cumulative[a.Pkg] = cumOf(a.Pkg).Intersection(a.EffectiveConstraint())

		if allTermsSatisfied(inc, cumulative) {
			satisfiedIdx = i
			break
		}
	}
	if satisfiedIdx == -1 {
		return nil, 0
	}
	satisfier = &ps.trail[satisfiedIdx]

	prevLevel = 0
	cumulative2 := make(map[PackageId]semver.Constraint, len(inc.Terms))
	for i := 0; i < satisfiedIdx; i++ {
		a := ps.trail[i]
		if a.Pkg == satisfier.Pkg {
			continue
		}
		if !referenced[a.Pkg] {
			continue
		}
		cumulative2[a.Pkg] = cumOfMap(cumulative2, a.Pkg).Intersection(a.EffectiveConstraint())
		if a.Level > prevLevel {
			prevLevel = a.Level
		}
	}
	return satisfier, prevLevel
}

func cumOfMap(m map[PackageId]semver.Constraint, pkg PackageId) semver.Constraint {
	if c, ok := m[pkg]; ok {
		return c
	}
	return semver.Any()
}

// allTermsSatisfied reports whether, given the cumulative allowed set
// so far for each referenced package, every term of inc already holds
// (its package's remaining possibilities are a subset of the term).
func allTermsSatisfied(inc *Incompatibility, cumulative map[PackageId]semver.Constraint) bool {
	for _, t := range inc.Terms {
		c, ok := cumulative[t.Pkg]
		if !ok {
			return false
		}
		rel := c.Relation(t.EffectiveConstraint())
		if rel != semver.Subset && rel != semver.Equal {
			return false
		}
	}
	return true
}

// Backtrack discards every trail entry past level, and rebuilds the
// per-package cumulative state from what remains. Simplicity over
// incremental bookkeeping: resolution trails are small enough that a
// full rebuild on backjump is cheap.
func (ps *partialSolution) Backtrack(level int) {
	cut := len(ps.trail)
	for i, a := range ps.trail {
		if a.Level > level {
			cut = i
			break
		}
	}
	ps.trail = ps.trail[:cut]

	ps.level = level
	ps.decided = make(map[PackageId]semver.Version)
	ps.allowed = make(map[PackageId]semver.Constraint)
	ps.seenSet = make(map[PackageId]bool)
	ps.seen = nil

	for _, a := range ps.trail {
		ps.markSeen(a.Pkg)
		ps.allowed[a.Pkg] = ps.AllowedSet(a.Pkg).Intersection(a.EffectiveConstraint())
		if a.Kind == Decision {
			ps.decided[a.Pkg] = a.Version
		}
	}
}
