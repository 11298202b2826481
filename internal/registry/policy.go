package registry

import (
	"github.com/pkg/errors"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// mode selects which admissible version Best returns when no
// preferred version applies.
type mode int

const (
	// maximize picks the greatest admissible version. The default.
	maximize mode = iota
	// minimize picks the least admissible version.
	minimize
)

// policy decides which single version Best returns among several
// candidates that already satisfy the caller's constraint: a
// preference pinned from the manifest's indirect-dependency section
// wins outright (or fails hard if it doesn't satisfy the constraint);
// otherwise the extreme (max or min) admissible version wins.
type policy struct {
	mode      mode
	preferred map[pkgname.Name]semver.Version
}

func newPolicy() *policy {
	return &policy{mode: maximize, preferred: make(map[pkgname.Name]semver.Version)}
}

func (p *policy) setMinimize() { p.mode = minimize }

func (p *policy) addPreferred(name pkgname.Name, v semver.Version) {
	p.preferred[name] = v
}

// best selects one version from candidates (already filtered to
// satisfy allowed) for name.
func (p *policy) best(name pkgname.Name, candidates []semver.Version, allowed semver.Constraint) (semver.Version, error) {
	if pref, ok := p.preferred[name]; ok {
		if allowed.Satisfies(pref) {
			return pref, nil
		}
		return semver.Version{}, errors.Errorf(
			"preferred version %s for %s does not satisfy the required range %s",
			pref, name, allowed)
	}

	if len(candidates) == 0 {
		return semver.Version{}, errors.Errorf("no admissible version found for %s", name)
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		switch p.mode {
		case minimize:
			if c.Less(best) {
				best = c
			}
		default:
			if best.Less(c) {
				best = c
			}
		}
	}
	return best, nil
}
