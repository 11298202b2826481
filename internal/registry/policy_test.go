package registry

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

func TestPolicyMaximizesByDefault(t *testing.T) {
	p := newPolicy()
	name, _ := pkgname.Parse("author/core")
	candidates := []semver.Version{semver.New(1, 0, 0), semver.New(1, 2, 0), semver.New(1, 1, 0)}

	best, err := p.best(name, candidates, semver.Any())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !best.Equal(semver.New(1, 2, 0)) {
		t.Errorf("expected 1.2.0, got %s", best)
	}
}

func TestPolicyMinimizes(t *testing.T) {
	p := newPolicy()
	p.setMinimize()
	name, _ := pkgname.Parse("author/core")
	candidates := []semver.Version{semver.New(1, 0, 0), semver.New(1, 2, 0), semver.New(1, 1, 0)}

	best, err := p.best(name, candidates, semver.Any())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !best.Equal(semver.New(1, 0, 0)) {
		t.Errorf("expected 1.0.0, got %s", best)
	}
}

func TestPolicyPreferredVersionWins(t *testing.T) {
	p := newPolicy()
	name, _ := pkgname.Parse("author/core")
	p.addPreferred(name, semver.New(1, 1, 0))
	candidates := []semver.Version{semver.New(1, 0, 0), semver.New(1, 2, 0), semver.New(1, 1, 0)}

	best, err := p.best(name, candidates, semver.Any())
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !best.Equal(semver.New(1, 1, 0)) {
		t.Errorf("expected preferred 1.1.0, got %s", best)
	}
}

func TestPolicyPreferredVersionViolatingConstraintFails(t *testing.T) {
	p := newPolicy()
	name, _ := pkgname.Parse("author/core")
	p.addPreferred(name, semver.New(2, 0, 0))
	allowed := semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe))

	if _, err := p.best(name, nil, allowed); err == nil {
		t.Fatalf("expected an error when the preferred version violates the range")
	}
}
