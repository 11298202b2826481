package resolver

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// fakeSource is an in-memory Source for exercising the resolver
// without a registry: packages and their dependencies are declared up
// front as plain maps.
type fakeSource struct {
	versions map[string][]semver.Version
	deps     map[string]map[string]semver.Constraint // pkg@version key -> dep name -> constraint
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		versions: make(map[string][]semver.Version),
		deps:     make(map[string]map[string]semver.Constraint),
	}
}

func (s *fakeSource) addVersion(name string, ver semver.Version, deps map[string]semver.Constraint) {
	s.versions[name] = append(s.versions[name], ver)
	s.deps[name+"@"+ver.String()] = deps
}

func pkgOf(name string) PackageId {
	n, err := pkgname.Parse(name)
	if err != nil {
		panic(err)
	}
	return Pkg{Name: n}
}

func (s *fakeSource) Versions(pkg PackageId) ([]semver.Version, error) {
	p, ok := pkg.(Pkg)
	if !ok {
		return nil, nil
	}
	vs, ok := s.versions[p.Name.String()]
	if !ok {
		return nil, ErrUnknownPackage
	}
	return vs, nil
}

func (s *fakeSource) Dependencies(pkg PackageId, version semver.Version) ([]Term, error) {
	p, ok := pkg.(Pkg)
	if !ok {
		return nil, nil
	}
	raw := s.deps[p.Name.String()+"@"+version.String()]
	var out []Term
	for name, c := range raw {
		out = append(out, PositiveTerm(pkgOf(name), c))
	}
	return out, nil
}

func (s *fakeSource) Best(pkg PackageId, candidates []semver.Version, allowed semver.Constraint) (semver.Version, error) {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if best.Less(c) {
			best = c
		}
	}
	return best, nil
}

func (s *fakeSource) CountVersions(pkg PackageId, allowed semver.Constraint) (int, error) {
	versions, err := s.Versions(pkg)
	if err == ErrUnknownPackage {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	count := 0
	for _, v := range versions {
		if allowed.Satisfies(v) {
			count++
		}
	}
	return count, nil
}

func TestResolverSimpleChain(t *testing.T) {
	src := newFakeSource()
	src.addVersion("author/core", semver.New(1, 0, 0), nil)
	src.addVersion("author/core", semver.New(1, 5, 0), nil)
	src.addVersion("author/http", semver.New(2, 0, 0), map[string]semver.Constraint{
		"author/core": semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe)),
	})

	r := NewResolver(src)
	rootDeps := []Term{
		PositiveTerm(pkgOf("author/http"), semver.FromRange(semver.From(semver.New(2, 0, 0), semver.Safe))),
	}

	solution, err := r.Solve(Root{}, semver.New(1, 0, 0), rootDeps)
	if err != nil {
		t.Fatalf("unexpected resolution failure: %s", err)
	}

	found := make(map[string]semver.Version)
	for _, s := range solution {
		if p, ok := s.ID.(Pkg); ok {
			found[p.Name.String()] = s.Version
		}
	}

	if v, ok := found["author/http"]; !ok || !v.Equal(semver.New(2, 0, 0)) {
		t.Errorf("expected author/http 2.0.0 in solution, got %v", found)
	}
	if v, ok := found["author/core"]; !ok || !v.Equal(semver.New(1, 5, 0)) {
		t.Errorf("expected author/core to resolve to the highest satisfying version 1.5.0, got %v", found)
	}
}

func TestResolverNoResolution(t *testing.T) {
	src := newFakeSource()
	src.addVersion("author/a", semver.New(1, 0, 0), map[string]semver.Constraint{
		"author/shared": semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe)),
	})
	src.addVersion("author/b", semver.New(1, 0, 0), map[string]semver.Constraint{
		"author/shared": semver.FromRange(semver.From(semver.New(2, 0, 0), semver.Safe)),
	})
	src.addVersion("author/shared", semver.New(1, 0, 0), nil)
	src.addVersion("author/shared", semver.New(2, 0, 0), nil)

	r := NewResolver(src)
	rootDeps := []Term{
		PositiveTerm(pkgOf("author/a"), semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe))),
		PositiveTerm(pkgOf("author/b"), semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe))),
	}

	_, err := r.Solve(Root{}, semver.New(1, 0, 0), rootDeps)
	if err == nil {
		t.Fatalf("expected a conflicting shared dependency to fail resolution")
	}

	noRes, ok := err.(*NoResolutionError)
	if !ok {
		t.Fatalf("expected a *NoResolutionError, got %T: %s", err, err)
	}
	if noRes.Explain() == "" {
		t.Errorf("expected a non-empty proof explanation")
	}
}

func TestResolverUnknownPackage(t *testing.T) {
	src := newFakeSource()
	r := NewResolver(src)
	rootDeps := []Term{
		PositiveTerm(pkgOf("author/missing"), semver.Any()),
	}

	_, err := r.Solve(Root{}, semver.New(1, 0, 0), rootDeps)
	if err == nil {
		t.Fatalf("expected resolution against an unknown package to fail")
	}
}
