package manifest

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

type fakeSource struct {
	versions map[string][]semver.Version
	deps     map[string]map[string]semver.Constraint
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

func pkgOf(name string) resolver.PackageId {
	n, err := pkgname.Parse(name)
	if err != nil {
		panic(err)
	}
	return resolver.Pkg{Name: n}
}

func (s *fakeSource) Versions(pkg resolver.PackageId) ([]semver.Version, error) {
	p, ok := pkg.(resolver.Pkg)
	if !ok {
		return nil, nil
	}
	vs, ok := s.versions[p.Name.String()]
	if !ok {
		return nil, resolver.ErrUnknownPackage
	}
	return vs, nil
}

func (s *fakeSource) Dependencies(pkg resolver.PackageId, version semver.Version) ([]resolver.Term, error) {
	p, ok := pkg.(resolver.Pkg)
	if !ok {
		return nil, nil
	}
	raw := s.deps[p.Name.String()+"@"+version.String()]
	var out []resolver.Term
	for name, c := range raw {
		out = append(out, resolver.PositiveTerm(pkgOf(name), c))
	}
	return out, nil
}

func (s *fakeSource) Best(pkg resolver.PackageId, candidates []semver.Version, allowed semver.Constraint) (semver.Version, error) {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if best.Less(c) {
			best = c
		}
	}
	return best, nil
}

func (s *fakeSource) CountVersions(pkg resolver.PackageId, allowed semver.Constraint) (int, error) {
	versions, err := s.Versions(pkg)
	if err == resolver.ErrUnknownPackage {
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

func TestReconstructSplitsDirectAndIndirect(t *testing.T) {
	src := newFakeSource()
	src.addVersion("author/core", semver.New(1, 0, 0), nil)
	src.addVersion("author/http", semver.New(1, 0, 0), map[string]semver.Constraint{
		"author/core": semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe)),
	})

	r := resolver.NewResolver(src)
	rootDeps := []resolver.Term{
		resolver.PositiveTerm(pkgOf("author/http"), semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe))),
	}
	if _, err := r.Solve(resolver.Root{}, semver.New(1, 0, 0), rootDeps); err != nil {
		t.Fatalf("unexpected resolution failure: %s", err)
	}

	g := r.BuildGraph()
	httpName, _ := pkgname.Parse("author/http")
	coreName, _ := pkgname.Parse("author/core")
	directNames := map[pkgname.Name]bool{httpName: true}

	direct, _ := Reconstruct(directNames, g)
	if _, ok := direct.Direct[httpName]; !ok {
		t.Errorf("expected author/http in direct, got %v", direct.Direct)
	}
	if _, ok := direct.Indirect[coreName]; !ok {
		t.Errorf("expected author/core in indirect, got %v", direct.Indirect)
	}
	if _, ok := direct.Direct[coreName]; ok {
		t.Errorf("author/core must not also appear in direct")
	}
}
