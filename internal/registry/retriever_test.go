package registry

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

func newTestRetriever(t *testing.T) *Retriever {
	t.Helper()
	t.Setenv(homeOverrideVar, t.TempDir())

	r, err := NewRetriever(nil, semver.Any(), true)
	if err != nil {
		t.Fatalf("unexpected error constructing retriever: %s", err)
	}
	return r
}

func TestRetrieverVersionsRootAndRuntime(t *testing.T) {
	r := newTestRetriever(t)

	vs, err := r.Versions(resolver.Root{})
	if err != nil || len(vs) != 1 || !vs[0].Equal(rootVersion) {
		t.Fatalf("expected a single root version, got %v, %v", vs, err)
	}

	vs, err = r.Versions(resolver.RuntimeLang{})
	if err != nil || len(vs) != len(runtimeLangVersions) {
		t.Fatalf("expected %d runtime versions, got %v, %v", len(runtimeLangVersions), vs, err)
	}
}

func TestRetrieverVersionsUnknownPackage(t *testing.T) {
	r := newTestRetriever(t)
	name, _ := pkgname.Parse("author/missing")

	if _, err := r.Versions(resolver.Pkg{Name: name}); err != resolver.ErrUnknownPackage {
		t.Fatalf("expected ErrUnknownPackage, got %v", err)
	}
}

func TestRetrieverRootDepsIncludesRuntimeAndAddedDeps(t *testing.T) {
	r := newTestRetriever(t)
	httpName, _ := pkgname.Parse("author/http")

	deps := map[pkgname.Name]semver.Constraint{
		httpName: semver.FromRange(semver.From(semver.New(1, 0, 0), semver.Safe)),
	}
	r.AddDeps(deps)

	terms := r.RootDeps()
	var sawRuntime, sawHTTP bool
	for _, term := range terms {
		switch term.Pkg.(type) {
		case resolver.RuntimeLang:
			sawRuntime = true
		case resolver.Pkg:
			if term.Pkg.(resolver.Pkg).Name.Equal(httpName) {
				sawHTTP = true
			}
		}
	}
	if !sawRuntime || !sawHTTP {
		t.Errorf("expected root deps to include runtime and author/http, got %v", terms)
	}
}

func TestRetrieverDependenciesForRuntimeIsEmpty(t *testing.T) {
	r := newTestRetriever(t)
	deps, err := r.Dependencies(resolver.RuntimeLang{}, semver.New(0, 19, 1))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if len(deps) != 0 {
		t.Errorf("expected no dependencies for the runtime, got %v", deps)
	}
}

func TestRetrieverOfflineManifestLookupFailsWithoutSideCache(t *testing.T) {
	r := newTestRetriever(t)
	name, _ := pkgname.Parse("author/core")

	if _, err := r.manifestFor(name, semver.New(1, 0, 0)); err == nil {
		t.Fatalf("expected an error when offline with no cached manifest")
	}
}
