package registry

import (
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

func TestParseVersionEntryAcceptsWellFormed(t *testing.T) {
	name, v, ok := parseVersionEntry("author/core@1.2.3")
	if !ok {
		t.Fatalf("expected a well-formed entry to parse")
	}
	if name.String() != "author/core" || !v.Equal(semver.New(1, 2, 3)) {
		t.Errorf("got %s@%s", name, v)
	}
}

func TestParseVersionEntryRejectsMalformed(t *testing.T) {
	for _, s := range []string{"author-core-1.2.3", "author/core@", "@1.2.3", "author/core@1.2"} {
		if _, _, ok := parseVersionEntry(s); ok {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestContainsVersion(t *testing.T) {
	vs := []semver.Version{semver.New(1, 0, 0), semver.New(1, 1, 0)}
	if !containsVersion(vs, semver.New(1, 1, 0)) {
		t.Errorf("expected 1.1.0 to be found")
	}
	if containsVersion(vs, semver.New(2, 0, 0)) {
		t.Errorf("expected 2.0.0 to be absent")
	}
}

func TestBoltVersionStoreRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/versions.dat"

	name, _ := pkgname.Parse("author/core")
	versions := map[pkgname.Name][]semver.Version{
		name: {semver.New(1, 0, 0), semver.New(2, 0, 0)},
	}

	if err := writeBoltVersions(path, versions); err != nil {
		t.Fatalf("unexpected write error: %s", err)
	}

	got, err := readBoltVersions(path)
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	vs, ok := got[name]
	if !ok || len(vs) != 2 {
		t.Fatalf("expected 2 versions for author/core, got %v", got)
	}
	if !vs[0].Equal(semver.New(1, 0, 0)) || !vs[1].Equal(semver.New(2, 0, 0)) {
		t.Errorf("expected sorted [1.0.0, 2.0.0], got %v", vs)
	}
}
