package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

const fixtureManifest = `{
    "type": "package",
    "name": "author/core",
    "summary": "a package",
    "license": "MIT",
    "version": "1.0.0",
    "exposed-modules": ["Main"],
    "elm-version": "1.0.0 <= v < 2.0.0",
    "dependencies": {},
    "test-dependencies": {}
}`

func TestSideCacheWriteThenRead(t *testing.T) {
	root := t.TempDir()
	c := newSideCache(root)
	name, _ := pkgname.Parse("author/core")
	v := semver.New(1, 0, 0)

	if err := c.write(name, v, []byte(fixtureManifest)); err != nil {
		t.Fatalf("unexpected write error: %s", err)
	}

	pkg, err := c.read(name, v)
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if pkg.Name.String() != "author/core" {
		t.Errorf("expected author/core, got %s", pkg.Name)
	}
}

func TestSideCacheFallsBackToFlatConvention(t *testing.T) {
	root := t.TempDir()
	name, _ := pkgname.Parse("author/core")
	v := semver.New(1, 0, 0)

	flatPath := filepath.Join(root, "packages", "author", "core", "1.0.0", "elm.json")
	if err := os.MkdirAll(filepath.Dir(flatPath), 0o755); err != nil {
		t.Fatalf("unexpected mkdir error: %s", err)
	}
	if err := os.WriteFile(flatPath, []byte(fixtureManifest), 0o644); err != nil {
		t.Fatalf("unexpected write error: %s", err)
	}

	c := newSideCache(root)
	pkg, err := c.read(name, v)
	if err != nil {
		t.Fatalf("unexpected read error: %s", err)
	}
	if pkg.Name.String() != "author/core" {
		t.Errorf("expected author/core, got %s", pkg.Name)
	}
}

func TestRebuildFromDiskEnumeratesSideCache(t *testing.T) {
	root := t.TempDir()
	name, _ := pkgname.Parse("author/core")
	v := semver.New(1, 0, 0)

	c := newSideCache(root)
	if err := c.write(name, v, []byte(fixtureManifest)); err != nil {
		t.Fatalf("unexpected write error: %s", err)
	}

	found, err := rebuildFromDisk(root)
	if err != nil {
		t.Fatalf("unexpected walk error: %s", err)
	}
	vs, ok := found[name]
	if !ok || len(vs) != 1 || !vs[0].Equal(v) {
		t.Errorf("expected author/core@1.0.0, got %v", found)
	}
}
