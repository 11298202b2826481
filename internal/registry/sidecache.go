package registry

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/pkg/errors"

	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// sideCache reads and writes the tool's own per-version manifest
// cache on disk, under two path conventions: the older
// "elm-json/packages/{author}/{project}/{version}/elm.json" layout is
// tried before the newer flat "packages/{author}/{project}/{version}/elm.json"
// layout. New entries are always written under the older convention.
type sideCache struct {
	root string
}

func newSideCache(root string) *sideCache {
	return &sideCache{root: root}
}

func (c *sideCache) candidatePaths(name pkgname.Name, version semver.Version) []string {
	v := version.String()
	return []string{
		filepath.Join(c.root, "elm-json", "packages", name.Author, name.Project, v, "elm.json"),
		filepath.Join(c.root, "packages", name.Author, name.Project, v, "elm.json"),
	}
}

// read tries both on-disk conventions in order, returning the first
// manifest found. It returns os.ErrNotExist (wrapped) if neither path
// exists.
func (c *sideCache) read(name pkgname.Name, version semver.Version) (*manifest.Package, error) {
	var lastErr error
	for _, p := range c.candidatePaths(name, version) {
		f, err := os.Open(p)
		if err != nil {
			lastErr = err
			continue
		}
		m, err := manifest.Read(f)
		closeErr := f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "parsing cached manifest %s", p)
		}
		if closeErr != nil {
			return nil, closeErr
		}
		pkg, ok := m.(*manifest.Package)
		if !ok {
			return nil, errors.Errorf("cached manifest %s is not a package manifest", p)
		}
		return pkg, nil
	}
	return nil, errors.Wrapf(lastErr, "no cached manifest for %s@%s", name, version)
}

// write persists pkg's manifest under the older convention, creating
// parent directories as needed.
func (c *sideCache) write(name pkgname.Name, version semver.Version, raw []byte) error {
	path := sideCacheManifestPath(c.root, name.Author, name.Project, version.String())
	if err := ensureParentDir(path); err != nil {
		return errors.Wrapf(err, "creating side-cache directory for %s", path)
	}
	return errors.Wrapf(os.WriteFile(path, raw, 0o644), "writing side-cache entry %s", path)
}

// rebuildFromDisk walks the side-cache tree and returns every
// (name, version) pair it finds. versionStore.load uses it to
// reconstruct the version index only in offline mode when versions.dat
// holds no versions; an online run whose registry fetch fails returns
// that error instead of falling back to it.
func rebuildFromDisk(root string) (map[pkgname.Name][]semver.Version, error) {
	out := make(map[pkgname.Name][]semver.Version)
	base := filepath.Join(root, "elm-json", "packages")

	if _, err := os.Stat(base); os.IsNotExist(err) {
		return out, nil
	}

	err := godirwalk.Walk(base, &godirwalk.Options{
		Unsorted: true,
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() || filepath.Base(osPathname) != "elm.json" {
				return nil
			}

			rel, err := filepath.Rel(base, osPathname)
			if err != nil {
				return nil
			}
			parts := splitPath(rel)
			if len(parts) != 4 {
				return nil
			}
			author, project, versionStr := parts[0], parts[1], parts[2]

			name, err := pkgname.Parse(author + "/" + project)
			if err != nil {
				return nil
			}
			version, err := semver.ParseVersion(versionStr)
			if err != nil {
				return nil
			}
			out[name] = append(out[name], version)
			return nil
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "walking side-cache tree")
	}
	return out, nil
}

func splitPath(rel string) []string {
	return strings.Split(filepath.ToSlash(rel), "/")
}
