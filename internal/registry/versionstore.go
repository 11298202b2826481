package registry

import (
	"bytes"
	"encoding/gob"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/theckman/go-flock"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

var versionsBucket = []byte("versions")

// runtimeLangVersions are the seven point releases of the runtime the
// tool understands.
var runtimeLangVersions = []semver.Version{
	semver.New(0, 16, 0),
	semver.New(0, 17, 0),
	semver.New(0, 17, 1),
	semver.New(0, 18, 0),
	semver.New(0, 19, 0),
	semver.New(0, 19, 1),
	semver.New(0, 19, 2),
}

// versionStore owns the on-disk versions.dat cache and the exclusive
// file lock spanning its open->fetch->write->close lifecycle. It
// knows nothing about the two synthetic packages (Root, RuntimeLang);
// those are the retriever's concern.
type versionStore struct {
	root string
}

func newVersionStore(root string) *versionStore {
	return &versionStore{root: root}
}

// load opens versions.dat under an exclusive advisory lock, merges in
// any freshly-fetched entries, and writes the result back before
// releasing the lock. fetch is nil in offline mode. A fetch error is
// returned as-is; the cached index is not used in that case.
func (vs *versionStore) load(fetch func(since int) ([]string, error)) (map[pkgname.Name][]semver.Version, error) {
	path, err := versionsDatPath()
	if err != nil {
		return nil, err
	}
	if err := ensureParentDir(path); err != nil {
		return nil, errors.Wrapf(err, "creating version store directory for %s", path)
	}

	lock := flock.NewFlock(path + ".lock")
	if err := lock.Lock(); err != nil {
		return nil, errors.Wrapf(err, "acquiring lock on %s", path)
	}
	defer lock.Unlock()

	versions, err := readBoltVersions(path)
	if err != nil {
		versions = make(map[pkgname.Name][]semver.Version)
	}

	if fetch == nil && countVersions(versions) == 0 {
		rebuilt, err := rebuildFromDisk(vs.root)
		if err == nil {
			versions = rebuilt
		}
	}

	if fetch != nil {
		total := countVersions(versions)
		entries, err := fetch(total)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			name, v, ok := parseVersionEntry(e)
			if !ok {
				continue
			}
			if !containsVersion(versions[name], v) {
				versions[name] = append(versions[name], v)
			}
		}
		if err := writeBoltVersions(path, versions); err != nil {
			return nil, err
		}
	}

	return versions, nil
}

func countVersions(versions map[pkgname.Name][]semver.Version) int {
	total := 0
	for _, vs := range versions {
		total += len(vs)
	}
	return total
}

func containsVersion(vs []semver.Version, v semver.Version) bool {
	for _, existing := range vs {
		if existing.Equal(v) {
			return true
		}
	}
	return false
}

// parseVersionEntry parses a "author/project@M.N.P" registry entry.
// Entries that don't match the pattern are ignored, per spec.
func parseVersionEntry(s string) (pkgname.Name, semver.Version, bool) {
	at := -1
	for i, r := range s {
		if r == '@' {
			at = i
			break
		}
	}
	if at < 0 {
		return pkgname.Name{}, semver.Version{}, false
	}
	name, err := pkgname.Parse(s[:at])
	if err != nil {
		return pkgname.Name{}, semver.Version{}, false
	}
	v, err := semver.ParseVersion(s[at+1:])
	if err != nil {
		return pkgname.Name{}, semver.Version{}, false
	}
	return name, v, true
}

func readBoltVersions(path string) (map[pkgname.Name][]semver.Version, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.Wrapf(err, "opening version store %q", path)
	}
	defer db.Close()

	out := make(map[pkgname.Name][]semver.Version)

	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(versionsBucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			name, err := pkgname.Parse(string(k))
			if err != nil {
				return nil
			}
			var vs []semver.Version
			if err := gob.NewDecoder(bytes.NewReader(v)).Decode(&vs); err != nil {
				return err
			}
			out[name] = vs
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(err, "reading version store")
	}
	return out, nil
}

func writeBoltVersions(path string, versions map[pkgname.Name][]semver.Version) error {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return errors.Wrapf(err, "opening version store %q", path)
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(versionsBucket)
		if err != nil {
			return errors.Wrap(err, "creating versions bucket")
		}
		for name, vs := range versions {
			sorted := append([]semver.Version(nil), vs...)
			sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

			var buf bytes.Buffer
			if err := gob.NewEncoder(&buf).Encode(sorted); err != nil {
				return errors.Wrapf(err, "encoding versions for %s", name)
			}
			if err := b.Put([]byte(name.String()), buf.Bytes()); err != nil {
				return errors.Wrapf(err, "writing versions for %s", name)
			}
		}
		return nil
	})
}
