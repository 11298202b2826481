package registry

import (
	"context"
	"sort"

	"github.com/pkg/errors"

	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// rootVersion is the sole version of the synthetic resolver.Root
// package; its value is arbitrary since nothing ever constrains it.
var rootVersion = semver.New(1, 0, 0)

// Retriever is the resolver.Source that drives everything the
// resolver needs from the outside world: a version index (backed by
// versions.dat plus, unless offline, the registry's all-packages
// feed), per-version manifests (the on-disk side-cache, then the
// registry), and the preferred-version/minimize
// policy applied by Best.
type Retriever struct {
	versions map[pkgname.Name][]semver.Version
	incompat map[resolver.PackageId][]resolver.Term
	cache    *sideCache
	client   *client
	policy   *policy
	offline  bool

	runtimeConstraint semver.Constraint
}

// NewRetriever constructs a Retriever, loading the version index
// (fetching fresh entries from the registry unless offline) and
// seeding the root package's incompatibilities with a single term
// pinning the supported runtime-language range.
func NewRetriever(ctx context.Context, runtimeConstraint semver.Constraint, offline bool) (*Retriever, error) {
	root, err := storeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "resolving package store root")
	}

	vs := newVersionStore(root)
	var fetch func(int) ([]string, error)
	var c *client
	if !offline {
		c = newClient(ctx, "")
		fetch = c.allPackagesSince
	}

	versions, err := vs.load(fetch)
	if err != nil {
		return nil, errors.Wrap(err, "loading version index")
	}

	r := &Retriever{
		versions:          versions,
		incompat:          make(map[resolver.PackageId][]resolver.Term),
		cache:             newSideCache(root),
		client:            c,
		policy:            newPolicy(),
		offline:           offline,
		runtimeConstraint: runtimeConstraint,
	}
	r.incompat[resolver.Root{}] = []resolver.Term{
		resolver.PositiveTerm(resolver.RuntimeLang{}, runtimeConstraint),
	}
	return r, nil
}

// Minimize switches Best to prefer the least admissible version
// instead of the greatest.
func (r *Retriever) Minimize() { r.policy.setMinimize() }

// AddPreferredVersions seeds the policy's preferred-version map, used
// by Best to pin an indirect dependency to the version already
// recorded in the manifest unless the caller's constraint rules it
// out.
func (r *Retriever) AddPreferredVersions(prefs map[pkgname.Name]semver.Version) {
	for name, v := range prefs {
		r.policy.addPreferred(name, v)
	}
}

// AddDep appends a root dependency on name, optionally pinned to an
// exact version (nil means "any version").
func (r *Retriever) AddDep(name pkgname.Name, version *semver.Version) {
	var c semver.Constraint
	if version == nil {
		c = semver.Any()
	} else {
		c = semver.ConstraintFromVersion(*version)
	}
	r.incompat[resolver.Root{}] = append(r.incompat[resolver.Root{}],
		resolver.PositiveTerm(resolver.Pkg{Name: name}, c))
}

// AddDeps appends root dependencies from a manifest-style
// name->constraint range map.
func (r *Retriever) AddDeps(deps map[pkgname.Name]semver.Constraint) {
	names := sortedDepNames(deps)
	for _, name := range names {
		r.incompat[resolver.Root{}] = append(r.incompat[resolver.Root{}],
			resolver.PositiveTerm(resolver.Pkg{Name: name}, deps[name]))
	}
}

// RootDeps returns the accumulated root dependency terms (the runtime
// pin plus everything added via AddDep/AddDeps), for passing as the
// rootDeps argument to resolver.Resolver.Solve.
func (r *Retriever) RootDeps() []resolver.Term {
	return r.incompat[resolver.Root{}]
}

func sortedDepNames(deps map[pkgname.Name]semver.Constraint) []pkgname.Name {
	names := make([]pkgname.Name, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return nameLess(names[i], names[j]) })
	return names
}

func nameLess(a, b pkgname.Name) bool {
	if a.Author != b.Author {
		return a.Author < b.Author
	}
	return a.Project < b.Project
}

// Versions implements resolver.Source.
func (r *Retriever) Versions(pkg resolver.PackageId) ([]semver.Version, error) {
	switch p := pkg.(type) {
	case resolver.Root:
		return []semver.Version{rootVersion}, nil
	case resolver.RuntimeLang:
		return append([]semver.Version(nil), runtimeLangVersions...), nil
	case resolver.Pkg:
		vs, ok := r.versions[p.Name]
		if !ok {
			return nil, resolver.ErrUnknownPackage
		}
		return vs, nil
	default:
		return nil, errors.Errorf("unrecognized package id %v", pkg)
	}
}

// Dependencies implements resolver.Source.
func (r *Retriever) Dependencies(pkg resolver.PackageId, version semver.Version) ([]resolver.Term, error) {
	if terms, ok := r.incompat[pkg]; ok {
		return terms, nil
	}

	p, ok := pkg.(resolver.Pkg)
	if !ok {
		return nil, nil
	}

	m, err := r.manifestFor(p.Name, version)
	if err != nil {
		return nil, err
	}

	terms := make([]resolver.Term, 0, len(m.Dependencies)+1)
	for _, name := range sortedDepNames(m.Dependencies) {
		terms = append(terms, resolver.PositiveTerm(resolver.Pkg{Name: name}, m.Dependencies[name]))
	}
	terms = append(terms, resolver.PositiveTerm(resolver.RuntimeLang{}, m.ElmVersion))

	r.incompat[pkg] = terms
	return terms, nil
}

// CountVersions implements resolver.Source: it reports how many of
// pkg's known versions satisfy allowed, the figure the resolver's
// next-package-to-decide rule minimises over.
func (r *Retriever) CountVersions(pkg resolver.PackageId, allowed semver.Constraint) (int, error) {
	versions, err := r.Versions(pkg)
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

// Best implements resolver.Source.
func (r *Retriever) Best(pkg resolver.PackageId, candidates []semver.Version, allowed semver.Constraint) (semver.Version, error) {
	p, ok := pkg.(resolver.Pkg)
	if !ok {
		if len(candidates) == 0 {
			return semver.Version{}, errors.Errorf("no admissible version found for %s", pkg)
		}
		return candidates[len(candidates)-1], nil
	}
	return r.policy.best(p.Name, candidates, allowed)
}

// manifestFor resolves a package manifest through the on-disk
// side-cache, then (unless offline) the registry, persisting a
// freshly-fetched manifest to the side-cache. It keeps no in-memory
// cache of its own; Dependencies caches the terms derived from it.
func (r *Retriever) manifestFor(name pkgname.Name, version semver.Version) (*manifest.Package, error) {
	if m, err := r.cache.read(name, version); err == nil {
		return m, nil
	}

	if r.offline {
		return nil, errors.Errorf("network access is disabled (--offline): no cached manifest for %s@%s", name, version)
	}

	m, raw, err := r.client.fetchManifest(name.String(), version.String())
	if err != nil {
		return nil, err
	}
	if err := r.cache.write(name, version, raw); err != nil {
		return nil, err
	}
	return m, nil
}
