package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/elmtooling/elm-json-go/internal/clierr"
	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/registry"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// defaultManifestPath is the filename used when a subcommand's [path]
// argument is omitted.
const defaultManifestPath = "elm.json"

// manifestPathArg returns args[0] if present, else the default path.
func manifestPathArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultManifestPath
}

func readManifest(path string) (interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, clierr.Wrap(clierr.MissingManifest, err, fmt.Sprintf("could not open %s", path))
	}
	defer f.Close()

	m, err := manifest.Read(f)
	if err != nil {
		return nil, clierr.Wrap(clierr.InvalidManifest, err, fmt.Sprintf("could not parse %s", path))
	}
	return m, nil
}

func writeManifest(path string, m interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return clierr.Wrap(clierr.UnwritableManifest, err, fmt.Sprintf("could not write %s", path))
	}
	defer f.Close()

	if err := manifest.Write(f, m); err != nil {
		return clierr.Wrap(clierr.UnwritableManifest, err, fmt.Sprintf("could not write %s", path))
	}
	return nil
}

// withManifest loads path, dispatching to runApp or runPkg depending
// on its discriminator.
func withManifest(path string, runApp func(*manifest.Application) error, runPkg func(*manifest.Package) error) error {
	m, err := readManifest(path)
	if err != nil {
		return err
	}
	switch v := m.(type) {
	case *manifest.Application:
		return runApp(v)
	case *manifest.Package:
		return runPkg(v)
	default:
		return clierr.New(clierr.InvalidManifest, fmt.Sprintf("%s is neither an application nor a package manifest", path))
	}
}

// confirm prompts the user for a yes/no answer on stdin, short-circuiting
// to true when autoYes is set (the --yes flag).
func confirm(prompt string, autoYes bool) (bool, error) {
	if autoYes {
		return true, nil
	}

	fmt.Printf("%s [y/N] ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
	return answer == "y" || answer == "yes", nil
}

// parsePackageSpec splits a "name" or "name@version" CLI argument.
func parsePackageSpec(spec string) (pkgname.Name, *semver.Version, error) {
	parts := strings.SplitN(spec, "@", 2)
	name, err := pkgname.Parse(parts[0])
	if err != nil {
		return pkgname.Name{}, nil, fmt.Errorf("invalid package name %q: %s", parts[0], err)
	}
	if len(parts) == 1 {
		return name, nil, nil
	}
	v, err := semver.ParseVersion(parts[1])
	if err != nil {
		return pkgname.Name{}, nil, fmt.Errorf("invalid version in %q: %s", spec, err)
	}
	return name, &v, nil
}

// addExtraDeps parses --extra PKG[@VER]... arguments and registers
// each as a root dependency on r, returning the set of package names
// it touched so callers can exclude them from the manifest's own
// declared dependencies (an explicit --extra always wins).
func addExtraDeps(extras []string, r *registry.Retriever) (map[pkgname.Name]bool, error) {
	seen := make(map[pkgname.Name]bool)
	for _, spec := range extras {
		name, version, err := parsePackageSpec(spec)
		if err != nil {
			return nil, err
		}
		r.AddDep(name, version)
		seen[name] = true
	}
	return seen, nil
}

// appDepConstraints widens both the direct and indirect pins of an
// application dependency section into a single range-constraint map,
// the form the retriever's AddDeps wants.
func appDepConstraints(deps manifest.AppDependencies, strictness semver.Strictness) map[pkgname.Name]semver.Constraint {
	out := widenDeps(deps.Direct, strictness)
	for k, v := range widenDeps(deps.Indirect, strictness) {
		out[k] = v
	}
	return out
}

// widenDeps widens a set of pinned versions into range-constraints
// using strictness, for feeding an application's already-pinned
// dependencies back into the resolver as a starting point.
func widenDeps(pins map[pkgname.Name]semver.Version, strictness semver.Strictness) map[pkgname.Name]semver.Constraint {
	out := make(map[pkgname.Name]semver.Constraint, len(pins))
	for name, v := range pins {
		out[name] = semver.FromRange(semver.From(v, strictness))
	}
	return out
}

// mergeDeps combines a and b into a new map, b taking precedence on
// overlapping keys.
func mergeDeps(a, b map[pkgname.Name]semver.Constraint) map[pkgname.Name]semver.Constraint {
	out := make(map[pkgname.Name]semver.Constraint, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}

// withoutNames returns a copy of deps with every key in excluded
// removed, used to let an explicit --extra PACKAGE@VERSION override
// whatever a manifest already declares for that name.
func withoutNames(deps map[pkgname.Name]semver.Constraint, excluded map[pkgname.Name]bool) map[pkgname.Name]semver.Constraint {
	out := make(map[pkgname.Name]semver.Constraint, len(deps))
	for k, v := range deps {
		if excluded[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// versionsWithout returns a copy of pins with every key in excluded
// removed.
func versionsWithout(pins map[pkgname.Name]semver.Version, excluded map[pkgname.Name]bool) map[pkgname.Name]semver.Version {
	out := make(map[pkgname.Name]semver.Version, len(pins))
	for k, v := range pins {
		if excluded[k] {
			continue
		}
		out[k] = v
	}
	return out
}

func formatHeader(title string) string {
	dashes := 80 - 4 - len(title)
	if dashes < 0 {
		dashes = 0
	}
	return fmt.Sprintf("-- %s %s", title, strings.Repeat("-", dashes))
}

// repeatableFlag accumulates repeated "--extra" (or similar)
// occurrences of a flag.FlagSet string flag into a slice.
type repeatableFlag struct {
	values *[]string
}

func (r repeatableFlag) String() string {
	if r.values == nil {
		return ""
	}
	return strings.Join(*r.values, ",")
}

func (r repeatableFlag) Set(v string) error {
	*r.values = append(*r.values, v)
	return nil
}
