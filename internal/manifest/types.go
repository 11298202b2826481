// Package manifest implements the elm.json schema: the
// application/package dual model, JSON round-trip of unrecognized
// top-level keys, and the dependency-graph reconstruction and diff
// utilities that operate over a solved graph.
package manifest

import (
	"encoding/json"

	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// ProjectType discriminates the two manifest shapes.
type ProjectType int

const (
	TypeApplication ProjectType = iota
	TypePackage
)

// AppDependencies is one of an Application's two dependency sections
// (plain or test): direct entries the user declared, indirect entries
// the solver added to make the graph complete.
type AppDependencies struct {
	Direct   map[pkgname.Name]semver.Version
	Indirect map[pkgname.Name]semver.Version
}

func newAppDependencies() AppDependencies {
	return AppDependencies{
		Direct:   make(map[pkgname.Name]semver.Version),
		Indirect: make(map[pkgname.Name]semver.Version),
	}
}

// Application is the elm.json shape used by end-user projects: a set
// of source directories plus direct/indirect dependency pins.
type Application struct {
	SourceDirectories []string
	ElmVersion        semver.Version
	Dependencies      AppDependencies
	TestDependencies  AppDependencies

	// Other preserves any top-level key this type doesn't model, so a
	// write reproduces it verbatim.
	Other map[string]json.RawMessage
}

// NewApplication builds an empty Application manifest.
func NewApplication() *Application {
	return &Application{
		Dependencies:     newAppDependencies(),
		TestDependencies: newAppDependencies(),
		Other:            make(map[string]json.RawMessage),
	}
}

// PackageDependencies is a package manifest's dependency section:
// name to range-string constraint, unlike an application's pinned
// versions.
type PackageDependencies map[pkgname.Name]semver.Constraint

// Package is the elm.json shape used by published libraries: a
// name/version/summary/license plus range-constrained dependencies.
type Package struct {
	Name             pkgname.Name
	Summary          string
	License          string
	Version          semver.Version
	ExposedModules   ExposedModules
	ElmVersion       semver.Constraint
	Dependencies     PackageDependencies
	TestDependencies PackageDependencies

	Other map[string]json.RawMessage
}

// NewPackage builds an empty Package manifest.
func NewPackage() *Package {
	return &Package{
		Dependencies:     make(PackageDependencies),
		TestDependencies: make(PackageDependencies),
		Other:            make(map[string]json.RawMessage),
	}
}

// ExposedModules is either a flat list of module names, or a grouped
// map from a category label to its module list — the package schema
// allows both shapes.
type ExposedModules struct {
	Flat    []string
	Grouped map[string][]string
}

func (e ExposedModules) isGrouped() bool { return e.Grouped != nil }
