package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/elmtooling/elm-json-go/internal/clierr"
	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/registry"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

type installCommand struct {
	test bool
	yes  bool
}

func (c *installCommand) Name() string     { return "install" }
func (c *installCommand) Args() string     { return "PACKAGE... [--] [path]" }
func (c *installCommand) ShortHelp() string { return "Install a package" }
func (c *installCommand) LongHelp() string {
	return "Resolves the given packages (e.g. author/project or author/project@1.2.3)\n" +
		"against the manifest's existing constraints, then writes the result back\n" +
		"after confirmation."
}

func (c *installCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.test, "test", false, "install as a test-dependency")
	fs.BoolVar(&c.yes, "yes", false, "answer \"yes\" to all questions")
}

func (c *installCommand) Run(ctx *runContext, args []string) error {
	if len(args) == 0 {
		return clierr.New(clierr.Unknown, "install requires at least one PACKAGE argument")
	}
	extraSpecs, path := splitTrailingPath(args)

	return withManifest(path,
		func(app *manifest.Application) error { return c.installApplication(ctx, path, app, extraSpecs) },
		func(pkg *manifest.Package) error { return c.installPackage(ctx, path, pkg, extraSpecs) },
	)
}

// splitTrailingPath separates a PACKAGE... list from an optional
// trailing manifest path, the way the original CLI's "last(true)"
// argument worked: if the final argument doesn't parse as PKG or
// PKG@VERSION, it is the manifest path; otherwise every argument is a
// package spec and the default path is used.
func splitTrailingPath(args []string) ([]string, string) {
	last := args[len(args)-1]
	if _, _, err := parsePackageSpec(last); err != nil {
		return args[:len(args)-1], last
	}
	return args, defaultManifestPath
}

func (c *installCommand) installApplication(ctx *runContext, path string, app *manifest.Application, specs []string) error {
	r, err := registry.NewRetriever(context.Background(), semver.ConstraintFromVersion(app.ElmVersion), ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	extras, err := addExtraDeps(specs, r)
	if err != nil {
		return err
	}

	r.AddPreferredVersions(versionsWithout(app.Dependencies.Indirect, extras))
	r.AddPreferredVersions(versionsWithout(app.TestDependencies.Indirect, extras))
	r.AddDeps(withoutNames(appDepConstraints(app.Dependencies, semver.Exact), extras))
	r.AddDeps(withoutNames(appDepConstraints(app.TestDependencies, semver.Exact), extras))

	solver := resolver.NewResolver(r)
	if _, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps()); err != nil {
		return explainNoResolution(err)
	}
	g := solver.BuildGraph()

	directNames := make(map[pkgname.Name]bool)
	for name := range app.Dependencies.Direct {
		if !extras[name] {
			directNames[name] = true
		}
	}
	if !c.test {
		for name := range extras {
			directNames[name] = true
		}
	}

	newDirect, newTest := manifest.Reconstruct(directNames, g)

	if appDepsEqual(app.Dependencies, newDirect) && appDepsEqual(app.TestDependencies, newTest) {
		fmt.Fprintf(ctx.stdout, "\n%s\n\nAll the requested packages are already available!\n", formatHeader("NO CHANGES REQUIRED"))
		return nil
	}

	fmt.Fprintf(ctx.stdout, "\n%s\n\n", formatHeader("PACKAGE CHANGES READY"))
	showAppDiff(ctx.stdout, app.Dependencies, newDirect, app.TestDependencies, newTest)

	app.Dependencies = newDirect
	app.TestDependencies = newTest
	return maybeSave(ctx, path, app, c.yes)
}

func (c *installCommand) installPackage(ctx *runContext, path string, pkg *manifest.Package, specs []string) error {
	r, err := registry.NewRetriever(context.Background(), pkg.ElmVersion, ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	r.AddDeps(mergeDeps(
		map[pkgname.Name]semver.Constraint(pkg.Dependencies),
		map[pkgname.Name]semver.Constraint(pkg.TestDependencies),
	))
	extras, err := addExtraDeps(specs, r)
	if err != nil {
		return err
	}

	solver := resolver.NewResolver(r)
	summaries, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps())
	if err != nil {
		return explainNoResolution(err)
	}

	newDeps := make(manifest.PackageDependencies)
	newTestDeps := make(manifest.PackageDependencies)
	for _, s := range summaries {
		p, ok := s.ID.(resolver.Pkg)
		if !ok {
			continue
		}

		switch {
		case extras[p.Name]:
			pinned := semver.ConstraintFromVersion(s.Version)
			if c.test {
				newTestDeps[p.Name] = pinned
			} else {
				newDeps[p.Name] = pinned
			}
		case pkg.Dependencies[p.Name].Satisfies(s.Version):
			newDeps[p.Name] = pkg.Dependencies[p.Name]
		case pkg.TestDependencies[p.Name].Satisfies(s.Version):
			newTestDeps[p.Name] = pkg.TestDependencies[p.Name]
		default:
			newTestDeps[p.Name] = semver.ConstraintFromVersion(s.Version)
		}
	}

	if packageDepsEqual(pkg.Dependencies, newDeps) && packageDepsEqual(pkg.TestDependencies, newTestDeps) {
		fmt.Fprintf(ctx.stdout, "\n%s\n\nAll the requested packages are already available!\n", formatHeader("NO CHANGES REQUIRED"))
		return nil
	}

	fmt.Fprintf(ctx.stdout, "\n%s\n\n", formatHeader("PACKAGE CHANGES READY"))
	showConstraintDiff(ctx.stdout, depRegular, pkg.Dependencies, newDeps)
	showConstraintDiff(ctx.stdout, depTest, pkg.TestDependencies, newTestDeps)

	pkg.Dependencies = newDeps
	pkg.TestDependencies = newTestDeps
	return maybeSave(ctx, path, pkg, c.yes)
}

// explainNoResolution renders a *resolver.NoResolutionError as a
// clierr.CLIError carrying the solver's numbered proof, or wraps any
// other error as Unknown.
func explainNoResolution(err error) error {
	if nre, ok := err.(*resolver.NoResolutionError); ok {
		return clierr.Wrap(clierr.NoResolution, fmt.Errorf("%s", nre.Explain()), "could not find a set of package versions satisfying all constraints")
	}
	return clierr.Wrap(clierr.Unknown, err, "resolution failed")
}

func maybeSave(ctx *runContext, path string, m interface{}, yes bool) error {
	ok, err := confirm("Should I make these changes?", yes)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not read confirmation")
	}
	if !ok {
		fmt.Fprintln(ctx.stdout, "Aborting!")
		return nil
	}
	if err := writeManifest(path, m); err != nil {
		return err
	}
	fmt.Fprintln(ctx.stdout, "Saved updated elm.json!")
	return nil
}

func appDepsEqual(a, b manifest.AppDependencies) bool {
	return versionMapsEqual(a.Direct, b.Direct) && versionMapsEqual(a.Indirect, b.Indirect)
}

func versionMapsEqual(a, b map[pkgname.Name]semver.Version) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}

func packageDepsEqual(a, b manifest.PackageDependencies) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		bv, ok := b[k]
		if !ok || !v.Equal(bv) {
			return false
		}
	}
	return true
}
