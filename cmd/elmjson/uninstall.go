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

type uninstallCommand struct {
	yes bool
}

func (c *uninstallCommand) Name() string     { return "uninstall" }
func (c *uninstallCommand) Args() string     { return "PACKAGE... [--] [path]" }
func (c *uninstallCommand) ShortHelp() string { return "Uninstall a package" }
func (c *uninstallCommand) LongHelp() string {
	return "Removes the given packages (by name only, e.g. author/project) and any\n" +
		"indirect dependency they alone required, after confirmation."
}

func (c *uninstallCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "answer \"yes\" to all questions")
}

func (c *uninstallCommand) Run(ctx *runContext, args []string) error {
	if len(args) == 0 {
		return clierr.New(clierr.Unknown, "uninstall requires at least one PACKAGE argument")
	}
	names, path := splitTrailingNamePath(args)

	return withManifest(path,
		func(app *manifest.Application) error { return c.uninstallApplication(ctx, path, app, names) },
		func(pkg *manifest.Package) error { return c.uninstallPackage(ctx, path, pkg, names) },
	)
}

// splitTrailingNamePath is splitTrailingPath's counterpart for bare
// package names (no version suffix allowed on uninstall).
func splitTrailingNamePath(args []string) ([]string, string) {
	last := args[len(args)-1]
	if _, err := pkgname.Parse(last); err != nil {
		return args[:len(args)-1], last
	}
	return args, defaultManifestPath
}

func (c *uninstallCommand) uninstallApplication(ctx *runContext, path string, app *manifest.Application, names []string) error {
	excluded := make(map[pkgname.Name]bool, len(names))
	for _, n := range names {
		name, err := pkgname.Parse(n)
		if err != nil {
			return fmt.Errorf("invalid package name %q: %s", n, err)
		}
		excluded[name] = true
	}

	r, err := registry.NewRetriever(context.Background(), semver.ConstraintFromVersion(app.ElmVersion), ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	r.AddPreferredVersions(versionsWithout(app.Dependencies.Indirect, excluded))
	r.AddPreferredVersions(versionsWithout(app.TestDependencies.Indirect, excluded))
	r.AddDeps(withoutNames(appDepConstraints(app.Dependencies, semver.Exact), excluded))
	r.AddDeps(withoutNames(appDepConstraints(app.TestDependencies, semver.Exact), excluded))

	solver := resolver.NewResolver(r)
	if _, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps()); err != nil {
		return explainNoResolution(err)
	}
	g := solver.BuildGraph()

	directNames := make(map[pkgname.Name]bool)
	for name := range app.Dependencies.Direct {
		if !excluded[name] {
			directNames[name] = true
		}
	}

	newDirect, newTest := manifest.Reconstruct(directNames, g)

	fmt.Fprintf(ctx.stdout, "\n%s\n\n", formatHeader("PACKAGE CHANGES READY"))
	showAppDiff(ctx.stdout, app.Dependencies, newDirect, app.TestDependencies, newTest)

	app.Dependencies = newDirect
	app.TestDependencies = newTest
	return maybeSave(ctx, path, app, c.yes)
}

func (c *uninstallCommand) uninstallPackage(ctx *runContext, path string, pkg *manifest.Package, names []string) error {
	excluded := make(map[pkgname.Name]bool, len(names))
	for _, n := range names {
		name, err := pkgname.Parse(n)
		if err != nil {
			return fmt.Errorf("invalid package name %q: %s", n, err)
		}
		excluded[name] = true
	}

	newDeps := withoutNames(map[pkgname.Name]semver.Constraint(pkg.Dependencies), excluded)
	newTestDeps := withoutNames(map[pkgname.Name]semver.Constraint(pkg.TestDependencies), excluded)

	fmt.Fprintf(ctx.stdout, "\n%s\n\n", formatHeader("PACKAGE CHANGES READY"))
	showConstraintDiff(ctx.stdout, depRegular, pkg.Dependencies, newDeps)
	showConstraintDiff(ctx.stdout, depTest, pkg.TestDependencies, newTestDeps)

	pkg.Dependencies = newDeps
	pkg.TestDependencies = newTestDeps
	return maybeSave(ctx, path, pkg, c.yes)
}
