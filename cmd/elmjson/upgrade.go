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

type upgradeCommand struct {
	unsafe bool
	yes    bool
}

func (c *upgradeCommand) Name() string     { return "upgrade" }
func (c *upgradeCommand) Args() string     { return "[path]" }
func (c *upgradeCommand) ShortHelp() string { return "Bring your dependencies up to date" }
func (c *upgradeCommand) LongHelp() string {
	return "Re-solves every direct dependency against the newest versions the\n" +
		"registry knows about. By default each dependency is only allowed to move\n" +
		"within its current major version; pass -unsafe to allow major bumps."
}

func (c *upgradeCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.unsafe, "unsafe", false, "allow major version bumps")
	fs.BoolVar(&c.yes, "yes", false, "answer \"yes\" to all questions")
}

func (c *upgradeCommand) Run(ctx *runContext, args []string) error {
	path := manifestPathArg(args)
	return withManifest(path,
		func(app *manifest.Application) error { return c.upgradeApplication(ctx, path, app) },
		func(pkg *manifest.Package) error {
			return clierr.New(clierr.NotSupported, "upgrading a package manifest directly is not supported; adjust its ranges by hand")
		},
	)
}

func (c *upgradeCommand) upgradeApplication(ctx *runContext, path string, app *manifest.Application) error {
	strictness := semver.Safe
	if c.unsafe {
		strictness = semver.Unsafe
	}

	r, err := registry.NewRetriever(context.Background(), semver.ConstraintFromVersion(app.ElmVersion), ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	r.AddDeps(appDepConstraints(app.Dependencies, strictness))
	r.AddDeps(appDepConstraints(app.TestDependencies, strictness))

	solver := resolver.NewResolver(r)
	if _, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps()); err != nil {
		return explainNoResolution(err)
	}
	g := solver.BuildGraph()

	directNames := make(map[pkgname.Name]bool, len(app.Dependencies.Direct))
	for name := range app.Dependencies.Direct {
		directNames[name] = true
	}

	newDirect, newTest := manifest.Reconstruct(directNames, g)

	if appDepsEqual(app.Dependencies, newDirect) && appDepsEqual(app.TestDependencies, newTest) {
		fmt.Fprintf(ctx.stdout, "\n%s\n\nAll your dependencies appear to be up to date!\n", formatHeader("PACKAGES UP TO DATE"))
		return nil
	}

	fmt.Fprintf(ctx.stdout, "\n%s\n\n", formatHeader("PACKAGE UPGRADES FOUND"))
	showAppDiff(ctx.stdout, app.Dependencies, newDirect, app.TestDependencies, newTest)

	app.Dependencies = newDirect
	app.TestDependencies = newTest
	return maybeSave(ctx, path, app, c.yes)
}
