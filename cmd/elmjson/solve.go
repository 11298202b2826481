package main

import (
	"context"
	"encoding/json"
	"flag"

	"github.com/elmtooling/elm-json-go/internal/clierr"
	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/registry"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// solveCommand exists for tooling that wants a concrete dependency set
// without touching the manifest on disk.
type solveCommand struct {
	test     bool
	minimize bool
	extra    []string
}

func (c *solveCommand) Name() string { return "solve" }
func (c *solveCommand) Args() string { return "[path]" }
func (c *solveCommand) ShortHelp() string {
	return "Figure out a solution given the version constraints in your elm.json"
}
func (c *solveCommand) LongHelp() string {
	return "Resolves the constraints in the given elm.json (default: elm.json) and\n" +
		"prints the resulting dependency set on stdout as one flat JSON object\n" +
		"mapping each package name to its chosen version."
}

func (c *solveCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.test, "test", false, "promote test-dependencies to top-level dependencies")
	fs.BoolVar(&c.minimize, "minimize", false, "choose lowest available versions rather than highest")
	fs.BoolVar(&c.minimize, "m", false, "shorthand for -minimize")
	fs.Var(repeatableFlag{&c.extra}, "extra", "specify an extra dependency, e.g. elm/core or elm/core@1.0.2")
	fs.Var(repeatableFlag{&c.extra}, "e", "shorthand for -extra")
}

func (c *solveCommand) Run(ctx *runContext, args []string) error {
	path := manifestPathArg(args)
	return withManifest(path,
		func(app *manifest.Application) error { return c.solveApplication(ctx, app) },
		func(pkg *manifest.Package) error { return c.solvePackage(ctx, pkg) },
	)
}

func (c *solveCommand) solveApplication(ctx *runContext, app *manifest.Application) error {
	r, err := registry.NewRetriever(context.Background(), semver.ConstraintFromVersion(app.ElmVersion), ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}
	if c.minimize {
		r.Minimize()
	}

	extras, err := addExtraDeps(c.extra, r)
	if err != nil {
		return err
	}

	r.AddPreferredVersions(versionsWithout(app.Dependencies.Indirect, extras))
	r.AddDeps(withoutNames(appDepConstraints(app.Dependencies, semver.Exact), extras))

	if c.test {
		r.AddPreferredVersions(versionsWithout(app.TestDependencies.Indirect, extras))
		r.AddDeps(withoutNames(appDepConstraints(app.TestDependencies, semver.Exact), extras))
	}

	summaries, err := resolveRoot(r)
	if err != nil {
		return err
	}

	return printSolution(ctx, summaries)
}

func (c *solveCommand) solvePackage(ctx *runContext, pkg *manifest.Package) error {
	r, err := registry.NewRetriever(context.Background(), pkg.ElmVersion, ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}
	if c.minimize {
		r.Minimize()
	}

	extras, err := addExtraDeps(c.extra, r)
	if err != nil {
		return err
	}

	deps := map[pkgname.Name]semver.Constraint(pkg.Dependencies)
	if c.test {
		deps = mergeDeps(deps, map[pkgname.Name]semver.Constraint(pkg.TestDependencies))
	}
	r.AddDeps(withoutNames(deps, extras))

	summaries, err := resolveRoot(r)
	if err != nil {
		return err
	}
	return printSolution(ctx, summaries)
}

// resolveRoot runs the solver to completion over r's accumulated root
// dependencies, rendering a NoResolutionError as a clierr.CLIError
// with the solver's proof attached.
func resolveRoot(r *registry.Retriever) ([]resolver.Summary, error) {
	solver := resolver.NewResolver(r)
	summaries, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps())
	if err != nil {
		return nil, explainNoResolution(err)
	}
	return summaries, nil
}

// printSolution renders a solved graph's non-synthetic packages as a
// flat name->version JSON object on stdout.
func printSolution(ctx *runContext, summaries []resolver.Summary) error {
	out := make(map[string]string)
	for _, s := range summaries {
		if p, ok := s.ID.(resolver.Pkg); ok {
			out[p.Name.String()] = s.Version.String()
		}
	}
	enc := json.NewEncoder(ctx.stdout)
	return enc.Encode(out)
}
