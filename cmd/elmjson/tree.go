package main

import (
	"context"
	"flag"
	"fmt"
	"sort"

	"github.com/elmtooling/elm-json-go/internal/clierr"
	"github.com/elmtooling/elm-json-go/internal/manifest"
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/registry"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// maxTreePathDepth bounds how many edges a single root-to-target path
// -package will follow before that path's enumeration is abandoned; a
// solved graph with pathological indirect fan-out could otherwise
// recurse without bound along one branch.
const maxTreePathDepth = 64

type treeCommand struct {
	test    bool
	pkgSpec string
}

func (c *treeCommand) Name() string     { return "tree" }
func (c *treeCommand) Args() string     { return "[path]" }
func (c *treeCommand) ShortHelp() string { return "List entire dependency graph as a tree" }
func (c *treeCommand) LongHelp() string {
	return "Solves the manifest's constraints and prints the resulting dependency\n" +
		"tree. Pass -package to limit the output to the paths reaching one\n" +
		"particular (possibly indirect) dependency."
}

func (c *treeCommand) Register(fs *flag.FlagSet) {
	fs.BoolVar(&c.test, "test", false, "promote test-dependencies to top-level dependencies")
	fs.StringVar(&c.pkgSpec, "package", "", "limit output to paths reaching this (indirect) dependency")
}

func (c *treeCommand) Run(ctx *runContext, args []string) error {
	path := manifestPathArg(args)
	return withManifest(path,
		func(app *manifest.Application) error { return c.treeApplication(ctx, app) },
		func(pkg *manifest.Package) error { return c.treePackage(ctx, pkg) },
	)
}

func (c *treeCommand) treeApplication(ctx *runContext, app *manifest.Application) error {
	r, err := registry.NewRetriever(context.Background(), semver.ConstraintFromVersion(app.ElmVersion), ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	r.AddPreferredVersions(app.Dependencies.Indirect)
	r.AddDeps(appDepConstraints(app.Dependencies, semver.Exact))

	if c.test {
		r.AddPreferredVersions(app.TestDependencies.Indirect)
		r.AddDeps(appDepConstraints(app.TestDependencies, semver.Exact))
	}

	g, err := solveGraph(r)
	if err != nil {
		return err
	}
	return c.showTree(ctx, g)
}

func (c *treeCommand) treePackage(ctx *runContext, pkg *manifest.Package) error {
	r, err := registry.NewRetriever(context.Background(), pkg.ElmVersion, ctx.offline)
	if err != nil {
		return clierr.Wrap(clierr.Unknown, err, "could not initialize the package retriever")
	}

	deps := map[pkgname.Name]semver.Constraint(pkg.Dependencies)
	if c.test {
		deps = mergeDeps(deps, map[pkgname.Name]semver.Constraint(pkg.TestDependencies))
	}
	r.AddDeps(deps)

	g, err := solveGraph(r)
	if err != nil {
		return err
	}
	return c.showTree(ctx, g)
}

func solveGraph(r *registry.Retriever) (*resolver.Graph, error) {
	solver := resolver.NewResolver(r)
	if _, err := solver.Solve(resolver.Root{}, semver.New(1, 0, 0), r.RootDeps()); err != nil {
		return nil, explainNoResolution(err)
	}
	return solver.BuildGraph(), nil
}

func (c *treeCommand) showTree(ctx *runContext, g *resolver.Graph) error {
	rootIdx, ok := g.IndexOf(resolver.Root{})
	if !ok {
		fmt.Fprintln(ctx.stdout, "\nproject")
		return nil
	}

	if c.pkgSpec == "" {
		fmt.Fprintln(ctx.stdout, "\nproject")
		printChildren(ctx, "", g, make(map[int]bool), rootIdx)
		fmt.Fprintln(ctx.stdout, "\nItems marked with * have their dependencies omitted since they've already")
		fmt.Fprintln(ctx.stdout, "appeared in the output.")
		return nil
	}

	name, err := pkgname.Parse(c.pkgSpec)
	if err != nil {
		return fmt.Errorf("invalid package name %q: %s", c.pkgSpec, err)
	}
	targetIdx, ok := g.IndexOf(resolver.Pkg{Name: name})
	if !ok {
		fmt.Fprintf(ctx.stdout, "Could not find %s in direct or indirect dependencies.\n", c.pkgSpec)
		return nil
	}

	onPath := pathNodes(ctx, g, rootIdx, targetIdx)
	fmt.Fprintln(ctx.stdout, "\nproject")
	printFilteredChildren(ctx, "", g, make(map[int]bool), rootIdx, onPath)
	return nil
}

// pathNodes returns every node index appearing on some simple path
// from root to target, discovered by DFS. Each path's own recursion is
// bounded at maxTreePathDepth edges — not the number of paths
// enumerated — so a path that runs past the bound is abandoned (not
// the whole traversal) and a truncation note is printed once.
func pathNodes(ctx *runContext, g *resolver.Graph, root, target int) map[int]bool {
	onPath := make(map[int]bool)
	truncated := false

	var walk func(n int, trail []int, visiting map[int]bool)
	walk = func(n int, trail []int, visiting map[int]bool) {
		trail = append(trail, n)
		if n == target {
			for _, idx := range trail {
				onPath[idx] = true
			}
			return
		}
		if len(trail) > maxTreePathDepth {
			truncated = true
			return
		}
		visiting[n] = true
		for _, s := range g.Dependencies(n) {
			idx, ok := g.IndexOf(s.ID)
			if !ok || visiting[idx] {
				continue
			}
			walk(idx, trail, visiting)
		}
		delete(visiting, n)
	}
	walk(root, nil, make(map[int]bool))

	if truncated {
		fmt.Fprintf(ctx.stdout, "warning: some dependency paths exceeded %d edges and were not fully explored\n", maxTreePathDepth)
	}
	return onPath
}

func printChildren(ctx *runContext, prefix string, g *resolver.Graph, visited map[int]bool, node int) {
	children := sortedPkgChildren(g, node)
	for i, idx := range children {
		item := g.Nodes[idx]
		p, ok := item.ID.(resolver.Pkg)
		if !ok {
			continue
		}
		repeated := visited[idx] && len(g.Dependencies(idx)) > 0
		visited[idx] = true

		connector, childPrefix := treeGlyphs(i == len(children)-1)
		marker := ""
		if repeated {
			marker = " *"
		}
		fmt.Fprintf(ctx.stdout, "%s%s %s @ %s%s\n", prefix, connector, p.Name, item.Version, marker)

		if !repeated {
			printChildren(ctx, prefix+childPrefix, g, visited, idx)
		}
	}
}

func printFilteredChildren(ctx *runContext, prefix string, g *resolver.Graph, visited map[int]bool, node int, allowed map[int]bool) {
	children := sortedPkgChildren(g, node)
	var kept []int
	for _, idx := range children {
		if allowed[idx] {
			kept = append(kept, idx)
		}
	}
	for i, idx := range kept {
		item := g.Nodes[idx]
		p, ok := item.ID.(resolver.Pkg)
		if !ok {
			continue
		}
		repeated := visited[idx]
		visited[idx] = true

		connector, childPrefix := treeGlyphs(i == len(kept)-1)
		marker := ""
		if repeated {
			marker = " *"
		}
		fmt.Fprintf(ctx.stdout, "%s%s %s @ %s%s\n", prefix, connector, p.Name, item.Version, marker)

		if !repeated {
			printFilteredChildren(ctx, prefix+childPrefix, g, visited, idx, allowed)
		}
	}
}

func treeGlyphs(last bool) (connector, childPrefix string) {
	if last {
		return "└──", "    "
	}
	return "├──", "│   "
}

func sortedPkgChildren(g *resolver.Graph, node int) []int {
	var idxs []int
	for _, s := range g.Dependencies(node) {
		if idx, ok := g.IndexOf(s.ID); ok {
			if _, isPkg := s.ID.(resolver.Pkg); isPkg {
				idxs = append(idxs, idx)
			}
		}
	}
	sort.Slice(idxs, func(i, j int) bool {
		return g.Nodes[idxs[i]].ID.String() < g.Nodes[idxs[j]].ID.String()
	})
	return idxs
}
