package resolver

import "github.com/elmtooling/elm-json-go/internal/semver"

// Graph is the resolver's solution graph: one node per decided
// package, edges recording which dependency term caused which decided
// package to be pulled in. It is a plain adjacency-list over small
// integer indices — no third-party graph library appears anywhere in
// the dependency stack this resolver is built from, and the node/edge
// count here never grows large enough to need one.
type Graph struct {
	Nodes []Summary
	index map[PackageId]int
	edges [][]edge // edges[i] = dependencies of node i
}

type edge struct {
	to         int
	constraint semver.Constraint
}

// BuildGraph reconstructs the solution graph from a completed
// resolver's trail: every Decision becomes a node, and every
// CauseDependency incompatibility whose depender was decided becomes
// an edge from depender to dependee.
func (r *Resolver) BuildGraph() *Graph {
	g := &Graph{index: make(map[PackageId]int)}

	for _, a := range r.partial.trail {
		if a.Kind != Decision {
			continue
		}
		g.index[a.Pkg] = len(g.Nodes)
		g.Nodes = append(g.Nodes, Summary{ID: a.Pkg, Version: a.Version})
	}
	g.edges = make([][]edge, len(g.Nodes))

	for _, inc := range r.log {
		if inc.Cause.Kind != CauseDependency || len(inc.Terms) != 2 {
			continue
		}
		depender, dependee := inc.Terms[0], inc.Terms[1]
		from, ok := g.index[depender.Pkg]
		if !ok {
			continue
		}
		to, ok := g.index[dependee.Pkg]
		if !ok {
			continue
		}
		g.edges[from] = append(g.edges[from], edge{to: to, constraint: dependee.EffectiveConstraint()})
	}

	return g
}

// Dependencies returns the nodes that n directly depends on.
func (g *Graph) Dependencies(n int) []Summary {
	out := make([]Summary, 0, len(g.edges[n]))
	for _, e := range g.edges[n] {
		out = append(out, g.Nodes[e.to])
	}
	return out
}

// IndexOf returns the node index for pkg, or ok=false if it was never
// decided.
func (g *Graph) IndexOf(pkg PackageId) (int, bool) {
	i, ok := g.index[pkg]
	return i, ok
}

// ConstraintDerivedFromParents computes, for node n, the intersection
// of every dependency constraint its in-edges place on it — used to
// check the property that every decided version lies within what its
// parents actually allow.
func (g *Graph) ConstraintDerivedFromParents(n int) semver.Constraint {
	c := semver.Any()
	for _, edges := range g.edges {
		for _, e := range edges {
			if e.to == n {
				c = c.Intersection(e.constraint)
			}
		}
	}
	return c
}
