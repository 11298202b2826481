package manifest

import (
	"github.com/elmtooling/elm-json-go/internal/pkgname"
	"github.com/elmtooling/elm-json-go/internal/resolver"
	"github.com/elmtooling/elm-json-go/internal/semver"
)

// Reconstruct partitions a solved graph's packages into direct,
// indirect, test-direct and test-indirect dependencies for an
// application manifest. directNames is the set the user explicitly
// declared before the solve ran; every other root neighbour is
// provisionally a test dependency. Ported from the original tool's
// project::reconstruct: a DFS from each direct neighbour populates
// indirect, a BFS from each remaining (test) neighbour populates
// test_indirect, and a node is placed in at most one bucket — first
// visit wins.
func Reconstruct(directNames map[pkgname.Name]bool, g *resolver.Graph) (AppDependencies, AppDependencies) {
	direct := newAppDependencies()
	testDirect := newAppDependencies()

	rootIdx, ok := g.IndexOf(resolver.Root{})
	if !ok {
		return direct, testDirect
	}

	visited := make(map[int]bool)
	visited[rootIdx] = true

	var testIdxs []int

	for _, s := range g.Dependencies(rootIdx) {
		idx, ok := g.IndexOf(s.ID)
		if !ok || visited[idx] {
			continue
		}
		p, isPkg := s.ID.(resolver.Pkg)
		if !isPkg {
			visited[idx] = true
			continue
		}
		visited[idx] = true

		if directNames[p.Name] {
			direct.Direct[p.Name] = s.Version
			dfsIndirect(g, idx, directNames, visited, direct.Indirect)
		} else {
			testIdxs = append(testIdxs, idx)
		}
	}

	for _, idx := range testIdxs {
		s := g.Nodes[idx]
		p, isPkg := s.ID.(resolver.Pkg)
		if !isPkg {
			continue
		}
		testDirect.Direct[p.Name] = s.Version
		bfsIndirect(g, idx, visited, testDirect.Indirect)
	}

	return direct, testDirect
}

// dfsIndirect depth-first visits every node reachable from start,
// skipping anything already visited or named in directNames, adding
// the rest to into.
func dfsIndirect(g *resolver.Graph, start int, directNames map[pkgname.Name]bool, visited map[int]bool, into map[pkgname.Name]semver.Version) {
	stack := []int{start}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, s := range g.Dependencies(n) {
			idx, ok := g.IndexOf(s.ID)
			if !ok || visited[idx] {
				continue
			}

			p, isPkg := s.ID.(resolver.Pkg)
			if isPkg && directNames[p.Name] {
				continue
			}
			visited[idx] = true
			if !isPkg {
				continue
			}
			into[p.Name] = s.Version
			stack = append(stack, idx)
		}
	}
}

// bfsIndirect breadth-first visits every node reachable from start,
// skipping anything already visited, adding the rest to into.
func bfsIndirect(g *resolver.Graph, start int, visited map[int]bool, into map[pkgname.Name]semver.Version) {
	queue := []int{start}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, s := range g.Dependencies(n) {
			idx, ok := g.IndexOf(s.ID)
			if !ok || visited[idx] {
				continue
			}
			visited[idx] = true

			p, isPkg := s.ID.(resolver.Pkg)
			if !isPkg {
				continue
			}
			into[p.Name] = s.Version
			queue = append(queue, idx)
		}
	}
}

// Flatten partitions a solved graph into direct (root's immediate
// package neighbours) and indirect (everything else reachable),
// breadth-first, for callers that don't need the direct/test split —
// the generic counterpart to Reconstruct for a package-type manifest's
// informational dependency listing.
func Flatten(g *resolver.Graph) AppDependencies {
	out := newAppDependencies()

	rootIdx, ok := g.IndexOf(resolver.Root{})
	if !ok {
		return out
	}

	rootNeighbours := make(map[int]bool)
	for _, s := range g.Dependencies(rootIdx) {
		if idx, ok := g.IndexOf(s.ID); ok {
			rootNeighbours[idx] = true
		}
	}

	visited := make(map[int]bool)
	visited[rootIdx] = true
	queue := []int{rootIdx}

	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]

		for _, s := range g.Dependencies(n) {
			idx, ok := g.IndexOf(s.ID)
			if !ok || visited[idx] {
				continue
			}
			visited[idx] = true
			queue = append(queue, idx)

			p, isPkg := s.ID.(resolver.Pkg)
			if !isPkg {
				continue
			}
			if rootNeighbours[idx] {
				out.Direct[p.Name] = s.Version
			} else {
				out.Indirect[p.Name] = s.Version
			}
		}
	}

	return out
}
