// Package graph implements the directed multigraph backing the codebase index:
// entity and external-module nodes connected by containment and import edges.
// Writes happen only while the index builds; a built graph is read-only and safe
// for concurrent readers.
package graph

import "sort"

// EdgeKind labels the two arc categories of the dependency graph.
type EdgeKind string

const (
	EdgeContains EdgeKind = "contains"
	EdgeImports  EdgeKind = "imports"
)

// Edge is a directed arc: From references/contains To.
type Edge struct {
	From string   `json:"from"`
	To   string   `json:"to"`
	Kind EdgeKind `json:"kind"`
}

// Direction selects which arcs a walk follows.
type Direction int

const (
	Out Direction = iota // successors: what a node imports/contains
	In                   // predecessors: what imports/contains a node
)

// DiGraph is a directed multigraph over string node ids. Edge endpoints are
// added as nodes implicitly, so forward references to files not yet indexed are
// tolerated: the node exists from the first edge and is filled in later.
type DiGraph struct {
	nodes map[string]struct{}
	out   map[string][]Edge
	in    map[string][]Edge
	edges int
}

func New() *DiGraph {
	return &DiGraph{
		nodes: make(map[string]struct{}),
		out:   make(map[string][]Edge),
		in:    make(map[string][]Edge),
	}
}

func (g *DiGraph) AddNode(id string) {
	g.nodes[id] = struct{}{}
}

func (g *DiGraph) AddEdge(from, to string, kind EdgeKind) {
	g.AddNode(from)
	g.AddNode(to)
	e := Edge{From: from, To: to, Kind: kind}
	g.out[from] = append(g.out[from], e)
	g.in[to] = append(g.in[to], e)
	g.edges++
}

func (g *DiGraph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

func (g *DiGraph) NodeCount() int { return len(g.nodes) }
func (g *DiGraph) EdgeCount() int { return g.edges }

// Nodes returns every node id, sorted for deterministic output.
func (g *DiGraph) Nodes() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Edges returns every edge. Order is per-source insertion order.
func (g *DiGraph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for _, id := range g.Nodes() {
		out = append(out, g.out[id]...)
	}
	return out
}

// Successors returns the distinct targets of a node's outgoing edges.
func (g *DiGraph) Successors(id string) []string {
	return neighbors(g.out[id], func(e Edge) string { return e.To })
}

// Predecessors returns the distinct sources of a node's incoming edges.
func (g *DiGraph) Predecessors(id string) []string {
	return neighbors(g.in[id], func(e Edge) string { return e.From })
}

func neighbors(edges []Edge, pick func(Edge) string) []string {
	seen := make(map[string]struct{}, len(edges))
	var out []string
	for _, e := range edges {
		id := pick(e)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// Visit is one node reached by a bounded walk, with its distance from the start.
type Visit struct {
	ID    string `json:"id"`
	Depth int    `json:"depth"`
}

// Walk breadth-first traverses up to depth steps from start, following either
// outgoing or incoming edges. The start node itself is not reported. An unknown
// start yields nil.
func (g *DiGraph) Walk(start string, dir Direction, depth int) []Visit {
	if !g.HasNode(start) || depth <= 0 {
		return nil
	}

	next := func(id string) []string {
		if dir == Out {
			return g.Successors(id)
		}
		return g.Predecessors(id)
	}

	visited := map[string]struct{}{start: {}}
	frontier := []string{start}
	var out []Visit

	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var nextFrontier []string
		for _, id := range frontier {
			for _, n := range next(id) {
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				out = append(out, Visit{ID: n, Depth: d})
				nextFrontier = append(nextFrontier, n)
			}
		}
		frontier = nextFrontier
	}

	return out
}

// DegreeCentrality returns, per node, (in-degree + out-degree) / (n - 1),
// counting parallel edges. A single-node graph maps to zero.
func (g *DiGraph) DegreeCentrality() map[string]float64 {
	out := make(map[string]float64, len(g.nodes))
	n := len(g.nodes)
	if n <= 1 {
		for id := range g.nodes {
			out[id] = 0
		}
		return out
	}
	scale := 1 / float64(n-1)
	for id := range g.nodes {
		out[id] = float64(len(g.out[id])+len(g.in[id])) * scale
	}
	return out
}

// WeaklyConnectedComponents returns the node sets of each weakly connected
// component, largest first; ties and members are sorted for determinism.
func (g *DiGraph) WeaklyConnectedComponents() [][]string {
	visited := make(map[string]struct{}, len(g.nodes))
	var components [][]string

	for _, start := range g.Nodes() {
		if _, ok := visited[start]; ok {
			continue
		}
		var component []string
		queue := []string{start}
		visited[start] = struct{}{}
		for len(queue) > 0 {
			id := queue[0]
			queue = queue[1:]
			component = append(component, id)
			for _, n := range append(g.Successors(id), g.Predecessors(id)...) {
				if _, ok := visited[n]; ok {
					continue
				}
				visited[n] = struct{}{}
				queue = append(queue, n)
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) > len(components[j])
		}
		return components[i][0] < components[j][0]
	})
	return components
}
