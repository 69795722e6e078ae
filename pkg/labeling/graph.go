package labeling

import (
	"sort"
)

// Graph is an undirected graph stored as an adjacency list. Symmetry is the
// caller's responsibility: if u lists v, v must list u. Use AddEdge to keep
// both directions in sync.
//
// The solvers only ever read the graph; it is owned by the caller.
type Graph map[Vertex][]Vertex

// AddVertex ensures v exists in the graph, with no neighbors if new.
func (g Graph) AddVertex(v Vertex) {
	if _, ok := g[v]; !ok {
		g[v] = nil
	}
}

// AddEdge records the undirected edge u-v in both adjacency lists.
// Self-loops and duplicate edges are not checked here; the graph generators
// never produce them.
func (g Graph) AddEdge(u, v Vertex) {
	g[u] = append(g[u], v)
	g[v] = append(g[v], u)
}

// Order returns the number of vertices.
func (g Graph) Order() int { return len(g) }

// Size returns the number of undirected edges.
func (g Graph) Size() int {
	total := 0
	for _, nbs := range g {
		total += len(nbs)
	}
	return total / 2
}

// Degree returns the degree of v, or 0 if v is not present.
func (g Graph) Degree(v Vertex) int { return len(g[v]) }

// MaxDegree returns the maximum vertex degree, or 0 for an empty graph.
func (g Graph) MaxDegree() int {
	max := 0
	for _, nbs := range g {
		if len(nbs) > max {
			max = len(nbs)
		}
	}
	return max
}

// Vertices returns all vertices in canonical order (see [Vertex.Compare]).
func (g Graph) Vertices() []Vertex {
	vs := make([]Vertex, 0, len(g))
	for v := range g {
		vs = append(vs, v)
	}
	sort.Slice(vs, func(i, j int) bool { return vs[i].Less(vs[j]) })
	return vs
}

// VerticesByDegree returns all vertices ordered by descending degree.
// Ties are broken by canonical vertex order so the result is deterministic
// regardless of map iteration order.
func (g Graph) VerticesByDegree() []Vertex {
	vs := g.Vertices()
	sort.SliceStable(vs, func(i, j int) bool {
		return len(g[vs[i]]) > len(g[vs[j]])
	})
	return vs
}

// Labeling is a partial or complete assignment of positive integer labels to
// vertices. It is mutated in place during search and owned exclusively by the
// active search frame.
type Labeling map[Vertex]int

// Clone returns an independent copy of the labeling.
func (l Labeling) Clone() Labeling {
	out := make(Labeling, len(l))
	for v, lab := range l {
		out[v] = lab
	}
	return out
}

// MaxLabel returns the largest assigned label, or 0 for an empty labeling.
func (l Labeling) MaxLabel() int {
	max := 0
	for _, lab := range l {
		if lab > max {
			max = lab
		}
	}
	return max
}
