// Package graphgen constructs the graph families supported by tentlabel and
// computes their theoretical lower bounds for the edge irregularity strength.
//
// The solvers in pkg/labeling treat graphs as opaque adjacency structures;
// this package owns the family-specific knowledge: how to build a Mongolian
// Tent or circulant graph from its parameters, what lower bound seeds the
// increasing-k search, and which vertex order suits branch-and-bound.
package graphgen

import (
	"math"

	"github.com/sganbold/tentlabel/pkg/errors"
	"github.com/sganbold/tentlabel/pkg/labeling"
)

// Kind names a supported graph family.
type Kind string

const (
	// KindMongolianTent is MT(3,n): a 3-row ladder with an apex joined to
	// every vertex of the top row.
	KindMongolianTent Kind = "mongolian_tent"
	// KindCirculant is C_n(r): n vertices on a cycle, each joined to the
	// vertices r steps away in both directions.
	KindCirculant Kind = "circulant"
)

// Params carries graph family parameters. N is used by every family; R only
// by circulant graphs.
type Params struct {
	N int `json:"n"`
	R int `json:"r,omitempty"`
}

// Build constructs a graph of the given kind. Unknown kinds are a coded
// configuration error. Non-positive n yields an empty graph, which the
// solvers treat as an immediate "nothing to label".
func Build(kind Kind, p Params) (labeling.Graph, error) {
	switch kind {
	case KindMongolianTent:
		return MongolianTent(p.N), nil
	case KindCirculant:
		return Circulant(p.N, p.R), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidGraphKind, "unknown graph kind %q", kind)
	}
}

// BoundFor returns the theoretical lower bound for the given kind and
// parameters. Unknown kinds report a coded error.
func BoundFor(kind Kind, p Params) (int, error) {
	g, err := Build(kind, p)
	if err != nil {
		return 0, err
	}
	return LowerBound(g), nil
}

// Ladder builds the 3-row ladder graph with n columns: horizontal edges along
// each row and vertical rungs between rows 1-2 and 2-3. Returns an empty
// graph for n <= 0.
func Ladder(n int) labeling.Graph {
	g := labeling.Graph{}
	if n <= 0 {
		return g
	}
	for col := 1; col < n; col++ {
		for row := 1; row <= 3; row++ {
			g.AddEdge(labeling.Coord(row, col), labeling.Coord(row, col+1))
		}
	}
	for col := 1; col <= n; col++ {
		g.AddEdge(labeling.Coord(1, col), labeling.Coord(2, col))
		g.AddEdge(labeling.Coord(2, col), labeling.Coord(3, col))
	}
	return g
}

// MongolianTent builds MT(3,n): the 3-row ladder plus an apex vertex joined
// to every vertex in row 1. Returns an empty graph for n <= 0.
func MongolianTent(n int) labeling.Graph {
	g := Ladder(n)
	if n <= 0 {
		return g
	}
	apex := labeling.Apex()
	g.AddVertex(apex)
	for col := 1; col <= n; col++ {
		g.AddEdge(apex, labeling.Coord(1, col))
	}
	return g
}

// Circulant builds C_n(r): vertices 0..n-1, each connected to the vertices r
// steps away in both directions modulo n. Self-loops are skipped and the two
// offsets are deduplicated when they coincide (2r ≡ 0 mod n). Returns an
// empty graph for n <= 0.
func Circulant(n, r int) labeling.Graph {
	g := labeling.Graph{}
	if n <= 0 {
		return g
	}
	for i := 0; i < n; i++ {
		g.AddVertex(labeling.ID(i))
	}
	for i := 0; i < n; i++ {
		forward := ((i+r)%n + n) % n
		if forward != i && i < forward {
			g.AddEdge(labeling.ID(i), labeling.ID(forward))
		}
		backward := ((i-r)%n + n) % n
		if backward != i && backward != forward && i < backward {
			g.AddEdge(labeling.ID(i), labeling.ID(backward))
		}
	}
	return g
}

// LowerBound returns the theoretical lower bound for the edge irregularity
// strength of g: max(ceil((|E|+1)/2), Δ). Any valid labeling needs at least
// that many label values — enough distinct weights for every edge, and enough
// headroom around the busiest vertex. The bound is necessary but not always
// sufficient (MT(3,2) has bound 5 but strength 6).
func LowerBound(g labeling.Graph) int {
	if g.Order() == 0 {
		return 0
	}
	edges := g.Size()
	byWeights := int(math.Ceil(float64(edges+1) / 2))
	if d := g.MaxDegree(); d > byWeights {
		return d
	}
	return byWeights
}

// TentLowerBound returns LowerBound for MT(3,n).
func TentLowerBound(n int) int {
	return LowerBound(MongolianTent(n))
}

// CirculantLowerBound returns LowerBound for C_n(r).
func CirculantLowerBound(n, r int) int {
	return LowerBound(Circulant(n, r))
}

// TentSolveOrder returns the hand-tuned branch-and-bound visiting order for
// MT(3,n): the apex first, then the rows from the bottom (farthest from the
// apex) upward, each left to right. Labeling the apex and far rows first
// surfaces weight conflicts early in the search.
func TentSolveOrder(n int) []labeling.Vertex {
	if n <= 0 {
		return nil
	}
	order := make([]labeling.Vertex, 0, 3*n+1)
	order = append(order, labeling.Apex())
	for row := 3; row >= 1; row-- {
		for col := 1; col <= n; col++ {
			order = append(order, labeling.Coord(row, col))
		}
	}
	return order
}
