package graphgen

import (
	"testing"

	apperrors "github.com/sganbold/tentlabel/pkg/errors"
	"github.com/sganbold/tentlabel/pkg/labeling"
)

func TestMongolianTentShape(t *testing.T) {
	// MT(3,n) has 3n+1 vertices and 6n-3 edges.
	tests := []struct {
		n, order, size int
	}{
		{1, 4, 3},
		{2, 7, 9},
		{3, 10, 15},
		{5, 16, 27},
	}
	for _, tt := range tests {
		g := MongolianTent(tt.n)
		if g.Order() != tt.order {
			t.Errorf("MT(3,%d) order = %d, want %d", tt.n, g.Order(), tt.order)
		}
		if g.Size() != tt.size {
			t.Errorf("MT(3,%d) size = %d, want %d", tt.n, g.Size(), tt.size)
		}
		// The apex neighbors exactly the top row.
		if got := g.Degree(labeling.Apex()); got != tt.n {
			t.Errorf("MT(3,%d) apex degree = %d, want %d", tt.n, got, tt.n)
		}
	}
}

func TestMongolianTentEmpty(t *testing.T) {
	if g := MongolianTent(0); g.Order() != 0 {
		t.Errorf("MT(3,0) should be empty, got %d vertices", g.Order())
	}
	if g := MongolianTent(-1); g.Order() != 0 {
		t.Errorf("MT(3,-1) should be empty, got %d vertices", g.Order())
	}
}

func TestLadderShape(t *testing.T) {
	// 3-row ladder: 3n vertices, 5n-3 edges.
	g := Ladder(4)
	if g.Order() != 12 {
		t.Errorf("Ladder(4) order = %d, want 12", g.Order())
	}
	if g.Size() != 17 {
		t.Errorf("Ladder(4) size = %d, want 17", g.Size())
	}
}

func TestCirculantShape(t *testing.T) {
	tests := []struct {
		n, r, size, degree int
	}{
		{5, 1, 5, 2},  // plain cycle
		{8, 2, 8, 2},  // two offsets, distinct
		{6, 3, 3, 1},  // 2r = n: offsets coincide, perfect matching
		{12, 5, 12, 2},
	}
	for _, tt := range tests {
		g := Circulant(tt.n, tt.r)
		if g.Order() != tt.n {
			t.Errorf("C_%d(%d) order = %d, want %d", tt.n, tt.r, g.Order(), tt.n)
		}
		if g.Size() != tt.size {
			t.Errorf("C_%d(%d) size = %d, want %d", tt.n, tt.r, g.Size(), tt.size)
		}
		if g.MaxDegree() != tt.degree {
			t.Errorf("C_%d(%d) max degree = %d, want %d", tt.n, tt.r, g.MaxDegree(), tt.degree)
		}
	}
}

func TestCirculantSelfLoopsSkipped(t *testing.T) {
	// r = n maps every vertex to itself: no edges at all.
	g := Circulant(4, 4)
	if g.Size() != 0 {
		t.Errorf("C_4(4) size = %d, want 0", g.Size())
	}
	if g.Order() != 4 {
		t.Errorf("C_4(4) order = %d, want 4 isolated vertices", g.Order())
	}
}

func TestLowerBound(t *testing.T) {
	tests := []struct {
		name string
		g    labeling.Graph
		want int
	}{
		{"empty", labeling.Graph{}, 0},
		{"MT(3,1)", MongolianTent(1), 2},
		{"MT(3,2)", MongolianTent(2), 5},
		{"MT(3,3)", MongolianTent(3), 8},
		{"C_5(1)", Circulant(5, 1), 3},
	}
	for _, tt := range tests {
		if got := LowerBound(tt.g); got != tt.want {
			t.Errorf("LowerBound(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLowerBoundDegreeDominates(t *testing.T) {
	// A star K_{1,5}: 5 edges give bound 3, but the center's degree forces 5.
	g := labeling.Graph{}
	for i := 1; i <= 5; i++ {
		g.AddEdge(labeling.ID(0), labeling.ID(i))
	}
	if got := LowerBound(g); got != 5 {
		t.Errorf("LowerBound(K_1,5) = %d, want 5", got)
	}
}

func TestTentSolveOrder(t *testing.T) {
	got := TentSolveOrder(2)
	want := []labeling.Vertex{
		labeling.Apex(),
		labeling.Coord(3, 1), labeling.Coord(3, 2),
		labeling.Coord(2, 1), labeling.Coord(2, 2),
		labeling.Coord(1, 1), labeling.Coord(1, 2),
	}
	if len(got) != len(want) {
		t.Fatalf("TentSolveOrder(2) has %d vertices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TentSolveOrder(2)[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if TentSolveOrder(0) != nil {
		t.Error("TentSolveOrder(0) should be nil")
	}
}

func TestTentSolveOrderCoversGraph(t *testing.T) {
	for n := 1; n <= 4; n++ {
		g := MongolianTent(n)
		order := TentSolveOrder(n)
		if len(order) != g.Order() {
			t.Fatalf("TentSolveOrder(%d) has %d vertices, graph has %d", n, len(order), g.Order())
		}
		seen := map[labeling.Vertex]bool{}
		for _, v := range order {
			if seen[v] {
				t.Errorf("TentSolveOrder(%d) repeats %v", n, v)
			}
			seen[v] = true
			if _, ok := g[v]; !ok {
				t.Errorf("TentSolveOrder(%d) names %v, not in graph", n, v)
			}
		}
	}
}

func TestBuild(t *testing.T) {
	g, err := Build(KindMongolianTent, Params{N: 2})
	if err != nil {
		t.Fatalf("Build(mongolian_tent) error: %v", err)
	}
	if g.Order() != 7 {
		t.Errorf("Build(mongolian_tent, n=2) order = %d, want 7", g.Order())
	}

	g, err = Build(KindCirculant, Params{N: 6, R: 2})
	if err != nil {
		t.Fatalf("Build(circulant) error: %v", err)
	}
	if g.Order() != 6 {
		t.Errorf("Build(circulant, n=6) order = %d, want 6", g.Order())
	}

	_, err = Build("petersen", Params{N: 5})
	if err == nil {
		t.Fatal("Build with unknown kind should fail")
	}
	if !apperrors.Is(err, apperrors.ErrCodeInvalidGraphKind) {
		t.Errorf("Build error code = %v, want %v", apperrors.GetCode(err), apperrors.ErrCodeInvalidGraphKind)
	}
}

func TestBoundFor(t *testing.T) {
	b, err := BoundFor(KindMongolianTent, Params{N: 3})
	if err != nil {
		t.Fatalf("BoundFor error: %v", err)
	}
	if b != 8 {
		t.Errorf("BoundFor(MT(3,3)) = %d, want 8", b)
	}

	if _, err := BoundFor("nope", Params{}); err == nil {
		t.Error("BoundFor with unknown kind should fail")
	}
}
