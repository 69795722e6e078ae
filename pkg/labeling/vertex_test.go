package labeling

import (
	"sort"
	"testing"
)

func TestVertexString(t *testing.T) {
	tests := []struct {
		v    Vertex
		want string
	}{
		{Coord(1, 2), "(1,2)"},
		{Coord(3, 10), "(3,10)"},
		{Apex(), "x"},
		{ID(0), "v0"},
		{ID(42), "v42"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestVertexOrdering(t *testing.T) {
	// Coordinates sort by (row, col), then the apex, then IDs by value.
	sorted := []Vertex{
		Coord(1, 1), Coord(1, 2), Coord(2, 1), Coord(3, 5),
		Apex(),
		ID(0), ID(7),
	}
	for i := range sorted {
		for j := range sorted {
			got := sorted[i].Compare(sorted[j])
			switch {
			case i < j && got != -1:
				t.Errorf("Compare(%v, %v) = %d, want -1", sorted[i], sorted[j], got)
			case i == j && got != 0:
				t.Errorf("Compare(%v, %v) = %d, want 0", sorted[i], sorted[j], got)
			case i > j && got != 1:
				t.Errorf("Compare(%v, %v) = %d, want 1", sorted[i], sorted[j], got)
			}
		}
	}

	// Less must agree with sort.
	shuffled := []Vertex{ID(7), Coord(2, 1), Apex(), Coord(1, 2), ID(0), Coord(3, 5), Coord(1, 1)}
	sort.Slice(shuffled, func(i, j int) bool { return shuffled[i].Less(shuffled[j]) })
	for i := range sorted {
		if shuffled[i] != sorted[i] {
			t.Fatalf("sorted[%d] = %v, want %v", i, shuffled[i], sorted[i])
		}
	}
}

func TestVertexTextRoundTrip(t *testing.T) {
	vertices := []Vertex{Coord(1, 1), Coord(3, 12), Apex(), ID(0), ID(99)}
	for _, v := range vertices {
		text, err := v.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) error: %v", v, err)
		}
		var got Vertex
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) error: %v", text, err)
		}
		if got != v {
			t.Errorf("round trip of %v gave %v", v, got)
		}
	}
}

func TestVertexUnmarshalTextInvalid(t *testing.T) {
	inputs := []string{"", "y", "(1)", "(a,b)", "vtx", "(1,2", "1,2)"}
	for _, s := range inputs {
		var v Vertex
		if err := v.UnmarshalText([]byte(s)); err == nil {
			t.Errorf("UnmarshalText(%q) should fail", s)
		}
	}
}
