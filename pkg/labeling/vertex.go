package labeling

import (
	"fmt"
	"strconv"
	"strings"
)

// VertexKind distinguishes the three vertex shapes that occur across the
// supported graph families.
type VertexKind int

const (
	// KindCoord is a (row, column) grid coordinate, used by ladder and
	// Mongolian Tent graphs.
	KindCoord VertexKind = iota
	// KindApex is the distinguished apex vertex of a Mongolian Tent graph.
	KindApex
	// KindID is a plain integer identifier, used by circulant graphs.
	KindID
)

// Vertex identifies a graph vertex. It is a small immutable value, comparable
// with ==, and usable as a map key. The zero value is Coord(0, 0).
//
// Vertices carry a total order (see [Vertex.Compare]) so that every undirected
// edge can be canonicalized to exactly one direction for weight bookkeeping:
// Coord vertices sort first by (row, col), then the apex, then ID vertices
// by value.
type Vertex struct {
	Kind VertexKind

	// Row and Col are set for KindCoord vertices.
	Row, Col int

	// N is set for KindID vertices.
	N int
}

// Coord returns the grid vertex at (row, col).
func Coord(row, col int) Vertex { return Vertex{Kind: KindCoord, Row: row, Col: col} }

// Apex returns the distinguished apex vertex.
func Apex() Vertex { return Vertex{Kind: KindApex} }

// ID returns the integer-identified vertex n.
func ID(n int) Vertex { return Vertex{Kind: KindID, N: n} }

// Compare returns -1, 0, or +1 as v sorts before, equal to, or after o.
// The order is total and deterministic across all vertex kinds.
func (v Vertex) Compare(o Vertex) int {
	if v.Kind != o.Kind {
		return cmpInt(int(v.Kind), int(o.Kind))
	}
	switch v.Kind {
	case KindCoord:
		if c := cmpInt(v.Row, o.Row); c != 0 {
			return c
		}
		return cmpInt(v.Col, o.Col)
	case KindID:
		return cmpInt(v.N, o.N)
	default: // KindApex: all apexes are equal
		return 0
	}
}

// Less reports whether v sorts strictly before o.
func (v Vertex) Less(o Vertex) bool { return v.Compare(o) < 0 }

// String renders the vertex in the conventional notation: "(row,col)" for
// coordinates, "x" for the apex, and "vN" for integer identifiers.
func (v Vertex) String() string {
	switch v.Kind {
	case KindApex:
		return "x"
	case KindID:
		return "v" + strconv.Itoa(v.N)
	default:
		return fmt.Sprintf("(%d,%d)", v.Row, v.Col)
	}
}

// MarshalText encodes the vertex in its String form, so Vertex works as a
// JSON map key.
func (v Vertex) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes the String form produced by MarshalText.
func (v *Vertex) UnmarshalText(text []byte) error {
	s := string(text)
	switch {
	case s == "x":
		*v = Apex()
		return nil
	case strings.HasPrefix(s, "v"):
		n, err := strconv.Atoi(s[1:])
		if err != nil {
			return fmt.Errorf("vertex %q: %w", s, err)
		}
		*v = ID(n)
		return nil
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		parts := strings.SplitN(s[1:len(s)-1], ",", 2)
		if len(parts) != 2 {
			return fmt.Errorf("vertex %q: malformed coordinate", s)
		}
		row, err := strconv.Atoi(parts[0])
		if err != nil {
			return fmt.Errorf("vertex %q: %w", s, err)
		}
		col, err := strconv.Atoi(parts[1])
		if err != nil {
			return fmt.Errorf("vertex %q: %w", s, err)
		}
		*v = Coord(row, col)
		return nil
	default:
		return fmt.Errorf("vertex %q: unrecognized form", s)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
