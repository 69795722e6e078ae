package labeling

import "github.com/bits-and-blooms/bitset"

// Tracker is a fixed-capacity boolean set over edge weights in [0, maxWeight].
// Solvers mark a weight when the edge realizing it gains both labels and clear
// it again on backtrack, so the tracker contents always equal the weights of
// currently realized edges.
//
// Callers must not depend on the backing store: the default is a dense bitset,
// with a plain boolean slice available as a fallback.
type Tracker interface {
	// Test reports whether w is marked. Out-of-range weights are never marked.
	Test(w int) bool
	// Set marks w. Out-of-range weights are ignored.
	Set(w int)
	// Clear unmarks w.
	Clear(w int)
	// Reset unmarks everything.
	Reset()
	// Empty reports whether no weight is marked.
	Empty() bool
	// Cap returns the largest trackable weight.
	Cap() int
}

// NewTracker returns a bitset-backed tracker covering weights [0, maxWeight].
// For a trial bound k, maxWeight is 2k (two endpoints, each at most k).
func NewTracker(maxWeight int) Tracker {
	if maxWeight < 0 {
		maxWeight = 0
	}
	return &bitsetTracker{bits: bitset.New(uint(maxWeight + 1)), max: maxWeight}
}

// NewBoolTracker returns a boolean-slice tracker covering [0, maxWeight].
// Functionally identical to NewTracker; kept for environments where the
// bitset dependency is undesirable and as a reference implementation in tests.
func NewBoolTracker(maxWeight int) Tracker {
	if maxWeight < 0 {
		maxWeight = 0
	}
	return &boolTracker{used: make([]bool, maxWeight+1)}
}

type bitsetTracker struct {
	bits *bitset.BitSet
	max  int
}

func (t *bitsetTracker) Test(w int) bool {
	return w >= 0 && w <= t.max && t.bits.Test(uint(w))
}

func (t *bitsetTracker) Set(w int) {
	if w >= 0 && w <= t.max {
		t.bits.Set(uint(w))
	}
}

func (t *bitsetTracker) Clear(w int) {
	if w >= 0 && w <= t.max {
		t.bits.Clear(uint(w))
	}
}

func (t *bitsetTracker) Reset()      { t.bits.ClearAll() }
func (t *bitsetTracker) Empty() bool { return !t.bits.Any() }
func (t *bitsetTracker) Cap() int    { return t.max }

type boolTracker struct {
	used  []bool
	count int
}

func (t *boolTracker) Test(w int) bool {
	return w >= 0 && w < len(t.used) && t.used[w]
}

func (t *boolTracker) Set(w int) {
	if w >= 0 && w < len(t.used) && !t.used[w] {
		t.used[w] = true
		t.count++
	}
}

func (t *boolTracker) Clear(w int) {
	if w >= 0 && w < len(t.used) && t.used[w] {
		t.used[w] = false
		t.count--
	}
}

func (t *boolTracker) Reset() {
	for i := range t.used {
		t.used[i] = false
	}
	t.count = 0
}

func (t *boolTracker) Empty() bool { return t.count == 0 }
func (t *boolTracker) Cap() int    { return len(t.used) - 1 }

var (
	_ Tracker = (*bitsetTracker)(nil)
	_ Tracker = (*boolTracker)(nil)
)
