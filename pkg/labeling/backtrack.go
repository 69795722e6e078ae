package labeling

import (
	"time"

	"github.com/sganbold/tentlabel/pkg/observability"
)

// Solver names reported to observability hooks and result consumers.
const (
	SolverBacktracking   = "backtracking"
	SolverBranchAndBound = "branch-and-bound"
	SolverHeuristicFast  = "heuristic-fast"
	SolverHeuristicAcc   = "heuristic-accurate"
)

// SolveExact finds the minimum k >= lowerBound for which g admits a valid
// k-labeling, using depth-first backtracking over a fixed descending-degree
// vertex order with tracker-based weight pruning.
//
// The outer loop increases k without a ceiling: if no finite k admits a
// labeling within the caller's patience, SolveExact does not return. Callers
// needing a bound must impose an external timeout.
//
// Returns (0, nil) for an empty graph.
func SolveExact(g Graph, lowerBound int, opts Options) (int, Labeling) {
	if g.Order() == 0 {
		return 0, nil
	}
	order := g.VerticesByDegree()
	obs := opts.observer()
	hooks := observability.Solver()
	start := time.Now()

	k := lowerBound
	if k < 1 {
		k = 1
	}
	for {
		hooks.OnTrialStart(SolverBacktracking, k)
		trialStart := time.Now()
		tracker := NewTracker(2 * k)
		labels := depthFirstAssign(g, order, k, tracker, obs)
		hooks.OnTrialComplete(SolverBacktracking, k, labels != nil, time.Since(trialStart))
		if labels != nil {
			hooks.OnSolutionFound(SolverBacktracking, k, time.Since(start))
			emitSolution(obs, labels)
			return k, labels
		}
		k++
	}
}

// frame records what the assignment at one search depth committed, so the
// iterative search can undo it on backtrack.
type frame struct {
	next    int   // next label value to try at this depth
	weights []int // weights committed by the current assignment
}

// depthFirstAssign searches for a complete valid labeling with labels in
// [1, k]. It is the recursive backtracking search unrolled onto an explicit
// frame stack, so the depth is bounded by the vertex count rather than the
// goroutine stack.
//
// Assignments, their new edge weights, and backtracks are reported to obs.
func depthFirstAssign(g Graph, order []Vertex, k int, tracker Tracker, obs Observer) Labeling {
	labels := make(Labeling, len(order))
	frames := make([]frame, len(order))
	if len(order) > 0 {
		frames[0].next = 1
	}

	depth := 0
	for depth >= 0 {
		if depth == len(order) {
			// All vertices assigned: reverify fully before accepting, in case
			// the tracker ever drifted from the labeling.
			if IsValid(g, labels) {
				return labels
			}
			depth--
			undoFrame(&frames[depth], tracker)
			continue
		}

		v := order[depth]
		f := &frames[depth]
		assigned := false
		for label := f.next; label <= k; label++ {
			weights, ok := tentativeWeights(g, labels, v, label, tracker)
			if !ok {
				continue
			}
			labels[v] = label
			emitLabeled(obs, v, label)
			for i, w := range weights {
				if w < 0 {
					continue
				}
				tracker.Set(w)
				emitWeight(obs, v, g[v][i], w)
			}
			f.next = label + 1
			f.weights = weights
			assigned = true
			break
		}
		if assigned {
			depth++
			if depth < len(order) {
				frames[depth].next = 1
			}
			continue
		}

		// Labels exhausted at this depth: unlabel and hand failure upward.
		delete(labels, v)
		f.next = 0
		f.weights = nil
		emitBacktrack(obs, v)
		depth--
		if depth >= 0 {
			undoFrame(&frames[depth], tracker)
		}
	}
	return nil
}

// tentativeWeights computes the edge weights v would realize with the given
// label against its already-labeled neighbors. It returns ok=false on the
// first collision with the tracker or within the new weights themselves.
//
// The returned slice is index-aligned with g[v]: weights[i] belongs to the
// edge v-g[v][i]. Unlabeled neighbors contribute a -1 placeholder, which
// the caller must skip when committing.
func tentativeWeights(g Graph, labels Labeling, v Vertex, label int, tracker Tracker) ([]int, bool) {
	nbs := g[v]
	weights := make([]int, len(nbs))
	for i, nb := range nbs {
		nbLabel, ok := labels[nb]
		if !ok {
			weights[i] = -1
			continue
		}
		w := label + nbLabel
		if tracker.Test(w) {
			return nil, false
		}
		for j := 0; j < i; j++ {
			if weights[j] == w {
				return nil, false
			}
		}
		weights[i] = w
	}
	return weights, true
}

// undoFrame clears the weights a frame committed, leaving its vertex labeled
// so the search can retry it with the next label value.
func undoFrame(f *frame, tracker Tracker) {
	for _, w := range f.weights {
		if w >= 0 {
			tracker.Clear(w)
		}
	}
	f.weights = nil
}
