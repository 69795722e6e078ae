package labeling

import (
	"time"

	"github.com/sganbold/tentlabel/pkg/observability"
)

// SolveBranchAndBound finds the minimum k >= lowerBound admitting a valid
// labeling, searching vertices in the caller-supplied order. The order is
// domain knowledge: for Mongolian Tent graphs the apex goes first, then the
// rows far-to-near, which surfaces weight conflicts early.
//
// Unlike [SolveExact], the used-weight set is not a shared mutable tracker:
// each recursive descent receives its own union-copy, so backtracking is
// implicit and there is no unmark step, at the cost of an allocation per
// branch. The two solvers express different pruning/locality trade-offs and
// are both kept deliberately.
//
// The outer increasing-k loop has no ceiling, like SolveExact. Vertices
// missing from order are never labeled, so order must cover the whole graph.
// Returns (0, nil) for an empty graph or empty order.
func SolveBranchAndBound(g Graph, order []Vertex, lowerBound int, opts Options) (int, Labeling) {
	if g.Order() == 0 || len(order) == 0 {
		return 0, nil
	}
	obs := opts.observer()
	hooks := observability.Solver()
	start := time.Now()

	k := lowerBound
	if k < 1 {
		k = 1
	}
	for {
		hooks.OnTrialStart(SolverBranchAndBound, k)
		trialStart := time.Now()
		labels := boundedAssign(g, order, 0, k, make(Labeling, len(order)), map[int]struct{}{}, obs)
		hooks.OnTrialComplete(SolverBranchAndBound, k, labels != nil, time.Since(trialStart))
		if labels != nil {
			hooks.OnSolutionFound(SolverBranchAndBound, k, time.Since(start))
			emitSolution(obs, labels)
			return k, labels
		}
		k++
	}
}

// boundedAssign tries labels 1..k for order[idx] and recurses with a fresh
// used-weight set per feasible assignment.
func boundedAssign(g Graph, order []Vertex, idx, k int, labels Labeling, used map[int]struct{}, obs Observer) Labeling {
	if idx == len(order) {
		if IsValid(g, labels) {
			return labels
		}
		return nil
	}

	v := order[idx]
	for label := 1; label <= k; label++ {
		labels[v] = label
		newWeights, ok := assignmentWeights(g, v, labels, used)
		if !ok {
			continue
		}
		emitLabeled(obs, v, label)
		for nb, w := range newWeights {
			emitWeight(obs, v, nb, w)
		}

		// Union-copy: the child owns its set, so unwinding needs no cleanup.
		childUsed := make(map[int]struct{}, len(used)+len(newWeights))
		for w := range used {
			childUsed[w] = struct{}{}
		}
		for _, w := range newWeights {
			childUsed[w] = struct{}{}
		}

		if result := boundedAssign(g, order, idx+1, k, labels, childUsed, obs); result != nil {
			return result
		}
		emitBacktrack(obs, v)
	}

	delete(labels, v)
	return nil
}

// assignmentWeights collects the edge weights realized by v's current label
// against its labeled neighbors. Reports ok=false when any weight collides
// with used or with another new weight.
func assignmentWeights(g Graph, v Vertex, labels Labeling, used map[int]struct{}) (map[Vertex]int, bool) {
	label := labels[v]
	newWeights := make(map[Vertex]int)
	seen := make(map[int]struct{})
	for _, nb := range g[v] {
		nbLabel, ok := labels[nb]
		if !ok || nb == v {
			continue
		}
		w := label + nbLabel
		if _, dup := used[w]; dup {
			return nil, false
		}
		if _, dup := seen[w]; dup {
			return nil, false
		}
		seen[w] = struct{}{}
		newWeights[nb] = w
	}
	return newWeights, true
}
