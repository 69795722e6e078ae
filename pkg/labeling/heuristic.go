package labeling

import (
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/sganbold/tentlabel/pkg/errors"
	"github.com/sganbold/tentlabel/pkg/observability"
)

// Mode selects the heuristic search strategy.
type Mode string

const (
	// ModeFast runs one deterministic first-fit pass plus a few randomized
	// passes per k. Quick, but the returned k may sit well above optimum.
	ModeFast Mode = "fast"
	// ModeAccurate runs many randomized attempts per k with
	// conflict-minimization scoring, failure-driven vertex ordering, and
	// bounded backjumping. Slower, better chance of a small k.
	ModeAccurate Mode = "accurate"
)

// Heuristic solver defaults.
const (
	// DefaultAttemptsPerK is the number of randomized attempts per k in
	// accurate mode.
	DefaultAttemptsPerK = 100
	// DefaultMaxKMultiplier caps the search at lowerBound * multiplier.
	DefaultMaxKMultiplier = 5
	// maxBackjumps bounds backjumping within a single accurate-mode attempt.
	maxBackjumps = 3
)

// HeuristicOptions configures [SolveHeuristic].
type HeuristicOptions struct {
	Options

	// Mode selects fast or accurate search. Defaults to ModeAccurate.
	Mode Mode

	// MaxKMultiplier bounds the search at lowerBound * MaxKMultiplier.
	// Must be >= 1; zero means DefaultMaxKMultiplier.
	MaxKMultiplier int

	// AttemptsPerK is the randomized attempt budget per k in accurate mode.
	// Zero means DefaultAttemptsPerK.
	AttemptsPerK int

	// NaturalOrder makes accurate-mode attempts visit vertices in canonical
	// id order instead of the failure/degree composite. Suited to
	// vertex-transitive families such as circulant graphs, where degree and
	// failure history carry no signal.
	NaturalOrder bool

	// Rand is the injected randomness source. A nil Rand gets a time-seeded
	// generator; tests inject a fixed seed for reproducibility.
	Rand *rand.Rand
}

func (o *HeuristicOptions) setDefaults() {
	if o.Mode == "" {
		o.Mode = ModeAccurate
	}
	if o.MaxKMultiplier == 0 {
		o.MaxKMultiplier = DefaultMaxKMultiplier
	}
	if o.AttemptsPerK == 0 {
		o.AttemptsPerK = DefaultAttemptsPerK
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
}

// SolveHeuristic searches for a feasible (not necessarily minimal) k-labeling
// of g, trying k from lowerBound up to lowerBound * MaxKMultiplier.
//
// A returned labeling always passes a full validity check: the heuristic may
// fail to find a labeling that exists, but never returns an invalid one.
// (0, nil, nil) means no labeling was found within bounds — an expected
// outcome, not an error.
//
// A MaxKMultiplier below 1 is a configuration error, reported before any
// search begins.
func SolveHeuristic(g Graph, lowerBound int, opts HeuristicOptions) (int, Labeling, error) {
	opts.setDefaults()
	if opts.MaxKMultiplier < 1 {
		return 0, nil, errors.New(errors.ErrCodeInvalidInput, "max k multiplier must be at least 1, got %d", opts.MaxKMultiplier)
	}
	if g.Order() == 0 {
		return 0, nil, nil
	}

	solver := SolverHeuristicAcc
	if opts.Mode == ModeFast {
		solver = SolverHeuristicFast
	}

	h := &heuristicSearch{
		graph:    g,
		opts:     opts,
		rng:      opts.Rand,
		obs:      opts.observer(),
		failures: make(map[Vertex]int, g.Order()),
	}

	hooks := observability.Solver()
	start := time.Now()

	if lowerBound < 1 {
		lowerBound = 1
	}
	upperBound := lowerBound * opts.MaxKMultiplier
	for k := lowerBound; k <= upperBound; k++ {
		hooks.OnTrialStart(solver, k)
		trialStart := time.Now()

		var labels Labeling
		if opts.Mode == ModeFast {
			labels = h.solveFast(k)
		} else {
			labels = h.solveAccurate(k)
		}

		hooks.OnTrialComplete(solver, k, labels != nil, time.Since(trialStart))
		if labels != nil && IsValid(g, labels) {
			hooks.OnSolutionFound(solver, k, time.Since(start))
			emitSolution(h.obs, labels)
			return k, labels, nil
		}
	}
	return 0, nil, nil
}

// heuristicSearch carries state for one SolveHeuristic call. The failure
// counts persist across attempts within the call so later attempts focus on
// historically hard vertices, and are discarded with the search.
type heuristicSearch struct {
	graph    Graph
	opts     HeuristicOptions
	rng      *rand.Rand
	obs      Observer
	failures map[Vertex]int
}

// =============================================================================
// Fast Mode
// =============================================================================

// solveFast makes one deterministic first-fit pass, then a small number of
// randomized passes scaled to the graph size.
func (h *heuristicSearch) solveFast(k int) Labeling {
	if labels := h.firstFit(k); labels != nil {
		return labels
	}

	// Randomized passes: n=4 gives the floor of 2, n>=20 hits the cap of 10.
	passes := h.graph.Order() / 2
	if passes < 2 {
		passes = 2
	}
	if passes > 10 {
		passes = 10
	}
	for i := 0; i < passes; i++ {
		if labels := h.randomizedAttempt(k); labels != nil {
			return labels
		}
	}
	return nil
}

// firstFit visits vertices by descending degree and takes the smallest label
// that keeps all realized weights distinct. No backtracking: the first stuck
// vertex fails the whole pass.
func (h *heuristicSearch) firstFit(k int) Labeling {
	labels := make(Labeling, h.graph.Order())
	tracker := NewTracker(2 * k)
	for _, v := range h.graph.VerticesByDegree() {
		if !h.assignFirstFeasible(v, k, labels, tracker, false) {
			return nil
		}
	}
	return labels
}

// randomizedAttempt is a single greedy pass over shuffled vertices with
// shuffled label order.
func (h *heuristicSearch) randomizedAttempt(k int) Labeling {
	vertices := h.graph.Vertices()
	h.rng.Shuffle(len(vertices), func(i, j int) {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	})

	labels := make(Labeling, len(vertices))
	tracker := NewTracker(2 * k)
	for _, v := range vertices {
		if !h.assignFirstFeasible(v, k, labels, tracker, true) {
			return nil
		}
	}
	if !IsValid(h.graph, labels) {
		return nil
	}
	return labels
}

// assignFirstFeasible assigns v the first label (in increasing or shuffled
// order) whose new weights collide with nothing, committing them to the
// tracker. Reports false when no label fits.
func (h *heuristicSearch) assignFirstFeasible(v Vertex, k int, labels Labeling, tracker Tracker, shuffled bool) bool {
	candidates := h.labelOrder(k, shuffled)
	for _, label := range candidates {
		weights, ok := tentativeWeights(h.graph, labels, v, label, tracker)
		if !ok {
			continue
		}
		labels[v] = label
		emitLabeled(h.obs, v, label)
		for i, w := range weights {
			if w < 0 {
				continue
			}
			tracker.Set(w)
			emitWeight(h.obs, v, h.graph[v][i], w)
		}
		return true
	}
	return false
}

func (h *heuristicSearch) labelOrder(k int, shuffled bool) []int {
	candidates := make([]int, k)
	for i := range candidates {
		candidates[i] = i + 1
	}
	if shuffled {
		h.rng.Shuffle(k, func(i, j int) {
			candidates[i], candidates[j] = candidates[j], candidates[i]
		})
	}
	return candidates
}

// =============================================================================
// Accurate Mode
// =============================================================================

// solveAccurate runs up to AttemptsPerK randomized attempts at the given k.
func (h *heuristicSearch) solveAccurate(k int) Labeling {
	for attempt := 0; attempt < h.opts.AttemptsPerK; attempt++ {
		if labels := h.accurateAttempt(k); labels != nil {
			return labels
		}
	}
	return nil
}

// accurateAttempt walks the vertex order with an explicit cursor, picking for
// each vertex the feasible label that forecloses the fewest choices for its
// unlabeled neighbors. Dead ends trigger backjumping to the most recently
// assigned conflicting vertex, at most maxBackjumps times; after that the
// stuck vertex takes a failure mark and the attempt is abandoned.
func (h *heuristicSearch) accurateAttempt(k int) Labeling {
	order := h.adaptiveOrder()
	labels := make(Labeling, len(order))
	tracker := NewTracker(2 * k)
	committed := make([]map[Vertex]int, len(order)) // weights committed per cursor index

	idx := 0
	backjumps := 0
	for idx < len(order) {
		v := order[idx]
		best, conflicts := h.pickLabel(v, k, labels, tracker)
		if best != 0 {
			labels[v] = best
			emitLabeled(h.obs, v, best)
			weights := make(map[Vertex]int)
			for _, nb := range h.graph[v] {
				if nbLabel, ok := labels[nb]; ok && nb != v {
					w := best + nbLabel
					tracker.Set(w)
					weights[nb] = w
					emitWeight(h.obs, v, nb, w)
				}
			}
			committed[idx] = weights
			idx++
			continue
		}

		if backjumps < maxBackjumps {
			if target := h.jumpTarget(order, idx, conflicts); target >= 0 {
				// Unwind target..idx so the culprit itself is re-decided.
				for i := idx - 1; i >= target; i-- {
					u := order[i]
					for _, w := range committed[i] {
						tracker.Clear(w)
					}
					committed[i] = nil
					delete(labels, u)
					emitBacktrack(h.obs, u)
				}
				idx = target
				backjumps++
				continue
			}
		}

		h.failures[v]++
		return nil
	}

	if !IsValid(h.graph, labels) {
		return nil
	}
	return labels
}

// pickLabel evaluates all labels in random order and returns the feasible one
// with the lowest conflict score, or 0 when none is feasible, along with the
// set of labeled neighbors that blocked infeasible candidates.
func (h *heuristicSearch) pickLabel(v Vertex, k int, labels Labeling, tracker Tracker) (int, map[Vertex]struct{}) {
	best := 0
	bestScore := math.MaxInt
	conflicts := make(map[Vertex]struct{})

	for _, label := range h.labelOrder(k, true) {
		feasible := true
		newWeights := make(map[int]struct{})
		for _, nb := range h.graph[v] {
			nbLabel, ok := labels[nb]
			if !ok || nb == v {
				continue
			}
			w := label + nbLabel
			if _, dup := newWeights[w]; dup || tracker.Test(w) {
				feasible = false
				conflicts[nb] = struct{}{}
				continue
			}
			newWeights[w] = struct{}{}
		}
		if !feasible {
			continue
		}
		score := h.conflictScore(v, label, k, labels, tracker, newWeights)
		if score < bestScore {
			bestScore = score
			best = label
		}
	}
	return best, conflicts
}

// conflictScore estimates how constraining it is to give v this label: the
// number of candidate labels across v's unlabeled neighbors that would become
// infeasible. The least constraining value wins.
func (h *heuristicSearch) conflictScore(v Vertex, label, k int, labels Labeling, tracker Tracker, newWeights map[int]struct{}) int {
	score := 0
	for _, nb := range h.graph[v] {
		if _, ok := labels[nb]; ok || nb == v {
			continue
		}
		for candidate := 1; candidate <= k; candidate++ {
			w := label + candidate
			if _, taken := newWeights[w]; taken || tracker.Test(w) {
				score++
			}
		}
	}
	return score
}

// jumpTarget returns the highest assigned cursor index whose vertex is in the
// conflict set, or -1 when the conflict set is empty or unassigned.
func (h *heuristicSearch) jumpTarget(order []Vertex, idx int, conflicts map[Vertex]struct{}) int {
	for i := idx - 1; i >= 0; i-- {
		if _, ok := conflicts[order[i]]; ok {
			return i
		}
	}
	return -1
}

// adaptiveOrder produces the per-attempt vertex visiting order: canonical id
// order when NaturalOrder is set, otherwise failure count descending, degree
// descending, with ties broken randomly.
func (h *heuristicSearch) adaptiveOrder() []Vertex {
	vertices := h.graph.Vertices()
	if h.opts.NaturalOrder {
		return vertices
	}
	h.rng.Shuffle(len(vertices), func(i, j int) {
		vertices[i], vertices[j] = vertices[j], vertices[i]
	})
	sort.SliceStable(vertices, func(i, j int) bool {
		fi, fj := h.failures[vertices[i]], h.failures[vertices[j]]
		if fi != fj {
			return fi > fj
		}
		return h.graph.Degree(vertices[i]) > h.graph.Degree(vertices[j])
	})
	return vertices
}
