// Package pipeline provides the core solve pipeline for tentlabel.
//
// This package implements the complete generate → solve → validate flow that
// is shared by the CLI and the HTTP API. By centralizing this logic, both
// entry points behave identically: the same graph construction, the same
// solver dispatch, the same result caching.
//
// # Architecture
//
// A solve request runs through four stages:
//
//  1. Generate: build the requested graph family from its parameters
//  2. Lookup: return a cached result when one exists for the exact request
//  3. Solve: dispatch to the exact, branch-and-bound, or heuristic solver
//  4. Store: cache the completed result for subsequent requests
//
// Only finished results are cached, never in-flight search state. Requests
// with observers attached bypass the cache entirely: a cache hit would
// otherwise silently skip the event stream the observer was attached for.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	defer runner.Close()
//	res, err := runner.Solve(ctx, pipeline.Options{
//	    Kind:   graphgen.KindMongolianTent,
//	    Params: graphgen.Params{N: 3},
//	    Solver: pipeline.SolverBacktracking,
//	})
package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sganbold/tentlabel/pkg/cache"
	"github.com/sganbold/tentlabel/pkg/errors"
	"github.com/sganbold/tentlabel/pkg/graphgen"
	"github.com/sganbold/tentlabel/pkg/labeling"
	"github.com/sganbold/tentlabel/pkg/observability"
)

// Solver selectors accepted by the pipeline.
const (
	SolverBacktracking   = "backtracking"
	SolverBranchAndBound = "branch-and-bound"
	SolverHeuristic      = "heuristic"
)

// Defaults applied by Options.setDefaults.
const (
	// DefaultTTL bounds the lifetime of cached results.
	DefaultTTL = 30 * 24 * time.Hour
)

// Options describes one solve request.
type Options struct {
	// Kind and Params select the graph to label.
	Kind   graphgen.Kind
	Params graphgen.Params

	// Solver selects the search strategy. Defaults to SolverBacktracking.
	Solver string

	// Mode, Attempts, and MaxKMultiplier tune the heuristic solver and are
	// ignored by the exact solvers.
	Mode           labeling.Mode
	Attempts       int
	MaxKMultiplier int

	// Seed fixes the heuristic random source when non-zero.
	Seed int64

	// OnStep and OnEvent attach solver observers; see labeling.Options.
	// Attaching either bypasses the result cache.
	OnStep  labeling.Observer
	OnEvent labeling.Observer

	// TTL overrides the cache entry lifetime. Zero means DefaultTTL.
	TTL time.Duration
}

func (o *Options) setDefaults() {
	if o.Solver == "" {
		o.Solver = SolverBacktracking
	}
	if o.Mode == "" {
		o.Mode = labeling.ModeAccurate
	}
	if o.TTL == 0 {
		o.TTL = DefaultTTL
	}
}

// validate rejects malformed requests before any search begins.
func (o *Options) validate() error {
	switch o.Kind {
	case graphgen.KindMongolianTent, graphgen.KindCirculant:
	default:
		return errors.New(errors.ErrCodeInvalidGraphKind, "unknown graph kind %q", o.Kind)
	}
	switch o.Solver {
	case SolverBacktracking, SolverHeuristic:
	case SolverBranchAndBound:
		if o.Kind != graphgen.KindMongolianTent {
			return errors.New(errors.ErrCodeInvalidSolver, "branch-and-bound supports only %q graphs", graphgen.KindMongolianTent)
		}
	default:
		return errors.New(errors.ErrCodeInvalidSolver, "unknown solver %q", o.Solver)
	}
	if o.Solver == SolverHeuristic {
		switch o.Mode {
		case labeling.ModeFast, labeling.ModeAccurate:
		default:
			return errors.New(errors.ErrCodeInvalidMode, "unknown heuristic mode %q", o.Mode)
		}
		if o.MaxKMultiplier < 0 {
			return errors.New(errors.ErrCodeInvalidInput, "max k multiplier must not be negative, got %d", o.MaxKMultiplier)
		}
	}
	return nil
}

// VertexResult is one labeled vertex in a solve result.
type VertexResult struct {
	ID    string `json:"id"`
	Label int    `json:"k_label,omitempty"`
}

// EdgeResult is one edge with its induced weight.
type EdgeResult struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int    `json:"weight,omitempty"`
}

// Result is the outcome of one solve request. Found distinguishes "no
// labeling within bounds" (an expected outcome for heuristics) from success.
type Result struct {
	Kind       string            `json:"graph_type"`
	N          int               `json:"n"`
	R          int               `json:"r,omitempty"`
	Solver     string            `json:"solver"`
	Mode       string            `json:"mode,omitempty"`
	Found      bool              `json:"found"`
	K          int               `json:"k_value,omitempty"`
	LowerBound int               `json:"lower_bound"`
	Gap        int               `json:"gap"`
	Duration   time.Duration     `json:"duration_ns"`
	Labels     labeling.Labeling `json:"labels,omitempty"`
	Vertices   []VertexResult    `json:"vertices"`
	Edges      []EdgeResult      `json:"edges"`
	Cached     bool              `json:"-"`
}

// Runner executes solve requests with result caching.
type Runner struct {
	cache  cache.Cache
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil logger discards log output.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{cache: c, logger: logger}
}

// Close releases the runner's cache backend.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// Solve runs one request through the pipeline. Configuration errors are
// reported before any search; an exhausted heuristic search is not an error
// and yields a Result with Found=false.
func (r *Runner) Solve(ctx context.Context, opts Options) (*Result, error) {
	opts.setDefaults()
	if err := opts.validate(); err != nil {
		return nil, err
	}

	g, err := graphgen.Build(opts.Kind, opts.Params)
	if err != nil {
		return nil, err
	}

	instrumented := opts.OnStep != nil || opts.OnEvent != nil
	key := cache.ResultKey(string(opts.Kind), opts.Params.N, opts.Params.R,
		opts.Solver, string(opts.Mode), opts.Attempts, opts.MaxKMultiplier)

	if !instrumented {
		if res, ok := r.lookup(ctx, key); ok {
			return res, nil
		}
	}

	lowerBound := graphgen.LowerBound(g)
	r.logger.Debug("solving", "kind", opts.Kind, "n", opts.Params.N, "r", opts.Params.R,
		"solver", opts.Solver, "lower_bound", lowerBound)

	start := time.Now()
	k, labels, err := r.dispatch(g, lowerBound, opts)
	if err != nil {
		return nil, err
	}

	res := buildResult(g, opts, k, labels, lowerBound, time.Since(start))
	if !instrumented && res.Found {
		r.store(ctx, key, res, opts.TTL)
	}
	return res, nil
}

// dispatch resolves the solver entry point for the request.
func (r *Runner) dispatch(g labeling.Graph, lowerBound int, opts Options) (int, labeling.Labeling, error) {
	lopts := labeling.Options{OnStep: opts.OnStep, OnEvent: opts.OnEvent}
	switch opts.Solver {
	case SolverBranchAndBound:
		order := graphgen.TentSolveOrder(opts.Params.N)
		k, labels := labeling.SolveBranchAndBound(g, order, lowerBound, lopts)
		return k, labels, nil
	case SolverHeuristic:
		hopts := labeling.HeuristicOptions{
			Options:        lopts,
			Mode:           opts.Mode,
			MaxKMultiplier: opts.MaxKMultiplier,
			AttemptsPerK:   opts.Attempts,
			NaturalOrder:   opts.Kind == graphgen.KindCirculant,
		}
		if opts.Seed != 0 {
			hopts.Rand = rand.New(rand.NewSource(opts.Seed))
		}
		return labeling.SolveHeuristic(g, lowerBound, hopts)
	default:
		k, labels := labeling.SolveExact(g, lowerBound, lopts)
		return k, labels, nil
	}
}

func (r *Runner) lookup(ctx context.Context, key string) (*Result, bool) {
	data, ok, err := r.cache.Get(ctx, key)
	if err != nil || !ok {
		observability.Cache().OnCacheMiss("result")
		return nil, false
	}
	var res Result
	if err := json.Unmarshal(data, &res); err != nil {
		// Corrupt entry: drop it and recompute.
		_ = r.cache.Delete(ctx, key)
		observability.Cache().OnCacheMiss("result")
		return nil, false
	}
	observability.Cache().OnCacheHit("result")
	res.Cached = true
	return &res, true
}

func (r *Runner) store(ctx context.Context, key string, res *Result, ttl time.Duration) {
	data, err := json.Marshal(res)
	if err != nil {
		return
	}
	if err := r.cache.Set(ctx, key, data, ttl); err != nil {
		r.logger.Debug("cache store failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet("result", len(data))
}

// buildResult assembles the external result shape: k, bound, gap, and the
// vertex/edge lists with labels and weights filled in when found.
func buildResult(g labeling.Graph, opts Options, k int, labels labeling.Labeling, lowerBound int, elapsed time.Duration) *Result {
	res := &Result{
		Kind:       string(opts.Kind),
		N:          opts.Params.N,
		R:          opts.Params.R,
		Solver:     opts.Solver,
		LowerBound: lowerBound,
		Duration:   elapsed,
	}
	if opts.Solver == SolverHeuristic {
		res.Mode = string(opts.Mode)
	}
	if labels == nil {
		return res
	}

	res.Found = true
	res.K = k
	res.Gap = k - lowerBound
	res.Labels = labels

	for _, v := range g.Vertices() {
		res.Vertices = append(res.Vertices, VertexResult{ID: v.String(), Label: labels[v]})
	}
	for _, u := range g.Vertices() {
		for _, v := range g[u] {
			if !u.Less(v) {
				continue
			}
			res.Edges = append(res.Edges, EdgeResult{
				Source: u.String(),
				Target: v.String(),
				Weight: labels[u] + labels[v],
			})
		}
	}
	return res
}
