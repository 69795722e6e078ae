package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sganbold/tentlabel/pkg/graphgen"
	"github.com/sganbold/tentlabel/pkg/labeling"
	"github.com/sganbold/tentlabel/pkg/pipeline"
	"github.com/sganbold/tentlabel/pkg/record"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	graph      string // graph family: mongolian_tent or circulant
	n          int    // family size parameter
	r          int    // circulant offset
	solver     string // backtracking, branch-and-bound, or heuristic
	mode       string // heuristic mode: fast or accurate
	attempts   int    // accurate-mode attempts per k
	multiplier int    // heuristic upper bound multiplier
	seed       int64  // heuristic random seed (0 = time-based)
	recordPath string // write a step-event recording here
	jsonOut    bool   // emit the result as JSON instead of styled text
	output     string // output file path (stdout if empty)
	noCache    bool   // bypass the result cache
}

// solveCommand creates the solve command.
//
// Defaults come from the loaded configuration; flags override. Examples:
//
//	tentlabel solve -g mongolian_tent -n 3
//	tentlabel solve -g circulant -n 12 -r 3 --solver heuristic --mode fast
//	tentlabel solve -g mongolian_tent -n 5 --solver heuristic --seed 42 --record run.json
func (c *CLI) solveCommand() *cobra.Command {
	opts := solveOpts{
		graph:      string(graphgen.KindMongolianTent),
		solver:     pipeline.SolverBacktracking,
		mode:       c.Config.Solver.Mode,
		attempts:   c.Config.Solver.Attempts,
		multiplier: c.Config.Solver.MaxKMultiplier,
		seed:       c.Config.Solver.Seed,
	}

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Search for an edge-irregular vertex labeling",
		Long: `Search for the minimum k such that vertex labels in [1, k] give every
edge a distinct weight (the sum of its endpoint labels).

Exact solvers (backtracking, branch-and-bound) always terminate with the true
minimum. The heuristic solver trades exactness for speed and may stop without
a labeling; its result is an upper bound on the true value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSolve(cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.graph, "graph", "g", opts.graph, "graph family (mongolian_tent|circulant)")
	cmd.Flags().IntVarP(&opts.n, "n", "n", 3, "graph size parameter")
	cmd.Flags().IntVarP(&opts.r, "r", "r", 1, "circulant offset (circulant only)")
	cmd.Flags().StringVar(&opts.solver, "solver", opts.solver, "solver (backtracking|branch-and-bound|heuristic)")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "heuristic mode (fast|accurate)")
	cmd.Flags().IntVar(&opts.attempts, "attempts", opts.attempts, "heuristic attempts per k (accurate mode)")
	cmd.Flags().IntVar(&opts.multiplier, "multiplier", opts.multiplier, "heuristic k cap as a multiple of the lower bound")
	cmd.Flags().Int64Var(&opts.seed, "seed", opts.seed, "heuristic random seed (0 = time-based)")
	cmd.Flags().StringVar(&opts.recordPath, "record", "", "write step events to this JSON file")
	cmd.Flags().BoolVar(&opts.jsonOut, "json", false, "emit the result as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the result cache")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, opts *solveOpts) error {
	ctx := cmd.Context()

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	popts := pipeline.Options{
		Kind:           graphgen.Kind(opts.graph),
		Params:         graphgen.Params{N: opts.n, R: opts.r},
		Solver:         opts.solver,
		Mode:           labeling.Mode(opts.mode),
		Attempts:       opts.attempts,
		MaxKMultiplier: opts.multiplier,
		Seed:           opts.seed,
		TTL:            time.Duration(c.Config.Cache.TTLHours) * time.Hour,
	}

	var rec *record.Recorder
	if opts.recordPath != "" {
		rec = record.New(opts.solver)
		popts.OnStep = rec.Observe
	}

	start := time.Now()
	res, err := runner.Solve(ctx, popts)
	if err != nil {
		return err
	}

	if rec != nil {
		if err := rec.WriteFile(opts.recordPath); err != nil {
			return fmt.Errorf("write recording: %w", err)
		}
		printFile(opts.recordPath)
		printDetail("%d events, run %s", rec.Len(), rec.RunID())
	}

	if opts.jsonOut {
		return writeResultJSON(res, opts.output)
	}

	printResult(res, time.Since(start))
	return nil
}

// writeResultJSON serializes res as indented JSON to path (or stdout if empty).
func writeResultJSON(res *pipeline.Result, path string) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// printResult renders a styled summary of a solve result.
func printResult(res *pipeline.Result, elapsed time.Duration) {
	if !res.Found {
		printWarning("No labeling found (lower bound %d)", res.LowerBound)
		printDetail("The heuristic exhausted its budget; try --mode accurate or a higher --multiplier.")
		return
	}

	printSuccess("k = %d", res.K)
	printKeyValue("graph", graphDescription(res))
	printKeyValue("solver", solverDescription(res))
	printKeyValue("lower bound", fmt.Sprintf("%d (gap %d)", res.LowerBound, res.Gap))
	printStats(len(res.Vertices), len(res.Edges), res.Cached)
	printDetail("completed in %s", elapsed.Round(time.Millisecond))

	for _, v := range res.Vertices {
		printDetail("%s = %d", v.ID, v.Label)
	}
}

func graphDescription(res *pipeline.Result) string {
	if res.Kind == string(graphgen.KindCirculant) {
		return fmt.Sprintf("%s(n=%d, r=%d)", res.Kind, res.N, res.R)
	}
	return fmt.Sprintf("%s(n=%d)", res.Kind, res.N)
}

func solverDescription(res *pipeline.Result) string {
	if res.Solver == pipeline.SolverHeuristic {
		return fmt.Sprintf("%s (%s)", res.Solver, res.Mode)
	}
	return res.Solver
}

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a WriteCloser for the given path.
// If path is empty, it returns os.Stdout wrapped in nopCloser.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}
