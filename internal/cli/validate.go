package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sganbold/tentlabel/pkg/graphgen"
	"github.com/sganbold/tentlabel/pkg/labeling"
)

// labelingFile is the subset of a solve result needed to re-check a labeling.
// Files produced by `tentlabel solve --json` satisfy it directly.
type labelingFile struct {
	Kind   string            `json:"graph_type"`
	N      int               `json:"n"`
	R      int               `json:"r"`
	Labels labeling.Labeling `json:"labels"`
}

// validateCommand creates the validate command, which re-checks a labeling
// file against the weight-distinctness requirement.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a labeling file for duplicate edge weights",
		Long: `Validate reads a labeling produced by "solve --json" and re-checks it:
every vertex must carry a label and no two edges may share a weight.

The command exits non-zero if the labeling is invalid.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0])
		},
	}
}

func (c *CLI) runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var lf labelingFile
	if err := json.Unmarshal(data, &lf); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(lf.Labels) == 0 {
		return fmt.Errorf("%s contains no labels", path)
	}

	g, err := graphgen.Build(graphgen.Kind(lf.Kind), graphgen.Params{N: lf.N, R: lf.R})
	if err != nil {
		return err
	}

	for _, v := range g.Vertices() {
		if _, ok := lf.Labels[v]; !ok {
			printError("Vertex %s is unlabeled", v)
			return fmt.Errorf("incomplete labeling")
		}
	}

	if !labeling.IsValid(g, lf.Labels) {
		printError("Labeling is invalid: duplicate edge weights")
		return fmt.Errorf("invalid labeling")
	}

	k := lf.Labels.MaxLabel()
	printSuccess("Labeling is valid")
	printKeyValue("max label", fmt.Sprintf("%d", k))
	printKeyValue("lower bound", fmt.Sprintf("%d", graphgen.LowerBound(g)))
	printStats(g.Order(), g.Size(), false)
	return nil
}
