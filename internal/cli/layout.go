package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/graph"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

// stdoutPath selects standard output for --output.
const stdoutPath = "-"

// layoutCommand creates the layout command for computing quest layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "layout [quests.json]",
		Short: "Compute the layered layout of a quest dataset",
		Long: `Compute the layered layout of a quest dataset.

Every quest is placed on a level below all of its prerequisites. Quests that
sit on a prerequisite cycle are placed by the residue policy and reported as
residue. The output is a layout.json file (same format as 'render -f json').

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, _, err := c.prepare(cmd, &lf, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()
			return c.runLayout(cmd.Context(), runner, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, - for stdout (default: <input>.layout.json)")
	lf.register(cmd)

	return cmd
}

// runLayout loads the dataset, computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	ds, err := runner.Load(ctx, opts.Path)
	if err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, ds, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	prog.done(fmt.Sprintf("Laid out %d quests on %d levels", len(l.Positions), l.MaxLevel+1))

	pipeline.LogWarnings(c.Logger, pipeline.Diagnose(ds.Graph, l.Result()))

	if output == stdoutPath {
		return graph.WriteLayout(l, os.Stdout)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = defaultOutputBase(opts.Path) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(l, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(ds.Graph.Len(), ds.Graph.EdgeCount(), len(l.Residue), cacheHit)
	printNewline()
	printNextStep("Inspect", appName+" inspect "+opts.Path)

	return nil
}

// defaultOutputBase strips the extension from a dataset path.
func defaultOutputBase(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input))
}
