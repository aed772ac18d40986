package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

// strictKinds fail `check --strict`.
var strictKinds = []pipeline.WarningKind{pipeline.WarnDangling, pipeline.WarnResidue}

// checkCommand creates the check command, which reports data-quality problems.
func (c *CLI) checkCommand() *cobra.Command {
	var (
		strict bool
		asJSON bool
		lf     layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "check [quests.json]",
		Short: "Report dangling references, duplicates, cycles and residue",
		Long: `Report data-quality problems in a quest dataset.

Problems never stop a layout. With --strict, dangling prerequisites and
quests placed by the residue policy make the command fail, which is useful
in CI for hand-maintained datasets.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, _, err := c.prepare(cmd, &lf, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			ds, err := runner.Load(ctx, opts.Path)
			if err != nil {
				return err
			}
			l, err := runner.ComputeLayout(ctx, ds, opts)
			if err != nil {
				return err
			}
			ws := pipeline.Diagnose(ds.Graph, l.Result())

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if ws == nil {
					ws = []pipeline.Warning{}
				}
				if err := enc.Encode(ws); err != nil {
					return err
				}
			} else {
				printWarnings(ws)
			}
			if strict {
				return strictFailure(ws)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail on dangling prerequisites or residue")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print warnings as JSON")
	lf.register(cmd)

	return cmd
}

// strictFailure returns an INVALID_DATASET error when ws contains a kind
// listed in strictKinds.
func strictFailure(ws []pipeline.Warning) error {
	counts := pipeline.CountByKind(ws)
	for _, k := range strictKinds {
		if n := counts[k]; n > 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "%d %s warnings", n, k)
		}
	}
	return nil
}

func printWarnings(ws []pipeline.Warning) {
	if len(ws) == 0 {
		printSuccess("No problems found")
		return
	}
	for _, w := range ws {
		printWarning("%s", w.Message)
		printDetail("%s: %v", w.Kind, w.Quests)
	}
	counts := pipeline.CountByKind(ws)
	printNewline()
	for _, k := range []pipeline.WarningKind{pipeline.WarnDangling, pipeline.WarnDuplicate, pipeline.WarnCycle, pipeline.WarnResidue} {
		printKeyValue(string(k), fmt.Sprint(counts[k]))
	}
}
