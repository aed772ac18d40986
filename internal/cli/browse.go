package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/errors"
)

// browseCommand creates the browse command: an interactive sidebar of quests
// with a detail panel for the quest under the cursor.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		selected string
		lf       layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "browse [quests.json]",
		Short: "Browse quests interactively",
		Args:  cobra.ExactArgs(1),
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

			m := NewBrowseModel(ds.Graph, l.Result())
			if selected != "" {
				if !ds.Graph.Has(selected) {
					return errors.New(errors.ErrCodeQuestNotFound, "quest %q not found", selected)
				}
				m.jump(selected)
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run browser: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&selected, "selected", "", "quest id to start on")
	lf.register(cmd)

	return cmd
}
