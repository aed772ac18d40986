package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// Inspect table columns.
const (
	colLevel = iota
	colID
	colName
	colGroup
	colPhase
	colX
	colY
)

// inspectCommand creates the inspect command, which prints every quest's
// placement as a table.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		level int
		lf    layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [quests.json]",
		Short: "Print the placement of every quest",
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
			l, cacheHit, err := runner.ComputeLayoutWithCacheInfo(ctx, ds, opts)
			if err != nil {
				return err
			}
			res := l.Result()

			rows := inspectRows(ds.Graph, res, level)
			if len(rows) == 0 {
				printInfo("No quests on level %d", level)
				return nil
			}
			fmt.Println(inspectTable(rows).Render())
			printStats(ds.Graph.Len(), ds.Graph.EdgeCount(), len(res.Residue), cacheHit)
			printPhaseCounts(res.Counts())
			return nil
		},
	}

	cmd.Flags().IntVarP(&level, "level", "l", -1, "only show quests on this level")
	lf.register(cmd)

	return cmd
}

// inspectRows lists quests level by level, left to right. A non-negative
// level restricts the rows to that level.
func inspectRows(g *model.Graph, res *layout.Result, level int) [][]string {
	var rows [][]string
	for _, id := range res.IDs() {
		pos := res.Positions[id]
		if level >= 0 && pos.Level != level {
			continue
		}
		name, group := "", ""
		if q, ok := g.Quest(id); ok {
			name, group = q.DisplayName(), q.Group
		}
		rows = append(rows, []string{
			colLevel: strconv.Itoa(pos.Level),
			colID:    id,
			colName:  name,
			colGroup: group,
			colPhase: pos.Phase.String(),
			colX:     strconv.FormatFloat(pos.X, 'f', -1, 64),
			colY:     strconv.FormatFloat(pos.Y, 'f', -1, 64),
		})
	}
	return rows
}

func inspectTable(rows [][]string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Level", "ID", "Name", "Group", "Phase", "X", "Y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			switch col {
			case colLevel, colX, colY:
				return base.Foreground(colorCyan)
			case colPhase:
				if row < len(rows) && rows[row][colPhase] == layout.PhaseForced.String() {
					return base.Foreground(colorYellow)
				}
				return base.Foreground(colorDim)
			case colGroup:
				return base.Foreground(colorGray)
			}
			return base
		})
}

// printPhaseCounts prints how many quests each assignment phase placed.
func printPhaseCounts(counts map[layout.Phase]int) {
	line := "  "
	for i, p := range []layout.Phase{layout.PhaseRooted, layout.PhaseSwept, layout.PhaseForced} {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(fmt.Sprintf("%d %s", counts[p], p))
	}
	fmt.Println(line)
}
