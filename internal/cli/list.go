package cli

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/filter"
	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// listCommand creates the list command, which prints quests grouped into
// sidebar sections.
func (c *CLI) listCommand() *cobra.Command {
	var (
		crit   filter.Criteria
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "list [quests.json]",
		Short: "List quests grouped by section",
		Long: `List quests grouped by section, in dataset order.

Filters combine: --group and --trader keep quests in any of the given groups
or categories, --milestones keeps milestone quests, and --query ranks the
remaining quests by fuzzy match on name, then id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := quest.ReadFile(args[0])
			if err != nil {
				return err
			}
			g := model.New(doc.Quests)
			sections := filter.Sections(g, filter.Apply(g, crit))

			if asJSON {
				if sections == nil {
					sections = []filter.Section{}
				}
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(sections)
			}
			printSections(g, sections)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&crit.Groups, "group", "g", nil, "keep quests in these groups")
	cmd.Flags().StringSliceVarP(&crit.Traders, "trader", "t", nil, "keep quests of these traders (generic for none)")
	cmd.Flags().StringVarP(&crit.Query, "query", "q", "", "fuzzy search on name and id")
	cmd.Flags().BoolVar(&crit.MilestonesOnly, "milestones", false, "keep milestone quests only")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print sections as JSON")

	return cmd
}

func printSections(g *model.Graph, sections []filter.Section) {
	if len(sections) == 0 {
		printInfo("No quests match")
		return
	}
	total := 0
	for i, s := range sections {
		if i > 0 {
			printNewline()
		}
		fmt.Println(StyleTitle.Render(s.Title) + " " + StyleDim.Render(fmt.Sprintf("(%d)", len(s.IDs))))
		for _, id := range s.IDs {
			q, _ := g.Quest(id)
			line := "  " + StyleValue.Render(q.DisplayName())
			if q.DisplayName() != id {
				line += " " + StyleDim.Render(id)
			}
			if q.UnlockMilestone {
				line += " " + StyleHighlight.Render("★")
			}
			fmt.Println(line)
		}
		total += len(s.IDs)
	}
	printNewline()
	printDetail("%d quests in %d sections", total, len(sections))
}
