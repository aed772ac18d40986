// Package filter narrows and groups quests for list views: the sidebar
// sections of the viewer, the trader categories, and free-text search.
//
// Filtering never changes the layout. Filtered views select ids out of the
// full layout computed for the whole dataset.
package filter

import (
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/matzehuels/questgraph/pkg/model"
	"github.com/matzehuels/questgraph/pkg/quest"
)

// UngroupedSection is the section title for quests without a group.
const UngroupedSection = "Ungrouped"

// Criteria selects quests. Empty fields do not restrict.
type Criteria struct {
	Groups         []string // quest groups to keep
	Traders        []string // categories to keep; "generic" keeps quests without a trader
	Query          string   // fuzzy search over names, then ids
	MilestonesOnly bool
}

// IsZero reports whether c selects every quest.
func (c Criteria) IsZero() bool {
	return len(c.Groups) == 0 && len(c.Traders) == 0 &&
		strings.TrimSpace(c.Query) == "" && !c.MilestonesOnly
}

func (c Criteria) keep(q *quest.Quest) bool {
	if c.MilestonesOnly && !q.UnlockMilestone {
		return false
	}
	if len(c.Groups) > 0 && !slices.Contains(c.Groups, q.Group) {
		return false
	}
	if len(c.Traders) > 0 && !slices.Contains(c.Traders, q.Category()) {
		return false
	}
	return true
}

// Apply returns the ids of quests matching c.
//
// Without a query the ids keep dataset order. With a query they are ranked
// by match quality: quests whose name matches come first, then quests that
// only match by id.
func Apply(g *model.Graph, c Criteria) []string {
	var ids []string
	for _, id := range g.IDs() {
		if q, ok := g.Quest(id); ok && c.keep(q) {
			ids = append(ids, id)
		}
	}

	query := strings.TrimSpace(c.Query)
	if query == "" {
		return ids
	}

	names := make([]string, len(ids))
	for i, id := range ids {
		q, _ := g.Quest(id)
		names[i] = q.DisplayName()
	}

	ranked := make([]string, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, m := range fuzzy.Find(query, names) {
		ranked = append(ranked, ids[m.Index])
		seen[m.Index] = true
	}
	for _, m := range fuzzy.Find(query, ids) {
		if !seen[m.Index] {
			ranked = append(ranked, ids[m.Index])
		}
	}
	return ranked
}

// Section is a titled run of quests in the sidebar.
type Section struct {
	Title string   `json:"title"`
	IDs   []string `json:"ids"`
}

// Sections groups ids by quest group. Sections appear in the order their
// group is first seen in ids; quests keep their order within a section.
// Unknown ids are skipped.
func Sections(g *model.Graph, ids []string) []Section {
	var out []Section
	index := make(map[string]int)
	for _, id := range ids {
		q, ok := g.Quest(id)
		if !ok {
			continue
		}
		title := q.Group
		if title == "" {
			title = UngroupedSection
		}
		i, ok := index[title]
		if !ok {
			i = len(out)
			index[title] = i
			out = append(out, Section{Title: title})
		}
		out[i].IDs = append(out[i].IDs, id)
	}
	return out
}

// Category is a trader (or the generic category) and its quest count.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories lists every category in dataset order of first appearance.
func Categories(g *model.Graph) []Category {
	var out []Category
	index := make(map[string]int)
	for _, q := range g.Quests() {
		name := q.Category()
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, Category{Name: name})
		}
		out[i].Count++
	}
	return out
}
