package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/questgraph/pkg/detail"
	"github.com/matzehuels/questgraph/pkg/filter"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	listSectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorGray)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)
)

const (
	defaultBrowseHeight = 20
	sidebarWidth        = 36
)

// =============================================================================
// BrowseModel - Sidebar and detail panel
// =============================================================================

// browseRow is a sidebar line: a section header or a quest.
type browseRow struct {
	header bool
	title  string // section title or quest display name
	id     string
}

// BrowseModel is the bubbletea model for browsing a laid-out dataset. The
// sidebar lists quests by section; the panel shows the quest under the cursor.
type BrowseModel struct {
	Graph  *model.Graph
	Layout *layout.Result

	Criteria  filter.Criteria
	Searching bool

	Rows   []browseRow
	Cursor int // index into Rows, always a quest row when any exist
	Offset int
	Height int
	Width  int
}

// NewBrowseModel creates a browse model showing every quest of g.
func NewBrowseModel(g *model.Graph, res *layout.Result) BrowseModel {
	m := BrowseModel{
		Graph:  g,
		Layout: res,
		Height: defaultBrowseHeight,
	}
	m.refresh()
	return m
}

// Current returns the id under the cursor, or "" when nothing matches.
func (m BrowseModel) Current() string {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) || m.Rows[m.Cursor].header {
		return ""
	}
	return m.Rows[m.Cursor].id
}

// refresh rebuilds the sidebar from the criteria and keeps the cursor on the
// same quest when it is still listed.
func (m *BrowseModel) refresh() {
	current := m.Current()

	m.Rows = nil
	for _, s := range filter.Sections(m.Graph, filter.Apply(m.Graph, m.Criteria)) {
		m.Rows = append(m.Rows, browseRow{header: true, title: s.Title})
		for _, id := range s.IDs {
			q, _ := m.Graph.Quest(id)
			m.Rows = append(m.Rows, browseRow{title: q.DisplayName(), id: id})
		}
	}

	m.Cursor, m.Offset = 0, 0
	for i, r := range m.Rows {
		if !r.header && r.id == current {
			m.Cursor = i
			break
		}
	}
	if m.Current() == "" {
		m.move(1)
	}
	m.scroll()
}

// move steps the cursor by delta quest rows, skipping section headers.
func (m *BrowseModel) move(delta int) {
	for i := m.Cursor + delta; i >= 0 && i < len(m.Rows); i += delta {
		if !m.Rows[i].header {
			m.Cursor = i
			break
		}
	}
	m.scroll()
}

func (m *BrowseModel) scroll() {
	// Keep the header above the first quest of a section visible.
	top := m.Cursor
	if top > 0 && m.Rows[top-1].header {
		top--
	}
	if top < m.Offset {
		m.Offset = top
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

// jump moves the cursor to id if it is listed.
func (m *BrowseModel) jump(id string) {
	for i, r := range m.Rows {
		if !r.header && r.id == id {
			m.Cursor = i
			m.scroll()
			return
		}
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Searching {
			return m.updateSearch(msg)
		}
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Criteria.Query != "" {
				m.Criteria.Query = ""
				m.refresh()
			}
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "/":
			m.Searching = true
		case "m":
			m.Criteria.MilestonesOnly = !m.Criteria.MilestonesOnly
			m.refresh()
		case "p":
			// Follow the first known prerequisite.
			if pres := m.Graph.ResolvedPrerequisites(m.Current()); len(pres) > 0 {
				m.jump(pres[0])
			}
		case "d":
			if deps := m.Graph.Dependents(m.Current()); len(deps) > 0 {
				m.jump(deps[0])
			}
		}
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
		m.scroll()
	}
	return m, nil
}

func (m BrowseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		m.Searching = false
	case tea.KeyEsc:
		m.Searching = false
		m.Criteria.Query = ""
		m.refresh()
	case tea.KeyBackspace:
		if q := []rune(m.Criteria.Query); len(q) > 0 {
			m.Criteria.Query = string(q[:len(q)-1])
			m.refresh()
		}
	case tea.KeySpace:
		m.Criteria.Query += " "
		m.refresh()
	case tea.KeyRunes:
		m.Criteria.Query += string(msg.Runes)
		m.refresh()
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Quests"))
	b.WriteString("  ")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  / search  m milestones  p prerequisite  d dependent  q quit"))
	b.WriteString("\n\n")

	sidebar := panelStyle.Width(sidebarWidth).Render(m.sidebarView())
	panelWidth := max(m.Width-sidebarWidth-6, 40)
	panel := panelStyle.Width(panelWidth).Render(m.detailView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, panel))

	return b.String()
}

func (m BrowseModel) statusLine() string {
	var parts []string
	if m.Searching {
		parts = append(parts, StyleHighlight.Render("/"+m.Criteria.Query+"▏"))
	} else if m.Criteria.Query != "" {
		parts = append(parts, StyleDim.Render("query: ")+StyleValue.Render(m.Criteria.Query))
	}
	if m.Criteria.MilestonesOnly {
		parts = append(parts, StyleHighlight.Render("milestones"))
	}
	quests := 0
	for _, r := range m.Rows {
		if !r.header {
			quests++
		}
	}
	parts = append(parts, listDimStyle.Render(fmt.Sprintf("%d/%d", quests, m.Graph.Len())))
	return strings.Join(parts, "  ")
}

func (m BrowseModel) sidebarView() string {
	if len(m.Rows) == 0 {
		return listDimStyle.Render("No quests match")
	}
	end := min(m.Offset+m.Height, len(m.Rows))

	var lines []string
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		switch {
		case r.header:
			lines = append(lines, listSectionStyle.Render(truncateRunes(r.title, sidebarWidth)))
		case i == m.Cursor:
			lines = append(lines, listSelectedStyle.Render("▸ "+truncateRunes(r.title, sidebarWidth-2)))
		default:
			lines = append(lines, listNormalStyle.Render("  "+truncateRunes(r.title, sidebarWidth-2)))
		}
	}
	return strings.Join(lines, "\n")
}

func (m BrowseModel) detailView() string {
	id := m.Current()
	if id == "" {
		return listDimStyle.Render("Nothing selected")
	}
	d, err := detail.Build(m.Graph, m.Layout, id)
	if err != nil {
		return StyleWarning.Render(err.Error())
	}

	var b strings.Builder
	b.WriteString(StyleTitle.Render(d.Quest.DisplayName()))
	if d.Quest.UnlockMilestone {
		b.WriteString(" " + StyleHighlight.Render("★ milestone"))
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(d.Quest.ID))
	b.WriteString("\n\n")

	field := func(key, value string) {
		if value == "" {
			return
		}
		b.WriteString(lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(key))
		b.WriteString(StyleValue.Render(value))
		b.WriteString("\n")
	}
	field("Group", d.Quest.Group)
	field("Category", d.Category)
	field("Level", fmt.Sprintf("%d (%s)", d.Level, d.Phase))
	field("Position", fmt.Sprintf("%g, %g", d.X, d.Y))
	if d.Quest.InOneRound {
		field("Rounds", "complete in one round")
	}

	list := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		b.WriteString("\n")
		b.WriteString(listSectionStyle.Render(title))
		b.WriteString("\n")
		for _, it := range items {
			b.WriteString("  " + it + "\n")
		}
	}
	list("Prerequisites", linkLines(d.Prerequisites))
	list("Unlocks", linkLines(d.Dependents))
	list("Objectives", d.Quest.Objectives)
	rewards := make([]string, len(d.Quest.Rewards))
	for i, r := range d.Quest.Rewards {
		rewards[i] = fmt.Sprintf("%d × %s", r.Quantity, r.Name)
	}
	list("Rewards", rewards)
	list("Locations", d.Quest.RequiredLocations)

	return strings.TrimRight(b.String(), "\n")
}

func linkLines(links []detail.Link) []string {
	out := make([]string, len(links))
	for i, l := range links {
		if !l.Known {
			out[i] = StyleWarning.Render("✗ " + l.ID + " (unknown)")
			continue
		}
		out[i] = StyleValue.Render(l.Name) + " " + listDimStyle.Render(l.ID)
	}
	return out
}

// truncateRunes shortens s to at most n runes, marking the cut with "…".
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 1 {
		return s
	}
	return string(r[:n-1]) + "…"
}
