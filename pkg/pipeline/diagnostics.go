package pipeline

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/model"
)

// WarningKind classifies a data-quality problem.
type WarningKind string

// Warning kinds.
const (
	WarnDangling  WarningKind = "dangling"  // prerequisite names no quest
	WarnDuplicate WarningKind = "duplicate" // id repeated; first record kept
	WarnCycle     WarningKind = "cycle"     // quests require each other
	WarnResidue   WarningKind = "residue"   // placed by the residue policy
)

// Warning is a data-quality problem. Warnings never fail a run.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Quests  []string    `json:"quests"`
	Message string      `json:"message"`
}

// Diagnose collects warnings for a graph and its layout. res may be nil to
// skip layout-dependent checks.
func Diagnose(g *model.Graph, res *layout.Result) []Warning {
	var ws []Warning
	for _, ref := range g.Dangling() {
		ws = append(ws, Warning{
			Kind:    WarnDangling,
			Quests:  []string{ref.Quest},
			Message: fmt.Sprintf("quest %q lists unknown prerequisite %q", ref.Quest, ref.Missing),
		})
	}
	for _, id := range g.Duplicates() {
		ws = append(ws, Warning{
			Kind:    WarnDuplicate,
			Quests:  []string{id},
			Message: fmt.Sprintf("quest id %q appears more than once; later records ignored", id),
		})
	}
	for _, cycle := range g.Cycles() {
		ws = append(ws, Warning{
			Kind:    WarnCycle,
			Quests:  cycle,
			Message: "prerequisite cycle: " + strings.Join(cycle, " → "),
		})
	}
	if res != nil && len(res.Residue) > 0 {
		ws = append(ws, Warning{
			Kind:    WarnResidue,
			Quests:  res.Residue,
			Message: fmt.Sprintf("%d quests could not be levelled from their prerequisites", len(res.Residue)),
		})
	}
	return ws
}

// CountByKind tallies warnings per kind.
func CountByKind(ws []Warning) map[WarningKind]int {
	counts := make(map[WarningKind]int)
	for _, w := range ws {
		counts[w.Kind]++
	}
	return counts
}

// LogWarnings writes each warning to logger at warn level.
func LogWarnings(logger *log.Logger, ws []Warning) {
	for _, w := range ws {
		logger.Warn(w.Message, "kind", w.Kind)
	}
}
