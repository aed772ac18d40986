// Package cli implements the questgraph command-line interface.
//
// Commands load a quest dataset (JSON or YAML), lay it out and either write
// the result, print it, browse it in the terminal or serve it over HTTP.
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - layout: Write the computed layout as JSON
//   - render: Generate SVG, PNG, DOT or JSON artifacts
//   - inspect: Print the placement of every quest as a table
//   - check: Report dangling references, duplicates, cycles and residue
//   - list: Print quests grouped into sidebar sections, with filters
//   - browse: Interactive sidebar and detail panel
//   - serve: Serve the dataset over HTTP, optionally reloading on change
//   - cache: Manage the layout and artifact cache
//   - config: Print the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on the pipeline and cache hooks.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, rounded to the millisecond.
// Example output: "Laid out 42 quests (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
