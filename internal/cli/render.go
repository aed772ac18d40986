package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/render"
)

// renderCommand creates the render command for generating artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		engine     string
		selected   string
		detailed   bool
		title      string
		lf         layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render [quests.json]",
		Short: "Render a quest dataset to SVG, PNG, DOT or JSON",
		Long: `Render a quest dataset to SVG, PNG, DOT or JSON.

The native engine draws SVG directly; the graphviz engine pins every quest at
its computed position and renders through neato, which also supports PNG and
DOT. Selecting a quest highlights it with its prerequisites and dependents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, opts, _, err := c.prepare(cmd, &lf, args[0])
			if err != nil {
				return err
			}
			defer runner.Close()

			if formats := parseFormats(formatsStr); formats != nil {
				opts.Formats = formats
			}
			if engine != "" {
				opts.Engine = engine
			}
			opts.Selected = selected
			opts.Detailed = detailed
			opts.Title = title
			return c.runRender(cmd.Context(), runner, opts, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg, png, dot, json (comma-separated)")
	cmd.Flags().StringVarP(&engine, "engine", "e", "", "render engine: native, graphviz")
	cmd.Flags().StringVar(&selected, "selected", "", "quest id to highlight with its neighbours")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "show level and group in labels (graphviz)")
	cmd.Flags().StringVar(&title, "title", "", "document title (native svg)")
	lf.register(cmd)

	return cmd
}

// runRender runs the full pipeline and writes one file per format.
func (c *CLI) runRender(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options, output string) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s with %s engine...", strings.Join(opts.Formats, ", "), opts.Engine))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths := outputPaths(output, opts.Path, opts.Formats)
	formats := make([]string, 0, len(paths))
	for f := range paths {
		formats = append(formats, f)
	}
	sort.Strings(formats)

	printSuccess("Rendered %s", filepath.Base(opts.Path))
	for _, f := range formats {
		if err := os.WriteFile(paths[f], result.Artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", paths[f], err)
		}
		printFile(paths[f])
	}
	printStats(result.Stats.QuestCount, result.Stats.EdgeCount, len(result.Layout.Residue),
		result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if n := len(result.Warnings); n > 0 {
		printWarning("%d data warnings", n)
		printNextStep("Details", appName+" check "+opts.Path)
	}
	return nil
}

// outputPaths maps each format to its output file. A single format with an
// explicit output is written exactly there; otherwise files are named
// <base>.<format>, where base is output with any format extension removed,
// or the input path without its extension.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + "." + f
	}
	return paths
}

// basePath derives the base output path from the output and input file paths.
func basePath(output, input string) string {
	if output == "" {
		return defaultOutputBase(input)
	}
	ext := filepath.Ext(output)
	if _, err := render.ParseFormat(strings.TrimPrefix(ext, ".")); err == nil && ext != "" {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
