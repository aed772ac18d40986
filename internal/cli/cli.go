package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/questgraph/pkg/buildinfo"
	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/config"
	"github.com/matzehuels/questgraph/pkg/observability"
	"github.com/matzehuels/questgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "questgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline, cache
// and HTTP hooks log through the same logger.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := observability.NewLogHooks(c.Logger)
		observability.SetPipelineHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Questgraph lays out quest prerequisite graphs",
		Long:         `Questgraph turns a quest dataset into a layered prerequisite graph: quests are placed on levels below everything they depend on, ordered to keep edges short, and rendered as SVG, PNG, DOT or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/questgraph/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable layout and artifact caching")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.listCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config and Runner Factory
// =============================================================================

// loadConfig reads the file named by --config, or the default location.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use, backed by the configured
// cache unless --no-cache is set.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.TTL = cfg.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	if c.noCache || cfg.Cache.Backend == cache.BackendNone {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir(cfg)
	if err != nil && (cfg.Cache.Backend == "" || cfg.Cache.Backend == cache.BackendFile) {
		c.Logger.Warn("no cache directory, caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.Open(ctx, cfg.Cache.Backend, cfg.Cache.URL, dir)
}

// cacheDir returns the file cache directory: cache.dir from the config, or
// the XDG default (~/.cache/questgraph/).
func cacheDir(cfg config.Config) (string, error) {
	if cfg.Cache.Dir != "" {
		return cfg.Cache.Dir, nil
	}
	return config.DefaultCacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the layout settings shared by every command that computes
// a layout. Flags override the config file only when set explicitly.
type layoutFlags struct {
	spacingX float64
	spacingY float64
	passes   int
	residue  string
	refresh  bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.spacingX, "spacing-x", 0, "horizontal distance between quests on a level")
	cmd.Flags().Float64Var(&f.spacingY, "spacing-y", 0, "vertical distance between levels")
	cmd.Flags().IntVar(&f.passes, "passes", 0, "maximum sweep passes (0 disables the sweep)")
	cmd.Flags().StringVar(&f.residue, "residue", "", "placement of quests left in cycles: best-effort or level-zero")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached layouts and artifacts")
}

// options builds pipeline options for path from cfg and the flags the user set.
func (f *layoutFlags) options(cmd *cobra.Command, cfg config.Config, path string) pipeline.Options {
	opts := cfg.PipelineOptions(path)
	flags := cmd.Flags()
	if flags.Changed("spacing-x") {
		opts.SpacingX = f.spacingX
	}
	if flags.Changed("spacing-y") {
		opts.SpacingY = f.spacingY
	}
	if flags.Changed("passes") {
		opts.MaxSweepPasses = f.passes
		if f.passes == 0 {
			opts.MaxSweepPasses = -1
		}
	}
	if flags.Changed("residue") {
		opts.Residue = f.residue
	}
	opts.Refresh = f.refresh
	return opts
}

// parseFormats parses a comma-separated format string into a slice.
// An empty string keeps the configured formats.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// prepare loads the config, builds options for the dataset and opens a runner.
func (c *CLI) prepare(cmd *cobra.Command, lf *layoutFlags, path string) (*pipeline.Runner, pipeline.Options, config.Config, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, pipeline.Options{}, config.Config{}, err
	}
	opts := lf.options(cmd, cfg, path)
	opts.Logger = c.Logger
	runner, err := c.newRunner(cmd.Context(), cfg)
	if err != nil {
		return nil, pipeline.Options{}, config.Config{}, err
	}
	return runner, opts, cfg, nil
}
