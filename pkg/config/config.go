// Package config loads questgraph settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/questgraph/config.toml (or
// ~/.config/questgraph/config.toml) unless a path is given explicitly. A
// missing file is not an error: every setting has a default, and command-line
// flags override whatever the file says.
//
//	[layout]
//	node_spacing_x = 200.0
//	node_spacing_y = 150.0
//	max_sweep_passes = 10
//	residue = "best-effort"
//
//	[render]
//	engine = "native"
//	formats = ["svg"]
//
//	[cache]
//	backend = "file"
//	url = ""
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
//	watch = false
package config

import (
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/questgraph/pkg/cache"
	"github.com/matzehuels/questgraph/pkg/errors"
	"github.com/matzehuels/questgraph/pkg/layout"
	"github.com/matzehuels/questgraph/pkg/pipeline"
	"github.com/matzehuels/questgraph/pkg/render"
)

const appName = "questgraph"

// DefaultAddr is the default listen address of the HTTP server.
const DefaultAddr = ":8080"

// Config is the complete configuration.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds layout engine settings.
type LayoutConfig struct {
	NodeSpacingX   float64 `toml:"node_spacing_x"`
	NodeSpacingY   float64 `toml:"node_spacing_y"`
	MaxSweepPasses int     `toml:"max_sweep_passes"`
	Residue        string  `toml:"residue"`
}

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Engine  string   `toml:"engine"`
	Formats []string `toml:"formats"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend string        `toml:"backend"`
	URL     string        `toml:"url"`
	Dir     string        `toml:"dir"` // file backend; empty selects the XDG cache dir
	TTL     time.Duration `toml:"ttl"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr  string `toml:"addr"`
	Watch bool   `toml:"watch"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Layout: LayoutConfig{
			NodeSpacingX:   layout.DefaultNodeSpacingX,
			NodeSpacingY:   layout.DefaultNodeSpacingY,
			MaxSweepPasses: layout.DefaultMaxSweepPasses,
			Residue:        string(layout.ResidueBestEffort),
		},
		Render: RenderConfig{
			Engine:  string(render.EngineNative),
			Formats: []string{string(render.FormatSVG)},
		},
		Cache: CacheConfig{
			Backend: cache.BackendFile,
			TTL:     cache.TTLLayout,
		},
		Server: ServerConfig{
			Addr: DefaultAddr,
		},
	}
}

// DefaultPath returns the config file location following the XDG convention.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the file cache directory following the XDG convention.
func DefaultCacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the config file at path, or at [DefaultPath] when path is empty.
// A missing file yields [Default]. Keys the file sets replace the defaults;
// unknown keys are rejected. The result is validated.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Default(), nil
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	return Parse(string(data))
}

// Parse decodes TOML text on top of [Default] and validates the result.
func Parse(text string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(text, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every setting and returns the first problem as an
// INVALID_CONFIG error.
func (c Config) Validate() error {
	if c.Layout.NodeSpacingX <= 0 || c.Layout.NodeSpacingY <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout spacing must be positive (got %v, %v)", c.Layout.NodeSpacingX, c.Layout.NodeSpacingY)
	}
	if c.Layout.MaxSweepPasses < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout.max_sweep_passes must not be negative (got %d)", c.Layout.MaxSweepPasses)
	}
	if _, err := layout.ParseResiduePolicy(c.Layout.Residue); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "layout.residue")
	}

	engine, err := render.ParseEngine(c.Render.Engine)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.engine")
	}
	formats, err := render.ParseFormats(c.Render.Formats)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
	}
	for _, f := range formats {
		if !render.Supports(engine, f) {
			return errors.New(errors.ErrCodeInvalidConfig, "render engine %s cannot produce %s", engine, f)
		}
	}

	backends := []string{cache.BackendFile, cache.BackendNone, cache.BackendRedis, cache.BackendMongo}
	if !slices.Contains(backends, c.Cache.Backend) {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q (want %s)", c.Cache.Backend, strings.Join(backends, ", "))
	}
	if (c.Cache.Backend == cache.BackendRedis || c.Cache.Backend == cache.BackendMongo) && c.Cache.URL == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "cache backend %s requires cache.url", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	return nil
}

// PipelineOptions converts the layout and render sections to pipeline options
// for the dataset at path.
func (c Config) PipelineOptions(path string) pipeline.Options {
	passes := c.Layout.MaxSweepPasses
	if passes == 0 {
		passes = -1 // an explicit 0 disables the sweep
	}
	return pipeline.Options{
		Path:           path,
		SpacingX:       c.Layout.NodeSpacingX,
		SpacingY:       c.Layout.NodeSpacingY,
		MaxSweepPasses: passes,
		Residue:        c.Layout.Residue,
		Formats:        slices.Clone(c.Render.Formats),
		Engine:         c.Render.Engine,
	}
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
