// Package cli implements the umldoc command-line interface.
//
// Commands render class and package diagrams from Java sources or model
// files, draw a Graphviz overview of the type hierarchy, list the artifact
// formats, serve the HTTP API and manage the artifact cache. Settings come
// from pkg/config: defaults, then umldoc.toml, then UMLDOC_* environment
// variables, then flags.
//
// # Logging
//
// --quiet logs warnings only and --verbose enables debug output. The logger
// is attached to the command context and retrieved with loggerFromContext.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/config"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
	"github.com/matzehuels/umldoc/pkg/uml"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "umldoc"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	v          *viper.Viper
	configFile string         // --config, empty to search upward
	configUsed string         // file the configuration was read from
	cfg        *config.Config // decoded in the root PersistentPreRunE
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		v:      config.New(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig returns the decoded configuration, loading it if no command has
// done so yet.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	used, err := config.Load(c.v, c.configFile)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Decode(c.v)
	if err != nil {
		return nil, err
	}
	c.configUsed, c.cfg = used, cfg
	return cfg, nil
}

// =============================================================================
// Engine Factory
// =============================================================================

// engine bundles the converter and cache a command renders with.
type engine struct {
	converter plantuml.Converter
	cache     cache.Cache
}

// newEngine builds the configured converter and, unless noCache is set,
// wraps it in the artifact cache. A cache that cannot be opened is logged
// and replaced by a null cache.
func (c *CLI) newEngine(ctx context.Context, cfg *config.Config, noCache bool) (*engine, error) {
	logger := loggerFromContext(ctx)

	conv, err := plantuml.NewEngine(cfg.EngineOptions())
	if err != nil {
		return nil, err
	}
	e := &engine{converter: conv, cache: cache.NewNullCache()}
	if noCache || conv == nil {
		return e, nil
	}

	store, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		logger.Warn("cache unavailable, rendering without it", "backend", cfg.Cache.Backend, "err", err)
		return e, nil
	}
	e.cache = store
	e.converter = plantuml.NewCached(conv, store, cache.NewDefaultKeyer(), cfg.EngineOptions().Identity(), cfg.Cache.TTL, logger)
	logger.Debug("artifact cache", "backend", cfg.Cache.Backend)
	return e, nil
}

// settings builds the rendering settings for cfg around e.
func (c *CLI) settings(ctx context.Context, cfg *config.Config, e *engine) (*uml.Settings, error) {
	return cfg.Settings(loggerFromContext(ctx), e.converter)
}
