package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/umldoc/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "umldoc renders PlantUML class diagrams from Java type models",
		Long: `umldoc documents Java code as PlantUML class and package diagrams.

Types are read from .java sources or from JSON, TOML and YAML model files,
written as .puml text and converted into images with the plantuml command or
a PlantUML server.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.bindFlags(root.PersistentFlags())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.overviewCommand())
	root.AddCommand(c.formatsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and attaches the logger to the command
// context.
func (c *CLI) setup(cmd *cobra.Command) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	c.SetLogLevel(levelFor(cfg.Quiet, cfg.Verbose))
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if c.configUsed != "" {
		c.Logger.Debug("loaded configuration", "file", c.configUsed)
	}
	return nil
}

// globalFlags maps persistent flags to configuration keys.
var globalFlags = map[string]string{
	"quiet":       "quiet",
	"verbose":     "verbose",
	"destination": "destination",
	"format":      "formats",
	"indent":      "indentation",
	"exclude":     "exclude",
	"workers":     "workers",
	"engine":      "engine.kind",
	"plantuml":    "engine.command",
	"server-url":  "engine.server_url",
	"cache":       "cache.backend",
}

// bindFlags registers the persistent flags and binds them to the viper
// keys in globalFlags, so set flags take precedence over file and
// environment values.
func (c *CLI) bindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.configFile, "config", "", "config file (default: nearest umldoc.toml)")
	fs.BoolP("quiet", "q", false, "only log warnings and errors")
	fs.BoolP("verbose", "v", false, "enable verbose logging")
	fs.StringP("destination", "d", "", "directory diagrams are written to")
	fs.StringSliceP("format", "f", nil, "image formats to generate, e.g. svg,png")
	fs.Int("indent", 0, "spaces per indentation level, 0 for tabs")
	fs.StringSlice("exclude", nil, "qualified type names never drawn as relations")
	fs.Int("workers", 0, "diagrams rendered in parallel")
	fs.String("engine", "", "conversion engine: exec, server or none")
	fs.String("plantuml", "", "plantuml command line of the exec engine")
	fs.String("server-url", "", "base URL of the PlantUML server engine")
	fs.String("cache", "", "artifact cache backend: file, redis or none")

	for flag, key := range globalFlags {
		_ = c.v.BindPFlag(key, fs.Lookup(flag))
	}
}
