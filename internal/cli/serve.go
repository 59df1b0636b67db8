package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/umldoc/pkg/observability"
	"github.com/matzehuels/umldoc/pkg/server"
)

// serveCommand creates the serve command for the HTTP rendering API.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering HTTP API",
		Long: `Serve answers POST /v1/render and POST /v1/overview with diagrams of the
model in the request body, using the configured engine and cache. It stops
gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			eng, err := c.newEngine(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer eng.cache.Close()
			settings, err := c.settings(ctx, cfg, eng)
			if err != nil {
				return err
			}

			stats := observability.NewCounters()
			observability.SetPipelineHooks(stats)
			observability.SetCacheHooks(stats)
			observability.SetHTTPHooks(stats)

			srv := server.New(settings, eng.cache, server.Options{
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Timeout:      cfg.Server.Timeout,
				Workers:      cfg.Workers,
				Logger:       logger,
				Stats:        stats,
			})
			if !cfg.Quiet {
				printInfo("Serving on %s", StyleLink.Render(cfg.Server.Addr))
				printKeyValue("engine", cfg.Engine.Kind)
				printKeyValue("cache", cfg.Cache.Backend)
			}
			return srv.ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8080)")
	_ = c.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "convert without the artifact cache")

	return cmd
}
