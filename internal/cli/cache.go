package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umldoc/pkg/cache"
	"github.com/matzehuels/umldoc/pkg/config"
	"github.com/matzehuels/umldoc/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts and overviews",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Backend == cache.BackendNone {
				printInfo("Cache is disabled")
				return nil
			}
			n, err := clearCache(cfg)
			if err != nil {
				return err
			}
			printSuccess("Cleared %d cached entries", n)
			if cfg.Cache.Backend == cache.BackendFile {
				printDetail("Directory: %s", cfg.Cache.Dir)
			}
			return nil
		},
	}
}

// clearCache empties the configured cache and returns the number of
// entries removed. Only the file backend can be cleared.
func clearCache(cfg *config.Config) (int, error) {
	if cfg.Cache.Backend != cache.BackendFile {
		return 0, errors.New(errors.ErrCodeUnsupported, "cache clear supports the %s backend only, not %q", cache.BackendFile, cfg.Cache.Backend)
	}
	if _, err := os.Stat(cfg.Cache.Dir); os.IsNotExist(err) {
		return 0, nil
	}
	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		return 0, err
	}
	defer fc.Close()
	return fc.Clear()
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, cfg.Cache.Dir)
			return nil
		},
	}
}
