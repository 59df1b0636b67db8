package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/pipeline"
)

// overviewOpts holds the flags of the overview command.
type overviewOpts struct {
	output    string
	format    string
	detailed  bool
	qualified bool
	scale     float64
	refresh   bool
	noCache   bool
}

// overviewCommand creates the overview command, which draws every type and
// its relations as one Graphviz graph.
func (c *CLI) overviewCommand() *cobra.Command {
	var opts overviewOpts

	cmd := &cobra.Command{
		Use:   "overview <input>...",
		Short: "Draw the type hierarchy as a single graph",
		Long: `Overview draws every type of the inputs and the relations between them as
one node-link graph. The format follows the output extension unless
--type is given; "dot" writes the Graphviz source.`,
		Example: `  umldoc overview src/main/java -o hierarchy.svg
  umldoc overview model.yaml -o hierarchy.dot --detailed`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOverview(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: overview.<format> in the destination)")
	cmd.Flags().StringVarP(&opts.format, "type", "t", "", "overview format: svg, png, pdf or dot")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "list members inside the nodes")
	cmd.Flags().BoolVar(&opts.qualified, "qualified", false, "label nodes with qualified names")
	cmd.Flags().Float64Var(&opts.scale, "scale", 2, "scale factor of png output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "render again even if cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "do not use the cache")

	return cmd
}

func (c *CLI) runOverview(cmd *cobra.Command, inputs []string, opts overviewOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	format, err := overviewFormat(opts.format, opts.output)
	if err != nil {
		return err
	}
	output := opts.output
	if output == "" {
		output = filepath.Join(cfg.Destination, "overview."+format)
	}

	eng, err := c.newEngine(ctx, cfg, opts.noCache)
	if err != nil {
		return err
	}
	settings, err := c.settings(ctx, cfg, eng)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(settings, eng.cache, nil, logger)
	defer runner.Close()

	prog := newProgress(logger)
	m, err := pipeline.LoadModel(ctx, logger, inputs...)
	if err != nil {
		return err
	}

	var spinner *Spinner
	if !cfg.Quiet && !cfg.Verbose {
		spinner = newSpinner(ctx, "Drawing overview...")
		spinner.Start()
	}
	data, cached, err := runner.Overview(ctx, m, pipeline.OverviewOptions{
		Format:    format,
		Detailed:  opts.detailed,
		Qualified: opts.qualified,
		Scale:     opts.scale,
		Refresh:   opts.refresh,
	})
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	if err := writeOutput(output, data); err != nil {
		return err
	}
	prog.done("wrote overview", "file", output, "format", format, "cached", cached)

	if !cfg.Quiet {
		printSuccess("Overview of %s", plural(m.TypeCount(), "type"))
		printStats(len(m.Packages), m.TypeCount(), 0, cached)
		printFile(output)
	}
	return nil
}

// overviewFormat picks the explicit format, else the output extension,
// else svg.
func overviewFormat(explicit, output string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(explicit), "."))
	if format == "" {
		format = strings.ToLower(strings.TrimPrefix(filepath.Ext(output), "."))
		if !slices.Contains(pipeline.OverviewFormats, format) {
			format = pipeline.OverviewSVG
		}
	}
	if !slices.Contains(pipeline.OverviewFormats, format) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "unknown overview format %q (must be %s)", explicit, strings.Join(pipeline.OverviewFormats, ", "))
	}
	return format, nil
}

func writeOutput(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeIO, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
	}
	return nil
}
