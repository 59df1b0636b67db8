package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/umldoc/pkg/errors"
	"github.com/matzehuels/umldoc/pkg/pipeline"
)

// renderOpts holds the flags of the render command.
type renderOpts struct {
	noCache bool
	list    bool // print every written diagram
}

// renderCommand creates the render command. Inputs are .java files,
// directories of them, or model files; all of them are merged into one
// model.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <input>...",
		Short: "Render class and package diagrams",
		Long: `Render writes one class diagram per type and one package diagram per
package. Inputs are Java source files, directories searched for them, or
.json, .toml and .yaml model files.`,
		Example: `  umldoc render src/main/java -d docs/uml
  umldoc render model.json --format svg,png --engine server`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, opts)
		},
	}

	cmd.Flags().StringSlice("diagrams", nil, "diagram kinds to render: class, package")
	_ = c.v.BindPFlag("diagrams", cmd.Flags().Lookup("diagrams"))
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "convert without the artifact cache")
	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "list every diagram written")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, inputs []string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	kinds, err := cfg.DiagramOptions()
	if err != nil {
		return err
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

	result, err := runner.Execute(ctx, pipeline.Options{
		Inputs:   inputs,
		Diagrams: kinds,
		Workers:  cfg.Workers,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	if cfg.Quiet {
		return renderOutcome(result)
	}
	dest, _ := filepath.Abs(settings.DestinationDirectory())
	printSuccess("Rendered %s into %s", plural(result.Stats.Diagrams-result.Stats.Failed, "diagram"), StyleValue.Render(dest))
	printStats(result.Stats.Packages, result.Stats.Types, result.Stats.Diagrams, false)
	if opts.list {
		for _, d := range result.Diagrams {
			printFile(d.Path())
		}
	}
	for _, path := range result.Failed {
		printWarning("failed: %s", path)
	}
	if result.OK() && !opts.list {
		printNextStep("Hierarchy overview", "umldoc overview "+inputs[0])
	}
	return renderOutcome(result)
}

// renderOutcome turns failed diagrams into the command's error.
func renderOutcome(result *pipeline.Result) error {
	if result.OK() {
		return nil
	}
	return errors.New(errors.ErrCodeRenderFailed, "%d of %d diagrams failed to render", result.Stats.Failed, result.Stats.Diagrams)
}
