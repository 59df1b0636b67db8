package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/umldoc/pkg/pipeline"
	"github.com/matzehuels/umldoc/pkg/render/plantuml"
)

// formatsCommand lists the artifact formats and their engine support.
func (c *CLI) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List the supported image formats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			configured := plantuml.Names(plantuml.ParseFormats(cfg.Formats, nil))

			fmt.Fprintln(stdout, StyleTitle.Render("Image formats"))
			fmt.Fprintln(stdout, formatsTable(configured).Render())
			printKeyValue("configured", strings.Join(configured, ", "))
			printKeyValue("overview", strings.Join(pipeline.OverviewFormats, ", "))
			return nil
		},
	}
}

// formatRows returns one row per format: name, suffix, plantuml -t option,
// server support and whether it is configured.
func formatRows(configured []string) [][]string {
	var rows [][]string
	for _, f := range plantuml.All() {
		_, server := f.ServerPath()
		rows = append(rows, []string{
			f.String(),
			f.Suffix(),
			"-t" + f.Flag(),
			yesNo(server),
			yesNo(slices.Contains(configured, f.String())),
		})
	}
	return rows
}

func formatsTable(configured []string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Format", "Suffix", "Exec", "Server", "Configured").
		Rows(formatRows(configured)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 { // header
				return StyleHeader
			}
			return StyleCell
		})
}

func yesNo(b bool) string {
	if b {
		return styleOK.Render(iconSuccess)
	}
	return StyleDim.Render("-")
}
