package cmd

import (
	"fmt"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/mana"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "List the canonical color sets with their gradients",
	Long: `Colors prints all 31 color sets in canonical order, each with a terminal
swatch of its badge background, the color names and, with --css, the CSS value.
Palette overrides from the config file are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showCSS, _ := cmd.Flags().GetBool("css")

		painter, err := cfg.Painter()
		if err != nil {
			return fmt.Errorf("invalid palette: %w", err)
		}

		// Swatch width scales with the terminal, within limits
		cells := terminalWidth() / 5
		if cells > 24 {
			cells = 24
		}
		if cells < 5 {
			cells = 5
		}

		for _, line := range colorLines(painter, cells, showCSS) {
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(colorsCmd)

	colorsCmd.Flags().Bool("css", false, "also print the CSS background of each set")
}

// colorLines formats one line per canonical color set
func colorLines(painter *mana.Painter, cells int, showCSS bool) []string {
	var lines []string
	for _, e := range mana.DefaultOrder.Entries() {
		set := mana.MustColorSet(e.Code)
		code := colorize.HiWhiteString("%-5s", e.Code)
		line := fmt.Sprintf("  %s %s  %s", code, swatch(painter.Sample(set, cells)),
			colorize.CyanString(strings.Join(e.Names, " ")))
		if showCSS {
			line += "\n        " + painter.Background(set)
		}
		lines = append(lines, line)
	}
	return lines
}
