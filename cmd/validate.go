package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/deck"
	"github.com/arcanaland/manaforge/internal/validator"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [deck]",
	Short: "Validate a deck file",
	Long: `Validate checks that every card in a deck has the required fields and renders
without errors. Unknown keywords, missing types and duplicate names are reported
as warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath, err := cfg.DeckPath(args[0])
		if err != nil {
			return err
		}

		d, err := deck.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		p, err := cfg.Pipeline(d.KeywordLibrary())
		if err != nil {
			return err
		}

		// Create validator and run validation
		results, err := validator.NewValidator(d, p).Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		// Display validation results
		fmt.Println("Validation Results:")
		fmt.Println("-------------------")

		if results.Valid() {
			fmt.Printf("✅ Deck '%s' is valid (%d cards).\n", d.Name, len(d.Cards))
		} else {
			fmt.Printf("❌ Deck '%s' has %d validation errors:\n", d.Name, len(results.Errors))
			for i, msg := range results.Errors {
				fmt.Printf("%d. %s\n", i+1, colorize.RedString(msg))
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Println("\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Printf("%d. %s\n", i+1, colorize.YellowString(warn))
			}
		}

		if !results.Valid() {
			return fmt.Errorf("validation failed")
		}
		return nil
	},
}
