package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage decks in your deck library",
	Long:  `Commands for managing card decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := cfg.Decks

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Printf("Deck library at %s does not exist.\n", libraryPath)
			fmt.Println("Run 'manaforge deck init' to create it.")
			return nil
		}

		libraryPath, err := filepath.EvalSymlinks(libraryPath)
		if err != nil {
			return fmt.Errorf("error resolving symbolic link: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			// Decks are deck directories or .toml/.yaml/.yml files
			d, err := deck.LoadDeck(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				continue
			}
			found++
			fmt.Printf("  %s (%s, %d cards)\n", entry.Name(), d.Name, len(d.Cards))
		}

		if found == 0 {
			fmt.Println("No decks found in your deck library.")
			fmt.Println("You can add decks by copying them to:", libraryPath)
		}
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := cfg.Decks

		// Create the deck library directory if it doesn't exist
		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Println("Deck library initialized at:", libraryPath)
		fmt.Println("You can now add decks by copying them to this directory.")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckInitCmd)
}
