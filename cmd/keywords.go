package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/config"
	"github.com/arcanaland/manaforge/internal/keyword"
)

// keywordsCmd represents the keywords command group
var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Inspect and manage the keyword library",
	Long:  `Commands for inspecting and managing the keyword library used for macro expansion.`,
}

// keywordsListCmd represents the keywords ls command
var keywordsListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the keywords in the active library",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := cfg.Catalog()
		if err != nil {
			return fmt.Errorf("error loading keyword library: %w", err)
		}

		source := cfg.Library
		if source == "" {
			source = "built-in"
		}
		fmt.Printf("Keyword library: %s (%d keywords)\n", source, catalog.Len())

		for _, name := range catalog.Names() {
			def, _ := catalog.Lookup(name)
			fmt.Printf("  %s  %s\n", colorize.HiWhiteString("%-14s", name), colorize.CyanString(def.Display))
		}
		return nil
	},
}

// keywordsShowCmd represents the keywords show command
var keywordsShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the templates of a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := cfg.Catalog()
		if err != nil {
			return fmt.Errorf("error loading keyword library: %w", err)
		}

		def, ok := catalog.Lookup(args[0])
		if !ok {
			return fmt.Errorf("keyword not found: %s", args[0])
		}

		width := terminalWidth() - 4
		fmt.Println(colorize.CyanString("Keyword:  ") + colorize.HiWhiteString(def.Name))
		fmt.Println(colorize.CyanString("Display:  ") + def.Display)
		fmt.Println(colorize.CyanString("Reminder:"))
		for _, line := range wrapText(def.Reminder, width) {
			fmt.Println("  " + line)
		}
		fmt.Println(colorize.CyanString("Usage:    ") + fmt.Sprintf("k.%s(...) or kr.%s(...) with the reminder", def.Name, def.Name))
		return nil
	},
}

// keywordsInitCmd represents the keywords init command
var keywordsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in keyword library to a file you can edit",
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		libraryPath := filepath.Join(xdg.DataHome, "manaforge", "keywords.toml")

		if _, err := os.Stat(libraryPath); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", libraryPath)
		}

		// Create the data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(libraryPath), 0755); err != nil {
			return fmt.Errorf("error creating data directory: %w", err)
		}
		if err := os.WriteFile(libraryPath, keyword.DefaultLibrary(), 0644); err != nil {
			return fmt.Errorf("error writing keyword library: %w", err)
		}
		fmt.Println("Keyword library initialized at:", libraryPath)

		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		fmt.Printf("Set library = %q in %s to use it.\n", libraryPath, path)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(keywordsCmd)
	keywordsCmd.AddCommand(keywordsListCmd)
	keywordsCmd.AddCommand(keywordsShowCmd)
	keywordsCmd.AddCommand(keywordsInitCmd)

	keywordsInitCmd.Flags().Bool("force", false, "overwrite an existing library")
}
