package cmd

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/config"
	"github.com/arcanaland/manaforge/internal/logging"
)

var (
	verbosity  int
	configPath string

	// cfg is loaded before any subcommand runs
	cfg *config.Config
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "manaforge",
	Short: "Render card markup into HTML",
	Long: `Manaforge renders the card text markup of a trading card game into styled HTML.
It decodes mana costs into gradient badges, expands keyword macros from a keyword
library, and converts ability brackets, lists and line breaks into HTML fragments.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.SetupLogger(verbosity)

		path := configPath
		if path == "" {
			path = config.DefaultPath()
			// Create default config if it doesn't exist
			if _, err := os.Stat(path); os.IsNotExist(err) {
				if _, err := config.WriteDefault(path); err != nil {
					log.Warn().Err(err).Str("path", path).Msg("Could not create default config")
				}
			}
		}

		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}
		log.Debug().Str("config", path).Msg("Configuration loaded")
		return nil
	},
}

func init() {
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/manaforge/config.toml)")

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
