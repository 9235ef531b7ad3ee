package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arcanaland/manaforge/internal/card"
	"github.com/arcanaland/manaforge/internal/config"
	"github.com/arcanaland/manaforge/internal/deck"
	"github.com/arcanaland/manaforge/internal/fragment"
	"github.com/arcanaland/manaforge/internal/watch"
)

type renderOptions struct {
	deckPath string
	library  string
	format   string
	out      string
}

// renderedDeck is the JSON document handed to the page layer
type renderedDeck struct {
	Name  string           `json:"name"`
	Cards []map[string]any `json:"cards"`
}

var renderCmd = &cobra.Command{
	Use:   "render [deck]",
	Short: "Render every card of a deck",
	Long: `Render runs every card of a deck through the enrichment pipeline and prints the
enriched records. Cards that fail carry card__error and card__error_code fields
and an error-marked text; the other cards are unaffected.

The deck is looked up in your deck library ($XDG_DATA_HOME/manaforge/decks) or
used as a path.

Examples:
  manaforge render starter
  manaforge render --format text ./decks/starter.toml
  manaforge render --watch --out cards.json ./decks/starter.toml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := renderOptions{}
		opts.format, _ = cmd.Flags().GetString("format")
		opts.out, _ = cmd.Flags().GetString("out")
		opts.library, _ = cmd.Flags().GetString("keywords")
		watchFlag, _ := cmd.Flags().GetBool("watch")

		if opts.format != "json" && opts.format != "text" {
			return fmt.Errorf("unknown format %q (expected json or text)", opts.format)
		}

		var err error
		opts.deckPath, err = cfg.DeckPath(args[0])
		if err != nil {
			return err
		}

		if !watchFlag {
			_, err := renderDeck(opts)
			return err
		}
		return watchDeck(cmd.Context(), opts)
	},
}

func init() {
	RootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("format", "f", "json", "output format: json or text")
	renderCmd.Flags().StringP("out", "o", "", "write output to a file instead of stdout")
	renderCmd.Flags().StringP("keywords", "k", "", "keyword library (overrides the deck and config)")
	renderCmd.Flags().BoolP("watch", "w", false, "re-render when the deck, keyword library or config changes")
}

// renderDeck renders a deck once and returns the files it was built from
func renderDeck(opts renderOptions) ([]string, error) {
	d, err := deck.LoadDeck(opts.deckPath)
	if err != nil {
		return nil, fmt.Errorf("error loading deck: %w", err)
	}
	sources := []string{d.Path}

	library := opts.library
	if library == "" {
		library = d.KeywordLibrary()
	}
	if library == "" {
		library = cfg.Library
	}
	if library != "" {
		sources = append(sources, library)
	}

	p, err := cfg.Pipeline(library)
	if err != nil {
		return sources, err
	}

	records := p.RunMultiple(d.Cards)

	var w io.Writer = os.Stdout
	if opts.out != "" {
		file, err := os.Create(opts.out)
		if err != nil {
			return sources, fmt.Errorf("error creating output file: %w", err)
		}
		defer file.Close()
		w = file
		colorize.NoColor = true
	}

	switch opts.format {
	case "json":
		err = writeJSON(w, d.Name, records)
	default:
		err = writeText(w, d.Name, records)
	}
	if err != nil {
		return sources, err
	}

	failed := 0
	for _, r := range records {
		if r.Has(card.Error) {
			failed++
		}
	}
	log.Info().Str("deck", d.Name).Int("cards", len(records)).Int("failed", failed).Msg("Deck rendered")
	if failed > 0 {
		return sources, fmt.Errorf("%d of %d cards failed to render", failed, len(records))
	}
	return sources, nil
}

func writeJSON(w io.Writer, name string, records []card.Record) error {
	doc := renderedDeck{Name: name, Cards: make([]map[string]any, len(records))}
	for i, r := range records {
		doc.Cards[i] = r.Export()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

func writeText(w io.Writer, name string, records []card.Record) error {
	width := terminalWidth() - 4

	fmt.Fprintln(w, colorize.HiWhiteString("Deck: %s", name))
	for _, r := range records {
		fmt.Fprintln(w)
		fmt.Fprintln(w, colorize.CyanString("Card: ")+colorize.HiWhiteString(r.String(card.Name)))

		if r.Has(card.Error) {
			fmt.Fprintln(w, colorize.RedString("Error: [%s] %s", r.String(card.ErrorCode), r.String(card.Error)))
			continue
		}

		fmt.Fprintln(w, colorize.CyanString("Type: ")+r.String(card.Typeline))
		fmt.Fprintln(w, colorize.CyanString("Cost: ")+
			fmt.Sprintf("%s (%s)", r.String(card.CostValue), strings.Join(r.Strings(card.CostColors), ", ")))

		text, err := fragment.PlainText(r.String(card.Text))
		if err != nil {
			return fmt.Errorf("error reading rendered text of %s: %w", r.String(card.Name), err)
		}
		for _, line := range wrapText(text, width) {
			fmt.Fprintln(w, "  "+line)
		}
	}
	return nil
}

// watchDeck renders, then renders again whenever one of its source files
// changes, until interrupted
func watchDeck(ctx context.Context, opts renderOptions) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	sources, err := renderDeck(opts)
	if err != nil {
		log.Error().Err(err).Msg("Render failed")
	}
	if len(sources) == 0 {
		return err
	}
	settings := configPath
	if settings == "" {
		settings = config.DefaultPath()
	}
	if abs, err := filepath.Abs(settings); err == nil {
		settings = abs
	}
	if _, err := os.Stat(settings); err == nil {
		sources = append(sources, settings)
	}

	w, err := watch.NewWatcher(sources...)
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	if err := w.Start(); err != nil {
		w.Stop()
		return fmt.Errorf("error starting watcher: %w", err)
	}
	defer w.Stop()

	log.Info().Strs("files", w.Files).Msg("Watching for changes")
	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Changes:
			if !ok {
				return nil
			}
			if _, err := reloadConfig(settings, change.File); err != nil {
				log.Error().Err(err).Msg("Keeping previous configuration")
			}
			log.Info().Str("file", change.File).Str("change", change.Kind.String()).Msg("Re-rendering")
			if _, err := renderDeck(opts); err != nil {
				log.Error().Err(err).Msg("Render failed")
			}
		}
	}
}

// reloadConfig replaces cfg when file is the config file at settings. A
// config that fails to load leaves the previous one in place.
func reloadConfig(settings, file string) (bool, error) {
	if file != settings {
		return false, nil
	}
	next, err := config.Load(settings)
	if err != nil {
		return false, err
	}
	cfg = next
	log.Info().Str("config", settings).Msg("Configuration reloaded")
	return true, nil
}
