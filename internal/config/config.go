package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	koanftoml "github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arcanaland/manaforge/internal/keyword"
	"github.com/arcanaland/manaforge/internal/mana"
	"github.com/arcanaland/manaforge/internal/markup"
	"github.com/arcanaland/manaforge/internal/pipeline"
)

// EnvPrefix marks environment overrides, e.g. MANAFORGE_RENDER_BLEED=3
const EnvPrefix = "MANAFORGE_"

// Config represents the application configuration
type Config struct {
	Library string            `koanf:"library" toml:"library,omitempty"` // keyword library file, built-in when empty
	Decks   string            `koanf:"decks" toml:"decks"`               // directory searched by DeckPath
	Workers int               `koanf:"workers" toml:"workers"`           // batch fan-out, 0 for GOMAXPROCS
	Render  RenderConfig      `koanf:"render" toml:"render"`
	Palette map[string]string `koanf:"palette" toml:"palette,omitempty"` // color name -> hex override
}

// RenderConfig holds markup and gradient settings
type RenderConfig struct {
	Bleed     float64 `koanf:"bleed" toml:"bleed"`
	Delimiter string  `koanf:"delimiter" toml:"delimiter"` // keyword arguments
	Separator string  `koanf:"separator" toml:"separator"` // bullet list items
}

// DefaultPath returns the path to the config file
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "manaforge", "config.toml")
}

// DefaultDeckLibrary returns the directory searched for decks by name
func DefaultDeckLibrary() string {
	return filepath.Join(xdg.DataHome, "manaforge", "decks")
}

// Default returns the built-in configuration
func Default() *Config {
	grammar := markup.DefaultGrammar()
	return &Config{
		Decks: DefaultDeckLibrary(),
		Render: RenderConfig{
			Bleed:     mana.DefaultBleed,
			Delimiter: grammar.ArgDelimiter,
			Separator: grammar.ItemDelimiter,
		},
	}
}

func defaults() map[string]any {
	d := Default()
	return map[string]any{
		"library":          d.Library,
		"decks":            d.Decks,
		"workers":          d.Workers,
		"render.bleed":     d.Render.Bleed,
		"render.delimiter": d.Render.Delimiter,
		"render.separator": d.Render.Separator,
	}
}

// Load layers the built-in defaults, the config file at path (DefaultPath
// when empty; skipped if it does not exist) and MANAFORGE_* environment
// variables
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), koanftoml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return &cfg, nil
}

// WriteDefault creates a config file holding the built-in defaults
func WriteDefault(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	config := Default()
	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return nil, fmt.Errorf("error encoding config: %w", err)
	}

	return config, nil
}

// Catalog loads the configured keyword library
func (c *Config) Catalog() (*keyword.Catalog, error) {
	if c.Library == "" {
		return keyword.Default(), nil
	}
	return keyword.Load(c.Library)
}

// Painter builds a painter from the palette overrides and bleed
func (c *Config) Painter() (*mana.Painter, error) {
	palette, err := mana.NewPalette(c.Palette)
	if err != nil {
		return nil, err
	}
	return mana.NewPainter(palette, c.Render.Bleed)
}

// Grammar returns the markup grammar with the configured delimiters
func (c *Config) Grammar() (markup.Grammar, error) {
	g := markup.DefaultGrammar()
	if c.Render.Delimiter == "" || c.Render.Separator == "" {
		return g, fmt.Errorf("render.delimiter and render.separator must not be empty")
	}
	g.ArgDelimiter = c.Render.Delimiter
	g.ItemDelimiter = c.Render.Separator
	return g, nil
}

// Pipeline builds a pipeline from the configuration. A non-empty library
// overrides the configured keyword library.
func (c *Config) Pipeline(library string) (*pipeline.Pipeline, error) {
	var catalog *keyword.Catalog
	var err error
	if library != "" {
		catalog, err = keyword.Load(library)
	} else {
		catalog, err = c.Catalog()
	}
	if err != nil {
		return nil, fmt.Errorf("error loading keyword library: %w", err)
	}

	painter, err := c.Painter()
	if err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}

	grammar, err := c.Grammar()
	if err != nil {
		return nil, err
	}

	return pipeline.New(pipeline.Options{
		Catalog: catalog,
		Painter: painter,
		Grammar: &grammar,
		Workers: c.Workers,
	}), nil
}

// DeckPath returns the path to a deck, either in the deck library or a
// relative path
func (c *Config) DeckPath(deckName string) (string, error) {
	// First, try to find the deck in the deck library
	if c.Decks != "" {
		deckPath := filepath.Join(c.Decks, deckName)
		if _, err := os.Stat(deckPath); err == nil {
			return deckPath, nil
		}
	}

	// If not found in the library, treat as a relative path
	if _, err := os.Stat(deckName); err == nil {
		return deckName, nil
	}

	return "", fmt.Errorf("deck not found: %s", deckName)
}
