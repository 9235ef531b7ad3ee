package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/manaforge/internal/card"
)

// Deck represents a set of raw cards loaded from a deck file
type Deck struct {
	ID          string
	Name        string
	Version     string
	Author      string
	Description string
	Path        string // the deck file

	// Raw card records, in file order
	Cards []card.Record

	// Raw config data
	config *DeckConfig
}

// deckFiles are tried in order when LoadDeck is given a directory
var deckFiles = []string{"deck.toml", "deck.yaml", "deck.yml"}

// LoadDeck loads a deck from a .toml/.yaml/.yml file, or from a directory
// containing one of deck.toml, deck.yaml or deck.yml
func LoadDeck(deckPath string) (*Deck, error) {
	path, err := resolvePath(deckPath)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading deck file: %w", err)
	}

	config, err := decode(path, data)
	if err != nil {
		return nil, err
	}

	deck := &Deck{
		ID:          config.Deck.ID,
		Name:        config.Deck.Name,
		Version:     config.Deck.Version,
		Author:      config.Deck.Author,
		Description: config.Deck.Description,
		Path:        path,
		Cards:       make([]card.Record, 0, len(config.Cards)),
		config:      config,
	}
	if deck.Name == "" {
		deck.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	for _, raw := range config.Cards {
		deck.Cards = append(deck.Cards, card.FromMap(raw))
	}

	return deck, nil
}

// resolvePath finds the deck file for a file or directory path
func resolvePath(deckPath string) (string, error) {
	info, err := os.Stat(deckPath)
	if err != nil {
		return "", fmt.Errorf("deck not found: %w", err)
	}
	if !info.IsDir() {
		return deckPath, nil
	}

	for _, name := range deckFiles {
		candidate := filepath.Join(deckPath, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no deck file (%s) found in %s", strings.Join(deckFiles, ", "), deckPath)
}

func decode(path string, data []byte) (*DeckConfig, error) {
	var config DeckConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("error parsing %s: %w", filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("unsupported deck format %q", ext)
	}
	return &config, nil
}

// KeywordLibrary returns the deck's keyword library path resolved against the
// deck file's directory, or "" when the deck uses the configured library
func (d *Deck) KeywordLibrary() string {
	if d.config == nil || d.config.Deck.Keywords == "" {
		return ""
	}
	lib := d.config.Deck.Keywords
	if filepath.IsAbs(lib) {
		return lib
	}
	return filepath.Join(filepath.Dir(d.Path), lib)
}

// Config returns the decoded deck file, or nil for a deck built in memory
func (d *Deck) Config() *DeckConfig {
	return d.config
}

// GetCard gets a card by name
func (d *Deck) GetCard(name string) (card.Record, error) {
	for _, c := range d.Cards {
		if strings.EqualFold(c.String(card.RawName), name) {
			return c, nil
		}
	}
	return nil, fmt.Errorf("card not found: %s", name)
}

// Deck configuration structures
type DeckConfig struct {
	Deck  DeckSection      `toml:"deck" yaml:"deck"`
	Cards []map[string]any `toml:"card" yaml:"cards"`
}

type DeckSection struct {
	ID          string   `toml:"id" yaml:"id"`
	Name        string   `toml:"name" yaml:"name"`
	Version     string   `toml:"version" yaml:"version"`
	Author      string   `toml:"author" yaml:"author"`
	Description string   `toml:"description" yaml:"description"`
	Keywords    string   `toml:"keywords" yaml:"keywords"`
	Tags        []string `toml:"tags" yaml:"tags"`
}
