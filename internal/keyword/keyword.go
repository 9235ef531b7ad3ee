package keyword

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"sort"

	"github.com/BurntSushi/toml"
)

//go:embed defaults.toml
var defaultLibrary []byte

// NamePattern is the character class of keyword names, shared with the
// markup grammar's k.name(...) calls
const NamePattern = `[A-Za-z0-9_-]+`

var namePattern = regexp.MustCompile(`^` + NamePattern + `$`)

// ValidName reports whether name can be called from markup
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Definition describes a keyword macro
type Definition struct {
	Name     string `toml:"name" yaml:"name"`
	Display  string `toml:"display" yaml:"display"`   // always shown
	Reminder string `toml:"reminder" yaml:"reminder"` // shown for kr. calls
}

// Catalog is an immutable name -> definition mapping. It is safe for
// concurrent reads.
type Catalog struct {
	defs  map[string]Definition
	names []string
}

// Library is the on-disk layout of a keyword library file
type Library struct {
	Keywords []Definition `toml:"keyword"`
}

// NewCatalog builds a catalog. Names must be unique and match NamePattern.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("keyword #%d has no name", i+1)
		}
		if !ValidName(d.Name) {
			return nil, fmt.Errorf("keyword %q: names may only contain letters, digits, '_' and '-'", d.Name)
		}
		if _, dup := c.defs[d.Name]; dup {
			return nil, fmt.Errorf("keyword %q defined more than once", d.Name)
		}
		c.defs[d.Name] = d
		c.names = append(c.names, d.Name)
	}
	sort.Strings(c.names)
	return c, nil
}

// Parse decodes a TOML keyword library
func Parse(data []byte) (*Catalog, error) {
	var lib Library
	if _, err := toml.Decode(string(data), &lib); err != nil {
		return nil, fmt.Errorf("error parsing keyword library: %v", err)
	}
	return NewCatalog(lib.Keywords)
}

// Load reads a keyword library file
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading keyword library: %w", err)
	}
	return Parse(data)
}

// Default returns the built-in keyword library
func Default() *Catalog {
	c, err := Parse(defaultLibrary)
	if err != nil {
		panic(fmt.Sprintf("keyword: built-in library: %v", err))
	}
	return c
}

// DefaultLibrary returns the raw built-in library file
func DefaultLibrary() []byte {
	return append([]byte(nil), defaultLibrary...)
}

// Lookup finds a definition by exact, case-sensitive name
func (c *Catalog) Lookup(name string) (Definition, bool) {
	d, ok := c.defs[name]
	return d, ok
}

// Names returns all keyword names in sorted order
func (c *Catalog) Names() []string {
	return append([]string(nil), c.names...)
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return len(c.defs)
}
