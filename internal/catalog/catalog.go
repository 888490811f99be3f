package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/muurk/picker/internal/logging"
	"github.com/muurk/picker/internal/picker"
)

//go:embed default.yaml
var defaultCatalog []byte

// Details is the payload carried by every catalog item.
type Details struct {
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// Entry is one item as it appears in the YAML file.
type Entry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`
}

// Catalog is a parsed item file.
type Catalog struct {
	Source  string  `yaml:"-"`
	Entries []Entry `yaml:"items"`

	// Duplicates lists names that appear more than once, in first-seen order.
	Duplicates []string `yaml:"-"`
}

// Load reads and parses the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	c, err := parse(data, path)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Parse parses catalog YAML from memory.
func Parse(data []byte) (*Catalog, error) {
	return parse(data, "<memory>")
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := parse(defaultCatalog, "<default>")
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

func parse(data []byte, source string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, &ValidationError{Source: source, Index: -1, Message: "malformed YAML", Err: err}
	}
	c.Source = source

	seen := make(map[string]bool, len(c.Entries))
	for i, e := range c.Entries {
		if e.Name == "" {
			return nil, &ValidationError{Source: source, Index: i, Message: "item name is empty"}
		}
		if seen[e.Name] {
			if !slices.Contains(c.Duplicates, e.Name) {
				c.Duplicates = append(c.Duplicates, e.Name)
			}
			continue
		}
		seen[e.Name] = true
	}

	if len(c.Duplicates) > 0 {
		logging.Warn("Catalog contains duplicate names; duplicates share hidden and selected state",
			zap.String("source", source),
			zap.Strings("names", c.Duplicates),
		)
	}
	logging.Debug("Catalog loaded",
		zap.String("source", source),
		zap.Int("items", len(c.Entries)),
	)
	return &c, nil
}

// Items converts the catalog into picker items, keeping file order.
func (c *Catalog) Items() []picker.Item[Details] {
	items := make([]picker.Item[Details], 0, len(c.Entries))
	for _, e := range c.Entries {
		items = append(items, picker.Item[Details]{
			Name: e.Name,
			Payload: Details{
				Description: e.Description,
				Tags:        e.Tags,
			},
		})
	}
	return items
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Entries)
}
