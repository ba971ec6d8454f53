package lab

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/vi-beaker/effect"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownSubstance   = errors.New("unknown substance")
	ErrDuplicateSubstance = errors.New("duplicate substance id")
	ErrEmptyReaction      = errors.New("reaction has no ingredients")
)

// Substance is one catalog entry that can be put on the bench
type Substance struct {
	ID      string         `yaml:"id"`
	Name    string         `yaml:"name"`
	Formula string         `yaml:"formula"`
	Effects effect.Partial `yaml:"effects"`
}

// Source returns the bench contribution for this substance
func (s Substance) Source() effect.Source {
	return effect.Source{ID: s.ID, Partial: s.Effects}
}

// Reaction is a known outcome for a set of ingredients
type Reaction struct {
	Name        string         `yaml:"name"`
	Ingredients []string       `yaml:"ingredients"`
	Description string         `yaml:"description"`
	Effects     effect.Partial `yaml:"effects"`
}

// Outcome resolves the reaction's effects into a full override, absent channels idle
func (r Reaction) Outcome() effect.Descriptor {
	return effect.Compose([]effect.Source{{ID: r.Name, Partial: r.Effects}}, nil)
}

// Catalog is the registry of substances and reactions available to a session
type Catalog struct {
	Substances []Substance `yaml:"substances"`
	Reactions  []Reaction  `yaml:"reactions"`

	byID  map[string]int
	byKey map[string]int
}

// DefaultCatalog parses the built-in catalog
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a catalog file, or the built-in one when path is empty
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates YAML catalog data
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	c.byID = make(map[string]int, len(c.Substances))
	for i, s := range c.Substances {
		if s.ID == "" {
			return nil, fmt.Errorf("substance %d: %w: empty id", i, ErrUnknownSubstance)
		}
		if _, dup := c.byID[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSubstance, s.ID)
		}
		c.byID[s.ID] = i
	}

	c.byKey = make(map[string]int, len(c.Reactions))
	for i, r := range c.Reactions {
		if len(r.Ingredients) == 0 {
			return nil, fmt.Errorf("reaction %q: %w", r.Name, ErrEmptyReaction)
		}
		for _, id := range r.Ingredients {
			if _, ok := c.byID[id]; !ok {
				return nil, fmt.Errorf("reaction %q: %w: %q", r.Name, ErrUnknownSubstance, id)
			}
		}
		c.byKey[reactionKey(r.Ingredients)] = i
	}

	return &c, nil
}

// Len returns the number of substances
func (c *Catalog) Len() int {
	return len(c.Substances)
}

// Lookup finds a substance by id
func (c *Catalog) Lookup(id string) (Substance, error) {
	i, ok := c.byID[id]
	if !ok {
		return Substance{}, fmt.Errorf("%w: %q", ErrUnknownSubstance, id)
	}
	return c.Substances[i], nil
}

// Reaction finds the reaction for a bench; order and repeats of ids do not matter
func (c *Catalog) Reaction(ids []string) (Reaction, bool) {
	i, ok := c.byKey[reactionKey(ids)]
	if !ok {
		return Reaction{}, false
	}
	return c.Reactions[i], true
}

// reactionKey is the sorted set of ingredient ids
func reactionKey(ids []string) string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for id := range set {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return strings.Join(keys, "+")
}
