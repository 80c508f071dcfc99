package presets

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Preset is a named genotype model the engine may fit to a segment.
type Preset struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Major       int    `json:"major"`
	Minor       int    `json:"minor"`
	CopyNumber  int    `json:"copy_number"`
	Clonal      bool   `json:"clonal"`
	// Source names the catalog the definition came from.
	Source string `json:"source"`
}

// Catalog is an insertion-ordered set of presets keyed by name.
type Catalog struct {
	order   []string
	presets map[string]Preset
}

// NewCatalog returns a catalog holding presets in the given order.
func NewCatalog(presets ...Preset) *Catalog {
	c := &Catalog{presets: make(map[string]Preset, len(presets))}
	for _, p := range presets {
		c.Set(p)
	}
	return c
}

// Set adds or replaces a preset. A replaced preset keeps its position.
func (c *Catalog) Set(p Preset) {
	if c.presets == nil {
		c.presets = make(map[string]Preset)
	}
	if _, exists := c.presets[p.Name]; !exists {
		c.order = append(c.order, p.Name)
	}
	c.presets[p.Name] = p
}

// Get looks up a preset by name.
func (c *Catalog) Get(name string) (Preset, bool) {
	if c == nil {
		return Preset{}, false
	}
	p, ok := c.presets[name]
	return p, ok
}

// Names returns preset names in insertion order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Presets returns the presets in insertion order.
func (c *Catalog) Presets() []Preset {
	if c == nil {
		return nil
	}
	out := make([]Preset, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.presets[name])
	}
	return out
}

// Len is the number of presets.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// UnknownPresetError is returned when a selected name is not in a catalog.
type UnknownPresetError struct {
	Names     []string
	Available []string
}

func (e *UnknownPresetError) Error() string {
	return fmt.Sprintf("unknown model preset(s) %s (choose from %s)",
		strings.Join(e.Names, ", "), strings.Join(e.Available, ", "))
}

// Select returns a catalog containing only the named presets, in the order
// requested. Duplicate names are collapsed.
func (c *Catalog) Select(names ...string) (*Catalog, error) {
	out := NewCatalog()
	var unknown []string
	for _, name := range names {
		p, ok := c.Get(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		out.Set(p)
	}
	if len(unknown) > 0 {
		available := c.Names()
		sort.Strings(available)
		return nil, &UnknownPresetError{Names: unknown, Available: available}
	}
	return out, nil
}

// Merge folds catalogs left to right. On a name collision the later
// catalog's definition wins.
func Merge(catalogs ...*Catalog) *Catalog {
	out := NewCatalog()
	for _, c := range catalogs {
		for _, p := range c.Presets() {
			out.Set(p)
		}
	}
	return out
}

// MarshalJSON encodes the catalog as an ordered array of presets.
func (c *Catalog) MarshalJSON() ([]byte, error) {
	presets := c.Presets()
	if presets == nil {
		presets = []Preset{}
	}
	return json.Marshal(presets)
}
