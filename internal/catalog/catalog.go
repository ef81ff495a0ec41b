package catalog

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
)

// Category groups selectable indicators.
type Category string

const (
	Commodities Category = "commodities"
	Stocks      Category = "stocks"
	Exchange    Category = "exchange"
)

// Categories lists every category in display order.
var Categories = []Category{Commodities, Stocks, Exchange}

// Title is the heading shown for a category.
func (c Category) Title() string {
	switch c {
	case Commodities:
		return "Commodities"
	case Stocks:
		return "Stocks & Indices"
	case Exchange:
		return "FX & Rates"
	default:
		return string(c)
	}
}

// Entry maps a display identifier to its market symbol. Aliases are
// alternative identifiers Lookup also accepts; they are never listed.
type Entry struct {
	Name    string   `toml:"name" json:"name"`
	Symbol  string   `toml:"symbol" json:"symbol"`
	Aliases []string `toml:"aliases" json:"aliases,omitempty"`
}

// Catalog is the fixed list of selectable indicators per category. It is
// built once and never mutated afterwards.
type Catalog struct {
	entries map[Category][]Entry
	byName  map[Category]map[string]Entry
	byAlias map[Category]map[string]Entry
}

// Listing is the indicator listing handed to clients.
type Listing struct {
	Commodities []string `json:"commodities"`
	Stocks      []string `json:"stocks"`
	Exchange    []string `json:"exchange"`
}

var ErrEmptyCatalog = errors.New("catalog has no entries")

// New builds a catalog. Entries with a blank name or symbol are dropped and
// later duplicates of a name within a category are ignored. An alias that
// collides with a name or an earlier alias is dropped.
func New(entries map[Category][]Entry) *Catalog {
	c := &Catalog{
		entries: make(map[Category][]Entry, len(Categories)),
		byName:  make(map[Category]map[string]Entry, len(Categories)),
		byAlias: make(map[Category]map[string]Entry, len(Categories)),
	}
	for _, cat := range Categories {
		seen := make(map[string]Entry)
		var list []Entry
		for _, e := range entries[cat] {
			e.Name = strings.TrimSpace(e.Name)
			e.Symbol = strings.TrimSpace(e.Symbol)
			if e.Name == "" || e.Symbol == "" {
				continue
			}
			if _, dup := seen[e.Name]; dup {
				continue
			}
			seen[e.Name] = e
			list = append(list, e)
		}
		aliases := make(map[string]Entry)
		for _, e := range list {
			for _, a := range e.Aliases {
				a = strings.TrimSpace(a)
				if _, taken := seen[a]; taken || a == "" {
					continue
				}
				if _, taken := aliases[a]; taken {
					continue
				}
				aliases[a] = e
			}
		}
		c.entries[cat] = list
		c.byName[cat] = seen
		c.byAlias[cat] = aliases
	}
	return c
}

// Empty returns a catalog with no entries, used when loading fails.
func Empty() *Catalog { return New(nil) }

// Names returns the ordered identifiers of a category.
func (c *Catalog) Names(cat Category) []string {
	if c == nil {
		return nil
	}
	list := c.entries[cat]
	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.Name
	}
	return out
}

func (c *Catalog) Entries(cat Category) []Entry {
	if c == nil {
		return nil
	}
	return append([]Entry(nil), c.entries[cat]...)
}

// Lookup resolves a display identifier, or one of its aliases, to its
// entry.
func (c *Catalog) Lookup(cat Category, name string) (Entry, bool) {
	if c == nil {
		return Entry{}, false
	}
	if e, ok := c.byName[cat][name]; ok {
		return e, true
	}
	e, ok := c.byAlias[cat][name]
	return e, ok
}

// Len counts entries across all categories.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}

func (c *Catalog) Listing() Listing {
	return Listing{
		Commodities: c.Names(Commodities),
		Stocks:      c.Names(Stocks),
		Exchange:    c.Names(Exchange),
	}
}

// Suggest returns the identifier in cat closest to name by edit distance,
// ignoring case. Nothing is suggested when the best candidate needs more
// edits than half the query length.
func (c *Catalog) Suggest(cat Category, name string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(name))
	if c == nil || q == "" {
		return "", false
	}
	best, bestDist := "", -1
	for _, e := range c.entries[cat] {
		d := levenshtein.ComputeDistance(q, strings.ToLower(e.Name))
		if bestDist < 0 || d < bestDist {
			best, bestDist = e.Name, d
		}
	}
	if bestDist < 0 || bestDist > max(1, len([]rune(q))/2) {
		return "", false
	}
	return best, true
}

type fileFormat struct {
	Commodities []Entry `toml:"commodities"`
	Stocks      []Entry `toml:"stocks"`
	Exchange    []Entry `toml:"exchange"`
}

// LoadFile reads a TOML catalog:
//
//	[[stocks]]
//	name = "Apple"
//	symbol = "AAPL"
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML catalog bytes.
func Parse(data []byte) (*Catalog, error) {
	var f fileFormat
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	c := New(map[Category][]Entry{
		Commodities: f.Commodities,
		Stocks:      f.Stocks,
		Exchange:    f.Exchange,
	})
	if c.Len() == 0 {
		return nil, ErrEmptyCatalog
	}
	return c, nil
}

// Load returns the catalog at path, or the built-in defaults when path is
// empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default(), nil
	}
	return LoadFile(path)
}
