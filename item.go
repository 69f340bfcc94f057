package geflip

import (
	"sort"
	"strings"
)

// Item is a static Grand Exchange catalog entry. Reference data only: it is
// loaded once from the price API's mapping endpoint and never mutated.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Members  bool   `json:"members"`
	BuyLimit int64  `json:"limit"`
	LowAlch  int64  `json:"lowalch,omitempty"`
	HighAlch int64  `json:"highalch,omitempty"`
	Value    int64  `json:"value,omitempty"`
}

// Catalog indexes the immutable item reference data by id and name.
type Catalog struct {
	items  []Item
	byID   map[int]int    // item id -> index in items
	byName map[string]int // lower-cased name -> index in items
}

// NewCatalog builds a catalog from the item mapping. Items are kept in
// name order so Search results are stable.
func NewCatalog(items []Item) *Catalog {
	c := &Catalog{
		items:  make([]Item, len(items)),
		byID:   make(map[int]int, len(items)),
		byName: make(map[string]int, len(items)),
	}
	copy(c.items, items)
	sort.Slice(c.items, func(i, j int) bool { return c.items[i].Name < c.items[j].Name })
	for i, it := range c.items {
		c.byID[it.ID] = i
		c.byName[strings.ToLower(it.Name)] = i
	}
	return c
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int { return len(c.items) }

// Items returns all items in name order.
func (c *Catalog) Items() []Item { return c.items }

// Get returns the item with the given id, or nil if unknown.
func (c *Catalog) Get(id int) *Item {
	i, ok := c.byID[id]
	if !ok {
		return nil
	}
	return &c.items[i]
}

// ByName returns the item with the given name (case-insensitive), or nil.
func (c *Catalog) ByName(name string) *Item {
	i, ok := c.byName[strings.ToLower(name)]
	if !ok {
		return nil
	}
	return &c.items[i]
}

// Search returns up to limit items whose name contains the query,
// case-insensitive, in name order. A limit of 0 means no limit.
func (c *Catalog) Search(query string, limit int) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Item
	for _, it := range c.items {
		if strings.Contains(strings.ToLower(it.Name), q) {
			out = append(out, it)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
