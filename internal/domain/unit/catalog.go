package unit

import (
	"fmt"
	"sort"
	"strings"
)

// Catalog is an immutable registry of units. It is built once at startup
// and never mutated afterwards, so it needs no locking.
type Catalog struct {
	units   []Unit
	byKey   map[string]int
	resolve map[string]string // lowercased key or label -> key
}

// NewCatalog builds a catalog from unit definitions. Definitions are kept
// in the given order; keys must be unique and non-empty. The free-text
// resolution index is precomputed here so ResolveKey never rescans.
func NewCatalog(units []Unit) (*Catalog, error) {
	c := &Catalog{
		units:   make([]Unit, 0, len(units)),
		byKey:   make(map[string]int, len(units)),
		resolve: make(map[string]string, len(units)*2),
	}
	for _, u := range units {
		if strings.TrimSpace(u.Key) == "" {
			return nil, fmt.Errorf("%w: unit key must not be empty", ErrInvalidUnit)
		}
		if _, dup := c.byKey[u.Key]; dup {
			return nil, fmt.Errorf("%w: duplicate unit key %q", ErrInvalidUnit, u.Key)
		}
		switch u.Kind {
		case KindNumeric, KindInteger, KindDate, KindTime:
		default:
			return nil, fmt.Errorf("%w: unit %q has unknown kind %q", ErrInvalidUnit, u.Key, u.Kind)
		}
		c.byKey[u.Key] = len(c.units)
		c.units = append(c.units, u)
		c.resolve[lower(u.Key)] = u.Key
		if label := lower(strings.TrimSpace(u.Label)); label != "" {
			if _, taken := c.resolve[label]; !taken {
				c.resolve[label] = u.Key
			}
		}
	}
	return c, nil
}

// Lookup returns the unit registered under key.
func (c *Catalog) Lookup(key string) (Unit, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return Unit{}, false
	}
	return c.units[i], true
}

// ResolveKey matches free text against unit keys and display labels,
// case-insensitively, and returns the canonical key.
func (c *Catalog) ResolveKey(text string) (string, bool) {
	key, ok := c.resolve[lower(strings.TrimSpace(text))]
	return key, ok
}

// Options returns the selector entries for every unit, ordered by label
// (case-insensitive), matching the edit form's unit picker.
func (c *Catalog) Options() []Option {
	opts := make([]Option, 0, len(c.units))
	for _, u := range c.units {
		opts = append(opts, u.option())
	}
	sort.SliceStable(opts, func(i, j int) bool {
		return lower(opts[i].Label) < lower(opts[j].Label)
	})
	return opts
}

// Len returns the number of registered units.
func (c *Catalog) Len() int {
	return len(c.units)
}

func lower(s string) string {
	return strings.ToLower(s)
}
