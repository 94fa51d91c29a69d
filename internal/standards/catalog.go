// Package standards holds the curriculum-standards catalog: keyed pools of
// standard entries, keyword-based suggestion, and the selection list that
// feeds the renderers.
package standards

import (
	"planfairy/internal/domain"
)

// Catalog maps "State|Subject|GradeBand" keys to ordered pools of entries.
// An imported catalog replaces the previous one wholesale; there is no merge.
type Catalog struct {
	pools map[string][]domain.StandardEntry
}

// NewCatalog returns an empty catalog (lookups fall back to the seed pools).
func NewCatalog() *Catalog {
	return &Catalog{pools: map[string][]domain.StandardEntry{}}
}

// FromMap builds a catalog around an already-keyed mapping. The map is used
// verbatim, matching the pre-keyed import format.
func FromMap(m map[string][]domain.StandardEntry) *Catalog {
	if m == nil {
		m = map[string][]domain.StandardEntry{}
	}
	return &Catalog{pools: m}
}

// Replace swaps in a new mapping wholesale. Callers must fully parse and
// validate the incoming document before calling so a malformed import never
// mutates the catalog.
func (c *Catalog) Replace(m map[string][]domain.StandardEntry) {
	if m == nil {
		m = map[string][]domain.StandardEntry{}
	}
	c.pools = m
}

// Map exposes the full keyed mapping for export and persistence.
func (c *Catalog) Map() map[string][]domain.StandardEntry {
	return c.pools
}

// Count returns the total number of entries across all keys.
func (c *Catalog) Count() int {
	n := 0
	for _, pool := range c.pools {
		n += len(pool)
	}
	return n
}

// ResolveKey applies subject aliasing before lookup. "Spanish" standards
// live under the World Languages pools.
func ResolveKey(k domain.CatalogKey) domain.CatalogKey {
	if k.Subject == "Spanish" {
		k.Subject = "World Languages"
	}
	return k
}

// Pool returns the candidate entries for a key: the imported pool when one
// exists, else the built-in seed pool, else nil.
func (c *Catalog) Pool(k domain.CatalogKey) []domain.StandardEntry {
	key := ResolveKey(k).String()
	if pool, ok := c.pools[key]; ok && len(pool) > 0 {
		return pool
	}
	if pool, ok := seedPools[key]; ok {
		return pool
	}
	return nil
}
