package state

import "sort"

// Cache holds the latest known entity state for one subscription session,
// keyed by entity ID.
//
// Cache is not safe for concurrent use. The subscription contract is a
// single logical consumer per session: the owning session applies each
// inbound frame before emitting the corresponding notification, so a
// caller that reads the cache after a notification always sees that
// notification's contribution applied.
type Cache struct {
	entities map[string]Entity
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entities: make(map[string]Entity)}
}

// Apply stores the entity, fully replacing any previous copy with the
// same ID. Snapshot and update frames are applied identically; a
// duplicate snapshot replaces like any other frame.
func (c *Cache) Apply(e Entity) {
	c.entities[e.ID] = e
}

// Get returns the latest known copy of the entity.
func (c *Cache) Get(id string) (Entity, bool) {
	e, ok := c.entities[id]
	return e, ok
}

// Len returns the number of cached entities.
func (c *Cache) Len() int {
	return len(c.entities)
}

// Entities returns the cached entities sorted by ID.
func (c *Cache) Entities() []Entity {
	out := make([]Entity, 0, len(c.entities))
	for _, e := range c.entities {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear discards all cached entities. Called when the owning session ends.
func (c *Cache) Clear() {
	c.entities = make(map[string]Entity)
}
