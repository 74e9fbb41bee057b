package types

import "sync"

// Metadata holds the name lists used to populate selection controls.
type Metadata struct {
	Characters []string
	Factions   []string
}

// MetadataCache is written once at startup and read for the rest of the
// process. Later writes are ignored.
type MetadataCache struct {
	mu     sync.RWMutex
	data   Metadata
	loaded bool
}

// NewMetadataCache returns an empty cache.
func NewMetadataCache() *MetadataCache {
	return &MetadataCache{}
}

// Store records the metadata if nothing has been stored yet. It reports
// whether this call performed the write.
func (c *MetadataCache) Store(m Metadata) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return false
	}
	c.data = Metadata{
		Characters: append([]string(nil), m.Characters...),
		Factions:   append([]string(nil), m.Factions...),
	}
	c.loaded = true
	return true
}

// Get returns a copy of the cached metadata and whether it has been loaded.
func (c *MetadataCache) Get() (Metadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Metadata{
		Characters: append([]string(nil), c.data.Characters...),
		Factions:   append([]string(nil), c.data.Factions...),
	}, c.loaded
}

// Loaded reports whether metadata has been stored.
func (c *MetadataCache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}
