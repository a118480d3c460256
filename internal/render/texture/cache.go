package texture

import (
	"fmt"
	"image"
)

// ID is an opaque handle into a Cache. The zero value is a valid handle once
// something has been added; None never resolves.
type ID int

// None is a handle that never resolves to a texture.
const None ID = -1

// Cache owns every texture used by a level and hands out handles to them.
type Cache struct {
	textures []*Texture
	byName   map[string]ID
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{byName: make(map[string]ID)}
}

// Add registers a texture and returns its handle.
func (c *Cache) Add(t *Texture) ID {
	c.textures = append(c.textures, t)
	return ID(len(c.textures) - 1)
}

// AddNamed registers a texture under name, replacing any earlier binding.
func (c *Cache) AddNamed(name string, t *Texture) ID {
	id := c.Add(t)
	c.byName[name] = id
	return id
}

// AddImage converts and registers img under name.
func (c *Cache) AddImage(name string, img image.Image) (ID, error) {
	t, err := FromImage(img)
	if err != nil {
		return None, fmt.Errorf("failed to add texture %s: %w", name, err)
	}
	return c.AddNamed(name, t), nil
}

// Load decodes the file at path and registers it under name.
func (c *Cache) Load(name, path string) (ID, error) {
	t, err := Load(path)
	if err != nil {
		return None, err
	}
	return c.AddNamed(name, t), nil
}

// Get returns the texture for id. ok is false for unknown handles.
func (c *Cache) Get(id ID) (*Texture, bool) {
	if id < 0 || int(id) >= len(c.textures) {
		return nil, false
	}
	t := c.textures[id]
	return t, t != nil
}

// Lookup returns the handle registered under name.
func (c *Cache) Lookup(name string) (ID, bool) {
	id, ok := c.byName[name]
	return id, ok
}

// Len returns the number of registered textures.
func (c *Cache) Len() int {
	return len(c.textures)
}

// Clear drops every texture; outstanding handles stop resolving.
func (c *Cache) Clear() {
	c.textures = nil
	c.byName = make(map[string]ID)
}
