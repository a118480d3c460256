package texture

import (
	"image"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LoadOrFallback loads <dir>/<name>.png and registers it under name. When the
// file is missing or unreadable the error is logged and fallback is registered
// instead. A nil fallback leaves the name unbound and returns None.
func (c *Cache) LoadOrFallback(name, dir string, fallback image.Image, log zerolog.Logger) ID {
	path := filepath.Join(dir, filepath.FromSlash(name)+".png")
	id, err := c.Load(name, path)
	if err == nil {
		log.Debug().Str("texture", name).Str("path", path).Msg("Loaded texture")
		return id
	}

	if fallback == nil {
		log.Warn().Err(err).Str("texture", name).Msg("Texture unavailable, draws using it will be skipped")
		return None
	}

	log.Warn().Err(err).Str("texture", name).Msg("Using placeholder texture")
	id, err = c.AddImage(name, fallback)
	if err != nil {
		log.Warn().Err(err).Str("texture", name).Msg("Placeholder rejected")
		return None
	}
	return id
}
