package game

import (
	"github.com/rs/zerolog"

	"chosenoffset.com/lucid/internal/placeholders"
	"chosenoffset.com/lucid/internal/render/texture"
)

// LoadAssets registers every texture a session needs, reading <dir>/<name>.png
// where present and painting placeholders for the rest.
func LoadAssets(cache *texture.Cache, dir string, log zerolog.Logger) Assets {
	fallback := placeholders.Generate()
	load := func(name string) texture.ID {
		return cache.LoadOrFallback(name, dir, fallback[name], log)
	}

	a := Assets{
		WeaponIdle: load(placeholders.WeaponIdle),
		WeaponFire: load(placeholders.WeaponFire),
		GunnerIdle: load(placeholders.GunnerIdle),
		GunnerFire: load(placeholders.GunnerFire),
		BruteIdle:  load(placeholders.BruteIdle),
		Projectile: load(placeholders.ProjectileOrb),
	}
	for _, name := range placeholders.WallNames {
		a.Walls = append(a.Walls, load(name))
	}

	log.Info().Int("textures", cache.Len()).Msg("Assets loaded")
	return a
}
