// Package placeholders paints stand-in art for walls, enemies, projectiles and
// the player's weapon so the game stays playable when texture files are missing.
package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
)

// TileSize is the edge length of every placeholder texture
const TileSize = 64

// ColorPalette defines the colors used by the placeholder set
var ColorPalette = struct {
	// Walls
	Brick     color.RGBA
	Mortar    color.RGBA
	Greystone color.RGBA
	RedBrick  color.RGBA
	Stone     color.RGBA

	// Actors
	Gunner     color.RGBA
	GunnerTrim color.RGBA
	Muzzle     color.RGBA
	Brute      color.RGBA
	Orb        color.RGBA
	OrbCore    color.RGBA

	// Weapon
	Barrel color.RGBA
	Grip   color.RGBA
}{
	Brick:     color.RGBA{150, 80, 60, 255},
	Mortar:    color.RGBA{90, 85, 80, 255},
	Greystone: color.RGBA{120, 120, 125, 255},
	RedBrick:  color.RGBA{170, 40, 35, 255},
	Stone:     color.RGBA{105, 95, 80, 255},

	Gunner:     color.RGBA{60, 110, 60, 255},
	GunnerTrim: color.RGBA{30, 50, 30, 255},
	Muzzle:     color.RGBA{255, 220, 80, 255},
	Brute:      color.RGBA{140, 40, 40, 255},
	Orb:        color.RGBA{170, 60, 220, 255},
	OrbCore:    color.RGBA{240, 200, 255, 255},

	Barrel: color.RGBA{70, 70, 80, 255},
	Grip:   color.RGBA{90, 60, 40, 255},
}

// Asset names, matching the file names the game looks for on disk.
const (
	WallBrick     = "walls/brick"
	WallGreystone = "walls/greystone"
	WallRedBrick  = "walls/redbrick"
	WallStone     = "walls/stone"
	GunnerIdle    = "enemies/gunner/idle"
	GunnerFire    = "enemies/gunner/fire"
	BruteIdle     = "enemies/brute/idle"
	ProjectileOrb = "particles/purple"
	WeaponIdle    = "weapons/gun1/idle"
	WeaponFire    = "weapons/gun1/fire"
)

// WallNames lists wall assets in map code order: code 1 uses WallNames[0].
var WallNames = []string{WallBrick, WallGreystone, WallRedBrick, WallStone}

// Generate returns the full placeholder set keyed by asset name.
func Generate() map[string]*image.RGBA {
	return map[string]*image.RGBA{
		WallBrick:     CreateBrickTile(ColorPalette.Brick, ColorPalette.Mortar),
		WallGreystone: CreatePatternedTile(ColorPalette.Greystone, Darken(ColorPalette.Greystone, 0.7), "grid"),
		WallRedBrick:  CreateBrickTile(ColorPalette.RedBrick, Lighten(ColorPalette.Mortar, 0.3)),
		WallStone:     CreatePatternedTile(ColorPalette.Stone, Darken(ColorPalette.Stone, 0.6), "diagonal"),
		GunnerIdle:    CreateFigure(ColorPalette.Gunner, ColorPalette.GunnerTrim, false),
		GunnerFire:    CreateFigure(ColorPalette.Gunner, ColorPalette.GunnerTrim, true),
		BruteIdle:     CreateFigure(ColorPalette.Brute, Darken(ColorPalette.Brute, 0.5), false),
		ProjectileOrb: CreateCircle(ColorPalette.Orb, ColorPalette.OrbCore),
		WeaponIdle:    CreateWeapon(false),
		WeaponFire:    CreateWeapon(true),
	}
}

// CreateSolidTile creates a simple solid-colored tile
func CreateSolidTile(col color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{col}, image.Point{}, draw.Src)
	return img
}

// CreateBrickTile lays staggered courses of bricks separated by mortar lines.
func CreateBrickTile(brick, mortar color.RGBA) *image.RGBA {
	img := CreateSolidTile(brick)
	const course = TileSize / 4
	const brickLen = TileSize / 2
	for y := 0; y < TileSize; y++ {
		row := y / course
		offset := 0
		if row%2 == 1 {
			offset = brickLen / 2
		}
		for x := 0; x < TileSize; x++ {
			if y%course == 0 || (x+offset)%brickLen == 0 {
				img.Set(x, y, mortar)
			}
		}
	}
	return img
}

// CreatePatternedTile creates a tile with a simple pattern
func CreatePatternedTile(baseColor, patternColor color.RGBA, pattern string) *image.RGBA {
	img := CreateSolidTile(baseColor)

	switch pattern {
	case "grid":
		for i := 0; i < TileSize; i += 16 {
			for x := 0; x < TileSize; x++ {
				img.Set(x, i, patternColor)
				img.Set(i, x, patternColor)
			}
		}
	case "diagonal":
		for i := 0; i < TileSize; i++ {
			img.Set(i, i, patternColor)
			img.Set(i, TileSize-1-i, patternColor)
		}
	}

	return img
}

// CreateCircle creates a glowing orb on a transparent background (for projectiles)
func CreateCircle(fillColor, coreColor color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))

	center := TileSize / 2
	radius := TileSize/2 - 2
	core := radius / 2

	for y := 0; y < TileSize; y++ {
		for x := 0; x < TileSize; x++ {
			dx := x - center
			dy := y - center
			distSq := dx*dx + dy*dy

			if distSq <= core*core {
				img.Set(x, y, coreColor)
			} else if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			}
		}
	}

	return img
}

// CreateFigure paints a crude humanoid billboard. firing adds a muzzle flash.
func CreateFigure(body, trim color.RGBA, firing bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	u := TileSize / 16

	fill := func(x0, y0, x1, y1 int, c color.RGBA) {
		draw.Draw(img, image.Rect(x0*u, y0*u, x1*u, y1*u), &image.Uniform{c}, image.Point{}, draw.Src)
	}

	fill(6, 1, 10, 5, Lighten(body, 0.3)) // head
	fill(5, 5, 11, 11, body)              // torso
	fill(5, 5, 11, 6, trim)               // collar
	fill(3, 6, 5, 10, body)               // arms
	fill(11, 6, 13, 10, body)
	fill(5, 11, 7, 16, trim) // legs
	fill(9, 11, 11, 16, trim)
	fill(12, 8, 15, 9, ColorPalette.Barrel)
	if firing {
		fill(14, 6, 16, 11, ColorPalette.Muzzle)
	}

	return img
}

// CreateWeapon paints the first-person gun, raised from the bottom edge.
func CreateWeapon(firing bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TileSize, TileSize))
	u := TileSize / 16

	fill := func(x0, y0, x1, y1 int, c color.RGBA) {
		draw.Draw(img, image.Rect(x0*u, y0*u, x1*u, y1*u), &image.Uniform{c}, image.Point{}, draw.Src)
	}

	fill(7, 4, 9, 12, ColorPalette.Barrel)
	fill(6, 10, 10, 16, ColorPalette.Grip)
	fill(7, 4, 9, 5, Lighten(ColorPalette.Barrel, 0.4))
	if firing {
		fill(6, 0, 10, 4, ColorPalette.Muzzle)
	}

	return img
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// GenerateAndSave writes the placeholder set under dir as <name>.png.
func GenerateAndSave(dir string) ([]string, error) {
	var written []string
	for name, img := range Generate() {
		path := filepath.Join(dir, filepath.FromSlash(name)+".png")
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return written, fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := SavePNG(img, path); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
