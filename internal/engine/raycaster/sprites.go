package raycaster

import (
	"cmp"
	"math"
	"slices"

	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/engine/camera"
	"chosenoffset.com/lucid/internal/render/texture"
)

// Kind selects how a billboard is sized and shaded.
type Kind uint8

const (
	// KindEnemy is drawn full height with its texture's aspect ratio.
	KindEnemy Kind = iota
	// KindParticle is a small square with a gentler falloff.
	KindParticle
)

// particleScale is the on-screen size of a particle relative to a wall at the same depth.
const particleScale = 0.1

// maxSpriteScale caps billboard size for sprites right at the camera.
const maxSpriteScale = 64

// Sprite is anything drawn as a camera-facing billboard.
type Sprite struct {
	Pos     geom.Point
	Texture texture.ID
	Kind    Kind
}

type billboard struct {
	Sprite
	distSq float64
}

func (r *Raycaster) drawSprites(cam *camera.Camera, sprites []Sprite, frame []byte) {
	if len(sprites) == 0 {
		return
	}
	det := cam.Plane.X*cam.Dir.Y - cam.Dir.X*cam.Plane.Y
	if det == 0 {
		return
	}
	invDet := 1 / det

	r.order = r.order[:0]
	for _, s := range sprites {
		r.order = append(r.order, billboard{Sprite: s, distSq: s.Pos.Sub(cam.Pos).LenSq()})
	}
	slices.SortStableFunc(r.order, func(a, b billboard) int {
		return cmp.Compare(b.distSq, a.distSq)
	})

	for _, b := range r.order {
		tex, ok := r.texture(b.Texture)
		if !ok {
			continue
		}
		rel := b.Pos.Sub(cam.Pos)
		tx := invDet * (cam.Dir.Y*rel.X - cam.Dir.X*rel.Y)
		ty := invDet * (-cam.Plane.Y*rel.X + cam.Plane.X*rel.Y)
		if ty <= 0 {
			continue
		}
		r.drawBillboard(b.Kind, tex, tx, ty, frame)
	}
}

func (r *Raycaster) drawBillboard(kind Kind, tex *texture.Texture, tx, ty float64, frame []byte) {
	w, h := float64(r.width), float64(r.height)
	screenX := int(w / 2 * (1 + tx/ty))

	var spriteW, spriteH int
	var falloff float64
	switch kind {
	case KindParticle:
		size := int(math.Min(particleScale*h/ty, maxSpriteScale*h))
		spriteW, spriteH = size, size
		falloff = particleFalloff
	default:
		height := math.Min(h/ty, maxSpriteScale*h)
		spriteH = int(height)
		spriteW = int(height * float64(tex.Width) / float64(tex.Height))
		falloff = wallFalloff
	}
	if spriteW <= 0 || spriteH <= 0 {
		return
	}

	startX := screenX - spriteW/2
	startY := r.height/2 - spriteH/2
	shade := math.Min(1, 1/(1+ty*falloff))

	x0, x1 := max(startX, 0), min(startX+spriteW, r.width)
	y0, y1 := max(startY, 0), min(startY+spriteH, r.height)
	for stripe := x0; stripe < x1; stripe++ {
		if ty >= r.zbuf[stripe] {
			continue
		}
		texX := (stripe - startX) * tex.Width / spriteW
		for y := y0; y < y1; y++ {
			texY := (y - startY) * tex.Height / spriteH
			c := tex.Pixel(texX, texY)
			if c&0xff == 0 {
				continue
			}
			put(frame, (y*r.width+stripe)*4, c, shade)
		}
	}
}
