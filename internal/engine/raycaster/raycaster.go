// Package raycaster draws a first-person view of a grid map into an RGBA frame.
//
// A frame is built in two passes. The wall pass casts one ray per screen
// column, draws the textured wall slice and records its depth in the z-buffer.
// The sprite pass then draws enemies and particles as camera-facing billboards,
// farthest first, skipping every column where a wall is nearer.
package raycaster

import (
	"errors"
	"fmt"
	"math"

	"chosenoffset.com/lucid/internal/engine/camera"
	"chosenoffset.com/lucid/internal/render/texture"
	"chosenoffset.com/lucid/internal/world/grid"
)

// ErrFrameSize is returned when the frame buffer is too small for the view.
var ErrFrameSize = errors.New("frame buffer size mismatch")

// Fill colors for the untextured halves of the screen.
var (
	CeilingColor = [4]byte{0x40, 0x40, 0x40, 0xff}
	FloorColor   = [4]byte{0x80, 0x80, 0x80, 0xff}
)

const (
	wallFalloff     = 0.1
	particleFalloff = 0.05
	horizontalShade = 0.7
)

// Raycaster renders a grid map from a camera. It owns the z-buffer and a
// scratch list of billboards; neither is safe for concurrent use.
type Raycaster struct {
	width    int
	height   int
	zbuf     []float64
	grid     *grid.Grid
	textures *texture.Cache
	walls    []texture.ID
	order    []billboard
}

// New creates a raycaster for a width x height view.
func New(width, height int, g *grid.Grid, textures *texture.Cache) *Raycaster {
	return &Raycaster{
		width:    width,
		height:   height,
		zbuf:     make([]float64, width),
		grid:     g,
		textures: textures,
	}
}

// Width returns the view width in pixels.
func (r *Raycaster) Width() int { return r.width }

// Height returns the view height in pixels.
func (r *Raycaster) Height() int { return r.height }

// SetMap replaces the map rendered on the next call.
func (r *Raycaster) SetMap(g *grid.Grid) {
	r.grid = g
}

// SetWallTextures binds wall code N to ids[N-1]. Without a table, code N uses
// texture handle N-1 directly.
func (r *Raycaster) SetWallTextures(ids []texture.ID) {
	r.walls = append([]texture.ID(nil), ids...)
}

// ZBuffer returns the per-column wall distances of the last render.
// The slice is reused by the next call.
func (r *Raycaster) ZBuffer() []float64 {
	return r.zbuf
}

// Render draws the view seen by cam into frame, which must hold
// width*height RGBA pixels. Every pixel is overwritten.
func (r *Raycaster) Render(cam *camera.Camera, sprites []Sprite, frame []byte) error {
	if need := r.width * r.height * 4; len(frame) < need {
		return fmt.Errorf("%w: have %d bytes, need %d", ErrFrameSize, len(frame), need)
	}

	r.clear(frame)
	r.drawWalls(cam, frame)
	r.drawSprites(cam, sprites, frame)
	return nil
}

func (r *Raycaster) clear(frame []byte) {
	half := r.height / 2
	for y := 0; y < r.height; y++ {
		c := CeilingColor
		if y >= half {
			c = FloorColor
		}
		row := frame[y*r.width*4 : (y+1)*r.width*4]
		for i := 0; i < len(row); i += 4 {
			copy(row[i:i+4], c[:])
		}
	}
}

func (r *Raycaster) wallTexture(code int) (*texture.Texture, bool) {
	if code <= 0 {
		return nil, false
	}
	id := texture.ID(code - 1)
	if r.walls != nil {
		if code > len(r.walls) {
			return nil, false
		}
		id = r.walls[code-1]
	}
	return r.texture(id)
}

func (r *Raycaster) texture(id texture.ID) (*texture.Texture, bool) {
	if r.textures == nil {
		return nil, false
	}
	return r.textures.Get(id)
}

func (r *Raycaster) drawWalls(cam *camera.Camera, frame []byte) {
	h := float64(r.height)
	for x := 0; x < r.width; x++ {
		t := 2*float64(x)/float64(r.width) - 1
		ray := cam.Dir.Add(cam.Plane.Scale(t))

		if r.grid == nil {
			r.zbuf[x] = math.Inf(1)
			continue
		}
		hit := Cast(r.grid, cam.Pos, ray)
		r.zbuf[x] = hit.Distance

		tex, ok := r.wallTexture(hit.Code)
		if !ok || math.IsInf(hit.Distance, 0) {
			continue
		}

		lineH := h / hit.Distance
		start := int(math.Max(0, h/2-lineH/2))
		end := int(math.Min(h, h/2+lineH/2))

		texX := clampInt(int(hit.WallX*float64(tex.Width)), 0, tex.Width-1)
		shade := math.Min(1, 1/(1+hit.Distance*wallFalloff))
		if hit.Side == SideHorizontal {
			shade *= horizontalShade
		}

		for y := start; y < end; y++ {
			texY := int((float64(y) - h/2 + lineH/2) * float64(tex.Height) / lineH)
			texY = clampInt(texY, 0, tex.Height-1)
			put(frame, (y*r.width+x)*4, tex.Pixel(texX, texY), shade)
		}
	}
}

// put writes a shaded texel. The texel's alpha is kept as is.
func put(frame []byte, idx int, c uint32, shade float64) {
	red, green, blue, alpha := texture.Unpack(c)
	frame[idx] = uint8(float64(red) * shade)
	frame[idx+1] = uint8(float64(green) * shade)
	frame[idx+2] = uint8(float64(blue) * shade)
	frame[idx+3] = alpha
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
