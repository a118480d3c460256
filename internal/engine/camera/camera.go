// Package camera holds the player's viewpoint: a position, a facing direction
// and the view plane that sets the field of view.
package camera

import (
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/world/grid"
)

// CollisionBuffer is the half-width of the box kept clear of walls around the camera.
const CollisionBuffer = 0.3

// DefaultFOV is the view plane length for a roughly 66 degree field of view.
const DefaultFOV = 0.66

// Camera is a viewpoint in map space. Dir and Plane are always rotated together.
type Camera struct {
	Pos   geom.Point
	Dir   geom.Point
	Plane geom.Point
}

// New creates a camera at (x, y) looking along +X.
func New(x, y float64) *Camera {
	return &Camera{
		Pos:   geom.Pt(x, y),
		Dir:   geom.Pt(1, 0),
		Plane: geom.Pt(0, -DefaultFOV),
	}
}

// NewFacing creates a camera at pos looking along dir with the given plane
// length. A zero dir falls back to +X.
func NewFacing(pos, dir geom.Point, fov float64) *Camera {
	unit, ok := dir.Normalize()
	if !ok {
		unit = geom.Pt(1, 0)
	}
	return &Camera{
		Pos:   pos,
		Dir:   unit,
		Plane: unit.Perp().Scale(fov),
	}
}

// Right returns the strafe vector, direction turned a quarter clockwise.
func (c *Camera) Right() geom.Point {
	return c.Dir.Perp()
}

// Rotate turns direction and plane by the same angle.
func (c *Camera) Rotate(angle float64) {
	if angle == 0 {
		return
	}
	c.Dir = c.Dir.Rotate(angle)
	c.Plane = c.Plane.Rotate(angle)
}

// MoveForward moves along the facing direction by amount map units.
// Negative amounts walk backwards.
func (c *Camera) MoveForward(amount float64, m *grid.Grid) {
	c.move(c.Dir.Scale(amount), m)
}

// MoveRight strafes by amount map units. Negative amounts strafe left.
func (c *Camera) MoveRight(amount float64, m *grid.Grid) {
	c.move(c.Right().Scale(amount), m)
}

// move resolves each axis on its own so the camera slides along walls.
// X is settled first and the Y test uses the settled X.
func (c *Camera) move(delta geom.Point, m *grid.Grid) {
	if delta.X == 0 && delta.Y == 0 {
		return
	}
	target := c.Pos.Add(delta)

	var awayX, awayY bool
	if delta.X > 0 {
		awayX = c.Pos.X < target.X && Collides(m, c.Pos.X-CollisionBuffer, c.Pos.Y)
	} else {
		awayX = c.Pos.X > target.X && Collides(m, c.Pos.X+CollisionBuffer, c.Pos.Y)
	}
	if delta.Y > 0 {
		awayY = c.Pos.Y < target.Y && Collides(m, c.Pos.X, c.Pos.Y-CollisionBuffer)
	} else {
		awayY = c.Pos.Y > target.Y && Collides(m, c.Pos.X, c.Pos.Y+CollisionBuffer)
	}

	next := c.Pos
	if awayX || !Collides(m, target.X, c.Pos.Y) {
		next.X = target.X
	}
	if awayY || !Collides(m, next.X, target.Y) {
		next.Y = target.Y
	}
	c.Pos = next
}

// Collides reports whether a clearance box centered on (x, y) touches a solid
// cell or leaves the map. The four corners and the center are sampled.
func Collides(m *grid.Grid, x, y float64) bool {
	w, h := float64(m.Width()), float64(m.Height())
	if x < CollisionBuffer || y < CollisionBuffer || x >= w-CollisionBuffer || y >= h-CollisionBuffer {
		return true
	}

	samples := [...]geom.Point{
		geom.Pt(x-CollisionBuffer, y-CollisionBuffer),
		geom.Pt(x-CollisionBuffer, y+CollisionBuffer),
		geom.Pt(x+CollisionBuffer, y-CollisionBuffer),
		geom.Pt(x+CollisionBuffer, y+CollisionBuffer),
		geom.Pt(x, y),
	}
	for _, p := range samples {
		if m.SolidAt(p) {
			return true
		}
	}
	return false
}
