package camera

import (
	"math"
	"testing"

	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/world/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func TestRotatePreservesFieldOfView(t *testing.T) {
	angles := []float64{0.001, 0.1, math.Pi / 4, math.Pi / 2, 1, math.Pi, -2.5, 7.3}
	for _, a := range angles {
		c := New(2.5, 2.5)
		dot := c.Dir.Dot(c.Plane)
		cross := c.Dir.Cross(c.Plane)

		c.Rotate(a)
		assert.InDelta(t, dot, c.Dir.Dot(c.Plane), eps, "dot after %v", a)
		assert.InDelta(t, cross, c.Dir.Cross(c.Plane), eps, "cross after %v", a)
		assert.InDelta(t, 1.0, c.Dir.Len(), eps)
		assert.InDelta(t, DefaultFOV, c.Plane.Len(), eps)
	}
}

func TestRotateZeroIsNoop(t *testing.T) {
	c := New(1.5, 1.5)
	before := *c
	c.Rotate(0)
	assert.Equal(t, before, *c)
}

func TestNewFacing(t *testing.T) {
	c := NewFacing(geom.Pt(2, 2), geom.Pt(0, 3), DefaultFOV)
	assert.InDelta(t, 0, c.Dir.X, eps)
	assert.InDelta(t, 1, c.Dir.Y, eps)
	// Plane is the clockwise perpendicular, matching New.
	assert.InDelta(t, DefaultFOV, c.Plane.X, eps)
	assert.InDelta(t, 0, c.Plane.Y, eps)

	fallback := NewFacing(geom.Pt(2, 2), geom.Point{}, DefaultFOV)
	assert.Equal(t, New(2, 2).Dir, fallback.Dir)
}

func TestMoveInOpenSpace(t *testing.T) {
	m := grid.Ring(7, 7, 1)
	c := New(3.5, 3.5)

	c.MoveForward(0.5, m)
	assert.InDelta(t, 4.0, c.Pos.X, eps)
	assert.InDelta(t, 3.5, c.Pos.Y, eps)

	c.MoveRight(0.5, m)
	// Right of +X is -Y.
	assert.InDelta(t, 4.0, c.Pos.X, eps)
	assert.InDelta(t, 3.0, c.Pos.Y, eps)

	c.MoveForward(-1, m)
	assert.InDelta(t, 3.0, c.Pos.X, eps)
}

func TestMoveStopsAtClearance(t *testing.T) {
	m := grid.Ring(5, 5, 1)
	c := New(2.5, 2.5)
	for i := 0; i < 100; i++ {
		c.MoveForward(0.05, m)
	}
	assert.Less(t, c.Pos.X, 4-CollisionBuffer)
	assert.Greater(t, c.Pos.X, 3.5)
	assert.False(t, Collides(m, c.Pos.X, c.Pos.Y))
}

func TestMovesNeverOverlapWalls(t *testing.T) {
	m := grid.MustNew([][]int{
		{1, 1, 1, 1, 1, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 0, 2, 0, 0, 1},
		{1, 0, 0, 0, 2, 1},
		{1, 0, 0, 0, 0, 1},
		{1, 1, 1, 1, 1, 1},
	})
	c := New(1.5, 1.5)
	require.False(t, Collides(m, c.Pos.X, c.Pos.Y))

	for i := 0; i < 2000; i++ {
		c.Rotate(0.037)
		if i%3 == 0 {
			c.MoveRight(0.07, m)
		} else {
			c.MoveForward(0.09, m)
		}
		require.False(t, Collides(m, c.Pos.X, c.Pos.Y), "step %d at %+v", i, c.Pos)
	}
}

func TestSlidesAlongWall(t *testing.T) {
	m := grid.Ring(5, 5, 1)
	c := NewFacing(geom.Pt(3.6, 2.0), geom.Pt(1, 1), DefaultFOV)
	c.MoveForward(0.2, m)
	// X is blocked by the east wall, Y still advances.
	assert.InDelta(t, 3.6, c.Pos.X, eps)
	assert.Greater(t, c.Pos.Y, 2.0)
}

func TestEscapeFromEmbeddedPosition(t *testing.T) {
	m := grid.Ring(5, 5, 1)

	// Inside the clearance band of the west wall.
	c := New(1.1, 2.5)
	require.True(t, Collides(m, c.Pos.X, c.Pos.Y))

	c.MoveForward(0.1, m)
	assert.InDelta(t, 1.2, c.Pos.X, eps, "moving away from the wall is allowed")

	c.MoveForward(-0.2, m)
	assert.InDelta(t, 1.2, c.Pos.X, eps, "moving deeper into the wall is refused")
}

func TestCollidesOutsideMap(t *testing.T) {
	m := grid.Ring(5, 5, 1)
	assert.True(t, Collides(m, -3, 2.5))
	assert.True(t, Collides(m, 2.5, 40))
	assert.True(t, Collides(m, 0.2, 0.2))
	assert.False(t, Collides(m, 2.5, 2.5))
}
