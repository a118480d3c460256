package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeZeroVector(t *testing.T) {
	n, ok := Point{}.Normalize()
	assert.False(t, ok)
	assert.Equal(t, Point{}, n)

	n, ok = Pt(math.Inf(1), 0).Normalize()
	assert.False(t, ok)
	assert.Equal(t, Point{}, n)
}

func TestNormalizeUnitLength(t *testing.T) {
	n, ok := Pt(3, 4).Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.InDelta(t, 1.0, n.Len(), 1e-12)
}

func TestRotateQuarterTurn(t *testing.T) {
	r := Pt(1, 0).Rotate(math.Pi / 2)
	assert.InDelta(t, 0.0, r.X, 1e-12)
	assert.InDelta(t, 1.0, r.Y, 1e-12)
}

func TestPerpIsClockwise(t *testing.T) {
	assert.Equal(t, Pt(0, -1), Pt(1, 0).Perp())
	assert.InDelta(t, 0.0, Pt(0.3, 0.7).Dot(Pt(0.3, 0.7).Perp()), 1e-12)
}

func TestCellFloorsNegatives(t *testing.T) {
	x, y := Pt(-0.5, 2.9).Cell()
	assert.Equal(t, -1, x)
	assert.Equal(t, 2, y)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Pt(1, 1), Pt(4, 5)), 1e-12)
}
