package particle

import (
	"testing"

	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/world/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLifetimeExpiry(t *testing.T) {
	m := grid.Ring(6, 6, 1)
	s := NewSystem()
	s.Add(New(geom.Pt(2.5, 2.5), geom.Point{}, 5, true, 0))

	// 0.25 is exact in binary so cumulative time hits 2.0 on the eighth tick.
	for i := 1; i < 8; i++ {
		s.Update(0.25, m)
		require.Equal(t, 1, s.Len(), "alive after %v s", float64(i)*0.25)
	}
	dropped := s.Update(0.25, m)
	assert.Equal(t, 1, dropped)
	assert.Equal(t, 0, s.Len())
}

func TestLifetimeExpiryAtFrameRate(t *testing.T) {
	m := grid.Ring(6, 6, 1)
	for _, tps := range []int{60, 30, 144} {
		s := NewSystem()
		s.Add(New(geom.Pt(2.5, 2.5), geom.Point{}, 5, true, 0))
		dt := 1 / float64(tps)
		want := int(DefaultLifetime) * tps

		removedAt := 0
		for tick := 1; tick <= want+5 && removedAt == 0; tick++ {
			if s.Update(dt, m) > 0 {
				removedAt = tick
			}
		}
		assert.Equal(t, want, removedAt, "tps %d", tps)
	}
}

func TestIntegratesVelocity(t *testing.T) {
	m := grid.Ring(8, 8, 1)
	s := NewSystem()
	s.Add(New(geom.Pt(1.5, 1.5), geom.Pt(2, 1), 20, false, 3))

	s.Update(0.5, m)
	require.Equal(t, 1, s.Len())
	p := s.Particles()[0]
	assert.Equal(t, geom.Pt(2.5, 2.0), p.Pos)
	assert.Equal(t, 1.5, p.Lifetime)
	assert.Equal(t, 20, p.Damage)
	assert.False(t, p.FromEnemy)
}

func TestWallContactRemoves(t *testing.T) {
	m := grid.Ring(5, 5, 1)
	s := NewSystem()
	s.Add(New(geom.Pt(3.5, 2.5), geom.Pt(10, 0), 5, true, 0))
	s.Add(New(geom.Pt(2.5, 2.5), geom.Pt(0, 0.5), 5, true, 0))

	s.Update(0.1, m)
	require.Equal(t, 1, s.Len(), "the fast particle entered the east wall")
	assert.InDelta(t, 2.55, s.Particles()[0].Pos.Y, 1e-9)
}

func TestSurvivorsKeepOrder(t *testing.T) {
	m := grid.Ring(10, 3, 1)
	s := NewSystem()
	for i := 0; i < 5; i++ {
		p := New(geom.Pt(1.5+float64(i), 1.5), geom.Point{}, i, false, 0)
		if i%2 == 1 {
			p.Lifetime = 0.05
		}
		s.Add(p)
	}

	s.Update(0.1, m)
	var damages []int
	for _, p := range s.Particles() {
		damages = append(damages, p.Damage)
	}
	assert.Equal(t, []int{0, 2, 4}, damages)
}

func TestRemoveIf(t *testing.T) {
	s := NewSystem()
	s.Add(New(geom.Pt(1, 1), geom.Point{}, 1, true, 0))
	s.Add(New(geom.Pt(2, 2), geom.Point{}, 2, false, 0))
	s.Add(New(geom.Pt(3, 3), geom.Point{}, 3, true, 0))

	removed := s.RemoveIf(func(p *Particle) bool { return p.FromEnemy })
	assert.Equal(t, 2, removed)
	require.Equal(t, 1, s.Len())
	assert.Equal(t, 2, s.Particles()[0].Damage)

	s.Clear()
	assert.Equal(t, 0, s.Len())
}
