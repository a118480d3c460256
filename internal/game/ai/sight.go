package ai

import (
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/world/grid"
)

// CanSee reports whether the player is within chase range and the straight
// segment to them is clear. The segment is sampled rather than traced, which
// is accurate enough at two samples per unit.
func (e *Enemy) CanSee(player geom.Point, m *grid.Grid) bool {
	to := player.Sub(e.Pos)
	dist := to.Len()
	if dist > e.ChaseRange {
		return false
	}
	if dist < SightRadius {
		return !m.SolidAt(e.Pos)
	}

	dir := to.Scale(1 / dist)
	steps := max(1, int(dist*SightSamplesPerUnit))
	stepLen := dist / float64(steps)
	for i := 0; i <= steps; i++ {
		p := e.Pos.Add(dir.Scale(float64(i) * stepLen))
		if m.SolidAt(p) {
			return false
		}
		if geom.Distance(p, player) < SightRadius {
			return true
		}
	}
	return false
}
