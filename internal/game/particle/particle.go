// Package particle simulates projectiles: straight-line movers with a damage
// payload that vanish on their first wall contact or when their lifetime runs out.
package particle

import (
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/render/texture"
	"chosenoffset.com/lucid/internal/world/grid"
)

// DefaultLifetime is how long a projectile flies before expiring, in seconds.
const DefaultLifetime = 2.0

// lifetimeEpsilon absorbs the rounding left after summing non-binary tick
// lengths such as 1/60.
const lifetimeEpsilon = 1e-9

// Particle is a single projectile.
type Particle struct {
	Pos       geom.Point
	Vel       geom.Point
	Lifetime  float64
	Damage    int
	FromEnemy bool
	Texture   texture.ID
}

// New creates a particle with the default lifetime.
func New(pos, vel geom.Point, damage int, fromEnemy bool, tex texture.ID) Particle {
	return Particle{
		Pos:       pos,
		Vel:       vel,
		Lifetime:  DefaultLifetime,
		Damage:    damage,
		FromEnemy: fromEnemy,
		Texture:   tex,
	}
}

// Alive reports whether the particle still has lifetime left.
func (p *Particle) Alive() bool {
	return p.Lifetime > lifetimeEpsilon
}

// System owns every live particle.
type System struct {
	particles []Particle
}

// NewSystem creates an empty particle system.
func NewSystem() *System {
	return &System{}
}

// Add spawns a particle.
func (s *System) Add(p Particle) {
	s.particles = append(s.particles, p)
}

// Update moves every particle by dt and drops those that expired or ended
// inside a solid cell. It returns how many were dropped.
func (s *System) Update(dt float64, m *grid.Grid) int {
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Lifetime -= dt
		if m.SolidAt(p.Pos) || !p.Alive() {
			continue
		}
		kept = append(kept, p)
	}
	dropped := len(s.particles) - len(kept)
	clear(s.particles[len(kept):])
	s.particles = kept
	return dropped
}

// Particles returns the live particles in spawn order. The slice is only
// valid until the next call that changes the system.
func (s *System) Particles() []Particle {
	return s.particles
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// RemoveIf drops every particle for which fn returns true, keeping order.
func (s *System) RemoveIf(fn func(*Particle) bool) int {
	kept := s.particles[:0]
	for i := range s.particles {
		if fn(&s.particles[i]) {
			continue
		}
		kept = append(kept, s.particles[i])
	}
	removed := len(s.particles) - len(kept)
	clear(s.particles[len(kept):])
	s.particles = kept
	return removed
}

// Clear drops every particle.
func (s *System) Clear() {
	s.particles = s.particles[:0]
}
