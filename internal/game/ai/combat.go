package ai

import "chosenoffset.com/lucid/internal/render/texture"

// Combat is the type-specific part of an enemy. It is implemented only by
// *Melee and *Ranged, and Enemy.Update switches over the two.
type Combat interface {
	damage() int
	attackRange() float64
}

// Melee enemies fight at contact range and have no projectile.
type Melee struct {
	Damage int
	Range  float64
}

func (m *Melee) damage() int          { return m.Damage }
func (m *Melee) attackRange() float64 { return m.Range }

// Ranged enemies fire projectiles on a fixed interval while attacking.
type Ranged struct {
	Damage          int
	Range           float64
	ProjectileSpeed float64
	// Interval is the minimum time between shots, in seconds.
	Interval float64
	// SinceShot accumulates simulated time since the last shot.
	SinceShot   float64
	FireTexture texture.ID
	// Firing is set for FlashDuration after each shot.
	Firing bool
}

// FlashDuration is how long the firing frame is shown after a shot.
const FlashDuration = 0.1

func (r *Ranged) damage() int          { return r.Damage }
func (r *Ranged) attackRange() float64 { return r.Range }

// tick advances the cooldown and clears an expired muzzle flash.
func (r *Ranged) tick(dt float64) {
	r.SinceShot += dt
	if r.Firing && r.SinceShot >= FlashDuration {
		r.Firing = false
	}
}

// ready reports whether the cooldown allows another shot.
func (r *Ranged) ready() bool {
	return r.SinceShot >= r.Interval
}

func (r *Ranged) fired() {
	r.SinceShot = 0
	r.Firing = true
}
