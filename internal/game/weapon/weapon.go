// Package weapon models the player's gun: fire cooldown, muzzle flash and the
// bob applied while walking.
package weapon

import (
	"math"

	"chosenoffset.com/lucid/internal/render/texture"
)

const (
	// Cooldown is the minimum time between shots, in seconds.
	Cooldown = 0.5
	// FlashDuration is how long the firing frame stays up.
	FlashDuration = 0.1
	// ProjectileSpeed is the speed of the player's shots in units per second.
	ProjectileSpeed = 10.0
	// Damage is what a player shot deals on hit.
	Damage = 20

	bobRate      = 5.0
	bobAmplitude = 5.0
)

// Weapon tracks gun timing. It starts ready to fire.
type Weapon struct {
	Idle texture.ID
	Fire texture.ID

	sinceShot float64
	firing    bool
	bobTime   float64
	bob       float64
}

// New creates a weapon with the given idle and firing frames.
func New(idle, fire texture.ID) *Weapon {
	return &Weapon{Idle: idle, Fire: fire, sinceShot: Cooldown}
}

// Update advances timers by dt. moving drives the walk bob.
func (w *Weapon) Update(dt float64, moving bool) {
	w.sinceShot += dt
	if moving {
		w.bobTime += dt * bobRate
		w.bob = math.Abs(math.Sin(w.bobTime) * bobAmplitude)
	} else {
		w.bobTime = 0
		w.bob = 0
	}
	if w.firing && w.sinceShot >= FlashDuration {
		w.firing = false
	}
}

// TryFire fires if the cooldown has elapsed and reports whether it did.
func (w *Weapon) TryFire() bool {
	if w.sinceShot < Cooldown {
		return false
	}
	w.sinceShot = 0
	w.firing = true
	return true
}

// Ready reports whether the next TryFire would succeed.
func (w *Weapon) Ready() bool {
	return w.sinceShot >= Cooldown
}

// Firing reports whether the muzzle flash is showing.
func (w *Weapon) Firing() bool {
	return w.firing
}

// Bob returns the vertical offset in pixels for the weapon overlay.
func (w *Weapon) Bob() float64 {
	return w.bob
}

// Frame returns the texture to draw this tick.
func (w *Weapon) Frame() texture.ID {
	if w.firing {
		return w.Fire
	}
	return w.Idle
}
