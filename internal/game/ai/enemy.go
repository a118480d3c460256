// Package ai drives enemies through a five state machine: Idle, Patrol, Chase,
// Attack and Retreat. All timing consumes the dt passed to Update, so behavior
// is deterministic for a given sequence of ticks.
package ai

import (
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/render/texture"
	"chosenoffset.com/lucid/internal/world/grid"
)

// Kind names an enemy archetype as used in level files.
type Kind string

const (
	KindMelee  Kind = "melee"
	KindRanged Kind = "ranged"
)

// Shot is a projectile spawn request emitted by a ranged enemy.
type Shot struct {
	Origin    geom.Point
	Velocity  geom.Point
	Damage    int
	FromEnemy bool
}

// Enemy is a single hostile actor.
type Enemy struct {
	Pos        geom.Point
	Dir        geom.Point
	Health     int
	MaxHealth  int
	State      State
	Speed      float64
	ChaseRange float64
	// Texture is the idle frame; ranged enemies swap to their fire frame while firing.
	Texture texture.ID
	Combat  Combat

	patrol      []geom.Point
	patrolIndex int
}

// NewMelee creates a melee enemy with the standard stats.
func NewMelee(pos geom.Point, tex texture.ID) *Enemy {
	return &Enemy{
		Pos:        pos,
		Dir:        geom.Pt(1, 0),
		Health:     100,
		MaxHealth:  100,
		State:      Idle,
		Speed:      2,
		ChaseRange: 5,
		Texture:    tex,
		Combat:     &Melee{Damage: 10, Range: 1},
	}
}

// NewRanged creates a ranged enemy with the standard stats. The cooldown
// starts empty so the first shot waits a full interval.
func NewRanged(pos geom.Point, idle, fire texture.ID) *Enemy {
	return &Enemy{
		Pos:        pos,
		Dir:        geom.Pt(1, 0),
		Health:     50,
		MaxHealth:  50,
		State:      Idle,
		Speed:      2,
		ChaseRange: 10,
		Texture:    idle,
		Combat: &Ranged{
			Damage:          5,
			Range:           8,
			ProjectileSpeed: 8,
			Interval:        1,
			FireTexture:     fire,
		},
	}
}

// Properties overrides stats loaded from a level file. Zero fields keep the
// archetype's default.
type Properties struct {
	Health      int
	Damage      int
	Speed       float64
	AttackRange float64
	ChaseRange  float64
}

// Apply overrides the enemy's stats with the non-zero fields of p.
func (e *Enemy) Apply(p Properties) {
	if p.Health > 0 {
		e.Health = p.Health
		e.MaxHealth = p.Health
	}
	if p.Speed > 0 {
		e.Speed = p.Speed
	}
	if p.ChaseRange > 0 {
		e.ChaseRange = p.ChaseRange
	}
	switch c := e.Combat.(type) {
	case *Melee:
		if p.Damage > 0 {
			c.Damage = p.Damage
		}
		if p.AttackRange > 0 {
			c.Range = p.AttackRange
		}
	case *Ranged:
		if p.Damage > 0 {
			c.Damage = p.Damage
		}
		if p.AttackRange > 0 {
			c.Range = p.AttackRange
		}
	}
}

// SetPatrol assigns a waypoint loop. A non-empty route puts the enemy on patrol.
func (e *Enemy) SetPatrol(points []geom.Point) {
	e.patrol = append([]geom.Point(nil), points...)
	e.patrolIndex = 0
	if len(e.patrol) > 0 {
		e.State = Patrol
	}
}

// PatrolTarget returns the current waypoint.
func (e *Enemy) PatrolTarget() (geom.Point, bool) {
	if len(e.patrol) == 0 {
		return geom.Point{}, false
	}
	return e.patrol[e.patrolIndex], true
}

// Damage returns the damage this enemy's attacks deal.
func (e *Enemy) Damage() int { return e.Combat.damage() }

// AttackRange returns the distance at which this enemy starts attacking.
func (e *Enemy) AttackRange() float64 { return e.Combat.attackRange() }

// Alive reports whether the enemy still has health.
func (e *Enemy) Alive() bool { return e.Health > 0 }

// Frame returns the texture to draw this tick.
func (e *Enemy) Frame() texture.ID {
	if r, ok := e.Combat.(*Ranged); ok && r.Firing {
		return r.FireTexture
	}
	return e.Texture
}

// Kind reports the archetype implied by the enemy's combat style.
func (e *Enemy) Kind() Kind {
	if _, ok := e.Combat.(*Ranged); ok {
		return KindRanged
	}
	return KindMelee
}

// TakeDamage lowers health, never below zero, and sends a badly hurt enemy
// into Retreat.
func (e *Enemy) TakeDamage(amount int) {
	e.Health -= amount
	if e.Health < 0 {
		e.Health = 0
	}
	if e.Health < RetreatBelow {
		e.retreat()
	}
}

// Update advances the enemy by dt seconds relative to the player. It returns
// a shot when a ranged enemy fires this tick.
func (e *Enemy) Update(player geom.Point, dt float64, m *grid.Grid) (Shot, bool) {
	if r, ok := e.Combat.(*Ranged); ok {
		r.tick(dt)
	}
	if e.State != Retreat && e.Alive() && e.Health < RetreatBelow {
		e.retreat()
	}
	e.face(player)

	switch e.State {
	case Idle:
		if e.CanSee(player, m) {
			e.State = Chase
		}
	case Patrol:
		e.walkPatrol(dt, m)
		if e.CanSee(player, m) {
			e.State = Chase
		}
	case Chase:
		e.chase(player, dt, m)
	case Attack:
		return e.attack(player, dt, m)
	case Retreat:
		if e.Health > RecoverAbove {
			e.State = Chase
			break
		}
		away, ok := e.Pos.Sub(player).Normalize()
		if ok {
			e.moveToward(e.Pos.Add(away.Scale(5)), dt, m)
		}
	}
	return Shot{}, false
}

// face turns toward whatever the current state is interested in.
func (e *Enemy) face(player geom.Point) {
	var target geom.Point
	switch e.State {
	case Chase, Attack:
		target = player
	case Patrol:
		wp, ok := e.PatrolTarget()
		if !ok {
			return
		}
		target = wp
	default:
		return
	}
	if dir, ok := target.Sub(e.Pos).Normalize(); ok {
		e.Dir = dir
	}
}

func (e *Enemy) walkPatrol(dt float64, m *grid.Grid) {
	wp, ok := e.PatrolTarget()
	if !ok {
		return
	}
	if geom.Distance(e.Pos, wp) < ArrivalRadius {
		e.patrolIndex = (e.patrolIndex + 1) % len(e.patrol)
		return
	}
	e.moveToward(wp, dt, m)
}

func (e *Enemy) chase(player geom.Point, dt float64, m *grid.Grid) {
	if !e.CanSee(player, m) {
		e.State = Patrol
		return
	}
	dist := geom.Distance(e.Pos, player)

	switch c := e.Combat.(type) {
	case *Melee:
		if dist < c.Range {
			e.State = Attack
			return
		}
		e.moveToward(player, dt, m)
	case *Ranged:
		if dist < c.Range {
			e.State = Attack
			if dist < c.Range*StandOffFactor {
				e.backAway(player, dt, m)
			}
			return
		}
		e.moveToward(player, dt, m)
	}
}

func (e *Enemy) attack(player geom.Point, dt float64, m *grid.Grid) (Shot, bool) {
	if !e.CanSee(player, m) {
		e.leaveAttack()
		return Shot{}, false
	}
	to := player.Sub(e.Pos)
	dist := to.Len()

	switch c := e.Combat.(type) {
	case *Melee:
		if dist > c.Range*AttackExitFactor {
			e.leaveAttack()
		}
	case *Ranged:
		if dist > c.Range*AttackExitFactor {
			e.leaveAttack()
			return Shot{}, false
		}
		if dist < c.Range*StandOffFactor {
			e.backAway(player, dt, m)
		}
		if !c.ready() {
			return Shot{}, false
		}
		dir, ok := to.Normalize()
		if !ok {
			return Shot{}, false
		}
		c.fired()
		return Shot{
			Origin:    e.Pos,
			Velocity:  dir.Scale(c.ProjectileSpeed),
			Damage:    c.Damage,
			FromEnemy: true,
		}, true
	}
	return Shot{}, false
}

func (e *Enemy) retreat() {
	if e.State == Attack {
		e.leaveAttack()
	}
	e.State = Retreat
}

func (e *Enemy) leaveAttack() {
	e.State = Chase
	if r, ok := e.Combat.(*Ranged); ok {
		r.Firing = false
	}
}

// moveToward steps toward target if the destination cell is open.
func (e *Enemy) moveToward(target geom.Point, dt float64, m *grid.Grid) {
	dir, ok := target.Sub(e.Pos).Normalize()
	if !ok {
		return
	}
	e.Dir = dir
	e.step(dir, dt, m)
}

// backAway steps directly away from the player without turning around.
func (e *Enemy) backAway(player geom.Point, dt float64, m *grid.Grid) {
	dir, ok := e.Pos.Sub(player).Normalize()
	if !ok {
		return
	}
	e.step(dir, dt, m)
}

func (e *Enemy) step(dir geom.Point, dt float64, m *grid.Grid) {
	next := e.Pos.Add(dir.Scale(e.Speed * dt))
	if !m.SolidAt(next) {
		e.Pos = next
	}
}
