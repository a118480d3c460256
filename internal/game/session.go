// Package game runs a play session: it owns the camera, the player's weapon,
// enemies and projectiles, advances them once per tick and resolves hits.
package game

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"chosenoffset.com/lucid/internal/audio"
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/engine/camera"
	"chosenoffset.com/lucid/internal/engine/raycaster"
	"chosenoffset.com/lucid/internal/game/ai"
	"chosenoffset.com/lucid/internal/game/particle"
	"chosenoffset.com/lucid/internal/game/weapon"
	"chosenoffset.com/lucid/internal/render/hud"
	"chosenoffset.com/lucid/internal/storage"
	"chosenoffset.com/lucid/internal/telemetry"
	"chosenoffset.com/lucid/internal/world/grid"
	"chosenoffset.com/lucid/internal/world/level"
)

// Session is one play-through of a level. Tick and the accessors are meant to
// be called from a single goroutine; only the telemetry gauges may be read
// concurrently.
type Session struct {
	Level     *level.Level
	Camera    *camera.Camera
	Player    Player
	Weapon    *weapon.Weapon
	Enemies   []*ai.Enemy
	Particles *particle.System
	Stats     Stats
	Screen    Screen
	Outcome   storage.Outcome
	Messages  []Message
	StartedAt time.Time

	assets  Assets
	opts    Options
	sound   audio.Player
	metrics *telemetry.Metrics
	log     zerolog.Logger

	sinceStep float64
	spawned   int

	enemiesAlive    atomic.Int64
	particlesActive atomic.Int64
}

// NewSession places the player and enemies of lvl and starts playing.
func NewSession(lvl *level.Level, assets Assets, opts Options, log zerolog.Logger) *Session {
	s := &Session{
		Level:     lvl,
		Camera:    camera.NewFacing(lvl.Spawn, lvl.Facing, opts.FOV),
		Player:    Player{Health: PlayerMaxHealth, MaxHealth: PlayerMaxHealth},
		Weapon:    weapon.New(assets.WeaponIdle, assets.WeaponFire),
		Particles: particle.NewSystem(),
		Stats:     Stats{KillsByKind: map[string]int{}},
		Screen:    ScreenPlaying,
		StartedAt: time.Now(),
		assets:    assets,
		opts:      opts,
		log:       log,
		sinceStep: opts.FootstepInterval,
	}
	for _, spec := range lvl.Enemies {
		s.Enemies = append(s.Enemies, spawn(spec, assets))
	}
	s.spawned = len(s.Enemies)
	s.publish()

	log.Info().
		Str("level", lvl.Name).
		Int("enemies", s.spawned).
		Msg("Session started")
	return s
}

func spawn(spec level.EnemySpec, a Assets) *ai.Enemy {
	var e *ai.Enemy
	switch spec.Kind {
	case ai.KindRanged:
		e = ai.NewRanged(spec.Pos, a.GunnerIdle, a.GunnerFire)
	default:
		e = ai.NewMelee(spec.Pos, a.BruteIdle)
	}
	e.Apply(spec.Props)
	e.SetPatrol(spec.Patrol)
	return e
}

// SetSound routes sound effects to p. A nil player mutes the session.
func (s *Session) SetSound(p audio.Player) {
	s.sound = p
}

// SetMetrics routes gameplay counters to m.
func (s *Session) SetMetrics(m *telemetry.Metrics) {
	s.metrics = m
}

// Grid returns the level's wall map.
func (s *Session) Grid() *grid.Grid {
	return s.Level.Grid
}

// Tick advances the session by dt seconds.
func (s *Session) Tick(ctx context.Context, in Input, dt float64) {
	if s.Screen == ScreenGameOver {
		return
	}
	if in.Pause {
		s.togglePause()
	}
	if s.Screen != ScreenPlaying {
		return
	}

	s.Stats.Elapsed += dt
	if s.metrics != nil {
		s.metrics.Frame(ctx)
	}

	moving := s.move(in, dt)
	s.footsteps(moving, dt)

	s.Weapon.Update(dt, moving)
	if in.Fire {
		s.fire(ctx)
	}

	s.updateEnemies(ctx, dt)
	s.Particles.Update(dt, s.Grid())
	s.resolveHits(ctx)
	s.removeDead(ctx)
	s.checkOutcome()

	s.updateTimers(dt)
	s.publish()
}

func (s *Session) togglePause() {
	switch s.Screen {
	case ScreenPlaying:
		s.Screen = ScreenPaused
	case ScreenPaused:
		s.Screen = ScreenPlaying
	}
	s.log.Debug().Stringer("screen", s.Screen).Msg("Pause toggled")
}

// move applies turning and collision-checked movement and reports whether the
// player tried to walk.
func (s *Session) move(in Input, dt float64) bool {
	turn := in.Turn
	if in.TurnLeft {
		turn += s.opts.TurnSpeed * dt
	}
	if in.TurnRight {
		turn -= s.opts.TurnSpeed * dt
	}
	s.Camera.Rotate(turn)

	step := s.opts.MoveSpeed * dt
	m := s.Grid()
	if in.Forward {
		s.Camera.MoveForward(step, m)
	}
	if in.Back {
		s.Camera.MoveForward(-step, m)
	}
	if in.StrafeLeft {
		s.Camera.MoveRight(-step, m)
	}
	if in.StrafeRight {
		s.Camera.MoveRight(step, m)
	}
	return in.Moving()
}

func (s *Session) footsteps(moving bool, dt float64) {
	s.sinceStep += dt
	if moving && s.sinceStep >= s.opts.FootstepInterval {
		s.play(audio.SoundFootstep)
		s.sinceStep = 0
	}
}

// fire shoots from the camera if the weapon is ready and reports whether it did.
func (s *Session) fire(ctx context.Context) bool {
	if !s.Weapon.TryFire() {
		return false
	}
	s.Particles.Add(particle.New(
		s.Camera.Pos,
		s.Camera.Dir.Scale(weapon.ProjectileSpeed),
		weapon.Damage,
		false,
		s.assets.Projectile,
	))
	s.Stats.ShotsFired++
	s.play(audio.SoundPlayerGun)
	if s.metrics != nil {
		s.metrics.Shot(ctx, telemetry.OwnerPlayer)
	}
	return true
}

func (s *Session) updateEnemies(ctx context.Context, dt float64) {
	m := s.Grid()
	for _, e := range s.Enemies {
		shot, ok := e.Update(s.Camera.Pos, dt, m)
		if !ok {
			continue
		}
		s.Particles.Add(particle.New(shot.Origin, shot.Velocity, shot.Damage, shot.FromEnemy, s.assets.Projectile))
		s.play(audio.SoundEnemyGun)
		if s.metrics != nil {
			s.metrics.Shot(ctx, telemetry.OwnerEnemy)
		}
	}
}

// resolveHits consumes every projectile that reached its target. Enemy shots
// hit the player; player shots hit the nearest enemy within reach.
func (s *Session) resolveHits(ctx context.Context) {
	s.Particles.RemoveIf(func(p *particle.Particle) bool {
		if p.FromEnemy {
			if geom.Distance(p.Pos, s.Camera.Pos) >= HitRadius {
				return false
			}
			s.damagePlayer(ctx, p.Damage)
			return true
		}
		target := s.nearestEnemy(p.Pos, HitRadius)
		if target == nil {
			return false
		}
		target.TakeDamage(p.Damage)
		return true
	})
}

func (s *Session) nearestEnemy(p geom.Point, within float64) *ai.Enemy {
	var (
		best     *ai.Enemy
		bestDist = within
	)
	for _, e := range s.Enemies {
		if !e.Alive() {
			continue
		}
		if d := geom.Distance(e.Pos, p); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func (s *Session) damagePlayer(ctx context.Context, amount int) {
	s.Player.Health = max(s.Player.Health-amount, 0)
	s.Player.Hurt = HurtFlash
	s.Stats.DamageTaken += amount
	s.play(audio.SoundHurt)
	if s.metrics != nil {
		s.metrics.Damage(ctx, amount)
	}
}

func (s *Session) removeDead(ctx context.Context) {
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if e.Alive() {
			kept = append(kept, e)
			continue
		}
		kind := string(e.Kind())
		s.Stats.Kills++
		s.Stats.KillsByKind[kind]++
		if s.metrics != nil {
			s.metrics.Kill(ctx, kind)
		}
		s.log.Debug().Str("kind", kind).Msg("Enemy killed")
	}
	clear(s.Enemies[len(kept):])
	s.Enemies = kept
}

func (s *Session) checkOutcome() {
	switch {
	case s.Player.Health <= 0:
		s.end(storage.OutcomeDefeat)
		s.ShowMessage("You died")
	case s.spawned > 0 && len(s.Enemies) == 0:
		s.end(storage.OutcomeVictory)
		s.ShowMessage("Level cleared")
	}
}

func (s *Session) end(outcome storage.Outcome) {
	s.Screen = ScreenGameOver
	s.Outcome = outcome
	s.log.Info().
		Str("outcome", string(outcome)).
		Int("kills", s.Stats.Kills).
		Float64("elapsed", s.Stats.Elapsed).
		Msg("Session over")
}

// Abandon ends a session the player walked away from. It does nothing once the
// session is already over.
func (s *Session) Abandon() {
	if s.Screen == ScreenGameOver {
		return
	}
	s.end(storage.OutcomeQuit)
}

func (s *Session) updateTimers(dt float64) {
	s.Player.Hurt = math.Max(s.Player.Hurt-dt, 0)

	var active []Message
	for _, msg := range s.Messages {
		msg.TimeLeft -= dt
		if msg.TimeLeft > 0 {
			active = append(active, msg)
		}
	}
	s.Messages = active
}

// ShowMessage adds a new message to be displayed on screen.
func (s *Session) ShowMessage(text string) {
	s.Messages = append(s.Messages, Message{
		Text:     text,
		TimeLeft: MessageDuration,
		MaxTime:  MessageDuration,
	})
	s.log.Debug().Str("message", text).Msg("Message")
}

func (s *Session) play(snd audio.Sound) {
	if s.sound == nil {
		return
	}
	if !s.sound.Play(snd) {
		s.log.Debug().Stringer("sound", snd).Msg("Sound dropped")
	}
}

// publish copies entity counts into the gauge readers.
func (s *Session) publish() {
	s.enemiesAlive.Store(int64(len(s.Enemies)))
	s.particlesActive.Store(int64(s.Particles.Len()))
}

// EnemiesAlive implements telemetry.Gauges.
func (s *Session) EnemiesAlive() int {
	return int(s.enemiesAlive.Load())
}

// ParticlesActive implements telemetry.Gauges.
func (s *Session) ParticlesActive() int {
	return int(s.particlesActive.Load())
}

// Sprites appends the billboards for the current tick to buf[:0].
func (s *Session) Sprites(buf []raycaster.Sprite) []raycaster.Sprite {
	buf = buf[:0]
	for _, e := range s.Enemies {
		buf = append(buf, raycaster.Sprite{Pos: e.Pos, Texture: e.Frame(), Kind: raycaster.KindEnemy})
	}
	for _, p := range s.Particles.Particles() {
		buf = append(buf, raycaster.Sprite{Pos: p.Pos, Texture: p.Texture, Kind: raycaster.KindParticle})
	}
	return buf
}

// Status returns what the HUD should show this tick.
func (s *Session) Status() hud.Status {
	st := hud.Status{
		Health:    s.Player.Health,
		MaxHealth: s.Player.MaxHealth,
		Weapon:    s.Weapon.Frame(),
		Bob:       s.Weapon.Bob(),
		Kills:     s.Stats.Kills,
		Enemies:   len(s.Enemies),
		Elapsed:   s.Stats.Elapsed,
		Hurt:      s.Player.Hurt / HurtFlash,
	}
	if n := len(s.Messages); n > 0 {
		st.Message = s.Messages[n-1].Text
	}
	return st
}

// Record summarizes the session for the run history.
func (s *Session) Record() (*storage.RunRecord, error) {
	r := &storage.RunRecord{
		Level:           s.Level.Name,
		StartedAt:       s.StartedAt,
		DurationSeconds: s.Stats.Elapsed,
		Kills:           s.Stats.Kills,
		ShotsFired:      s.Stats.ShotsFired,
		DamageTaken:     s.Stats.DamageTaken,
		Outcome:         s.Outcome,
	}
	if err := r.SetKillsByKind(s.Stats.KillsByKind); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}
	return r, nil
}
