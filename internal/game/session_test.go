package game

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"chosenoffset.com/lucid/internal/audio"
	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/engine/raycaster"
	"chosenoffset.com/lucid/internal/game/ai"
	"chosenoffset.com/lucid/internal/game/particle"
	"chosenoffset.com/lucid/internal/game/weapon"
	"chosenoffset.com/lucid/internal/storage"
	"chosenoffset.com/lucid/internal/telemetry"
	"chosenoffset.com/lucid/internal/world/grid"
	"chosenoffset.com/lucid/internal/world/level"
)

const tick = 1.0 / 60

type soundLog []audio.Sound

func (l *soundLog) Play(s audio.Sound) bool {
	*l = append(*l, s)
	return true
}

func testAssets() Assets {
	return Assets{WeaponIdle: 1, WeaponFire: 2, GunnerIdle: 3, GunnerFire: 4, BruteIdle: 5, Projectile: 6}
}

func testLevel(enemies ...level.EnemySpec) *level.Level {
	return &level.Level{
		Name:    "room",
		Grid:    grid.Ring(8, 8, 1),
		Spawn:   geom.Pt(1.5, 1.5),
		Facing:  geom.Pt(1, 0),
		Enemies: enemies,
	}
}

func newTestSession(t *testing.T, enemies ...level.EnemySpec) (*Session, *soundLog) {
	t.Helper()
	s := NewSession(testLevel(enemies...), testAssets(), DefaultOptions(), zerolog.Nop())
	sounds := &soundLog{}
	s.SetSound(sounds)
	return s, sounds
}

func TestNewSessionPlacesEnemies(t *testing.T) {
	s, _ := newTestSession(t,
		level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(5.5, 5.5)},
		level.EnemySpec{
			Kind:   ai.KindRanged,
			Pos:    geom.Pt(4.5, 2.5),
			Patrol: []geom.Point{geom.Pt(4.5, 2.5), geom.Pt(4.5, 5.5)},
			Props:  ai.Properties{Health: 30},
		},
	)

	require.Len(t, s.Enemies, 2)
	assert.Equal(t, ai.KindMelee, s.Enemies[0].Kind())
	assert.Equal(t, ai.Idle, s.Enemies[0].State)
	assert.Equal(t, ai.KindRanged, s.Enemies[1].Kind())
	assert.Equal(t, 30, s.Enemies[1].Health)
	assert.Equal(t, ai.Patrol, s.Enemies[1].State)

	assert.Equal(t, ScreenPlaying, s.Screen)
	assert.Equal(t, PlayerMaxHealth, s.Player.Health)
	assert.Equal(t, geom.Pt(1.5, 1.5), s.Camera.Pos)
	assert.Equal(t, 2, s.EnemiesAlive())
}

func TestFireSpawnsPlayerProjectile(t *testing.T) {
	s, sounds := newTestSession(t)

	require.True(t, s.fire(context.Background()))
	require.Equal(t, 1, s.Particles.Len())
	p := s.Particles.Particles()[0]
	assert.Equal(t, s.Camera.Pos, p.Pos)
	assert.Equal(t, s.Camera.Dir.Scale(10), p.Vel)
	assert.Equal(t, 20, p.Damage)
	assert.False(t, p.FromEnemy)
	assert.Equal(t, testAssets().Projectile, p.Texture)
	assert.Equal(t, soundLog{audio.SoundPlayerGun}, *sounds)

	assert.False(t, s.fire(context.Background()), "weapon is cooling down")
	assert.Equal(t, 1, s.Particles.Len())
}

func TestFireCooldownAcrossTicks(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.Tick(ctx, Input{Fire: true}, tick)
	require.Equal(t, 1, s.Stats.ShotsFired)
	p := s.Particles.Particles()[0]
	assert.InDelta(t, 1.5+weapon.ProjectileSpeed*tick, p.Pos.X, 1e-9, "moved once after spawning")

	s.Tick(ctx, Input{Fire: true}, 0.2)
	assert.Equal(t, 1, s.Stats.ShotsFired)

	s.Tick(ctx, Input{Fire: true}, 0.35)
	assert.Equal(t, 2, s.Stats.ShotsFired)
}

func TestPlayerShotHitsNearestEnemyOnly(t *testing.T) {
	s, _ := newTestSession(t,
		level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(4.5, 4.5)},
		level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(4.5, 4.8)},
	)
	s.Particles.Add(particle.New(geom.Pt(4.5, 4.55), geom.Point{}, 20, false, 6))

	s.Tick(context.Background(), Input{}, 0.001)

	assert.Equal(t, 0, s.Particles.Len(), "projectile is consumed")
	assert.Equal(t, 80, s.Enemies[0].Health)
	assert.Equal(t, 100, s.Enemies[1].Health)
}

func TestPlayerShotMisses(t *testing.T) {
	s, _ := newTestSession(t, level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(5.5, 5.5)})
	s.Particles.Add(particle.New(geom.Pt(2.5, 5.5), geom.Point{}, 20, false, 6))

	s.Tick(context.Background(), Input{}, 0.001)

	assert.Equal(t, 1, s.Particles.Len())
	assert.Equal(t, 100, s.Enemies[0].Health)
}

func TestEnemyShotHurtsPlayer(t *testing.T) {
	s, sounds := newTestSession(t)
	s.Particles.Add(particle.New(s.Camera.Pos.Add(geom.Pt(0.2, 0)), geom.Point{}, 5, true, 6))

	s.Tick(context.Background(), Input{}, tick)

	assert.Equal(t, 95, s.Player.Health)
	assert.Equal(t, 5, s.Stats.DamageTaken)
	assert.Positive(t, s.Player.Hurt)
	assert.Contains(t, *sounds, audio.SoundHurt)
	assert.Equal(t, 0, s.Particles.Len())
	assert.Positive(t, s.Status().Hurt)
}

func TestDefeat(t *testing.T) {
	s, _ := newTestSession(t, level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(6.5, 6.5)})
	s.Player.Health = 5
	s.Particles.Add(particle.New(s.Camera.Pos, geom.Point{}, 10, true, 6))

	s.Tick(context.Background(), Input{}, tick)

	assert.Equal(t, 0, s.Player.Health)
	assert.Equal(t, ScreenGameOver, s.Screen)
	assert.Equal(t, storage.OutcomeDefeat, s.Outcome)

	// Nothing moves once the session is over.
	elapsed := s.Stats.Elapsed
	s.Tick(context.Background(), Input{Forward: true}, tick)
	assert.Equal(t, elapsed, s.Stats.Elapsed)
}

func TestVictoryCountsKills(t *testing.T) {
	s, _ := newTestSession(t, level.EnemySpec{Kind: ai.KindRanged, Pos: geom.Pt(5.5, 5.5), Props: ai.Properties{Health: 10}})
	s.Particles.Add(particle.New(geom.Pt(5.5, 5.5), geom.Point{}, 20, false, 6))

	s.Tick(context.Background(), Input{}, 0.001)

	assert.Empty(t, s.Enemies)
	assert.Equal(t, 1, s.Stats.Kills)
	assert.Equal(t, map[string]int{"ranged": 1}, s.Stats.KillsByKind)
	assert.Equal(t, ScreenGameOver, s.Screen)
	assert.Equal(t, storage.OutcomeVictory, s.Outcome)
	assert.Equal(t, 0, s.EnemiesAlive())
	require.NotEmpty(t, s.Messages)
	assert.Equal(t, "Level cleared", s.Status().Message)

	rec, err := s.Record()
	require.NoError(t, err)
	assert.Equal(t, "room", rec.Level)
	assert.Equal(t, storage.OutcomeVictory, rec.Outcome)
	kills, err := rec.KillsFor()
	require.NoError(t, err)
	assert.Equal(t, 1, kills["ranged"])
}

func TestEmptyLevelNeverWins(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tick(context.Background(), Input{}, tick)
	assert.Equal(t, ScreenPlaying, s.Screen)
}

func TestPauseFreezesSimulation(t *testing.T) {
	s, _ := newTestSession(t)
	ctx := context.Background()

	s.Tick(ctx, Input{Pause: true, Forward: true}, tick)
	assert.Equal(t, ScreenPaused, s.Screen)
	assert.Equal(t, geom.Pt(1.5, 1.5), s.Camera.Pos)

	s.Tick(ctx, Input{Forward: true}, tick)
	assert.Equal(t, geom.Pt(1.5, 1.5), s.Camera.Pos)
	assert.Zero(t, s.Stats.Elapsed)

	s.Tick(ctx, Input{Pause: true, Forward: true}, tick)
	assert.Equal(t, ScreenPlaying, s.Screen)
	assert.Greater(t, s.Camera.Pos.X, 1.5)
}

func TestMovementAndFootsteps(t *testing.T) {
	s, sounds := newTestSession(t)
	ctx := context.Background()

	s.Tick(ctx, Input{Forward: true}, 0.1)
	assert.InDelta(t, 1.75, s.Camera.Pos.X, 1e-9)
	assert.Equal(t, soundLog{audio.SoundFootstep}, *sounds)

	s.Tick(ctx, Input{Forward: true}, 0.1)
	assert.Len(t, *sounds, 1, "footsteps are spaced out")

	for range 5 {
		s.Tick(ctx, Input{Forward: true}, 0.1)
	}
	assert.Len(t, *sounds, 2)
	assert.Positive(t, s.Weapon.Bob())
}

func TestTurning(t *testing.T) {
	s, _ := newTestSession(t)
	s.Tick(context.Background(), Input{TurnRight: true}, 0.1)
	assert.Negative(t, s.Camera.Dir.Y, "turning right from +X heads toward -Y")

	s.Tick(context.Background(), Input{Turn: 0.4}, tick)
	assert.Positive(t, s.Camera.Dir.Y)
}

func TestAbandon(t *testing.T) {
	s, _ := newTestSession(t)
	s.Abandon()
	assert.Equal(t, storage.OutcomeQuit, s.Outcome)

	d, _ := newTestSession(t)
	d.Player.Health = 1
	d.Particles.Add(particle.New(d.Camera.Pos, geom.Point{}, 10, true, 6))
	d.Tick(context.Background(), Input{}, tick)
	d.Abandon()
	assert.Equal(t, storage.OutcomeDefeat, d.Outcome)
}

func TestSpritesListEnemiesThenParticles(t *testing.T) {
	s, _ := newTestSession(t, level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(5.5, 5.5)})
	s.Particles.Add(particle.New(geom.Pt(3, 3), geom.Point{}, 1, false, 6))

	sprites := s.Sprites(nil)
	require.Len(t, sprites, 2)
	assert.Equal(t, raycaster.Sprite{Pos: geom.Pt(5.5, 5.5), Texture: 5, Kind: raycaster.KindEnemy}, sprites[0])
	assert.Equal(t, raycaster.KindParticle, sprites[1].Kind)
}

func TestSessionMetrics(t *testing.T) {
	mt, err := telemetry.NewWithMeter(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	s, _ := newTestSession(t, level.EnemySpec{Kind: ai.KindMelee, Pos: geom.Pt(5.5, 5.5)})
	s.SetMetrics(mt)
	require.NoError(t, mt.Observe(noop.NewMeterProvider().Meter("test"), s))
	defer mt.Close()

	s.Tick(context.Background(), Input{Fire: true}, tick)
	assert.Equal(t, 1, s.ParticlesActive())
	assert.Equal(t, 1, s.EnemiesAlive())
}
