// Package telemetry records gameplay metrics through OpenTelemetry. Without an
// installed meter provider every instrument is a no-op.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "chosenoffset.com/lucid/internal/telemetry"

// Owner attribute values for shot counters.
const (
	OwnerPlayer = "player"
	OwnerEnemy  = "enemy"
)

// Gauges supplies the values read by the observable gauges at collection time.
type Gauges interface {
	EnemiesAlive() int
	ParticlesActive() int
}

// Metrics holds the game's instruments.
type Metrics struct {
	frames      metric.Int64Counter
	shots       metric.Int64Counter
	kills       metric.Int64Counter
	renderTime  metric.Float64Histogram
	damageTaken metric.Int64Counter
	reg         metric.Registration
}

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// New creates the instruments on the global meter provider.
func New() (*Metrics, error) {
	return NewWithMeter(meter())
}

// NewWithMeter creates the instruments on m.
func NewWithMeter(m metric.Meter) (*Metrics, error) {
	var (
		mt  Metrics
		err error
	)
	if mt.frames, err = m.Int64Counter("lucid.frames",
		metric.WithDescription("Frames simulated")); err != nil {
		return nil, fmt.Errorf("failed to create frames counter: %w", err)
	}
	if mt.shots, err = m.Int64Counter("lucid.shots",
		metric.WithDescription("Projectiles fired")); err != nil {
		return nil, fmt.Errorf("failed to create shots counter: %w", err)
	}
	if mt.kills, err = m.Int64Counter("lucid.kills",
		metric.WithDescription("Enemies killed")); err != nil {
		return nil, fmt.Errorf("failed to create kills counter: %w", err)
	}
	if mt.damageTaken, err = m.Int64Counter("lucid.player.damage",
		metric.WithDescription("Damage taken by the player")); err != nil {
		return nil, fmt.Errorf("failed to create damage counter: %w", err)
	}
	if mt.renderTime, err = m.Float64Histogram("lucid.render.duration",
		metric.WithDescription("Time spent rendering a frame"),
		metric.WithUnit("ms")); err != nil {
		return nil, fmt.Errorf("failed to create render histogram: %w", err)
	}
	return &mt, nil
}

// Observe registers the entity gauges against g. Call Close to unregister.
func (mt *Metrics) Observe(m metric.Meter, g Gauges) error {
	enemies, err := m.Int64ObservableGauge("lucid.enemies.alive",
		metric.WithDescription("Enemies still alive"))
	if err != nil {
		return fmt.Errorf("failed to create enemies gauge: %w", err)
	}
	particles, err := m.Int64ObservableGauge("lucid.particles.active",
		metric.WithDescription("Projectiles in flight"))
	if err != nil {
		return fmt.Errorf("failed to create particles gauge: %w", err)
	}
	mt.reg, err = m.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		o.ObserveInt64(enemies, int64(g.EnemiesAlive()))
		o.ObserveInt64(particles, int64(g.ParticlesActive()))
		return nil
	}, enemies, particles)
	if err != nil {
		return fmt.Errorf("failed to register gauge callback: %w", err)
	}
	return nil
}

// ObserveGlobal is Observe on the global meter provider.
func (mt *Metrics) ObserveGlobal(g Gauges) error {
	return mt.Observe(meter(), g)
}

// Frame counts one simulated frame.
func (mt *Metrics) Frame(ctx context.Context) {
	mt.frames.Add(ctx, 1)
}

// Shot counts a projectile fired by owner.
func (mt *Metrics) Shot(ctx context.Context, owner string) {
	mt.shots.Add(ctx, 1, metric.WithAttributes(attribute.String("owner", owner)))
}

// Kill counts an enemy death.
func (mt *Metrics) Kill(ctx context.Context, kind string) {
	mt.kills.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Damage counts damage applied to the player.
func (mt *Metrics) Damage(ctx context.Context, amount int) {
	mt.damageTaken.Add(ctx, int64(amount))
}

// RenderDuration records how long a frame took to draw.
func (mt *Metrics) RenderDuration(ctx context.Context, ms float64) {
	mt.renderTime.Record(ctx, ms)
}

// Close unregisters the gauge callback.
func (mt *Metrics) Close() error {
	if mt.reg == nil {
		return nil
	}
	err := mt.reg.Unregister()
	mt.reg = nil
	return err
}
