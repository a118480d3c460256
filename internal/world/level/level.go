// Package level loads level files: a wall layout, the player spawn and the
// enemies placed in it. Levels are TOML documents.
package level

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"chosenoffset.com/lucid/internal/core/geom"
	"chosenoffset.com/lucid/internal/game/ai"
	"chosenoffset.com/lucid/internal/world/grid"
)

var (
	// ErrDimensions is returned when the layout disagrees with the declared size.
	ErrDimensions = errors.New("layout does not match declared dimensions")
	// ErrSpawnBlocked is returned when the player would spawn inside a wall.
	ErrSpawnBlocked = errors.New("spawn point is inside a wall")
)

type vec2 struct {
	X float64 `mapstructure:"x"`
	Y float64 `mapstructure:"y"`
}

func (v vec2) point() geom.Point { return geom.Pt(v.X, v.Y) }

type mapDef struct {
	Name   string  `mapstructure:"name"`
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Layout [][]int `mapstructure:"layout"`
}

type playerDef struct {
	Spawn     vec2 `mapstructure:"spawn"`
	Direction vec2 `mapstructure:"direction"`
}

type propertiesDef struct {
	Health      int     `mapstructure:"health"`
	Damage      int     `mapstructure:"damage"`
	Speed       float64 `mapstructure:"speed"`
	AttackRange float64 `mapstructure:"attack_range"`
	ChaseRange  float64 `mapstructure:"chase_range"`
}

type enemyDef struct {
	Type         string        `mapstructure:"type"`
	Position     vec2          `mapstructure:"position"`
	PatrolPoints []vec2        `mapstructure:"patrol_points"`
	Properties   propertiesDef `mapstructure:"properties"`
}

type metadataDef struct {
	Author      string `mapstructure:"author"`
	Description string `mapstructure:"description"`
	Version     string `mapstructure:"version"`
}

type fileDef struct {
	Map      mapDef      `mapstructure:"map"`
	Player   playerDef   `mapstructure:"player"`
	Enemies  []enemyDef  `mapstructure:"enemies"`
	Metadata metadataDef `mapstructure:"metadata"`
}

// EnemySpec places one enemy.
type EnemySpec struct {
	Kind   ai.Kind
	Pos    geom.Point
	Patrol []geom.Point
	Props  ai.Properties
}

// Level is a validated, ready-to-play level.
type Level struct {
	Name        string
	Author      string
	Description string
	Version     string
	Grid        *grid.Grid
	Spawn       geom.Point
	Facing      geom.Point
	Enemies     []EnemySpec
}

// Load reads and validates the level file at path.
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}
	lvl, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes and validates a TOML level document.
func Parse(r io.Reader) (*Level, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("failed to parse level: %w", err)
	}

	var def fileDef
	if err := v.Unmarshal(&def); err != nil {
		return nil, fmt.Errorf("failed to decode level: %w", err)
	}
	return def.build()
}

func (def *fileDef) build() (*Level, error) {
	m := def.Map
	if len(m.Layout) != m.Height {
		return nil, fmt.Errorf("%w: %d rows, height %d", ErrDimensions, len(m.Layout), m.Height)
	}
	for y, row := range m.Layout {
		if len(row) != m.Width {
			return nil, fmt.Errorf("%w: row %d has %d cells, width %d", ErrDimensions, y, len(row), m.Width)
		}
	}
	g, err := grid.New(m.Layout)
	if err != nil {
		return nil, fmt.Errorf("invalid layout: %w", err)
	}

	spawn := def.Player.Spawn.point()
	if g.SolidAt(spawn) {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrSpawnBlocked, spawn.X, spawn.Y)
	}
	facing := def.Player.Direction.point()
	if _, ok := facing.Normalize(); !ok {
		facing = geom.Pt(1, 0)
	}

	lvl := &Level{
		Name:        m.Name,
		Author:      def.Metadata.Author,
		Description: def.Metadata.Description,
		Version:     def.Metadata.Version,
		Grid:        g,
		Spawn:       spawn,
		Facing:      facing,
	}

	for i, e := range def.Enemies {
		kind := ai.Kind(e.Type)
		if kind != ai.KindMelee && kind != ai.KindRanged {
			return nil, fmt.Errorf("enemy %d: unknown type %q", i, e.Type)
		}
		pos := e.Position.point()
		if g.SolidAt(pos) {
			return nil, fmt.Errorf("enemy %d: position (%v, %v) is inside a wall", i, pos.X, pos.Y)
		}
		spec := EnemySpec{
			Kind: kind,
			Pos:  pos,
			Props: ai.Properties{
				Health:      e.Properties.Health,
				Damage:      e.Properties.Damage,
				Speed:       e.Properties.Speed,
				AttackRange: e.Properties.AttackRange,
				ChaseRange:  e.Properties.ChaseRange,
			},
		}
		for _, p := range e.PatrolPoints {
			spec.Patrol = append(spec.Patrol, p.point())
		}
		lvl.Enemies = append(lvl.Enemies, spec)
	}
	return lvl, nil
}

// Fallback returns a small built-in level used when no level file loads.
func Fallback() *Level {
	const size = 10
	g := grid.Ring(size, size, 1)
	rows := g.Rows()
	for _, c := range [][2]int{{3, 3}, {3, 4}, {3, 5}, {6, 4}, {6, 5}, {6, 6}} {
		rows[c[1]][c[0]] = 1
	}
	return &Level{
		Name:        "Fallback",
		Author:      "Unknown",
		Description: "Built-in test room",
		Grid:        grid.MustNew(rows),
		Spawn:       geom.Pt(1.5, 1.5),
		Facing:      geom.Pt(1, 0),
	}
}
