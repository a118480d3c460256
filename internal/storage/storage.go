// Package storage keeps a history of finished runs in a SQLite database.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeQuit    Outcome = "quit"
)

// RunRecord is one completed play session.
type RunRecord struct {
	ID              uint      `gorm:"primarykey"`
	Level           string    `gorm:"index"`
	StartedAt       time.Time `gorm:"index"`
	DurationSeconds float64
	Kills           int
	ShotsFired      int
	DamageTaken     int
	Outcome         Outcome
	// KillsByKind maps enemy kind to kill count.
	KillsByKind datatypes.JSON
}

// SetKillsByKind encodes per-kind kill counts into the record.
func (r *RunRecord) SetKillsByKind(kills map[string]int) error {
	raw, err := json.Marshal(kills)
	if err != nil {
		return fmt.Errorf("failed to encode kills: %w", err)
	}
	r.KillsByKind = datatypes.JSON(raw)
	return nil
}

// KillsFor decodes the per-kind kill counts.
func (r *RunRecord) KillsFor() (map[string]int, error) {
	out := map[string]int{}
	if len(r.KillsByKind) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(r.KillsByKind, &out); err != nil {
		return nil, fmt.Errorf("failed to decode kills: %w", err)
	}
	return out, nil
}

// Store persists run records.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if needed) the database at path. An empty path opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if dsn == "" {
		dsn = "file::memory:"
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open run history %q: %w", path, err)
	}

	// A single connection keeps an in-memory database alive and shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access run history handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&RunRecord{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate run history: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts a record and fills in its ID.
func (s *Store) Save(r *RunRecord) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Recent returns up to n records, newest first.
func (s *Store) Recent(n int) ([]RunRecord, error) {
	var out []RunRecord
	if err := s.db.Order("started_at desc").Order("id desc").Limit(n).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return out, nil
}

// Best returns the record with the most kills on level.
func (s *Store) Best(level string) (RunRecord, bool, error) {
	var out []RunRecord
	err := s.db.Where("level = ?", level).Order("kills desc").Order("duration_seconds asc").Limit(1).Find(&out).Error
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("failed to query best run: %w", err)
	}
	if len(out) == 0 {
		return RunRecord{}, false, nil
	}
	return out[0], true, nil
}

// Close releases the database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
