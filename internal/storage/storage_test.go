package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndRecent(t *testing.T) {
	s := openMemory(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		r := &RunRecord{
			Level:           "arena",
			StartedAt:       base.Add(time.Duration(i) * time.Minute),
			DurationSeconds: 30,
			Kills:           i,
			Outcome:         OutcomeQuit,
		}
		require.NoError(t, s.Save(r))
		assert.NotZero(t, r.ID)
	}

	recent, err := s.Recent(2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 2, recent[0].Kills)
	assert.Equal(t, 1, recent[1].Kills)
}

func TestKillsByKindRoundTrip(t *testing.T) {
	s := openMemory(t)
	r := &RunRecord{Level: "arena", StartedAt: time.Now(), Outcome: OutcomeVictory}
	require.NoError(t, r.SetKillsByKind(map[string]int{"melee": 2, "ranged": 1}))
	require.NoError(t, s.Save(r))

	recent, err := s.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	kills, err := recent[0].KillsFor()
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"melee": 2, "ranged": 1}, kills)
}

func TestKillsForEmpty(t *testing.T) {
	var r RunRecord
	kills, err := r.KillsFor()
	require.NoError(t, err)
	assert.Empty(t, kills)
}

func TestBest(t *testing.T) {
	s := openMemory(t)
	now := time.Now()
	require.NoError(t, s.Save(&RunRecord{Level: "arena", StartedAt: now, Kills: 3, DurationSeconds: 50}))
	require.NoError(t, s.Save(&RunRecord{Level: "arena", StartedAt: now, Kills: 3, DurationSeconds: 40}))
	require.NoError(t, s.Save(&RunRecord{Level: "maze", StartedAt: now, Kills: 9}))

	best, ok, err := s.Best("arena")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 40.0, best.DurationSeconds)

	_, ok, err = s.Best("missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileDatabasePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(&RunRecord{Level: "arena", StartedAt: time.Now(), Outcome: OutcomeDefeat}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	recent, err := s.Recent(10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, OutcomeDefeat, recent[0].Outcome)
}
