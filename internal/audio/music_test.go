package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWAV saves n samples of a square tone at rate sr.
func writeWAV(t *testing.T, path string, n int, sr beep.SampleRate) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	src := beep.Take(n, NewTone(WaveSquare, 440, 0, time.Second, sr))
	require.NoError(t, wav.Encode(f, src, beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2}))
}

func TestLoopRepeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.wav")
	writeWAV(t, path, 100, testRate)

	loop, closer, err := NewLoop(path, testRate)
	require.NoError(t, err)
	defer closer.Close()

	buf := make([][2]float64, 350)
	n, ok := loop.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, len(buf), n, "streams past the end of the file")
	assert.InDelta(t, buf[0][0], buf[100][0], 1e-3, "second pass starts over")
}

func TestLoopMissingFile(t *testing.T) {
	_, _, err := NewLoop(filepath.Join(t.TempDir(), "none.wav"), testRate)
	assert.Error(t, err)
}

func TestLoadEffectsPrefersFiles(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "hurt.wav"), 300, testRate)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "enemy_gun.wav"), []byte("not a wav"), 0o644))

	sm := NewSoundManager(int(testRate), 0, zerolog.Nop())
	assert.Equal(t, 1, sm.LoadEffects(dir))

	hurt, err := sm.streamer(SoundHurt)
	require.NoError(t, err)
	n, _ := drain(t, hurt)
	assert.Equal(t, 300, n)

	// A broken file and a missing one both keep the synthesized effect.
	gun, err := sm.streamer(SoundEnemyGun)
	require.NoError(t, err)
	n, _ = drain(t, gun)
	assert.InDelta(t, testRate.N(220*time.Millisecond), n, 512)

	step, err := sm.streamer(SoundFootstep)
	require.NoError(t, err)
	n, _ = drain(t, step)
	assert.InDelta(t, testRate.N(90*time.Millisecond), n, 512)
}

func TestLoadEffectsResamples(t *testing.T) {
	dir := t.TempDir()
	writeWAV(t, filepath.Join(dir, "footstep.wav"), 1000, testRate)

	sm := NewSoundManager(int(testRate)*2, 0, zerolog.Nop())
	require.Equal(t, 1, sm.LoadEffects(dir))

	step, err := sm.streamer(SoundFootstep)
	require.NoError(t, err)
	n, _ := drain(t, step)
	assert.InDelta(t, 2000, n, 16)
}
