// Package audio synthesizes and plays the game's sound effects.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

// Sound names a synthesized effect.
type Sound int

const (
	SoundPlayerGun Sound = iota
	SoundEnemyGun
	SoundFootstep
	SoundHurt
)

// Sounds lists every effect.
var Sounds = []Sound{SoundPlayerGun, SoundEnemyGun, SoundFootstep, SoundHurt}

func (s Sound) String() string {
	switch s {
	case SoundPlayerGun:
		return "player_gun"
	case SoundEnemyGun:
		return "enemy_gun"
	case SoundFootstep:
		return "footstep"
	case SoundHurt:
		return "hurt"
	default:
		return "unknown"
	}
}

// DefaultSampleRate is used when none is configured.
const DefaultSampleRate = beep.SampleRate(44100)

// Build returns a fresh streamer for s at sample rate sr.
func Build(s Sound, sr beep.SampleRate) (beep.Streamer, error) {
	switch s {
	case SoundPlayerGun:
		return PlayerGun(sr), nil
	case SoundEnemyGun:
		return EnemyGun(sr), nil
	case SoundFootstep:
		return Footstep(sr), nil
	case SoundHurt:
		return Hurt(sr), nil
	default:
		return nil, fmt.Errorf("unknown sound %d", int(s))
	}
}

// Player is anything that can play a sound effect.
type Player interface {
	Play(s Sound) bool
}

// SoundManager mixes effects into the speaker. Until Initialize succeeds every
// call is a silent no-op.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	master      *effects.Volume
	rate        beep.SampleRate
	clips       map[Sound]*beep.Buffer
	music       *beep.Ctrl
	musicFile   beep.StreamSeekCloser
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a manager. volume is a base-2 gain; rate of zero
// selects DefaultSampleRate.
func NewSoundManager(rate int, volume float64, log zerolog.Logger) *SoundManager {
	sr := beep.SampleRate(rate)
	if sr <= 0 {
		sr = DefaultSampleRate
	}
	mixer := &beep.Mixer{}
	return &SoundManager{
		mixer:  mixer,
		master: &effects.Volume{Streamer: mixer, Base: 2, Volume: volume},
		rate:   sr,
		clips:  make(map[Sound]*beep.Buffer),
		log:    log,
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sm.rate, sm.rate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(sm.master)
	sm.initialized = true
	sm.log.Info().Int("sample_rate", int(sm.rate)).Msg("audio initialized")
	return nil
}

// Enabled reports whether sounds reach the speaker.
func (sm *SoundManager) Enabled() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// SampleRate returns the output sample rate.
func (sm *SoundManager) SampleRate() beep.SampleRate {
	return sm.rate
}

// Play starts s and reports whether it was queued.
func (sm *SoundManager) Play(s Sound) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	streamer, err := sm.streamer(s)
	if err != nil {
		sm.log.Warn().Err(err).Msg("skipping sound")
		return false
	}
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
	return true
}

// Cleanup stops the music, drops queued sounds and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.stopMusicLocked()
	speaker.Unlock()
	speaker.Clear()
	speaker.Close()
	sm.mixer.Clear()
	sm.initialized = false
}
