package audio

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

// resampleQuality is the beep resampler quality used for files whose rate
// differs from the speaker's.
const resampleQuality = 4

// decodeWAV opens and decodes the WAV file at path. The caller owns the
// returned streamer and must close it.
func decodeWAV(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return s, format, nil
}

// NewLoop decodes the WAV file at path into a streamer that repeats forever at
// sample rate sr. Close the returned closer once the loop is no longer played.
func NewLoop(path string, sr beep.SampleRate) (beep.Streamer, beep.StreamSeekCloser, error) {
	s, format, err := decodeWAV(path)
	if err != nil {
		return nil, nil, err
	}
	if s.Len() == 0 {
		s.Close()
		return nil, nil, fmt.Errorf("%s has no samples", path)
	}
	var loop beep.Streamer = beep.Loop(-1, s)
	if format.SampleRate != sr {
		loop = beep.Resample(resampleQuality, format.SampleRate, sr, loop)
	}
	return loop, s, nil
}

// loadClip decodes a whole WAV file into memory at sample rate sr.
func loadClip(path string, sr beep.SampleRate) (*beep.Buffer, error) {
	s, format, err := decodeWAV(path)
	if err != nil {
		return nil, err
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != sr {
		src = beep.Resample(resampleQuality, format.SampleRate, sr, s)
	}
	buf := beep.NewBuffer(beep.Format{SampleRate: sr, NumChannels: 2, Precision: 2})
	buf.Append(src)
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf, nil
}

// LoadEffects replaces synthesized effects with <dir>/<name>.wav where such a
// file exists. Effects without a file, or whose file fails to decode, keep
// their synthesized sound. It returns how many files were loaded.
func (sm *SoundManager) LoadEffects(dir string) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	loaded := 0
	for _, s := range Sounds {
		path := filepath.Join(dir, s.String()+".wav")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		clip, err := loadClip(path, sm.rate)
		if err != nil {
			sm.log.Warn().Err(err).Str("sound", s.String()).Msg("Using synthesized sound")
			continue
		}
		sm.clips[s] = clip
		loaded++
	}
	sm.log.Debug().Int("loaded", loaded).Str("dir", dir).Msg("Sound files loaded")
	return loaded
}

// streamer returns a fresh streamer for s, preferring a loaded file.
func (sm *SoundManager) streamer(s Sound) (beep.Streamer, error) {
	if clip, ok := sm.clips[s]; ok {
		return clip.Streamer(0, clip.Len()), nil
	}
	return Build(s, sm.rate)
}

// PlayMusic loops the WAV file at path under the effects at a base-2 gain of
// volume, replacing any music already playing. A file that cannot be read is
// logged and skipped.
func (sm *SoundManager) PlayMusic(path string, volume float64) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}
	loop, closer, err := NewLoop(path, sm.rate)
	if err != nil {
		sm.log.Warn().Err(err).Str("path", path).Msg("Skipping music")
		return false
	}

	speaker.Lock()
	sm.stopMusicLocked()
	sm.music = &beep.Ctrl{Streamer: &effects.Volume{Streamer: loop, Base: 2, Volume: volume}}
	sm.musicFile = closer
	sm.mixer.Add(sm.music)
	speaker.Unlock()

	sm.log.Info().Str("path", path).Msg("Music started")
	return true
}

// stopMusicLocked needs sm.mu and, once the speaker runs, the speaker lock.
func (sm *SoundManager) stopMusicLocked() {
	if sm.music == nil {
		return
	}
	sm.music.Streamer = nil
	sm.music = nil
	if err := sm.musicFile.Close(); err != nil {
		sm.log.Warn().Err(err).Msg("Failed to close music file")
	}
	sm.musicFile = nil
}
