package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a fixed-length oscillator with an optional linear pitch slide.
type tone struct {
	wave     Wave
	freq     float64
	slide    float64 // Hz per second
	phase    float64
	length   int
	position int
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewTone returns a streamer producing d of the given wave at freq Hz. slide
// bends the pitch by that many Hz per second; the pitch never drops below 20 Hz.
func NewTone(wave Wave, freq, slide float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:   wave,
		freq:   freq,
		slide:  slide,
		length: rate.N(d),
		rate:   rate,
		rng:    rand.New(rand.NewSource(int64(freq*1000) + int64(d))),
	}
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.length {
			return i, i > 0
		}

		var v float64
		switch t.wave {
		case WaveSine:
			v = math.Sin(2 * math.Pi * t.phase)
		case WaveSquare:
			v = 1
			if t.phase >= 0.5 {
				v = -1
			}
		case WaveSaw:
			v = 2 * (t.phase - 0.5)
		case WaveNoise:
			v = t.rng.Float64()*2 - 1
		}
		samples[i][0] = v
		samples[i][1] = v

		elapsed := float64(t.position) / float64(t.rate)
		freq := math.Max(20, t.freq+t.slide*elapsed)
		t.phase += freq / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// decay shapes a streamer with a linear attack followed by an exponential fall.
type decay struct {
	streamer beep.Streamer
	attack   int
	rate     float64 // e-folds per second
	position int
	sr       beep.SampleRate
}

// NewDecay ramps s in over attack, then fades it by e every 1/rate seconds.
func NewDecay(s beep.Streamer, attack time.Duration, rate float64, sr beep.SampleRate) beep.Streamer {
	return &decay{streamer: s, attack: sr.N(attack), rate: rate, sr: sr}
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		gain := 1.0
		if d.position < d.attack {
			gain = float64(d.position) / float64(d.attack)
		} else {
			t := float64(d.position-d.attack) / float64(d.sr)
			gain = math.Exp(-t * d.rate)
		}
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }

// gain wraps s in a linear gain. Zero or less is silent.
func gain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// PlayerGun is a sharp crack: a noise burst over a falling square thump.
func PlayerGun(sr beep.SampleRate) beep.Streamer {
	const d = 180 * time.Millisecond
	crack := NewDecay(NewTone(WaveNoise, 1, 0, d, sr), 2*time.Millisecond, 30, sr)
	thump := NewDecay(NewTone(WaveSquare, 160, -600, d, sr), 2*time.Millisecond, 18, sr)
	return beep.Mix(gain(crack, 0.5), gain(thump, 0.35))
}

// EnemyGun is a buzzier, lower shot so enemy fire is told apart by ear.
func EnemyGun(sr beep.SampleRate) beep.Streamer {
	const d = 220 * time.Millisecond
	body := NewDecay(NewTone(WaveSaw, 240, -500, d, sr), 3*time.Millisecond, 14, sr)
	hiss := NewDecay(NewTone(WaveNoise, 2, 0, d, sr), 2*time.Millisecond, 40, sr)
	return beep.Mix(gain(body, 0.4), gain(hiss, 0.25))
}

// Footstep is a short low thud.
func Footstep(sr beep.SampleRate) beep.Streamer {
	const d = 90 * time.Millisecond
	var thud beep.Streamer
	if sine, err := generators.SineTone(sr, 70); err == nil {
		thud = beep.Take(sr.N(d), sine)
	} else {
		thud = NewTone(WaveSine, 70, 0, d, sr)
	}
	scuff := NewTone(WaveNoise, 3, 0, d, sr)
	return beep.Mix(
		gain(NewDecay(thud, 4*time.Millisecond, 40, sr), 0.45),
		gain(NewDecay(scuff, 1*time.Millisecond, 70, sr), 0.12),
	)
}

// Hurt is two descending square blips.
func Hurt(sr beep.SampleRate) beep.Streamer {
	const d = 90 * time.Millisecond
	first := NewDecay(NewTone(WaveSquare, 440, -800, d, sr), 2*time.Millisecond, 12, sr)
	second := NewDecay(NewTone(WaveSquare, 330, -800, d, sr), 2*time.Millisecond, 12, sr)
	return gain(beep.Seq(first, second), 0.3)
}
