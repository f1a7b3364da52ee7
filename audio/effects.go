package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/photowall/constants"
)

// Wave maps a phase in [0, 1) to a sample in [-1, 1]
type Wave func(phase float64) float64

// Basic wave shapes
var (
	Sine Wave = func(p float64) float64 { return math.Sin(2 * math.Pi * p) }
	Saw  Wave = func(p float64) float64 { return 2 * (p - 0.5) }
	// Square holds +1 for the first half period
	Square Wave = func(p float64) float64 {
		if p < 0.5 {
			return 1
		}
		return -1
	}
	Noise Wave = func(float64) float64 { return rand.Float64()*2 - 1 }
)

// tone is a single oscillator shaped by a linear attack and release
type tone struct {
	wave    Wave
	step    float64 // phase advance per sample
	phase   float64
	pos     int
	total   int
	attack  int
	release int
}

// NewTone creates a mono tone of the given length, duplicated to both channels
func NewTone(wave Wave, freq float64, length, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &tone{
		wave:    wave,
		step:    freq / float64(rate),
		total:   rate.N(length),
		attack:  rate.N(attack),
		release: rate.N(release),
	}
}

func (t *tone) gain() float64 {
	if t.attack > 0 && t.pos < t.attack {
		return float64(t.pos) / float64(t.attack)
	}
	if left := t.total - t.pos; t.release > 0 && left < t.release {
		return float64(left) / float64(t.release)
	}
	return 1
}

func (t *tone) Stream(samples [][2]float64) (n int, ok bool) {
	for n = range samples {
		if t.pos >= t.total {
			return n, n > 0
		}
		v := t.wave(t.phase) * t.gain()
		samples[n] = [2]float64{v, v}

		t.phase += t.step
		t.phase -= math.Floor(t.phase)
		t.pos++
	}
	return len(samples), true
}

func (t *tone) Err() error { return nil }

// partial is one voice of a cue
type partial struct {
	wave    Wave
	freq    float64
	gain    float64
	release time.Duration
}

// cue is a sum of partials sharing a length and attack
type cue struct {
	length   time.Duration
	attack   time.Duration
	partials []partial
}

var cues = [soundTypeCount]cue{
	// Soft low click
	SoundGrab: {
		length: constants.GrabSoundDuration,
		attack: constants.GrabSoundAttack,
		partials: []partial{
			{Sine, 220, 1, constants.GrabSoundRelease},
		},
	},
	// Airy whoosh
	SoundFling: {
		length: constants.FlingSoundDuration,
		attack: constants.FlingSoundAttack,
		partials: []partial{
			{Noise, 0, 1, constants.FlingSoundRelease},
		},
	},
	// Bell: E5 and its octave
	SoundReveal: {
		length: constants.RevealSoundDuration,
		attack: constants.RevealSoundAttack,
		partials: []partial{
			{Sine, 659.25, 0.7, constants.RevealSoundFundamentalRelease},
			{Sine, 1318.51, 0.3, constants.RevealSoundOvertoneRelease},
		},
	},
	// Short harsh buzz
	SoundError: {
		length: constants.ErrorSoundDuration,
		attack: constants.ErrorSoundAttack,
		partials: []partial{
			{Saw, 100, 1, constants.ErrorSoundRelease},
		},
	},
}

// withGain scales s linearly; zero or less is silent
func withGain(s beep.Streamer, g float64) beep.Streamer {
	if g <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(g)}
}

// Synthesize renders the cue st at the configured volume
// Returns nil for an unknown cue
func Synthesize(st SoundType, cfg Config) beep.Streamer {
	if st < 0 || st >= soundTypeCount {
		return nil
	}
	c := cues[st]
	rate := beep.SampleRate(cfg.SampleRate)

	voices := make([]beep.Streamer, len(c.partials))
	for i, p := range c.partials {
		voices[i] = withGain(NewTone(p.wave, p.freq, c.length, c.attack, p.release, rate), p.gain)
	}

	s := voices[0]
	if len(voices) > 1 {
		s = beep.Mix(voices...)
	}
	return withGain(s, cfg.volume(st))
}
