package audio

// Config tunes the sound cues
type Config struct {
	Enabled       bool               `yaml:"enabled"`
	MasterVolume  float64            `yaml:"master_volume"`
	SampleRate    int                `yaml:"sample_rate"`
	EffectVolumes map[string]float64 `yaml:"effect_volumes,omitempty"`
}

// DefaultConfig returns audio enabled at a moderate volume
func DefaultConfig() Config {
	return Config{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   44100,
		EffectVolumes: map[string]float64{
			SoundGrab.String():   0.4,
			SoundFling.String():  0.3,
			SoundReveal.String(): 0.6,
			SoundError.String():  0.5,
		},
	}
}

// volume returns the effective gain for a cue, clamped to [0, 1]
func (c Config) volume(st SoundType) float64 {
	v, ok := c.EffectVolumes[st.String()]
	if !ok {
		v = 1
	}
	return clamp01(v) * clamp01(c.MasterVolume)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
