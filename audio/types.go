package audio

// SoundType represents different sound cues
type SoundType int

const (
	SoundGrab   SoundType = iota // Drag start
	SoundFling                   // Release with inertia
	SoundReveal                  // Preview opened
	SoundError                   // Unknown command or failed action
	soundTypeCount
)

var soundNames = [soundTypeCount]string{"grab", "fling", "reveal", "error"}

func (s SoundType) String() string {
	if s < 0 || s >= soundTypeCount {
		return "unknown"
	}
	return soundNames[s]
}

// ParseSoundType maps a name to a sound type
func ParseSoundType(name string) (SoundType, bool) {
	for i, n := range soundNames {
		if n == name {
			return SoundType(i), true
		}
	}
	return 0, false
}
