package constants

import "time"

// MinSoundGap is the minimum gap between two cues of the same kind
const MinSoundGap = 50 * time.Millisecond

// Grab Sound Timing (drag start)
const (
	GrabSoundDuration = 60 * time.Millisecond
	GrabSoundAttack   = 5 * time.Millisecond
	GrabSoundRelease  = 40 * time.Millisecond
)

// Fling Sound Timing (release with inertia)
const (
	FlingSoundDuration = 220 * time.Millisecond
	FlingSoundAttack   = 60 * time.Millisecond
	FlingSoundRelease  = 150 * time.Millisecond
)

// Reveal Sound Timing (preview opened)
const (
	RevealSoundDuration           = 450 * time.Millisecond
	RevealSoundAttack             = 5 * time.Millisecond
	RevealSoundFundamentalRelease = 400 * time.Millisecond
	RevealSoundOvertoneRelease    = 150 * time.Millisecond
)

// Error Sound Timing (unknown command)
const (
	ErrorSoundDuration = 80 * time.Millisecond
	ErrorSoundAttack   = 5 * time.Millisecond
	ErrorSoundRelease  = 20 * time.Millisecond
)
