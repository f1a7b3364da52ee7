// Package audio plays short synthesized cues for wall interactions.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/photowall/constants"
)

// Player mixes cues into the speaker
// Safe for concurrent use; every method is a no-op until Init succeeds
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	logger      *zap.Logger
	initialized bool
	muted       bool
	lastPlayed  [soundTypeCount]time.Time
	now         func() time.Time
}

// NewPlayer creates a player; call Init to open the output device
func NewPlayer(cfg Config, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultConfig().SampleRate
	}
	return &Player{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
		muted:  !cfg.Enabled,
		now:    time.Now,
	}
}

// Init opens the speaker and starts the mixer
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}

	speaker.Play(p.mixer)
	p.initialized = true
	p.logger.Debug("audio initialized", zap.Int("sample_rate", p.cfg.SampleRate))
	return nil
}

// Active reports whether an output device is open
func (p *Player) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues a cue; repeats of the same cue inside MinSoundGap are dropped
// Returns true when the cue was queued
func (p *Player) Play(st SoundType) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return false
	}
	return p.queueLocked(st)
}

func (p *Player) queueLocked(st SoundType) bool {
	if st < 0 || st >= soundTypeCount {
		return false
	}
	now := p.now()
	if !p.lastPlayed[st].IsZero() && now.Sub(p.lastPlayed[st]) < constants.MinSoundGap {
		return false
	}

	s := Synthesize(st, p.cfg)
	if s == nil {
		return false
	}
	p.lastPlayed[st] = now

	// Mixer is read by the speaker goroutine
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	return true
}

// SetMuted mutes or unmutes cues
func (p *Player) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// ToggleMute flips the mute state and returns the new state
func (p *Player) ToggleMute() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	return p.muted
}

// IsMuted reports the mute state
func (p *Player) IsMuted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Close stops all cues and closes the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
