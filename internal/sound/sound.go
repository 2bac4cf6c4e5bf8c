// Package sound plays short synthesized cues for game events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/tomz197/absorb/internal/loop"
)

// Sound identifies a cue.
type Sound int

const (
	SoundStart Sound = iota
	SoundAbsorb
	SoundGameOver
)

func (s Sound) String() string {
	switch s {
	case SoundStart:
		return "start"
	case SoundAbsorb:
		return "absorb"
	case SoundGameOver:
		return "game over"
	}
	return "unknown"
}

// Manager manages all game audio. The zero speaker state is silent: until
// Initialize succeeds every Play call is a no-op, so the game runs without
// an audio device.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewManager creates a sound manager with volume in [0,1].
func NewManager(volume float64) *Manager {
	return &Manager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
	}
}

// Initialize sets up the audio device.
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}

	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio device.
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()

	speaker.Close()
	m.initialized = false
}

// Initialized reports whether audio output is active.
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Play starts a cue. radius only affects SoundAbsorb.
func (m *Manager) Play(s Sound, radius float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}

	streamer := effect(s, radius, m.volume)
	if streamer == nil {
		return
	}

	speaker.Lock()
	m.mixer.Add(streamer)
	speaker.Unlock()
}

// HandleEvent plays the cue for a game event.
func (m *Manager) HandleEvent(ev loop.Event) {
	if s, ok := SoundFor(ev); ok {
		m.Play(s, ev.Radius)
	}
}

// SoundFor maps a game event to its cue.
func SoundFor(ev loop.Event) (Sound, bool) {
	switch ev.Type {
	case loop.EventStarted:
		return SoundStart, true
	case loop.EventAbsorbed:
		return SoundAbsorb, true
	case loop.EventGameOver:
		return SoundGameOver, true
	}
	return 0, false
}

// effect returns the streamer for a cue.
func effect(s Sound, radius, volume float64) beep.Streamer {
	switch s {
	case SoundStart:
		return CreateStartSound(volume)
	case SoundAbsorb:
		return CreateAbsorbSound(radius, volume)
	case SoundGameOver:
		return CreateGameOverSound(volume)
	}
	return nil
}
