package client

import (
	"time"

	"github.com/tomz197/absorb/internal/input"
)

// ClientState holds per-session state that is not part of the game itself.
// Each client has its own instance, managed by the Client.
type ClientState struct {
	Input         input.Input
	Running       bool          // Client loop running
	delta         time.Duration // Frame delta time
	isInactive    bool          // Whether the inactivity warning is shown
	shuttingDown  bool          // Server announced shutdown
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}
