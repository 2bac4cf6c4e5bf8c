// Package loop provides the game loop and state management.
package loop

// GameState represents the current game phase.
type GameState int

const (
	GameStateStopped GameState = iota // Waiting for a click; nothing moves
	GameStatePlaying                  // Active gameplay
)

func (s GameState) String() string {
	switch s {
	case GameStateStopped:
		return "stopped"
	case GameStatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// Stats holds per-process counters shown in the overlay.
type Stats struct {
	Absorbed    int     // Wanderers absorbed in the current (or last) game
	BestRadius  float64 // Largest player radius reached since startup
	GamesPlayed int     // Number of stopped->playing transitions
	Steps       uint64  // Update steps executed while playing
}

// EventType identifies the type of game event.
type EventType int

const (
	EventStarted  EventType = iota // Stopped -> playing
	EventAbsorbed                  // Player absorbed a wanderer
	EventGameOver                  // Player hit an equal or larger wanderer
)

func (t EventType) String() string {
	switch t {
	case EventStarted:
		return "started"
	case EventAbsorbed:
		return "absorbed"
	case EventGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Event is emitted by the game for the host to react to (sound, logging).
type Event struct {
	Type     EventType
	Radius   float64 // Player radius when the event happened
	Absorbed int     // Absorbed count when the event happened
}
