package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/object"
	"github.com/tomz197/absorb/internal/physics"
)

// Game owns the wanderer pool, the player and the state machine.
// It is not safe for concurrent use; the host drives it from one frame
// callback and delivers input between ticks.
type Game struct {
	screen  object.Screen
	variant config.Variant
	rng     *rand.Rand

	state  GameState
	pool   object.Pool
	player object.Entity

	// Latest pointer position in canvas coordinates.
	pointerX, pointerY float64
	hasPointer         bool

	accumulator time.Duration
	stats       Stats
	events      []Event
}

// NewGame creates a stopped game with a fresh on-screen pool.
// A nil rng is replaced by one seeded from the clock.
func NewGame(screen object.Screen, variant config.Variant, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g := &Game{
		screen:  screen,
		variant: variant,
		rng:     rng,
		state:   GameStateStopped,
	}
	g.Reset()
	return g
}

// Reset replaces the pool with fresh on-screen wanderers and recreates the
// player at the canvas center. The game state is left unchanged.
func (g *Game) Reset() {
	g.pool.Reset(g.rng, g.screen, object.SpawnOnScreen)
	g.player = object.NewPlayer(g.screen)
}

// Tick feeds elapsed host time into the fixed-timestep accumulator and runs
// one UpdateStep per whole frame interval. Returns the number of steps run.
func (g *Game) Tick(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	if elapsed > config.MaxFrameDelta {
		elapsed = config.MaxFrameDelta
	}
	g.accumulator += elapsed

	interval := g.variant.FrameInterval()
	steps := 0
	for g.accumulator >= interval {
		g.accumulator -= interval
		g.UpdateStep()
		steps++
	}
	return steps
}

// UpdateStep advances the simulation by exactly one frame. Does nothing
// unless the game is playing.
func (g *Game) UpdateStep() {
	if g.state != GameStatePlaying {
		return
	}
	g.stats.Steps++

	g.pool.Each(func(e *object.Entity) {
		e.Update()
	})
	g.cullOutOfBounds()
	g.pool.Fill(g.rng, g.screen, object.SpawnOffScreenEdge)

	g.movePlayer()

	if lost := g.resolveCollisions(); lost {
		return
	}
	g.pool.Fill(g.rng, g.screen, object.SpawnOffScreenEdge)
}

// cullOutOfBounds drops wanderers that are entirely beyond the canvas
// extended by the cull margin.
func (g *Game) cullOutOfBounds() {
	w := float64(g.screen.Width)
	h := float64(g.screen.Height)
	g.pool.Retain(func(e *object.Entity) bool {
		return !physics.CircleOutside(e.X, e.Y, e.R, w, h, config.CullMargin)
	})
}

// movePlayer snaps the player to the latest pointer position.
func (g *Game) movePlayer() {
	if !g.hasPointer {
		return
	}
	x, y := g.pointerX, g.pointerY
	if g.variant.HalfRadiusOffset {
		x += g.player.R / 2
		y += g.player.R / 2
	}
	g.player.X = x
	g.player.Y = y
}

// PointerMove records the latest pointer position in canvas coordinates.
// The player follows it on the next update step.
func (g *Game) PointerMove(x, y float64) {
	g.pointerX = x
	g.pointerY = y
	g.hasPointer = true
}

// PointerDown starts a game when stopped. It has no effect while playing.
func (g *Game) PointerDown() {
	if g.state == GameStatePlaying {
		return
	}
	g.state = GameStatePlaying
	g.stats.Absorbed = 0
	g.stats.GamesPlayed++
	if g.player.R > g.stats.BestRadius {
		g.stats.BestRadius = g.player.R
	}
	g.accumulator = 0
	g.emit(EventStarted)
}

// DrainEvents returns and clears the events recorded since the last call.
func (g *Game) DrainEvents() []Event {
	if len(g.events) == 0 {
		return nil
	}
	events := g.events
	g.events = nil
	return events
}

func (g *Game) emit(t EventType) {
	g.events = append(g.events, Event{
		Type:     t,
		Radius:   g.player.R,
		Absorbed: g.stats.Absorbed,
	})
}

// State returns the current game phase.
func (g *Game) State() GameState {
	return g.state
}

// Playing reports whether the game is in the playing state.
func (g *Game) Playing() bool {
	return g.state == GameStatePlaying
}

// Player returns a copy of the player entity.
func (g *Game) Player() object.Entity {
	return g.player
}

// WandererCount returns the number of live wanderers.
func (g *Game) WandererCount() int {
	return g.pool.Len()
}

// EachWanderer calls fn with a copy of every live wanderer in pool order.
func (g *Game) EachWanderer(fn func(e object.Entity)) {
	g.pool.Each(func(e *object.Entity) {
		fn(*e)
	})
}

// Stats returns the session counters.
func (g *Game) Stats() Stats {
	return g.stats
}

// Screen returns the logical canvas dimensions.
func (g *Game) Screen() object.Screen {
	return g.screen
}

// Variant returns the constants this game runs with.
func (g *Game) Variant() config.Variant {
	return g.variant
}
