// Package desktop hosts the game in an ebiten window.
package desktop

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tomz197/absorb/internal/loop"
	"github.com/tomz197/absorb/internal/render"
)

// EventHandler receives game events, e.g. a sound manager.
type EventHandler interface {
	HandleEvent(ev loop.Event)
}

// Options configures the desktop host.
type Options struct {
	Events EventHandler // May be nil
	Logger *log.Logger  // Nil discards logs
	Debug  bool         // Show TPS/FPS in the corner
}

// frameInput is the input sampled for one ebiten update.
type frameInput struct {
	cursorX, cursorY int
	pressed          bool
	quit             bool
}

// Game adapts a loop.Game to ebiten.Game.
type Game struct {
	game     *loop.Game
	renderer *render.Renderer
	surface  *Surface
	events   EventHandler
	logger   *log.Logger
	debug    bool

	last                     time.Time
	ticks                    int // Simulation steps run by the last update
	lastCursorX, lastCursorY int
	hasCursor                bool
}

// Compile-time check that Game satisfies ebiten.Game.
var _ ebiten.Game = (*Game)(nil)

// NewGame wraps g for ebiten.
func NewGame(g *loop.Game, opts Options) *Game {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	screen := g.Screen()
	return &Game{
		game:     g,
		renderer: render.New(),
		surface:  NewSurface(float64(screen.Width), float64(screen.Height)),
		events:   opts.Events,
		logger:   logger,
		debug:    opts.Debug,
	}
}

// Update samples input and advances the simulation by the elapsed wall time.
func (d *Game) Update() error {
	x, y := ebiten.CursorPosition()
	in := frameInput{
		cursorX: x,
		cursorY: y,
		pressed: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		quit:    inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape),
	}
	return d.step(in, time.Now())
}

// step applies one frame of input, then ticks the game.
func (d *Game) step(in frameInput, now time.Time) error {
	if in.quit {
		return ebiten.Termination
	}

	d.handleCursor(in.cursorX, in.cursorY)
	if in.pressed {
		d.game.PointerDown()
	}

	d.ticks = 0
	if !d.last.IsZero() {
		d.ticks = d.game.Tick(now.Sub(d.last))
	}
	d.last = now

	for _, ev := range d.game.DrainEvents() {
		d.logEvent(ev)
		if d.events != nil {
			d.events.HandleEvent(ev)
		}
	}
	return nil
}

// handleCursor forwards pointer motion inside the window. The cursor
// position is polled, so only changes count as movement.
func (d *Game) handleCursor(x, y int) {
	screen := d.game.Screen()
	if x < 0 || y < 0 || x >= screen.Width || y >= screen.Height {
		return
	}
	if d.hasCursor && x == d.lastCursorX && y == d.lastCursorY {
		return
	}
	d.lastCursorX, d.lastCursorY = x, y
	d.hasCursor = true
	d.game.PointerMove(float64(x), float64(y))
}

func (d *Game) logEvent(ev loop.Event) {
	switch ev.Type {
	case loop.EventStarted:
		d.logger.Info("game started")
	case loop.EventAbsorbed:
		d.logger.Debug("absorbed", "radius", ev.Radius, "absorbed", ev.Absorbed)
	case loop.EventGameOver:
		d.logger.Info("game over", "radius", ev.Radius, "absorbed", ev.Absorbed)
	}
}

// Draw renders the current game state.
func (d *Game) Draw(screen *ebiten.Image) {
	d.surface.Begin(screen)
	d.renderer.Draw(d.surface, d.game)

	if d.debug {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS %.0f  FPS %.0f  steps %d", ebiten.ActualTPS(), ebiten.ActualFPS(), d.ticks), 4, d.game.Screen().Height-16)
	}
}

// Layout keeps the logical canvas size regardless of the window size.
func (d *Game) Layout(_, _ int) (int, int) {
	screen := d.game.Screen()
	return screen.Width, screen.Height
}
