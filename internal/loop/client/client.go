// Package client runs one terminal game session: input, simulation ticks
// and rendering for a single connection.
package client

import (
	"bufio"
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/input"
	"github.com/tomz197/absorb/internal/loop"
	"github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/object"
	"github.com/tomz197/absorb/internal/render"
)

// Client handles rendering and input for a single connection.
// Every client owns an independent game.
type Client struct {
	game         *loop.Game
	renderer     *render.Renderer
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates frame output for chunked writes
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	shutdown     <-chan struct{}
	onEvent      func(loop.Event)
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Variant      config.Variant // Zero value selects the classic variant
	Rand         *rand.Rand     // Nil seeds from the clock
	Logger       *log.Logger    // Nil discards session logs
	Shutdown     <-chan struct{}
	OnEvent      func(loop.Event) // Called for every game event, e.g. to play sounds
}

// NewClient creates a new client reading input from r and drawing to w.
func NewClient(r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	variant := opts.Variant
	if variant.Name == "" {
		variant = config.VariantClassic
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	screen := object.NewScreen(config.CanvasWidth, config.CanvasHeight)
	game := loop.NewGame(screen, variant, opts.Rand)

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.CanvasWidth, config.CanvasHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w)

	return &Client{
		game:         game,
		renderer:     render.New(),
		state:        NewClientState(),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		termSizeFunc: termSizeFunc,
		logger:       logger.With("user", opts.Username, "variant", variant.Name),
		shutdown:     opts.Shutdown,
		onEvent:      opts.OnEvent,
	}
}

// Game returns the session's game.
func (c *Client) Game() *loop.Game {
	return c.game
}

// Run starts the client loop. Blocks until the player quits, the input
// stream ends, ctx is cancelled or the shutdown notice runs out.
func (c *Client) Run(ctx context.Context) error {
	draw.EnterAltScreen(c.writer)
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	draw.ClearScreen(c.writer)
	defer func() {
		draw.DisableMouse(c.writer)
		draw.ShowCursor(c.writer)
		draw.ExitAltScreen(c.writer)
	}()

	c.logger.Info("session started")
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()

		// Check for server shutdown
		c.processShutdown()

		// Handle screen resize
		c.updateScreen()

		if c.state.shuttingDown {
			c.updateShutdownState()
		} else {
			c.game.Tick(c.state.delta)
		}
		c.processEvents()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		if wait := config.ClientTargetFrameTime - time.Since(frameStart); wait > 0 {
			select {
			case <-ctx.Done():
				c.state.Running = false
			case <-time.After(wait):
			}
		} else if ctx.Err() != nil {
			c.state.Running = false
		}
	}

	stats := c.game.Stats()
	c.logger.Info("session ended", "games", stats.GamesPlayed, "best", stats.BestRadius)
	return nil
}

// processInput reads input and forwards pointer events to the game in the
// order the terminal delivered them.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)
	in := c.state.Input

	if len(in.Pressed) > 0 || len(in.Mouse) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive session")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if !c.state.shuttingDown {
		for _, ev := range in.Mouse {
			c.handleMouse(ev)
		}
	}

	if in.Quit {
		c.state.Running = false
	}
}

// handleMouse maps a mouse report to canvas coordinates and feeds the game.
func (c *Client) handleMouse(ev input.MouseEvent) {
	if ev.Kind == input.MouseWheel {
		return
	}
	x, y := c.canvas.TerminalToLogical(ev.Col, ev.Row)
	c.game.PointerMove(x, y)
	if ev.Kind == input.MousePress && ev.Button == 0 {
		c.game.PointerDown()
	}
}

// processEvents logs game events and hands them to the event hook.
func (c *Client) processEvents() {
	for _, ev := range c.game.DrainEvents() {
		switch ev.Type {
		case loop.EventStarted:
			c.logger.Info("game started")
		case loop.EventAbsorbed:
			c.logger.Debug("absorbed", "radius", ev.Radius, "absorbed", ev.Absorbed)
		case loop.EventGameOver:
			c.logger.Info("game over", "radius", ev.Radius, "absorbed", ev.Absorbed)
		}
		if c.onEvent != nil {
			c.onEvent(ev)
		}
	}
}

// processShutdown switches to the shutdown notice once the server announces it.
func (c *Client) processShutdown() {
	if c.shutdown == nil || c.state.shuttingDown {
		return
	}
	select {
	case <-c.shutdown:
		c.state.shuttingDown = true
		c.state.shutdownTimer = config.ShutdownDisplaySeconds
	default:
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.WriteString("\033[H\033[2J")
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
}

// clampTermSize fits the 4:3 canvas into the terminal, clamps it to the max
// render resolution and computes the centering offset for the render area.
// A cell is about twice as tall as it is wide, so 4:3 needs rows = cols*3/8.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availWidth := min(max(termWidth, 1), config.MaxTermWidth)
	availHeight := min(max(termHeight, 1), config.MaxTermHeight)

	renderWidth = availWidth
	renderHeight = renderWidth * 3 / 8
	if renderHeight > availHeight {
		renderHeight = availHeight
		renderWidth = renderHeight * 8 / 3
	}
	renderWidth = max(renderWidth, 1)
	renderHeight = max(renderHeight, 1)

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
