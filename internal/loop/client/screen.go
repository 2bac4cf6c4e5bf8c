package client

import (
	"fmt"
	"time"

	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/render"
)

// Notice box layout in logical units.
const (
	noticeLineHeight = 32
	noticePadding    = 24
)

// drawFrame draws the current frame. The canvas writes every cell, so no
// screen clear is needed between frames.
func (c *Client) drawFrame() error {
	c.canvas.Clear()
	c.renderer.Draw(c.canvas, c.game)
	c.drawUI()

	// Render canvas to terminal
	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}

	// Draw border when terminal exceeds max render resolution
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	return c.chunkWriter.Flush()
}

// drawUI draws session notices on top of the game frame.
func (c *Client) drawUI() {
	if c.state.shuttingDown {
		c.drawShutdownScreen()
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen()
	}
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen() {
	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	drawNotice(c.canvas,
		"INACTIVITY WARNING",
		fmt.Sprintf("Disconnecting in %d seconds", remaining),
		"Move the mouse to continue",
	)
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen() {
	remaining := int(c.state.shutdownTimer) + 1
	drawNotice(c.canvas,
		"SERVER SHUTTING DOWN",
		"Please reconnect in a moment",
		fmt.Sprintf("Disconnecting in %d seconds...", remaining),
		"Press Q to disconnect now",
	)
}

// drawNotice draws centered lines over a black band across the surface.
// The first line is the title.
func drawNotice(s render.Surface, lines ...string) {
	if len(lines) == 0 {
		return
	}
	w, h := s.Size()
	boxHeight := float64(len(lines))*noticeLineHeight + 2*noticePadding
	top := (h - boxHeight) / 2

	s.Save()
	s.SetFill(draw.ColorBlack)
	s.FillRect(0, top, w, boxHeight)

	s.SetTextAlign(draw.AlignCenter)
	for i, line := range lines {
		if i == 0 {
			s.SetFill(draw.ColorYellow)
		} else {
			s.SetFill(draw.ColorWhite)
		}
		s.FillText(w/2, top+noticePadding+float64(i)*noticeLineHeight, line)
	}
	s.Restore()
}
