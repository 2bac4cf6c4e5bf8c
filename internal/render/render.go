package render

import (
	"fmt"

	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/loop"
	"github.com/tomz197/absorb/internal/object"
)

// Overlay layout in logical units.
const (
	hudMarginX   = 12
	hudMarginY   = 24
	lineSpacing  = 28
	playerShadow = 6
)

// Overlay text.
const (
	PromptStart = "Click to start"
	titleText   = "ABSORB"
)

// Renderer draws a game frame. It only reads game state.
type Renderer struct{}

// New creates a renderer.
func New() *Renderer {
	return &Renderer{}
}

// Draw renders the background, every wanderer, the player and the
// state-dependent overlay.
func (r *Renderer) Draw(s Surface, g *loop.Game) {
	r.drawBackground(s)

	g.EachWanderer(func(e object.Entity) {
		r.drawEntity(s, e)
	})

	r.drawPlayer(s, g.Player())

	if g.Playing() {
		r.drawHUD(s, g)
	} else {
		r.drawStartScreen(s, g)
	}
}

func (r *Renderer) drawBackground(s Surface) {
	w, h := s.Size()
	s.SetFill(draw.ColorBlack)
	s.FillRect(0, 0, w, h)
}

func (r *Renderer) drawEntity(s Surface, e object.Entity) {
	s.SetFill(e.Color)
	s.FillCircle(e.X, e.Y, e.R)
}

// drawPlayer draws the player with a soft drop shadow and a thin rim.
func (r *Renderer) drawPlayer(s Surface, p object.Entity) {
	s.Save()
	s.SetShadow(playerShadow/2, playerShadow/2, playerShadow, draw.ColorShadow)
	s.SetFill(p.Color)
	s.FillCircle(p.X, p.Y, p.R)
	s.Restore()

	s.SetStroke(draw.ColorWhite, 1)
	s.StrokeCircle(p.X, p.Y, p.R)
}

// drawHUD draws the in-game readout (top left).
func (r *Renderer) drawHUD(s Surface, g *loop.Game) {
	stats := g.Stats()
	s.Save()
	s.SetTextAlign(draw.AlignLeft)
	s.SetFill(draw.ColorYellow)
	s.FillText(hudMarginX, hudMarginY, fmt.Sprintf("Radius: %-4.0f Absorbed: %-4d", g.Player().R, stats.Absorbed))
	s.Restore()
}

// drawStartScreen draws the title, the last result and the click prompt.
func (r *Renderer) drawStartScreen(s Surface, g *loop.Game) {
	w, h := s.Size()
	cx, cy := w/2, h/2
	stats := g.Stats()

	s.Save()
	s.SetTextAlign(draw.AlignCenter)

	s.SetFill(draw.ColorWhite)
	s.FillText(cx, cy-2*lineSpacing, titleText)

	if stats.GamesPlayed > 0 {
		s.SetFill(draw.ColorGray)
		s.FillText(cx, cy-lineSpacing, fmt.Sprintf("Absorbed: %d   Best radius: %.0f", stats.Absorbed, stats.BestRadius))
	}

	s.SetFill(draw.ColorYellow)
	s.FillText(cx, cy+lineSpacing, PromptStart)
	s.Restore()
}
