package desktop

import (
	"errors"
	"image/color"
	"math/rand"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/loop"
	"github.com/tomz197/absorb/internal/loop/config"
	"github.com/tomz197/absorb/internal/object"
)

type recorder struct {
	events []loop.Event
}

func (r *recorder) HandleEvent(ev loop.Event) {
	r.events = append(r.events, ev)
}

func newTestGame(events EventHandler) *Game {
	screen := object.NewScreen(config.CanvasWidth, config.CanvasHeight)
	g := loop.NewGame(screen, config.VariantCentered, rand.New(rand.NewSource(7)))
	return NewGame(g, Options{Events: events})
}

func TestStep_PressStartsAndForwardsEvents(t *testing.T) {
	rec := &recorder{}
	d := newTestGame(rec)
	now := time.Unix(0, 0)

	if err := d.step(frameInput{cursorX: 100, cursorY: 120, pressed: true}, now); err != nil {
		t.Fatalf("step: %v", err)
	}
	if !d.game.Playing() || d.game.Stats().GamesPlayed != 1 {
		t.Fatal("press did not start a game")
	}
	if len(rec.events) == 0 || rec.events[0].Type != loop.EventStarted {
		t.Errorf("events = %+v, want EventStarted first", rec.events)
	}
}

func TestStep_TicksByElapsedTime(t *testing.T) {
	d := newTestGame(nil)
	now := time.Unix(0, 0)

	_ = d.step(frameInput{cursorX: -1, cursorY: -1}, now)
	if d.ticks != 0 {
		t.Errorf("first update ran %d steps, want 0", d.ticks)
	}

	_ = d.step(frameInput{cursorX: -1, cursorY: -1}, now.Add(50*time.Millisecond))
	if d.ticks != 3 {
		t.Errorf("steps after 50ms = %d, want 3", d.ticks)
	}
}

func TestStep_CursorOutsideWindowIgnored(t *testing.T) {
	d := newTestGame(nil)
	now := time.Unix(0, 0)
	start := d.game.Player()

	_ = d.step(frameInput{cursorX: -5, cursorY: 10, pressed: true}, now)
	_ = d.step(frameInput{cursorX: 900, cursorY: 10}, now.Add(20*time.Millisecond))

	if p := d.game.Player(); d.game.Playing() && (p.X != start.X || p.Y != start.Y) {
		t.Errorf("player moved to (%v,%v) without an in-window cursor", p.X, p.Y)
	}
	if d.hasCursor {
		t.Error("out-of-window cursor was recorded")
	}
}

func TestStep_CursorMovesPlayer(t *testing.T) {
	d := newTestGame(nil)
	now := time.Unix(0, 0)

	_ = d.step(frameInput{cursorX: 10, cursorY: 10}, now)
	if !d.hasCursor || d.lastCursorX != 10 || d.lastCursorY != 10 {
		t.Errorf("cursor not recorded: has=%v (%d,%d)", d.hasCursor, d.lastCursorX, d.lastCursorY)
	}
}

func TestStep_QuitTerminates(t *testing.T) {
	d := newTestGame(nil)
	if err := d.step(frameInput{quit: true}, time.Now()); !errors.Is(err, ebiten.Termination) {
		t.Errorf("quit returned %v, want ebiten.Termination", err)
	}
}

func TestLayout(t *testing.T) {
	d := newTestGame(nil)
	w, h := d.Layout(1920, 1080)
	if w != config.CanvasWidth || h != config.CanvasHeight {
		t.Errorf("Layout = %dx%d, want %dx%d", w, h, config.CanvasWidth, config.CanvasHeight)
	}
}

func TestSurface_StateStack(t *testing.T) {
	s := NewSurface(800, 600)
	s.SetFill(draw.ColorBlue)
	s.Save()
	s.SetFill(draw.ColorYellow)
	s.SetShadow(3, 3, 6, draw.ColorShadow)
	s.SetTextAlign(draw.AlignCenter)

	if !s.state.hasShadow() {
		t.Error("shadow not set")
	}
	s.Restore()
	if s.state.fill != draw.ColorBlue || s.state.hasShadow() || s.state.align != draw.AlignLeft {
		t.Errorf("state after restore = %+v", s.state)
	}
	s.Restore() // unbalanced, ignored
	if s.state.fill != draw.ColorBlue {
		t.Errorf("fill after extra restore = %v", s.state.fill)
	}

	if w, h := s.Size(); w != 800 || h != 600 {
		t.Errorf("Size = %vx%v, want 800x600", w, h)
	}
}

func TestSurface_DrawWithoutTargetIsNoop(t *testing.T) {
	s := NewSurface(800, 600)
	s.SetShadow(3, 3, 6, draw.ColorShadow)
	s.FillRect(0, 0, 10, 10)
	s.FillCircle(5, 5, 5)
	s.StrokeCircle(5, 5, 5)
	s.FillText(5, 5, "text")
}

func TestRGBA(t *testing.T) {
	if got := rgba(draw.ColorWhite, 0xff); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("opaque white = %v", got)
	}
	if got := rgba(draw.ColorWhite, 0x80); got != (color.RGBA{128, 128, 128, 128}) {
		t.Errorf("half white = %v, want premultiplied", got)
	}
}
