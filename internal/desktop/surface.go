package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tomz197/absorb/internal/draw"
	"github.com/tomz197/absorb/internal/render"
	"golang.org/x/image/font/basicfont"
)

// Shadow blur is approximated by this many translucent rings.
const shadowRings = 3

// paintState holds the drawing attributes saved and restored by Save/Restore.
type paintState struct {
	fill        draw.Color
	stroke      draw.Color
	strokeWidth float64
	shadow      draw.Color
	shadowDX    float64
	shadowDY    float64
	shadowBlur  float64
	align       draw.Align
}

func defaultPaintState() paintState {
	return paintState{
		fill:        draw.ColorWhite,
		stroke:      draw.ColorWhite,
		strokeWidth: 1,
	}
}

func (s paintState) hasShadow() bool {
	return s.shadow != draw.ColorNone && (s.shadowDX != 0 || s.shadowDY != 0 || s.shadowBlur > 0)
}

// Surface draws onto an ebiten image in logical canvas units.
// Without a target image every draw call is a no-op.
type Surface struct {
	dst           *ebiten.Image
	width, height float64
	face          text.Face
	state         paintState
	stack         []paintState
}

// Compile-time check that Surface satisfies render.Surface.
var _ render.Surface = (*Surface)(nil)

// NewSurface creates a surface of the given logical size.
func NewSurface(width, height float64) *Surface {
	return &Surface{
		width:  width,
		height: height,
		face:   text.NewGoXFace(basicfont.Face7x13),
		state:  defaultPaintState(),
	}
}

// Begin starts a frame on dst and resets the drawing attributes.
func (s *Surface) Begin(dst *ebiten.Image) {
	s.dst = dst
	s.state = defaultPaintState()
	s.stack = s.stack[:0]
}

// Size returns the logical surface size.
func (s *Surface) Size() (width, height float64) {
	return s.width, s.height
}

// Save pushes the current drawing attributes.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.state)
}

// Restore pops the most recently saved attributes. Unbalanced calls are ignored.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.state = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *Surface) SetFill(c draw.Color) {
	s.state.fill = c
}

func (s *Surface) SetStroke(c draw.Color, width float64) {
	s.state.stroke = c
	s.state.strokeWidth = width
}

func (s *Surface) SetShadow(dx, dy, blur float64, c draw.Color) {
	s.state.shadowDX = dx
	s.state.shadowDY = dy
	s.state.shadowBlur = blur
	s.state.shadow = c
}

func (s *Surface) SetTextAlign(a draw.Align) {
	s.state.align = a
}

func (s *Surface) FillRect(x, y, w, h float64) {
	if s.dst == nil || s.state.fill == draw.ColorNone {
		return
	}
	vector.FillRect(s.dst, float32(x), float32(y), float32(w), float32(h), rgba(s.state.fill, 0xff), false)
}

// FillCircle fills a circle, casting the current shadow first as a few
// translucent rings that fade outward.
func (s *Surface) FillCircle(cx, cy, r float64) {
	if s.dst == nil {
		return
	}
	if st := s.state; st.hasShadow() {
		sx, sy := float32(cx+st.shadowDX), float32(cy+st.shadowDY)
		for i := shadowRings; i >= 1; i-- {
			grow := st.shadowBlur * float64(i) / (2 * shadowRings)
			alpha := uint8(0xc0 / (i + 1))
			vector.FillCircle(s.dst, sx, sy, float32(r+grow), rgba(st.shadow, alpha), true)
		}
	}
	if s.state.fill == draw.ColorNone {
		return
	}
	vector.FillCircle(s.dst, float32(cx), float32(cy), float32(r), rgba(s.state.fill, 0xff), true)
}

func (s *Surface) StrokeCircle(cx, cy, r float64) {
	if s.dst == nil || s.state.stroke == draw.ColorNone {
		return
	}
	vector.StrokeCircle(s.dst, float32(cx), float32(cy), float32(r), float32(s.state.strokeWidth), rgba(s.state.stroke, 0xff), true)
}

// FillText draws text with its baseline at y.
func (s *Surface) FillText(x, y float64, str string) {
	if s.dst == nil || str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(rgba(s.state.fill, 0xff))
	op.SecondaryAlign = text.AlignEnd
	if s.state.align == draw.AlignCenter {
		op.PrimaryAlign = text.AlignCenter
	}
	text.Draw(s.dst, str, s.face, op)
}

// rgba converts a palette color to an ebiten color with the given alpha.
func rgba(c draw.Color, alpha uint8) color.RGBA {
	r, g, b := c.RGB()
	// color.RGBA is premultiplied.
	scale := func(v uint8) uint8 { return uint8(uint16(v) * uint16(alpha) / 0xff) }
	return color.RGBA{R: scale(r), G: scale(g), B: scale(b), A: alpha}
}
