package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// paintState holds the drawing attributes saved and restored by Save/Restore.
type paintState struct {
	fill        Color
	stroke      Color
	strokeWidth float64
	shadow      Color
	shadowDX    float64
	shadowDY    float64
	shadowBlur  float64
	align       Align
}

func defaultPaintState() paintState {
	return paintState{
		fill:        ColorWhite,
		stroke:      ColorWhite,
		strokeWidth: 1,
		align:       AlignLeft,
	}
}

// hasShadow reports whether fills should cast a shadow.
func (s paintState) hasShadow() bool {
	return s.shadow != ColorNone && (s.shadowDX != 0 || s.shadowDY != 0 || s.shadowBlur > 0)
}

// textItem is a text overlay positioned in 1-based canvas cells.
type textItem struct {
	col, row int
	text     string
	color    Color
}

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Actual terminal columns
	termHeight     int     // Actual terminal rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x], ColorNone if unset

	// Scaling from logical to pixel coordinates
	logicalWidth  float64 // Target/logical width
	logicalHeight float64 // Target/logical height
	scaleX        float64 // termWidth / logicalWidth
	scaleY        float64 // (termHeight*2) / logicalHeight

	// Offset for centering the render area when the terminal is larger than it.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	state paintState
	stack []paintState
	texts []textItem

	renderBuf strings.Builder // Reused between frames
}

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the actual terminal dimensions.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	subPixelHeight := termHeight * 2
	return &Canvas{
		termWidth:      termWidth,
		termHeight:     termHeight,
		subPixelHeight: subPixelHeight,
		pixels:         make([]Color, subPixelHeight*termWidth),
		logicalWidth:   logicalWidth,
		logicalHeight:  logicalHeight,
		scaleX:         float64(termWidth) / logicalWidth,
		scaleY:         float64(subPixelHeight) / logicalHeight,
		state:          defaultPaintState(),
	}
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}

	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(subPixelHeight) / c.logicalHeight
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels, pending text and drawing attributes.
func (c *Canvas) Clear() {
	clear(c.pixels)
	c.texts = c.texts[:0]
	c.stack = c.stack[:0]
	c.state = defaultPaintState()
}

// Size returns the logical canvas size.
func (c *Canvas) Size() (width, height float64) {
	return c.logicalWidth, c.logicalHeight
}

// Save pushes the current drawing attributes.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the most recently saved drawing attributes.
// Restore without a matching Save is ignored.
func (c *Canvas) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// SetFill sets the color used by FillRect, FillCircle and FillText.
func (c *Canvas) SetFill(col Color) {
	c.state.fill = col
}

// SetStroke sets the color and logical width used by StrokeCircle.
func (c *Canvas) SetStroke(col Color, width float64) {
	c.state.stroke = col
	c.state.strokeWidth = width
}

// SetShadow sets the shadow cast by filled circles. The terminal has no
// blending, so blur only grows the shadow.
func (c *Canvas) SetShadow(dx, dy, blur float64, col Color) {
	c.state.shadowDX = dx
	c.state.shadowDY = dy
	c.state.shadowBlur = blur
	c.state.shadow = col
}

// SetTextAlign sets horizontal alignment for FillText.
func (c *Canvas) SetTextAlign(a Align) {
	c.state.align = a
}

// setPixel sets a pixel at actual terminal coordinates (no scaling).
func (c *Canvas) setPixel(x, y int, col Color) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = col
	}
}

// pixel returns the color at actual terminal coordinates.
func (c *Canvas) pixel(x, y int) Color {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		return c.pixels[y*c.termWidth+x]
	}
	return ColorNone
}

// FillRect fills a logical rectangle with the fill color.
func (c *Canvas) FillRect(x, y, w, h float64) {
	x0 := int(math.Floor(x * c.scaleX))
	y0 := int(math.Floor(y * c.scaleY))
	x1 := int(math.Ceil((x + w) * c.scaleX))
	y1 := int(math.Ceil((y + h) * c.scaleY))
	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, c.termWidth)
	y1 = min(y1, c.subPixelHeight)
	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px < x1; px++ {
			row[px] = c.state.fill
		}
	}
}

// FillCircle fills a logical circle, casting the current shadow first.
func (c *Canvas) FillCircle(cx, cy, r float64) {
	if c.state.hasShadow() {
		c.fillEllipse(cx+c.state.shadowDX, cy+c.state.shadowDY, r+c.state.shadowBlur/2, c.state.shadow)
	}
	c.fillEllipse(cx, cy, r, c.state.fill)
}

// fillEllipse scan-fills a logical circle in pixel space, where it becomes an
// ellipse if the axes scale differently. Pixels are sampled at their centers;
// a circle too small to cover any center still lights the pixel under it.
func (c *Canvas) fillEllipse(cx, cy, r float64, col Color) {
	if r <= 0 || col == ColorNone {
		return
	}
	px, py := cx*c.scaleX, cy*c.scaleY
	rx, ry := r*c.scaleX, r*c.scaleY

	drawn := false
	yStart := int(math.Floor(py - ry))
	yEnd := int(math.Ceil(py + ry))
	for y := yStart; y <= yEnd; y++ {
		dy := (float64(y) + 0.5 - py) / ry
		if dy < -1 || dy > 1 {
			continue
		}
		half := rx * math.Sqrt(1-dy*dy)
		xStart := int(math.Ceil(px - half - 0.5))
		xEnd := int(math.Floor(px + half - 0.5))
		for x := xStart; x <= xEnd; x++ {
			c.setPixel(x, y, col)
			drawn = true
		}
	}
	if !drawn {
		c.setPixel(int(math.Floor(px)), int(math.Floor(py)), col)
	}
}

// StrokeCircle outlines a logical circle with the stroke color. The ring is
// never thinner than one terminal pixel.
func (c *Canvas) StrokeCircle(cx, cy, r float64) {
	col := c.state.stroke
	if r <= 0 || col == ColorNone {
		return
	}
	halfWidth := c.state.strokeWidth / 2
	if minHalf := 0.5 / math.Min(c.scaleX, c.scaleY); halfWidth < minHalf {
		halfWidth = minHalf
	}

	px, py := cx*c.scaleX, cy*c.scaleY
	outer := r + halfWidth
	xStart := int(math.Floor(px - outer*c.scaleX))
	xEnd := int(math.Ceil(px + outer*c.scaleX))
	yStart := int(math.Floor(py - outer*c.scaleY))
	yEnd := int(math.Ceil(py + outer*c.scaleY))

	for y := yStart; y <= yEnd; y++ {
		ly := (float64(y) + 0.5 - py) / c.scaleY
		for x := xStart; x <= xEnd; x++ {
			lx := (float64(x) + 0.5 - px) / c.scaleX
			d := math.Sqrt(lx*lx + ly*ly)
			if math.Abs(d-r) <= halfWidth {
				c.setPixel(x, y, col)
			}
		}
	}
}

// FillText queues text anchored at a logical position. Text is drawn over
// the pixels when the canvas is rendered.
func (c *Canvas) FillText(x, y float64, text string) {
	if text == "" {
		return
	}
	col, row := c.LogicalToTerminal(x, y)
	if c.state.align == AlignCenter {
		col -= utf8.RuneCountInString(text) / 2
	}
	c.texts = append(c.texts, textItem{col: col, row: row, text: text, color: c.state.fill})
}

// cellStyle is the foreground/background pair currently active on the terminal.
type cellStyle struct {
	fg, bg Color
	set    bool
}

// Render outputs the canvas to the writer. Every cell is written, so no
// screen clear is needed between frames: a cell shows its top pixel as
// the foreground of an upper half block and its bottom pixel as the background.
func (c *Canvas) Render(w io.Writer) error {
	buf := &c.renderBuf
	buf.Reset()
	buf.Grow(c.termWidth * c.termHeight * 4)

	var style cellStyle
	for row := 0; row < c.termHeight; row++ {
		writeCursor(buf, c.offsetCol+1, row+1+c.offsetRow)
		topOffset := row * 2 * c.termWidth
		bottomOffset := (row*2 + 1) * c.termWidth

		for col := 0; col < c.termWidth; col++ {
			top := c.pixels[topOffset+col]
			bottom := c.pixels[bottomOffset+col]

			if top == bottom {
				if top == ColorNone {
					style = resetStyle(buf, style)
				} else {
					style = applyBg(buf, style, top)
				}
				buf.WriteByte(' ')
				continue
			}
			style = applyStyle(buf, style, orBlack(top), orBlack(bottom))
			buf.WriteRune(BlockUpperHalf)
		}
		style = resetStyle(buf, style)
	}

	for _, t := range c.texts {
		c.renderText(buf, t)
	}
	buf.WriteString(ColorReset)

	_, err := io.WriteString(w, buf.String())
	return err
}

// renderText writes one text overlay, clipped to the canvas.
func (c *Canvas) renderText(buf *strings.Builder, t textItem) {
	if t.row < 1 || t.row > c.termHeight {
		return
	}
	text := t.text
	col := t.col
	if col < 1 {
		text = skipRunes(text, 1-col)
		col = 1
	}
	room := c.termWidth - col + 1
	if room <= 0 || text == "" {
		return
	}
	text = truncateRunes(text, room)

	writeCursor(buf, col+c.offsetCol, t.row+c.offsetRow)
	buf.WriteString(fgSeq(t.color))
	buf.WriteString(bgSeq(ColorBlack))
	buf.WriteString(text)
	buf.WriteString(ColorReset)
}

func writeCursor(buf *strings.Builder, col, row int) {
	buf.WriteString("\033[")
	buf.WriteString(strconv.Itoa(row))
	buf.WriteByte(';')
	buf.WriteString(strconv.Itoa(col))
	buf.WriteByte('H')
}

func orBlack(col Color) Color {
	if col == ColorNone {
		return ColorBlack
	}
	return col
}

func resetStyle(buf *strings.Builder, s cellStyle) cellStyle {
	if s.set {
		buf.WriteString(ColorReset)
	}
	return cellStyle{}
}

func applyBg(buf *strings.Builder, s cellStyle, bg Color) cellStyle {
	if !s.set || s.bg != bg {
		buf.WriteString(bgSeq(bg))
		s.bg = bg
		s.set = true
	}
	return s
}

func applyStyle(buf *strings.Builder, s cellStyle, fg, bg Color) cellStyle {
	if !s.set || s.fg != fg {
		buf.WriteString(fgSeq(fg))
		s.fg = fg
	}
	s = applyBg(buf, s, bg)
	s.set = true
	return s
}

func skipRunes(s string, n int) string {
	for n > 0 && s != "" {
		_, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		n--
	}
	return s
}

func truncateRunes(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// RenderBorder draws a box border around the canvas area when the terminal
// exceeds the render area on either axis.
// Draws horizontal borders when there is vertical offset, vertical borders
// when there is horizontal offset, and corners when both are present.
func (c *Canvas) RenderBorder(w io.Writer) error {
	hasH := c.offsetCol >= 1 // Room for left/right vertical bars
	hasV := c.offsetRow >= 1 // Room for top/bottom horizontal bars
	if !hasH && !hasV {
		return nil
	}

	// Border positions (1-based terminal coordinates)
	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1

	var buf strings.Builder
	line := strings.Repeat("─", c.termWidth)

	if hasV {
		if hasH {
			writeCursor(&buf, left, top)
			buf.WriteString("┌" + line + "┐")
			writeCursor(&buf, left, bottom)
			buf.WriteString("└" + line + "┘")
		} else {
			writeCursor(&buf, c.offsetCol+1, top)
			buf.WriteString(line)
			writeCursor(&buf, c.offsetCol+1, bottom)
			buf.WriteString(line)
		}
	}

	if hasH {
		for row := c.offsetRow + 1; row < c.offsetRow+c.termHeight+1; row++ {
			writeCursor(&buf, left, row)
			buf.WriteString("│")
			writeCursor(&buf, right, row)
			buf.WriteString("│")
		}
	}

	_, err := io.WriteString(w, buf.String())
	return err
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}

// LogicalToTerminal converts logical coordinates to a 1-based canvas cell (col, row).
// The centering offset is not included.
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Floor(x * c.scaleX))
	py := int(math.Floor(y * c.scaleY))
	return px + 1, py/2 + 1
}

// TerminalToLogical converts an absolute 1-based terminal cell (as reported
// by the mouse) to the logical coordinates of that cell's center.
func (c *Canvas) TerminalToLogical(col, row int) (x, y float64) {
	px := float64(col-1-c.offsetCol) + 0.5
	py := float64(row-1-c.offsetRow)*2 + 1
	return px / c.scaleX, py / c.scaleY
}
