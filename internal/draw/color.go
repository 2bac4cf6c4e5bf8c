package draw

import "strconv"

// Color is a palette index. The zero value is "no color" (empty pixel).
type Color uint8

// Palette entries.
const (
	ColorNone Color = iota
	ColorBlack
	ColorWhite
	ColorBlue
	ColorGray
	ColorYellow
	ColorShadow
	colorCount
)

type paletteEntry struct {
	r, g, b uint8
	xterm   int // 256-color index used by the terminal renderer
}

var palette = [colorCount]paletteEntry{
	ColorNone:   {0, 0, 0, 0},
	ColorBlack:  {0, 0, 0, 16},
	ColorWhite:  {255, 255, 255, 231},
	ColorBlue:   {0, 0, 255, 21},
	ColorGray:   {128, 128, 128, 244},
	ColorYellow: {255, 215, 0, 220},
	ColorShadow: {40, 40, 90, 17},
}

// ANSI color reset sequence.
const ColorReset = "\033[0m"

// RGB returns the 8-bit channels of the color.
func (c Color) RGB() (r, g, b uint8) {
	if c >= colorCount {
		return 0, 0, 0
	}
	p := palette[c]
	return p.r, p.g, p.b
}

// Xterm returns the 256-color palette index for the color.
func (c Color) Xterm() int {
	if c >= colorCount {
		return 0
	}
	return palette[c].xterm
}

// fgSeq returns the escape sequence selecting c as foreground.
func fgSeq(c Color) string {
	return "\033[38;5;" + strconv.Itoa(c.Xterm()) + "m"
}

// bgSeq returns the escape sequence selecting c as background.
func bgSeq(c Color) string {
	return "\033[48;5;" + strconv.Itoa(c.Xterm()) + "m"
}
