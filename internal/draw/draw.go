// Package draw renders to ANSI terminals: a colored half-block canvas,
// cursor and mouse-mode control sequences and chunked output.
package draw

import (
	"fmt"
	"io"
)

// BlockUpperHalf draws the top pixel of a cell in the foreground color
// and the bottom pixel in the background color.
const BlockUpperHalf = '▀'

// Align controls horizontal text placement relative to the anchor x.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Mouse reporting: any-event tracking (motion without buttons held)
// with SGR extended coordinates.
const (
	mouseOn  = "\033[?1003h\033[?1006h"
	mouseOff = "\033[?1006l\033[?1003l"
)

// EnableMouse asks the terminal to report pointer motion and clicks.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOn)
}

// DisableMouse turns mouse reporting back off.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, mouseOff)
}

// EnterAltScreen switches to the alternate screen buffer.
func EnterAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049h")
}

// ExitAltScreen restores the main screen buffer.
func ExitAltScreen(w io.Writer) {
	fmt.Fprint(w, "\033[?1049l")
}
