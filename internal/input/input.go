// Package input reads keyboard and mouse input from a raw terminal stream.
package input

import (
	"bufio"
	"strconv"
)

// maxPending bounds an unterminated escape sequence carried across reads.
const maxPending = 32

// MouseKind distinguishes the mouse reports a terminal can send.
type MouseKind int

const (
	MouseMove MouseKind = iota
	MousePress
	MouseRelease
	MouseWheel
)

func (k MouseKind) String() string {
	switch k {
	case MouseMove:
		return "move"
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseWheel:
		return "wheel"
	}
	return "unknown"
}

// MouseEvent is one SGR mouse report. Col and Row are 1-based terminal cells.
type MouseEvent struct {
	Kind   MouseKind
	Button int // 0 left, 1 middle, 2 right; wheel: 0 up, 1 down
	Col    int
	Row    int
}

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Mouse   []MouseEvent // In delivery order
	Pressed []byte       // Plain key bytes, escape sequences removed
}

// Parser splits a raw terminal byte stream into key presses and mouse
// reports. A sequence cut off at the end of one read is completed by the next.
type Parser struct {
	pending []byte
}

// Feed parses data and appends the results to in.
func (p *Parser) Feed(data []byte, in *Input) {
	if len(p.pending) > 0 {
		data = append(p.pending, data...)
		p.pending = nil
	}

	for i := 0; i < len(data); {
		b := data[i]
		if b != '\x1b' {
			p.key(b, in)
			i++
			continue
		}

		// ESC at the very end may be the start of a sequence.
		if i+1 >= len(data) {
			p.keep(data[i:])
			return
		}
		if data[i+1] != '[' {
			p.key(b, in)
			i++
			continue
		}

		n, ok := p.csi(data[i:], in)
		if !ok {
			p.keep(data[i:])
			return
		}
		i += n
	}
}

// keep stores an incomplete sequence for the next Feed. Oversized
// fragments are garbage and are dropped.
func (p *Parser) keep(frag []byte) {
	if len(frag) > maxPending {
		return
	}
	p.pending = append(p.pending[:0], frag...)
}

func (p *Parser) key(b byte, in *Input) {
	switch b {
	case 'q', 'Q', 0x03: // Ctrl-C arrives as a byte in raw mode
		in.Quit = true
	}
	in.Pressed = append(in.Pressed, b)
}

// csi consumes a control sequence starting with ESC [ and returns its
// length. ok is false when the sequence is not yet complete.
func (p *Parser) csi(data []byte, in *Input) (n int, ok bool) {
	if len(data) < 3 {
		return 0, false
	}
	if data[2] == '<' {
		return p.sgrMouse(data, in)
	}

	// Any other CSI (arrows, focus, ...) is skipped up to its final byte.
	for j := 2; j < len(data); j++ {
		if data[j] >= 0x40 && data[j] <= 0x7e {
			return j + 1, true
		}
	}
	return 0, false
}

// sgrMouse parses ESC [ < b ; col ; row (M|m).
func (p *Parser) sgrMouse(data []byte, in *Input) (n int, ok bool) {
	var fields [3]int
	field := 0
	start := 3
	for j := 3; j < len(data); j++ {
		c := data[j]
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' || c == 'M' || c == 'm':
			if field >= len(fields) {
				return j + 1, true
			}
			v, err := strconv.Atoi(string(data[start:j]))
			if err != nil {
				return j + 1, true
			}
			fields[field] = v
			field++
			start = j + 1
			if c == ';' {
				continue
			}
			if field != len(fields) {
				return j + 1, true
			}
			in.Mouse = append(in.Mouse, decodeMouse(fields[0], fields[1], fields[2], c == 'm'))
			return j + 1, true
		default:
			// Malformed: drop the introducer and resync on the next byte.
			return 3, true
		}
	}
	return 0, false
}

func decodeMouse(code, col, row int, release bool) MouseEvent {
	ev := MouseEvent{Button: code & 3, Col: col, Row: row}
	switch {
	case code&64 != 0:
		ev.Kind = MouseWheel
	case release:
		ev.Kind = MouseRelease
	case code&32 != 0:
		ev.Kind = MouseMove
	default:
		ev.Kind = MousePress
	}
	return ev
}

// Stream delivers input bytes via a channel and parses them once per frame.
type Stream struct {
	ch     chan byte
	parser Parser
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// parses them. A closed stream reports Quit.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	var in Input
	s.parser.Feed(buf, &in)
	if s.closed {
		in.Quit = true
	}
	return in
}
