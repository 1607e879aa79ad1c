// Package input turns a raw terminal byte stream into per-frame key state.
package input

import (
	"bufio"
	"sync"
	"time"
)

// Hold sets how long a key stays held after its last byte. Terminals send
// no key-release events, so holding is inferred from auto-repeat: the first
// repeat arrives only after the keyboard's repeat delay (typically 250-660ms),
// and later repeats every 30-90ms.
type Hold struct {
	// Initial covers the gap between a press and its first repeat.
	Initial time.Duration
	// Repeat covers the gap between two repeats.
	Repeat time.Duration
}

// DefaultHold covers common repeat settings, including X11's 660ms delay
// at 25Hz.
var DefaultHold = Hold{
	Initial: 700 * time.Millisecond,
	Repeat:  120 * time.Millisecond,
}

func (h Hold) withDefaults() Hold {
	if h.Initial <= 0 {
		h.Initial = DefaultHold.Initial
	}
	if h.Repeat <= 0 {
		h.Repeat = DefaultHold.Repeat
	}
	return h
}

// Key names a key the ship can poll. Values match the browser key names.
type Key string

const (
	ArrowUp    Key = "ArrowUp"
	ArrowDown  Key = "ArrowDown"
	ArrowLeft  Key = "ArrowLeft"
	ArrowRight Key = "ArrowRight"
)

// Input represents the current frame's input state.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Pressed []byte
}

// IsPressed reports whether the named key is held this frame.
// Unknown key names are never pressed.
func (in Input) IsPressed(key Key) bool {
	switch key {
	case ArrowUp:
		return in.Up
	case ArrowDown:
		return in.Down
	case ArrowLeft:
		return in.Left
	case ArrowRight:
		return in.Right
	}
	return false
}

// keyPress is one key's recent history: when the current press began and
// when its last byte arrived.
type keyPress struct {
	start time.Time
	last  time.Time
}

func (k *keyPress) held(now time.Time, h Hold) bool {
	if k.last.IsZero() {
		return false
	}
	window := h.Repeat
	if k.last.Equal(k.start) {
		window = h.Initial
	}
	return now.Sub(k.last) < window
}

// see records a byte for the key. A byte while the key is already held is an
// auto-repeat; otherwise it starts a new press.
func (k *keyPress) see(now time.Time, h Hold) {
	if !k.held(now, h) {
		k.start = now
	}
	k.last = now
}

// keyState tracks every key the flight listens to.
type keyState struct {
	hold  Hold
	quit  keyPress
	left  keyPress
	right keyPress
	up    keyPress
	down  keyPress
}

// timing returns the hold windows, with defaults for unset fields.
func (ks *keyState) timing() Hold {
	return ks.hold.withDefaults()
}

// Stream delivers input bytes via a channel and tracks key state across frames.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	state     keyState
}

// StartStream spawns a goroutine that reads from r and sends bytes to the
// stream. The goroutine exits when r returns an error (EOF on session close)
// or after Close. Zero fields of hold fall back to DefaultHold.
func StartStream(r *bufio.Reader, hold Hold) *Stream {
	s := &Stream{
		ch:    make(chan byte, 128),
		done:  make(chan struct{}),
		state: keyState{hold: hold.withDefaults()},
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. A reader goroutine blocked in ReadByte exits
// on its next byte or error.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking)
// and returns the key state as of now.
func ReadInput(s *Stream) Input {
	now := time.Now()
	var buf []byte
	closed := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	applyBytes(&s.state, buf, now)
	in := s.state.snapshot(now)
	in.Pressed = buf
	if closed {
		// The reader is gone; treat it as a request to quit.
		in.Quit = true
	}
	return in
}

// ResetKeyInput forgets all held keys, e.g. after a screen transition.
func ResetKeyInput(s *Stream) {
	s.state = keyState{hold: s.state.hold}
}

// applyBytes parses the bytes collected for one frame into key presses.
// Arrow keys arrive as CSI sequences: ESC [ A|B|C|D.
func applyBytes(state *keyState, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up.see(now, state.timing())
				i += 2
				continue
			case 'B':
				state.down.see(now, state.timing())
				i += 2
				continue
			case 'C':
				state.right.see(now, state.timing())
				i += 2
				continue
			case 'D':
				state.left.see(now, state.timing())
				i += 2
				continue
			}
		}

		applyByteToState(state, b, now)
	}
}

// snapshot reports which keys are held at now.
func (ks *keyState) snapshot(now time.Time) Input {
	return Input{
		Quit:  ks.quit.held(now, ks.timing()),
		Left:  ks.left.held(now, ks.timing()),
		Right: ks.right.held(now, ks.timing()),
		Up:    ks.up.held(now, ks.timing()),
		Down:  ks.down.held(now, ks.timing()),
	}
}

// applyByteToState maps a plain key byte to its key.
func applyByteToState(state *keyState, b byte, now time.Time) {
	var k *keyPress
	switch b {
	case 'q', 'Q', '\x03':
		k = &state.quit
	case 'a', 'A', 'j', 'J':
		k = &state.left
	case 'd', 'D', 'l', 'L':
		k = &state.right
	case 'w', 'W', 'i', 'I':
		k = &state.up
	case 's', 'S', 'k', 'K':
		k = &state.down
	default:
		return
	}
	k.see(now, state.timing())
}
