package draw

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// packetSize caps a single write to the terminal so an SSH frame leaves as
// several segment-sized packets instead of one large burst.
const packetSize = 1400

// Frame buffers everything written to the terminal during one frame and
// sends it with Flush. Cell positions given to Move and Text are 1-based
// and relative to the render area; the area's origin is added on output.
type Frame struct {
	w         io.Writer
	pending   []byte
	originCol int
	originRow int
}

// NewFrame returns an empty frame writing to w, with the render area at the
// terminal's top-left corner.
func NewFrame(w io.Writer) *Frame {
	return &Frame{w: w, pending: make([]byte, 0, 4096)}
}

// SetOrigin places the render area so its first cell is at terminal
// column col+1, row row+1.
func (f *Frame) SetOrigin(col, row int) {
	f.originCol = col
	f.originRow = row
}

// Origin returns the offsets set by SetOrigin.
func (f *Frame) Origin() (col, row int) {
	return f.originCol, f.originRow
}

// Move positions the cursor on a cell of the render area.
func (f *Frame) Move(col, row int) {
	f.pending = append(f.pending, "\033["...)
	f.pending = strconv.AppendInt(f.pending, int64(row+f.originRow), 10)
	f.pending = append(f.pending, ';')
	f.pending = strconv.AppendInt(f.pending, int64(col+f.originCol), 10)
	f.pending = append(f.pending, 'H')
}

// Text writes s starting at a cell of the render area.
func (f *Frame) Text(col, row int, s string) {
	f.Move(col, row)
	f.pending = append(f.pending, s...)
}

func (f *Frame) putRune(r rune) {
	f.pending = utf8.AppendRune(f.pending, r)
}

// ClearScreen wipes the whole terminal, including outside the render area.
func (f *Frame) ClearScreen() {
	f.pending = append(f.pending, "\033[H\033[2J"...)
}

// HideCursor hides the terminal cursor.
func (f *Frame) HideCursor() {
	f.pending = append(f.pending, "\033[?25l"...)
}

// ShowCursor shows the terminal cursor again.
func (f *Frame) ShowCursor() {
	f.pending = append(f.pending, "\033[?25h"...)
}

// Len reports how many bytes are waiting for Flush.
func (f *Frame) Len() int {
	return len(f.pending)
}

// Flush writes the buffered output in writes of at most packetSize bytes.
// The buffer is emptied even if a write fails.
func (f *Frame) Flush() error {
	p := f.pending
	f.pending = f.pending[:0]
	for len(p) > 0 {
		n := min(len(p), packetSize)
		if _, err := f.w.Write(p[:n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}
