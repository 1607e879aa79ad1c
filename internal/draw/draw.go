// Package draw renders the world onto an ANSI terminal. Each character cell
// holds two stacked sub-pixels drawn with half-block glyphs, so a cell row
// is two pixel rows tall.
package draw

// Point is a position in world coordinates.
type Point struct {
	X, Y float64
}

// Sub-pixel bits of a cell.
const (
	subTop uint8 = 1 << iota
	subBottom
)

// glyphs is indexed by a cell's sub-pixel bits.
var glyphs = [4]rune{' ', '▀', '▄', '█'}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
