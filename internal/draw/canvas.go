package draw

import (
	"math"
	"slices"
	"strings"
)

// Canvas is the render area: a grid of cells, each holding two stacked
// sub-pixels. Drawing takes world coordinates and scales them to sub-pixels.
// Render sends only the cells that differ from the previous Render.
type Canvas struct {
	cols, rows int
	cells      []uint8 // sub-pixel bits per cell, row-major
	shown      []uint8 // cells as the terminal currently shows them

	worldWidth, worldHeight float64
	scaleX, scaleY          float64 // sub-pixels per world unit

	points    []Point
	scaled    []Point
	crossings []float64
}

// NewScaledCanvas creates a cols×rows canvas showing a world of the given
// size. The terminal is assumed blank.
func NewScaledCanvas(cols, rows int, worldWidth, worldHeight float64) *Canvas {
	c := &Canvas{worldWidth: worldWidth, worldHeight: worldHeight}
	c.allocate(cols, rows)
	return c
}

func (c *Canvas) allocate(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	c.cols, c.rows = cols, rows
	c.cells = make([]uint8, cols*rows)
	c.shown = make([]uint8, cols*rows)
	c.scaleX = float64(cols) / c.worldWidth
	c.scaleY = float64(rows*2) / c.worldHeight
}

// Resize changes the cell grid, keeping the world size. Nothing drawn
// survives; the caller clears the terminal.
func (c *Canvas) Resize(cols, rows int) {
	if cols != c.cols || rows != c.rows {
		c.allocate(cols, rows)
	}
}

// ForceRedraw assumes the terminal area was wiped, so the next Render
// repaints every non-empty cell.
func (c *Canvas) ForceRedraw() {
	clear(c.shown)
}

// Clear erases the drawing. The terminal keeps its content until Render.
func (c *Canvas) Clear() {
	clear(c.cells)
}

// Cols returns the width of the render area in cells.
func (c *Canvas) Cols() int { return c.cols }

// Rows returns the height of the render area in cells.
func (c *Canvas) Rows() int { return c.rows }

func (c *Canvas) plot(x, y int) {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows*2 {
		return
	}
	c.cells[(y/2)*c.cols+x] |= subTop << (y % 2)
}

func (c *Canvas) lit(x, y int) bool {
	if x < 0 || x >= c.cols || y < 0 || y >= c.rows*2 {
		return false
	}
	return c.cells[(y/2)*c.cols+x]&(subTop<<(y%2)) != 0
}

func (c *Canvas) toPixel(p Point) (int, int) {
	return int(math.Round(p.X * c.scaleX)), int(math.Round(p.Y * c.scaleY))
}

// SetFloat lights the sub-pixel under a world position.
func (c *Canvas) SetFloat(x, y float64) {
	c.plot(c.toPixel(Point{X: x, Y: y}))
}

// DrawLine draws a straight line between two world positions.
func (c *Canvas) DrawLine(a, b Point) {
	x0, y0 := c.toPixel(a)
	x1, y1 := c.toPixel(b)
	steps := max(absInt(x1-x0), absInt(y1-y0))
	if steps == 0 {
		c.plot(x0, y0)
		return
	}
	dx := float64(x1-x0) / float64(steps)
	dy := float64(y1-y0) / float64(steps)
	for i := 0; i <= steps; i++ {
		c.plot(x0+int(math.Round(float64(i)*dx)), y0+int(math.Round(float64(i)*dy)))
	}
}

// DrawPolygon outlines a closed polygon and optionally fills it.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	prev := points[len(points)-1]
	for _, p := range points {
		c.DrawLine(prev, p)
		prev = p
	}
}

// fillPolygon lights every sub-pixel whose center lies inside the polygon,
// one sub-pixel row at a time.
func (c *Canvas) fillPolygon(points []Point) {
	c.scaled = c.scaled[:0]
	top, bottom := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		q := Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
		c.scaled = append(c.scaled, q)
		top = math.Min(top, q.Y)
		bottom = math.Max(bottom, q.Y)
	}

	for y := int(math.Floor(top)); y <= int(math.Ceil(bottom)); y++ {
		c.crossings = crossings(c.crossings[:0], c.scaled, float64(y)+0.5)
		slices.Sort(c.crossings)
		for i := 0; i+1 < len(c.crossings); i += 2 {
			for x := int(math.Ceil(c.crossings[i])); x <= int(math.Floor(c.crossings[i+1])); x++ {
				c.plot(x, y)
			}
		}
	}
}

// crossings appends the x positions where the horizontal line at y crosses
// the polygon's edges.
func crossings(dst []float64, poly []Point, y float64) []float64 {
	prev := poly[len(poly)-1]
	for _, p := range poly {
		if (prev.Y <= y) != (p.Y <= y) {
			dst = append(dst, prev.X+(y-prev.Y)*(p.X-prev.X)/(p.Y-prev.Y))
		}
		prev = p
	}
	return dst
}

// Render queues the cells that changed since the last Render on f.
// Runs of changed cells on a row share one cursor move.
func (c *Canvas) Render(f *Frame) {
	for row := 0; row < c.rows; row++ {
		cursor := -1
		for col := 0; col < c.cols; col++ {
			i := row*c.cols + col
			bits := c.cells[i]
			if bits == c.shown[i] {
				continue
			}
			c.shown[i] = bits
			if col != cursor {
				f.Move(col+1, row+1)
			}
			f.putRune(glyphs[bits])
			cursor = col + 1
		}
	}
}

// RenderBorder frames the render area with box-drawing lines on the sides
// where the terminal has room outside it.
func (c *Canvas) RenderBorder(f *Frame) {
	originCol, originRow := f.Origin()
	sides := originCol >= 1
	ends := originRow >= 1
	bar := strings.Repeat("─", c.cols)

	if ends {
		if sides {
			f.Text(0, 0, "┌"+bar+"┐")
			f.Text(0, c.rows+1, "└"+bar+"┘")
		} else {
			f.Text(1, 0, bar)
			f.Text(1, c.rows+1, bar)
		}
	}
	if sides {
		for row := 1; row <= c.rows; row++ {
			f.Text(0, row, "│")
			f.Text(c.cols+1, row, "│")
		}
	}
}

// BorrowPoints returns a scratch slice of n points, valid until the next call.
func (c *Canvas) BorrowPoints(n int) []Point {
	if cap(c.points) < n {
		c.points = make([]Point, n)
	}
	return c.points[:n]
}
