package draw

import (
	"os"

	"golang.org/x/term"
)

// TermSizeFunc reports the terminal size in columns and rows.
type TermSizeFunc func() (width, height int, err error)

// StdoutSize reports the size of the terminal attached to stdout.
func StdoutSize() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// FitSquare picks the largest render area that shows a square world with
// square sub-pixels (one column is as wide as half a row is tall), capped at
// maxWidth columns, and the offsets that center it in the terminal.
func FitSquare(termWidth, termHeight, maxWidth int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, termHeight*2, maxWidth)
	if renderWidth < 0 {
		renderWidth = 0
	}
	renderWidth -= renderWidth % 2
	renderHeight = renderWidth / 2
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}
