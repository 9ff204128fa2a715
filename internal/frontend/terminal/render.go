package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// drawText writes a line of text starting at column 0 of the given row,
// advancing by display width so wide characters occupy their full cells.
func drawText(screen tcell.Screen, row int, text string, style tcell.Style) {
	width, _ := screen.Size()

	x := 0
	for _, r := range text {
		if x >= width {
			break
		}
		screen.SetContent(x, row, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
