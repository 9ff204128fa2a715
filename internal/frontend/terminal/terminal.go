// Package terminal wires the templating engine to a live terminal using
// tcell: it supplies key events to the line editor and renders preview
// notifications over the displayed document. The engine itself stays
// headless; everything here is replaceable glue.
package terminal

import (
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/templive/internal/input/key"
)

// ErrScreenClosed indicates the screen shut down while waiting for input.
var ErrScreenClosed = errors.New("terminal screen closed")

// UI renders a document with live previews and yields key events. It
// implements both the session's KeySource and Preview collaborators.
type UI struct {
	screen tcell.Screen

	// lines is the document snapshot being displayed; top is the
	// 1-based document line shown in the first row.
	lines []string
	top   int

	// overlays maps document lines to active preview text.
	overlays map[int]string

	docStyle     tcell.Style
	overlayStyle tcell.Style
}

// New creates a UI on a real terminal screen.
func New() (*UI, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a UI on an existing initialized screen. Tests
// use this with tcell's simulation screen.
func NewWithScreen(screen tcell.Screen) *UI {
	return &UI{
		screen:       screen,
		top:          1,
		overlays:     make(map[int]string),
		docStyle:     tcell.StyleDefault,
		overlayStyle: tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow),
	}
}

// Close shuts the screen down.
func (u *UI) Close() {
	u.screen.Fini()
}

// ShowDocument displays lines with the given 1-based document line in
// the first row and clears any previews.
func (u *UI) ShowDocument(lines []string, top int) {
	u.lines = make([]string, len(lines))
	copy(u.lines, lines)
	if top < 1 {
		top = 1
	}
	u.top = top
	u.overlays = make(map[int]string)
	u.redraw()
}

// NextKey implements the engine's key source: it blocks for the next
// key event, silently consuming mouse, paste, focus and resize events.
func (u *UI) NextKey() (key.Event, error) {
	for {
		switch ev := u.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if converted, ok := convertKey(ev); ok {
				return converted, nil
			}
		case *tcell.EventResize:
			u.screen.Sync()
			u.redraw()
		case nil:
			return key.Event{}, ErrScreenClosed
		}
	}
}

// Changed implements the session's preview collaborator.
func (u *UI) Changed(lineNumber int, newText string) {
	u.overlays[lineNumber] = newText
	u.redraw()
}

// Closed implements the session's preview collaborator.
func (u *UI) Closed(lineNumber int) {
	delete(u.overlays, lineNumber)
	u.redraw()
}

func (u *UI) redraw() {
	u.screen.Clear()
	_, height := u.screen.Size()

	for row := 0; row < height; row++ {
		docLine := u.top + row
		idx := docLine - 1
		if idx < 0 || idx >= len(u.lines) {
			continue
		}
		if text, ok := u.overlays[docLine]; ok {
			drawText(u.screen, row, text, u.overlayStyle)
			continue
		}
		drawText(u.screen, row, u.lines[idx], u.docStyle)
	}

	u.screen.Show()
}
