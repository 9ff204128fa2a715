// Package lineedit implements a synchronous single-line editing state
// machine. It consumes one key event at a time, maintains a text buffer
// with a rune-indexed cursor, and supports word-wise movement and
// deletion plus wrap-around completion cycling.
package lineedit

import "github.com/dshills/templive/internal/input/key"

// Status is the editor's state after a transition.
type Status int

const (
	// Editing is the initial state: keys edit the buffer.
	Editing Status = iota

	// Completing is active while cycling through completion options.
	Completing

	// Accepted is terminal: the user accepted the buffer.
	Accepted

	// Aborted is terminal: the user abandoned the input.
	Aborted
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Editing:
		return "Editing"
	case Completing:
		return "Completing"
	case Accepted:
		return "Accepted"
	case Aborted:
		return "Aborted"
	default:
		return "Unknown"
	}
}

// CompleteFunc supplies completion candidates for the current input.
// stub is the buffer snapshot completion started from, line the text
// being composed and col the rune cursor position. An error is fatal to
// the current input step.
type CompleteFunc func(stub, line string, col int) ([]string, error)

// Editor is the line editing state machine. Each HandleKey call is one
// atomic transition; the editor never blocks.
type Editor struct {
	buf      []rune
	cursor   int
	status   Status
	complete CompleteFunc
	comp     *completion
}

// New creates an editor primed with initial text. The cursor starts at
// the end of the text. complete may be nil, which disables completion.
func New(initial string, complete CompleteFunc) *Editor {
	buf := []rune(initial)
	return &Editor{
		buf:      buf,
		cursor:   len(buf),
		complete: complete,
	}
}

// Text returns the current buffer contents.
func (e *Editor) Text() string { return string(e.buf) }

// Cursor returns the rune index of the cursor within the buffer.
func (e *Editor) Cursor() int { return e.cursor }

// Status returns the editor's current state.
func (e *Editor) Status() Status { return e.status }

// HandleKey performs one transition for the given key event and returns
// the resulting status. Events arriving after the editor reached a
// terminal state are ignored. A completion provider failure is returned
// as an error and leaves the editor usable but is treated as fatal by
// callers.
func (e *Editor) HandleKey(ev key.Event) (Status, error) {
	if e.status == Accepted || e.status == Aborted {
		return e.status, nil
	}

	// Completion cycling keys keep or enter the Completing state.
	if dir, ok := completionDir(ev); ok {
		if e.complete == nil {
			return e.status, nil
		}
		if err := e.cycle(dir); err != nil {
			return e.status, err
		}
		e.status = Completing
		return e.status, nil
	}

	// Any other key leaves Completing, keeping the currently selected
	// option as the buffer, and is then handled normally.
	if e.status == Completing {
		e.comp = nil
		e.status = Editing
	}

	switch {
	case ev.IsEnter() || ev.IsCtrl('j') || ev.IsCtrl('m'):
		e.status = Accepted

	case ev.IsEscape():
		e.status = Aborted

	case ev.Key == key.KeyBackspace && ev.Modifiers == key.ModNone:
		if e.cursor > 0 {
			e.buf = append(e.buf[:e.cursor-1], e.buf[e.cursor:]...)
			e.cursor--
		}

	case ev.Key == key.KeyDelete && ev.Modifiers == key.ModNone:
		if e.cursor < len(e.buf) {
			e.buf = append(e.buf[:e.cursor], e.buf[e.cursor+1:]...)
		}

	case ev.Key == key.KeyLeft && wordModifier(ev.Modifiers):
		e.cursor = prevWordStart(e.buf, e.cursor)

	case ev.Key == key.KeyRight && wordModifier(ev.Modifiers):
		e.cursor = nextWordEnd(e.buf, e.cursor)

	case ev.Key == key.KeyLeft && ev.Modifiers == key.ModNone:
		if e.cursor > 0 {
			e.cursor--
		}

	case ev.Key == key.KeyRight && ev.Modifiers == key.ModNone:
		if e.cursor < len(e.buf) {
			e.cursor++
		}

	case ev.Key == key.KeyHome || ev.IsCtrl('b'):
		e.cursor = 0

	case ev.Key == key.KeyEnd || ev.IsCtrl('e'):
		e.cursor = len(e.buf)

	case ev.IsCtrl('w'):
		start := prevWordStart(e.buf, e.cursor)
		e.buf = append(e.buf[:start], e.buf[e.cursor:]...)
		e.cursor = start

	case ev.IsCtrl('u'):
		e.buf = append([]rune{}, e.buf[e.cursor:]...)
		e.cursor = 0

	case ev.IsChar():
		e.buf = append(e.buf[:e.cursor], append([]rune{ev.Char()}, e.buf[e.cursor:]...)...)
		e.cursor++
	}

	return e.status, nil
}

// completionDir maps completion cycling keys to a direction: Tab and
// Down advance, Shift-Tab and Up go back.
func completionDir(ev key.Event) (int, bool) {
	switch {
	case ev.Key == key.KeyTab && ev.Modifiers.HasShift():
		return -1, true
	case ev.Key == key.KeyTab && ev.Modifiers == key.ModNone:
		return 1, true
	case ev.Key == key.KeyDown && ev.Modifiers == key.ModNone:
		return 1, true
	case ev.Key == key.KeyUp && ev.Modifiers == key.ModNone:
		return -1, true
	}
	return 0, false
}

// wordModifier reports whether modifiers request word-wise movement.
func wordModifier(m key.Modifier) bool {
	return m == key.ModShift || m == key.ModCtrl
}
