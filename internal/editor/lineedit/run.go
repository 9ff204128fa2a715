package lineedit

import "github.com/dshills/templive/internal/input/key"

// KeySource yields key events one at a time, blocking until input is
// available. Implementations filter out non-key input (mouse, resize,
// focus) before events reach the editor.
type KeySource interface {
	NextKey() (key.Event, error)
}

// OnKey is invoked after every transition while input is still being
// collected, with the current buffer and the key just handled. Returning
// true ends input early as if Enter had been pressed, accepting the
// buffer as it stands.
type OnKey func(text string, ev key.Event) bool

// Result is the outcome of an input run. Aborted input leaves Accepted
// false and Text empty; there is no final value.
type Result struct {
	Text     string
	Accepted bool
}

// Run drives the editor against a key source until the input is
// accepted, aborted or cancelled by the callback. Key source failures
// and completion provider errors end the run immediately.
func Run(e *Editor, src KeySource, onKey OnKey) (Result, error) {
	for {
		ev, err := src.NextKey()
		if err != nil {
			return Result{}, err
		}

		st, err := e.HandleKey(ev)
		if err != nil {
			return Result{}, err
		}

		switch st {
		case Accepted:
			return Result{Text: e.Text(), Accepted: true}, nil
		case Aborted:
			return Result{}, nil
		}

		if onKey != nil && onKey(e.Text(), ev) {
			return Result{Text: e.Text(), Accepted: true}, nil
		}
	}
}
