package lineedit

import "fmt"

// completion is the cycling sub-state. The option list always starts
// with the stub the cycle began from, so wrapping all the way around
// restores the user's own text.
type completion struct {
	stub    string
	options []string
	index   int
}

// cycle enters the completion sub-state if necessary and advances the
// selected option by dir, wrapping in both directions. The provider is
// invoked once, on entry.
func (e *Editor) cycle(dir int) error {
	if e.comp == nil {
		stub := string(e.buf)
		results, err := e.complete(stub, stub, e.cursor)
		if err != nil {
			return fmt.Errorf("completion provider: %w", err)
		}
		e.comp = &completion{
			stub:    stub,
			options: append([]string{stub}, results...),
		}
		// Entry selects the stub itself; the first advance below moves
		// to the first provider result.
	}

	n := len(e.comp.options)
	e.comp.index = ((e.comp.index+dir)%n + n) % n

	e.buf = []rune(e.comp.options[e.comp.index])
	e.cursor = len(e.buf)
	return nil
}
