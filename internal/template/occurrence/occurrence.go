// Package occurrence tracks every located instance of the template
// variable currently being resolved and applies the user's input across
// all of them, keeping not-yet-resolved positions correct as each
// substitution changes line counts and line lengths.
package occurrence

import (
	"errors"
	"fmt"
	"sort"
)

// Errors returned by occurrence operations.
var (
	// ErrLineCollapse indicates a substitution rendered fewer than one
	// line. This is an internal invariant violation, never a user error.
	ErrLineCollapse = errors.New("substitution collapsed to fewer than one line")

	// ErrPositionOutOfRange indicates an occurrence no longer addresses
	// valid text, meaning offset bookkeeping went wrong.
	ErrPositionOutOfRange = errors.New("occurrence position out of range")
)

// Occurrence is one located marker instance for the variable currently
// being resolved. RealLine and RealCol are fixed at scan time; the
// offsets accumulate corrections as other occurrences resolve first.
// Until this occurrence itself resolves, Line and Col address the still
// unresolved marker text in the current working line sequence.
type Occurrence struct {
	// RealLine is the 1-based line number at scan time.
	RealLine int

	// RealCol is the 1-based byte column at scan time.
	RealCol int

	// OffsetLine and OffsetCol are corrections accumulated while other
	// occurrences resolve.
	OffsetLine int
	OffsetCol  int

	// Length is the byte length of the raw marker text, not of the
	// eventual replacement.
	Length int

	// Text is the raw marker text, re-classified at apply time.
	Text string
}

// Line returns the current 1-based line number.
func (o *Occurrence) Line() int { return o.RealLine + o.OffsetLine }

// Col returns the current 1-based byte column.
func (o *Occurrence) Col() int { return o.RealCol + o.OffsetCol }

// Registry collects the occurrences of one variable index, keyed by
// (line, column) so duplicates collapse. A registry lives for exactly
// one variable's resolution.
type Registry struct {
	lines map[int]map[int]*Occurrence
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{lines: make(map[int]map[int]*Occurrence)}
}

// Add registers a marker occurrence at the given scan-time position.
// Registering the same (line, column) twice keeps the first entry.
func (r *Registry) Add(line, col int, text string) {
	cols, ok := r.lines[line]
	if !ok {
		cols = make(map[int]*Occurrence)
		r.lines[line] = cols
	}
	if _, exists := cols[col]; exists {
		return
	}
	cols[col] = &Occurrence{
		RealLine: line,
		RealCol:  col,
		Length:   len(text),
		Text:     text,
	}
}

// Len returns the number of registered occurrences.
func (r *Registry) Len() int {
	n := 0
	for _, cols := range r.lines {
		n += len(cols)
	}
	return n
}

// Lookup returns the occurrence registered at the given scan-time
// position, if any.
func (r *Registry) Lookup(line, col int) (*Occurrence, bool) {
	o, ok := r.lines[line][col]
	return o, ok
}

// snapshot returns value copies of every occurrence in resolve order:
// ascending line, then ascending column. Offsets start fresh so one
// apply pass never leaks corrections into the next.
func (r *Registry) snapshot() []*Occurrence {
	occs := make([]*Occurrence, 0, r.Len())
	for _, cols := range r.lines {
		for _, o := range cols {
			c := *o
			c.OffsetLine = 0
			c.OffsetCol = 0
			occs = append(occs, &c)
		}
	}
	sort.Slice(occs, func(i, j int) bool {
		if occs[i].RealLine != occs[j].RealLine {
			return occs[i].RealLine < occs[j].RealLine
		}
		return occs[i].RealCol < occs[j].RealCol
	})
	return occs
}

// All returns the registered occurrences in resolve order.
func (r *Registry) All() []*Occurrence {
	return r.snapshot()
}

func (o *Occurrence) validate(lines []string) error {
	li := o.Line() - 1
	if li < 0 || li >= len(lines) {
		return fmt.Errorf("%w: line %d of %d", ErrPositionOutOfRange, o.Line(), len(lines))
	}
	col := o.Col() - 1
	if col < 0 || col+o.Length > len(lines[li]) {
		return fmt.Errorf("%w: column %d length %d in line of %d bytes",
			ErrPositionOutOfRange, o.Col(), o.Length, len(lines[li]))
	}
	// The position must still address the unresolved marker itself;
	// anything else means offset bookkeeping drifted.
	if got := lines[li][col : col+o.Length]; got != o.Text {
		return fmt.Errorf("%w: line %d column %d holds %q, want marker %q",
			ErrPositionOutOfRange, o.Line(), o.Col(), got, o.Text)
	}
	return nil
}
