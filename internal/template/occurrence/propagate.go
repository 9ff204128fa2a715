package occurrence

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dshills/templive/internal/template/variable"
)

// Apply resolves every registered occurrence against a copy of lines
// using the given user input, visiting occurrences in ascending
// (line, column) order and correcting the positions of every occurrence
// not yet visited after each substitution. It returns the substituted
// line sequence and the 1-based numbers of every line touched, in
// ascending order without duplicates. The input slice is not modified.
func (r *Registry) Apply(lines []string, input string) ([]string, []int, error) {
	occs := r.snapshot()

	work := make([]string, len(lines))
	copy(work, lines)

	touched := make(map[int]bool)

	for i, occ := range occs {
		if err := occ.validate(work); err != nil {
			return nil, nil, err
		}

		rendered, err := variable.Classify(occ.Text).Apply(input)
		if err != nil {
			return nil, nil, err
		}

		li := occ.Line() - 1
		col := occ.Col() - 1
		line := work[li]

		// Replace the marker within its line, then split the result into
		// the physical lines it now spans. strings.Split preserves empty
		// halves, so leading or trailing breaks yield empty segments.
		spliced := line[:col] + rendered + line[col+occ.Length:]
		segments := strings.Split(spliced, "\n")

		lineDelta := len(segments) - 1
		if lineDelta < 0 {
			return nil, nil, fmt.Errorf("%w: marker %q", ErrLineCollapse, occ.Text)
		}

		work = spliceLines(work, li, segments)

		for j := li; j < li+len(segments); j++ {
			touched[j+1] = true
		}

		// The length of the rendering's own final line, without the tail
		// the splice carried over from the original line.
		lastRendered := rendered
		if nl := strings.LastIndexByte(rendered, '\n'); nl >= 0 {
			lastRendered = rendered[nl+1:]
		}

		correct(occs[i+1:], occ, lineDelta, len(rendered), len(lastRendered))
	}

	changed := make([]int, 0, len(touched))
	for ln := range touched {
		changed = append(changed, ln)
	}
	sort.Ints(changed)
	return work, changed, nil
}

// correct shifts every not-yet-resolved occurrence after one
// substitution. done is the occurrence just resolved; renderedLen is the
// byte length of its full rendered replacement and lastRenderedLen the
// byte length of the rendering's final line. All comparisons use the
// positions each occurrence held before this correction pass so the
// deltas come from one consistent snapshot.
func correct(pending []*Occurrence, done *Occurrence, lineDelta, renderedLen, lastRenderedLen int) {
	doneLine, doneCol := done.Line(), done.Col()
	replaceLen := renderedLen - done.Length

	for _, o := range pending {
		oLine, oCol := o.Line(), o.Col()

		// A duplicate of the position just resolved needs no correction.
		if oLine == doneLine && oCol == doneCol {
			continue
		}

		switch {
		case lineDelta == 0 && oLine == doneLine && oCol > doneCol:
			// Same line grew or shrank ahead of o.
			o.OffsetCol += replaceLen

		case lineDelta != 0 && oLine == doneLine && oCol > doneCol:
			// o trailed the marker on a line that has been split; it now
			// lives on the final rendered fragment, at its old distance
			// past the resolved marker.
			o.OffsetLine += lineDelta
			o.OffsetCol = (lastRenderedLen + oCol - doneCol - done.Length + 1) - o.RealCol

		case lineDelta != 0 && oLine > doneLine:
			o.OffsetLine += lineDelta
		}
	}
}

// spliceLines replaces lines[at] with the given segments.
func spliceLines(lines []string, at int, segments []string) []string {
	out := make([]string, 0, len(lines)+len(segments)-1)
	out = append(out, lines[:at]...)
	out = append(out, segments...)
	out = append(out, lines[at+1:]...)
	return out
}
