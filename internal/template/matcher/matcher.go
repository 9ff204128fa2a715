// Package matcher locates pattern occurrences within a sequence of text
// lines, reporting exact per-line positions for each match.
package matcher

import "regexp"

// Match describes one located pattern occurrence.
type Match struct {
	// Text is the matched text.
	Text string

	// Line is the 0-based index of the line containing the match.
	Line int

	// Col is the 0-based byte column of the first matched byte.
	Col int

	// End is the 0-based byte column one past the last matched byte.
	End int
}

// Len returns the byte length of the matched text.
func (m Match) Len() int {
	return m.End - m.Col
}

// FindAll scans lines in order and returns every non-overlapping match
// of re, leftmost first. Positions are reported per physical line. limit
// caps the total number of matches across all lines; limit <= 0 means
// unbounded. An empty line sequence yields no matches.
func FindAll(lines []string, re *regexp.Regexp, limit int) []Match {
	var matches []Match
	for li, line := range lines {
		if limit > 0 && len(matches) >= limit {
			break
		}

		remaining := -1
		if limit > 0 {
			remaining = limit - len(matches)
		}

		for _, loc := range re.FindAllStringIndex(line, remaining) {
			matches = append(matches, Match{
				Text: line[loc[0]:loc[1]],
				Line: li,
				Col:  loc[0],
				End:  loc[1],
			})
		}
	}
	return matches
}
