// Package document defines line-range access to the text being
// templated. The engine never performs I/O of its own; hosts supply a
// Document and decide where the lines live.
package document

import (
	"errors"
	"fmt"
)

// ErrRangeInvalid indicates a line range outside the document or with
// end before start.
var ErrRangeInvalid = errors.New("invalid line range")

// Document provides access to an ordered sequence of text lines. Line
// numbers are 1-based and ranges inclusive, matching editor conventions.
type Document interface {
	// Lines returns a copy of the lines in [start, end].
	Lines(start, end int) ([]string, error)

	// SetLines replaces the lines in [start, end] with newLines, which
	// may hold a different number of lines.
	SetLines(start, end int, newLines []string) error

	// LineCount returns the number of lines in the document.
	LineCount() int
}

// Memory is an in-memory Document.
type Memory struct {
	lines []string
}

// NewMemory creates a document holding a copy of the given lines.
func NewMemory(lines []string) *Memory {
	m := &Memory{lines: make([]string, len(lines))}
	copy(m.lines, lines)
	return m
}

// Lines implements Document.
func (m *Memory) Lines(start, end int) ([]string, error) {
	if err := m.checkRange(start, end); err != nil {
		return nil, err
	}
	out := make([]string, end-start+1)
	copy(out, m.lines[start-1:end])
	return out, nil
}

// SetLines implements Document.
func (m *Memory) SetLines(start, end int, newLines []string) error {
	if err := m.checkRange(start, end); err != nil {
		return err
	}
	replaced := make([]string, 0, len(m.lines)-(end-start+1)+len(newLines))
	replaced = append(replaced, m.lines[:start-1]...)
	replaced = append(replaced, newLines...)
	replaced = append(replaced, m.lines[end:]...)
	m.lines = replaced
	return nil
}

// LineCount implements Document.
func (m *Memory) LineCount() int {
	return len(m.lines)
}

// All returns a copy of every line.
func (m *Memory) All() []string {
	out := make([]string, len(m.lines))
	copy(out, m.lines)
	return out
}

func (m *Memory) checkRange(start, end int) error {
	if start < 1 || end < start || end > len(m.lines) {
		return fmt.Errorf("%w: [%d, %d] in %d lines", ErrRangeInvalid, start, end, len(m.lines))
	}
	return nil
}
