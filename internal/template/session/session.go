// Package session orchestrates one complete templating operation: for
// each variable index in turn it scans the working region for markers,
// tracks every occurrence, collects interactive input with live
// previews, and commits the substituted text. The operation is atomic
// with respect to the document: either every variable resolves and the
// document holds the fully substituted text, or the document is left
// exactly as it was.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dshills/templive/internal/document"
	"github.com/dshills/templive/internal/editor/lineedit"
	"github.com/dshills/templive/internal/input/key"
	"github.com/dshills/templive/internal/template/matcher"
	"github.com/dshills/templive/internal/template/occurrence"
	"github.com/dshills/templive/internal/template/variable"
)

// Errors returned by session operations.
var (
	// ErrNilDocument indicates no document collaborator was supplied.
	ErrNilDocument = errors.New("session requires a document")

	// ErrNilKeySource indicates no key source collaborator was supplied.
	ErrNilKeySource = errors.New("session requires a key source")
)

// Outcome is the result of a completed templating run.
type Outcome int

const (
	// Aborted means the user abandoned the run; the document is
	// untouched. Aborting is a normal termination, not an error.
	Aborted Outcome = iota

	// Committed means every variable resolved and the document holds
	// the substituted text.
	Committed
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == Committed {
		return "Committed"
	}
	return "Aborted"
}

// Region bounds the text being templated. Lines are 1-based inclusive.
// StartCol and EndCol restrict matches on the first and last line; zero
// means unbounded.
type Region struct {
	StartLine int
	EndLine   int
	StartCol  int
	EndCol    int
}

// Var describes one template variable, in index order: variable #1 is
// vars[0]. Complete may be nil, which disables completion for that
// variable's input.
type Var struct {
	Name     string
	Default  string
	Complete lineedit.CompleteFunc
}

// Preview receives best-effort live preview notifications. Line numbers
// are 1-based document lines. Implementations must not block the
// session; correctness never depends on them.
type Preview interface {
	// Changed reports that lineNumber should display newText.
	Changed(lineNumber int, newText string)

	// Closed reports that the preview for lineNumber is done.
	Closed(lineNumber int)
}

// Notifier receives non-fatal session warnings.
type Notifier interface {
	Warn(msg string)
}

// Option configures a Session.
type Option func(*Session)

// WithPreview attaches a preview collaborator.
func WithPreview(p Preview) Option {
	return func(s *Session) { s.preview = p }
}

// WithNotifier attaches a warning sink.
func WithNotifier(n Notifier) Option {
	return func(s *Session) { s.notify = n }
}

// Session drives one templating operation. It owns the working line
// sequence exclusively for the duration of the run; nothing external may
// mutate the region until the run commits or aborts.
type Session struct {
	id      uuid.UUID
	doc     document.Document
	keys    lineedit.KeySource
	preview Preview
	notify  Notifier
}

// New creates a session over the given collaborators.
func New(doc document.Document, keys lineedit.KeySource, opts ...Option) (*Session, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if keys == nil {
		return nil, ErrNilKeySource
	}
	s := &Session{
		id:   uuid.New(),
		doc:  doc,
		keys: keys,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id.String() }

// RunTemplate is a convenience wrapper creating a session and running it
// once.
func RunTemplate(doc document.Document, keys lineedit.KeySource, region Region, vars []Var, opts ...Option) (Outcome, error) {
	s, err := New(doc, keys, opts...)
	if err != nil {
		return Aborted, err
	}
	return s.Run(region, vars)
}

// Run resolves every variable in order. The returned outcome is only
// meaningful when the error is nil; any error leaves the document in its
// pre-run state.
func (s *Session) Run(region Region, vars []Var) (Outcome, error) {
	working, err := s.doc.Lines(region.StartLine, region.EndLine)
	if err != nil {
		return Aborted, fmt.Errorf("reading template region: %w", err)
	}

	pm := newPreviewManager(s.preview, region.StartLine)
	defer pm.CloseAll()

	committed := false

	for i, v := range vars {
		index := i + 1

		reg, err := s.scan(working, region, index)
		if err != nil {
			return Aborted, err
		}
		if reg.Len() == 0 {
			s.warnf("template variable #%d (%s) has no occurrences, skipping", index, v.Name)
			continue
		}

		ed := lineedit.New(v.Default, v.Complete)

		// The live preview always runs against a copy of the working
		// lines; only acceptance advances real state.
		var previewErr error
		res, err := lineedit.Run(ed, s.keys, func(text string, _ key.Event) bool {
			out, changed, err := reg.Apply(working, text)
			if err != nil {
				previewErr = err
				return true
			}
			pm.Sync(out, changed)
			return false
		})
		if err != nil {
			return Aborted, err
		}
		if previewErr != nil {
			return Aborted, previewErr
		}
		if !res.Accepted {
			return Aborted, nil
		}

		out, changed, err := reg.Apply(working, res.Text)
		if err != nil {
			return Aborted, err
		}
		working = out
		pm.Sync(working, changed)
		committed = true
	}

	if committed {
		if err := s.doc.SetLines(region.StartLine, region.EndLine, working); err != nil {
			return Aborted, fmt.Errorf("committing template region: %w", err)
		}
	}
	return Committed, nil
}

// scan locates every marker of the given variable index within the
// working lines, validates each one, and registers the survivors.
// Escaped markers and matches outside the region's column bounds are
// dropped.
func (s *Session) scan(working []string, region Region, index int) (*occurrence.Registry, error) {
	found := matcher.FindAll(working, variable.MarkerPattern(index), 0)

	reg := occurrence.NewRegistry()
	for _, m := range found {
		if variable.Escaped(m.Text) {
			continue
		}
		if m.Line == 0 && region.StartCol > 0 && m.Col+1 < region.StartCol {
			continue
		}
		if m.Line == len(working)-1 && region.EndCol > 0 && m.End > region.EndCol {
			continue
		}
		if err := variable.Classify(m.Text).Validate(); err != nil {
			return nil, err
		}
		reg.Add(m.Line+1, m.Col+1, m.Text)
	}
	return reg, nil
}

func (s *Session) warnf(format string, args ...any) {
	if s.notify != nil {
		s.notify.Warn(fmt.Sprintf(format, args...))
	}
}
