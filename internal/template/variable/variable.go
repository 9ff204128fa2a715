// Package variable models template variable markers: classification of
// raw marker text into its syntactic cases and rendering of user input
// through a classified marker.
//
// Marker syntax:
//
//	#N           plain substitution of variable N
//	#/pat/sub/N  rewrite every match of pat in the input with sub, then
//	             insert the result for variable N
//	\#...        escaped, never treated as a marker
package variable

import (
	"fmt"
	"regexp"
	"strconv"
)

// Kind discriminates the syntactic cases of a marker.
type Kind int

const (
	// Invalid marks text that is not a well-formed marker.
	Invalid Kind = iota

	// Plain inserts the user input verbatim.
	Plain

	// Rewrite applies a regex rewrite to the user input before insertion.
	Rewrite
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Plain:
		return "Plain"
	case Rewrite:
		return "Rewrite"
	default:
		return "Invalid"
	}
}

// Variable is a classified marker.
type Variable struct {
	// Kind is the syntactic case.
	Kind Kind

	// Index is the 1-based variable index (zero when Invalid).
	Index int

	// Pattern and Subst carry the rewrite rule for Rewrite markers.
	Pattern string
	Subst   string

	// Raw is the marker text as matched.
	Raw string
}

// SyntaxError reports marker text that cannot be interpreted. It is
// fatal to the resolution of that variable.
type SyntaxError struct {
	// Text is the offending marker text.
	Text string

	// Err carries an underlying cause, if any.
	Err error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid template marker %q: %v", e.Text, e.Err)
	}
	return fmt.Sprintf("invalid template marker %q", e.Text)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

var (
	plainRE = regexp.MustCompile(`^#(\d+)$`)

	// Non-greedy separators keep embedded slashes in pat or sub from
	// breaking classification.
	rewriteRE = regexp.MustCompile(`^#/(.*?)/(.*?)/(\d+)$`)
)

// Classify determines the syntactic case of markerText. Classification
// is purely syntactic; an ill-formed rewrite pattern still classifies as
// Rewrite and fails later in Validate or Apply.
func Classify(markerText string) Variable {
	if m := plainRE.FindStringSubmatch(markerText); m != nil {
		idx, _ := strconv.Atoi(m[1])
		return Variable{Kind: Plain, Index: idx, Raw: markerText}
	}
	if m := rewriteRE.FindStringSubmatch(markerText); m != nil {
		idx, _ := strconv.Atoi(m[3])
		return Variable{
			Kind:    Rewrite,
			Index:   idx,
			Pattern: m[1],
			Subst:   m[2],
			Raw:     markerText,
		}
	}
	return Variable{Kind: Invalid, Raw: markerText}
}

// Validate reports whether the variable can be applied: Invalid markers
// and Rewrite markers whose pattern does not compile yield a
// *SyntaxError.
func (v Variable) Validate() error {
	switch v.Kind {
	case Plain:
		return nil
	case Rewrite:
		if _, err := regexp.Compile(v.Pattern); err != nil {
			return &SyntaxError{Text: v.Raw, Err: err}
		}
		return nil
	default:
		return &SyntaxError{Text: v.Raw}
	}
}

// Apply renders the user input through this variable. Plain returns the
// input verbatim; Rewrite replaces every match of Pattern in the input
// with Subst. Invalid markers return a *SyntaxError.
func (v Variable) Apply(input string) (string, error) {
	switch v.Kind {
	case Plain:
		return input, nil
	case Rewrite:
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return "", &SyntaxError{Text: v.Raw, Err: err}
		}
		return re.ReplaceAllString(input, v.Subst), nil
	default:
		return "", &SyntaxError{Text: v.Raw}
	}
}

// MarkerPattern returns the scan pattern locating every marker of the
// given variable index, in either plain or rewrite form. The pattern
// also matches backslash-escaped markers so the scanner can drop them;
// callers skip matches whose text starts with a backslash. The trailing
// boundary keeps #1 from matching inside #12.
func MarkerPattern(index int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`\\?#(?:/.*?/.*?/)?%d\b`, index))
}

// Escaped reports whether matched marker text is backslash-escaped.
func Escaped(markerText string) bool {
	return len(markerText) > 0 && markerText[0] == '\\'
}
