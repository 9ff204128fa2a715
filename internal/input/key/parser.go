package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec        = errors.New("empty key specification")
	ErrInvalidSpec      = errors.New("invalid key specification")
	ErrUnmatchedBracket = errors.New("unmatched bracket in key specification")
)

// Parse parses a key specification string into an Event.
//
// Supported formats:
//   - Single character: "a", "A", "1", "@"
//   - Key names: "Enter", "Escape", "Tab", "Space"
//   - Vim-style: "<C-w>", "<S-Left>", "<CR>", "<Esc>"
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}

	if strings.HasPrefix(spec, "<") && strings.HasSuffix(spec, ">") {
		return parseBracketed(spec[1 : len(spec)-1])
	}

	return parseBare(spec)
}

// ParseSequence parses a scripted key sequence like "ab<Left>x<Enter>"
// into individual events. Everything outside <...> is taken as literal
// characters.
func ParseSequence(s string) ([]Event, error) {
	var events []Event
	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end < 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnmatchedBracket, s)
			}
			ev, err := parseBracketed(s[1:end])
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
			s = s[end+1:]
			continue
		}
		r, size := utf8.DecodeRuneInString(s)
		events = append(events, NewRuneEvent(r, ModNone))
		s = s[size:]
	}
	return events, nil
}

// parseBracketed parses the inside of Vim-style <...> notation, for
// example "C-w", "S-Left", "CR".
func parseBracketed(inner string) (Event, error) {
	inner = strings.TrimSpace(inner)
	if inner == "" {
		return Event{}, ErrInvalidSpec
	}

	parts := strings.Split(inner, "-")
	keyPart := parts[len(parts)-1]

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "c":
			mods = mods.With(ModCtrl)
		case "a":
			mods = mods.With(ModAlt)
		case "s":
			mods = mods.With(ModShift)
		default:
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
	}

	if k, ok := keyNameMap[strings.ToLower(keyPart)]; ok {
		return NewSpecialEvent(k, mods), nil
	}
	if utf8.RuneCountInString(keyPart) == 1 {
		r, _ := utf8.DecodeRuneInString(keyPart)
		return NewRuneEvent(r, mods), nil
	}
	return Event{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, keyPart)
}

// parseBare parses a specification without brackets: a single character
// or a bare key name.
func parseBare(spec string) (Event, error) {
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return NewRuneEvent(r, ModNone), nil
	}
	if k, ok := keyNameMap[strings.ToLower(spec)]; ok {
		return NewSpecialEvent(k, ModNone), nil
	}
	return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, spec)
}
