package key

import (
	"strings"
	"unicode"
)

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(key Key, mods Modifier) Event {
	return Event{Key: key, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character without Control
// or Alt held. Shift alone does not count as a modifier for characters
// since it changes the character itself.
func (e Event) IsChar() bool {
	if e.Modifiers&(ModCtrl|ModAlt) != 0 {
		return false
	}
	if e.Key == KeySpace {
		return true
	}
	return e.IsRune() && unicode.IsPrint(e.Rune)
}

// Char returns the character this event inserts. Only meaningful when
// IsChar reports true.
func (e Event) Char() rune {
	if e.Key == KeySpace {
		return ' '
	}
	return e.Rune
}

// IsCtrl returns true if this event is Control plus the given letter.
func (e Event) IsCtrl(r rune) bool {
	return e.Key == KeyRune && e.Modifiers.HasCtrl() && unicode.ToLower(e.Rune) == r
}

// String returns a canonical representation like "a", "C-w" or "S-Left".
func (e Event) String() string {
	var parts []string

	if e.Modifiers.HasCtrl() {
		parts = append(parts, "C")
	}
	if e.Modifiers.HasAlt() {
		parts = append(parts, "A")
	}
	// Shift is only meaningful for special keys; for characters it is
	// already folded into the rune.
	if e.Modifiers.HasShift() && !e.IsRune() {
		parts = append(parts, "S")
	}

	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		parts = append(parts, "Space")
	case e.Key == KeyRune:
		parts = append(parts, string(e.Rune))
	default:
		parts = append(parts, e.Key.String())
	}

	return strings.Join(parts, "-")
}

// Equals returns true if two events represent the same key press.
func (e Event) Equals(other Event) bool {
	return e.Key == other.Key &&
		e.Rune == other.Rune &&
		e.Modifiers == other.Modifiers
}

// IsEscape returns true if this is the Escape key with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}

// IsEnter returns true if this is the Enter key with no modifiers.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && e.Modifiers == ModNone
}
