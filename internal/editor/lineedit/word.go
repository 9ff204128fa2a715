package lineedit

import "unicode"

// isWordRune reports whether r belongs to a word: letters, digits and
// underscore, matching editor word-motion conventions.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// prevWordStart returns the rune index of the start of the word before
// from: any non-word runes immediately left of the cursor are skipped,
// then the word itself. Returns 0 when no word remains.
func prevWordStart(buf []rune, from int) int {
	i := from
	for i > 0 && !isWordRune(buf[i-1]) {
		i--
	}
	for i > 0 && isWordRune(buf[i-1]) {
		i--
	}
	return i
}

// nextWordEnd returns the rune index just past the next word right of
// from. Returns len(buf) when no word follows.
func nextWordEnd(buf []rune, from int) int {
	i := from
	for i < len(buf) && !isWordRune(buf[i]) {
		i++
	}
	for i < len(buf) && isWordRune(buf[i]) {
		i++
	}
	return i
}
