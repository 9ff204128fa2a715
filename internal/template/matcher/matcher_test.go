package matcher

import (
	"regexp"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFindAllMultipleOnOneLine(t *testing.T) {
	re := regexp.MustCompile(`#1`)
	got := FindAll([]string{"a #1 b #1"}, re, 0)

	want := []Match{
		{Text: "#1", Line: 0, Col: 2, End: 4},
		{Text: "#1", Line: 0, Col: 7, End: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAllAcrossLines(t *testing.T) {
	re := regexp.MustCompile(`#\d`)
	got := FindAll([]string{"#1 x", "no match", "y #2"}, re, 0)

	want := []Match{
		{Text: "#1", Line: 0, Col: 0, End: 2},
		{Text: "#2", Line: 2, Col: 2, End: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAllEmptyInput(t *testing.T) {
	re := regexp.MustCompile(`#1`)
	if got := FindAll(nil, re, 0); len(got) != 0 {
		t.Errorf("FindAll(nil) = %v, want empty", got)
	}
	if got := FindAll([]string{}, re, 0); len(got) != 0 {
		t.Errorf("FindAll([]) = %v, want empty", got)
	}
}

func TestFindAllNoOverlap(t *testing.T) {
	// Greedy-leftmost matching consumes "aaa" before the second "aa"
	// could start inside it.
	re := regexp.MustCompile(`aa`)
	got := FindAll([]string{"aaaa"}, re, 0)

	want := []Match{
		{Text: "aa", Line: 0, Col: 0, End: 2},
		{Text: "aa", Line: 0, Col: 2, End: 4},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FindAll mismatch (-want +got):\n%s", diff)
	}
}

func TestFindAllLimit(t *testing.T) {
	re := regexp.MustCompile(`x`)
	got := FindAll([]string{"xx", "xx"}, re, 3)
	if len(got) != 3 {
		t.Fatalf("FindAll with limit 3 returned %d matches", len(got))
	}
	if got[2].Line != 1 || got[2].Col != 0 {
		t.Errorf("third match = %+v, want line 1 col 0", got[2])
	}
}

func TestMatchLen(t *testing.T) {
	m := Match{Col: 2, End: 9}
	if m.Len() != 7 {
		t.Errorf("Len() = %d, want 7", m.Len())
	}
}
