package variable

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		marker string
		want   Variable
	}{
		{"#3", Variable{Kind: Plain, Index: 3, Raw: "#3"}},
		{"#12", Variable{Kind: Plain, Index: 12, Raw: "#12"}},
		{"#/a/b/2", Variable{Kind: Rewrite, Index: 2, Pattern: "a", Subst: "b", Raw: "#/a/b/2"}},
		{"#/^x$//1", Variable{Kind: Rewrite, Index: 1, Pattern: "^x$", Subst: "", Raw: "#/^x$//1"}},
		// Embedded separators bind to the substitution via non-greedy
		// matching of the pattern part.
		{"#/a/b/c/1", Variable{Kind: Rewrite, Index: 1, Pattern: "a", Subst: "b/c", Raw: "#/a/b/c/1"}},
		{"#x", Variable{Kind: Invalid, Raw: "#x"}},
		{"#/a/b/", Variable{Kind: Invalid, Raw: "#/a/b/"}},
		{"", Variable{Kind: Invalid, Raw: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			if got := Classify(tt.marker); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.marker, got, tt.want)
			}
		})
	}
}

func TestApplyPlain(t *testing.T) {
	v := Classify("#1")
	got, err := v.Apply("hello")
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got != "hello" {
		t.Errorf("Apply = %q, want %q", got, "hello")
	}
}

func TestApplyRewrite(t *testing.T) {
	v := Classify("#/a/b/2")
	got, err := v.Apply("banana")
	if err != nil {
		t.Fatalf("Apply error: %v", err)
	}
	if got != "bbnbnb" {
		t.Errorf("Apply = %q, want %q", got, "bbnbnb")
	}
}

func TestApplyInvalid(t *testing.T) {
	v := Classify("#nope")
	_, err := v.Apply("x")
	var syntaxErr *SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("Apply error = %v, want *SyntaxError", err)
	}
	if syntaxErr.Text != "#nope" {
		t.Errorf("SyntaxError.Text = %q, want %q", syntaxErr.Text, "#nope")
	}
}

func TestValidate(t *testing.T) {
	if err := Classify("#1").Validate(); err != nil {
		t.Errorf("Validate(#1) = %v, want nil", err)
	}
	if err := Classify("#/a/b/1").Validate(); err != nil {
		t.Errorf("Validate(#/a/b/1) = %v, want nil", err)
	}

	var syntaxErr *SyntaxError
	if err := Classify("#/[/x/1").Validate(); !errors.As(err, &syntaxErr) {
		t.Errorf("Validate with bad pattern = %v, want *SyntaxError", err)
	}
	if err := Classify("garbage").Validate(); !errors.As(err, &syntaxErr) {
		t.Errorf("Validate(garbage) = %v, want *SyntaxError", err)
	}
}

func TestMarkerPattern(t *testing.T) {
	re := MarkerPattern(1)

	tests := []struct {
		line string
		want []string
	}{
		{"a #1 b #1", []string{"#1", "#1"}},
		{"#/up/down/1 and #1", []string{"#/up/down/1", "#1"}},
		{"#12 is not variable one", nil},
		{`escaped \#1 here`, []string{`\#1`}},
		{"#1-#1", []string{"#1", "#1"}},
	}

	for _, tt := range tests {
		got := re.FindAllString(tt.line, -1)
		if len(got) != len(tt.want) {
			t.Errorf("FindAllString(%q) = %v, want %v", tt.line, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("FindAllString(%q)[%d] = %q, want %q", tt.line, i, got[i], tt.want[i])
			}
		}
	}
}

func TestEscaped(t *testing.T) {
	if !Escaped(`\#1`) {
		t.Error("Escaped(`\\#1`) should be true")
	}
	if Escaped("#1") {
		t.Error("Escaped(\"#1\") should be false")
	}
}
