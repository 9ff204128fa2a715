package luacomplete

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCompleteReturnsOptions(t *testing.T) {
	p, err := New(`
function complete(stub, line, col)
	return { stub .. "_a", stub .. "_b" }
end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	got, err := p.Complete("x", "x", 1)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if diff := cmp.Diff([]string{"x_a", "x_b"}, got); diff != "" {
		t.Errorf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteReceivesArguments(t *testing.T) {
	p, err := New(`
function complete(stub, line, col)
	return { stub, line, tostring(col) }
end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	got, err := p.Complete("st", "full line", 7)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if diff := cmp.Diff([]string{"st", "full line", "7"}, got); diff != "" {
		t.Errorf("arguments mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteNilResult(t *testing.T) {
	p, err := New(`function complete(stub, line, col) return nil end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	got, err := p.Complete("x", "x", 1)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("options = %v, want empty", got)
	}
}

func TestCompleteBadResult(t *testing.T) {
	p, err := New(`function complete(stub, line, col) return "not a table" end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	if _, err := p.Complete("x", "x", 1); !errors.Is(err, ErrBadResult) {
		t.Errorf("Complete error = %v, want ErrBadResult", err)
	}
}

func TestCompleteRuntimeError(t *testing.T) {
	p, err := New(`function complete(stub, line, col) error("boom") end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	if _, err := p.Complete("x", "x", 1); err == nil {
		t.Error("Complete should surface Lua runtime errors")
	}
}

func TestNewRejectsChunkWithoutComplete(t *testing.T) {
	if _, err := New(`x = 1`); !errors.Is(err, ErrNoCompleteFunc) {
		t.Errorf("New error = %v, want ErrNoCompleteFunc", err)
	}
}

func TestNewRejectsBrokenChunk(t *testing.T) {
	if _, err := New(`function complete(`); err == nil {
		t.Error("New should fail on a syntactically broken chunk")
	}
}

func TestSandboxExcludesOS(t *testing.T) {
	p, err := New(`
function complete(stub, line, col)
	if os == nil then
		return { "sandboxed" }
	end
	return { "leaky" }
end`)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer p.Close()

	got, err := p.Complete("", "", 0)
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if len(got) != 1 || got[0] != "sandboxed" {
		t.Errorf("options = %v, want [sandboxed]", got)
	}
}
