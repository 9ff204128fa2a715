// Package luacomplete builds completion providers from Lua chunks. A
// chunk defines a global function complete(stub, line, col) returning a
// table of candidate strings; the provider marshals arguments in and
// candidates out for every completion request.
package luacomplete

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/templive/internal/editor/lineedit"
)

// Errors returned when building or invoking a provider.
var (
	// ErrNoCompleteFunc indicates the chunk did not define a global
	// complete function.
	ErrNoCompleteFunc = errors.New("lua chunk does not define complete(stub, line, col)")

	// ErrBadResult indicates complete returned something other than a
	// table of strings.
	ErrBadResult = errors.New("lua complete must return a table of strings")
)

// Provider wraps one Lua state hosting a complete function. A Provider
// is not goroutine-safe, matching the engine's single-threaded input
// model, and must be closed when its templating call finishes.
type Provider struct {
	state *lua.LState
	fn    *lua.LFunction
}

// New compiles chunk in a fresh sandboxed Lua state. Only the base,
// table, string and math libraries are opened; io, os, debug and package
// stay out of reach of template definitions.
func New(chunk string) (*Provider, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	if err := L.DoString(chunk); err != nil {
		L.Close()
		return nil, fmt.Errorf("loading completion chunk: %w", err)
	}

	fn, ok := L.GetGlobal("complete").(*lua.LFunction)
	if !ok {
		L.Close()
		return nil, ErrNoCompleteFunc
	}

	return &Provider{state: L, fn: fn}, nil
}

// Close releases the Lua state.
func (p *Provider) Close() {
	p.state.Close()
}

// Complete implements lineedit.CompleteFunc.
func (p *Provider) Complete(stub, line string, col int) ([]string, error) {
	err := p.state.CallByParam(lua.P{
		Fn:      p.fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(stub), lua.LString(line), lua.LNumber(col))
	if err != nil {
		return nil, fmt.Errorf("lua complete: %w", err)
	}

	ret := p.state.Get(-1)
	p.state.Pop(1)

	table, ok := ret.(*lua.LTable)
	if !ok {
		if ret == lua.LNil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: got %s", ErrBadResult, ret.Type())
	}

	var options []string
	var badValue error
	table.ForEach(func(_, v lua.LValue) {
		s, ok := v.(lua.LString)
		if !ok {
			badValue = fmt.Errorf("%w: element of type %s", ErrBadResult, v.Type())
			return
		}
		options = append(options, string(s))
	})
	if badValue != nil {
		return nil, badValue
	}
	return options, nil
}

// Func returns the provider as a lineedit.CompleteFunc.
func (p *Provider) Func() lineedit.CompleteFunc {
	return p.Complete
}
