// Package config loads template definition files. A definition names the
// variables a template expects, in index order, with optional defaults
// and completion sources.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Validation errors.
var (
	// ErrNoVariables indicates a definition without any variables.
	ErrNoVariables = errors.New("template definition has no variables")

	// ErrVariableConflict indicates a variable carrying both a static
	// completion list and a Lua completion chunk.
	ErrVariableConflict = errors.New("variable declares both complete and complete_lua")
)

// ParseError reports a template definition that could not be parsed.
type ParseError struct {
	// Path is the file the error came from.
	Path string

	// Err is the underlying TOML error.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing template definition %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Definition is a parsed template definition file.
type Definition struct {
	// Template holds file-level metadata.
	Template Meta `toml:"template"`

	// Variables lists the template's variables in index order: the
	// first entry is variable #1.
	Variables []Variable `toml:"variables"`
}

// Meta is the file-level metadata block.
type Meta struct {
	// Name identifies the template.
	Name string `toml:"name"`

	// Description is free-form.
	Description string `toml:"description"`
}

// Variable describes one template variable.
type Variable struct {
	// Name is shown when prompting for this variable.
	Name string `toml:"name"`

	// Default pre-fills the input buffer.
	Default string `toml:"default"`

	// Complete is a static completion option list.
	Complete []string `toml:"complete"`

	// CompleteLua is a Lua chunk defining complete(stub, line, col);
	// mutually exclusive with Complete.
	CompleteLua string `toml:"complete_lua"`
}

// Load reads and validates a template definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading template definition: %w", err)
	}
	return Parse(path, data)
}

// Parse parses and validates template definition data. path is only
// used in error messages.
func Parse(path string, data []byte) (*Definition, error) {
	var def Definition
	if err := toml.Unmarshal(data, &def); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Validate checks definition-level invariants.
func (d *Definition) Validate() error {
	if len(d.Variables) == 0 {
		return ErrNoVariables
	}
	for i, v := range d.Variables {
		if len(v.Complete) > 0 && v.CompleteLua != "" {
			return fmt.Errorf("%w: variable #%d (%s)", ErrVariableConflict, i+1, v.Name)
		}
	}
	return nil
}
