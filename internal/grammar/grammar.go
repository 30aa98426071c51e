// Package grammar describes the fixed output shapes generation engines are constrained to.
//
// A Grammar is a single-field JSON object such as {"result": "Steam"}. Engines compile it into
// whatever constrained-decoding mechanism they support (GBNF for llama.cpp, JSON schema for
// hosted APIs) and check responses with Conforms before returning them.
package grammar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ValueShape is the shape of the single string value a grammar allows.
type ValueShape int

const (
	// ShapeWord is one or more ASCII letters.
	ShapeWord ValueShape = iota
	// ShapeSymbol is exactly one character.
	ShapeSymbol
)

func (s ValueShape) String() string {
	switch s {
	case ShapeWord:
		return "word"
	case ShapeSymbol:
		return "symbol"
	default:
		return fmt.Sprintf("ValueShape(%d)", int(s))
	}
}

// Grammar constrains generated text to {"<Field>": "<value of Shape>"}.
type Grammar struct {
	Name  string
	Field string
	Shape ValueShape
}

var (
	// Word constrains output to {"result": "<word>"}.
	Word = Grammar{Name: "combined_word", Field: "result", Shape: ShapeWord}
	// Emoji constrains output to {"emoji": "<char>"}.
	Emoji = Grammar{Name: "emoji_symbol", Field: "emoji", Shape: ShapeSymbol}
)

var (
	ErrNotObject     = errors.New("output is not a JSON object")
	ErrMissingField  = errors.New("required field is missing")
	ErrNotString     = errors.New("field value is not a string")
	ErrEmptyValue    = errors.New("field value is empty")
	ErrUnknownFields = errors.New("output has fields outside the grammar")
)

// GBNF returns the grammar in llama.cpp's GBNF notation.
func (g Grammar) GBNF() string {
	value := `[a-zA-Z]+`
	if g.Shape == ShapeSymbol {
		value = `.`
	}
	return fmt.Sprintf(`root ::= "{" ws "\"%s\"" ws ":" ws "\"" %s "\"" ws "}"
ws ::= [ \t\n]*
`, g.Field, value)
}

// Description is a human readable hint attached to schema based constraints.
func (g Grammar) Description() string {
	if g.Shape == ShapeSymbol {
		return "exactly one emoji character"
	}
	return "a single noun made of letters only"
}

// JSONSchema returns a strict JSON schema for the grammar.
func (g Grammar) JSONSchema() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			g.Field: map[string]any{
				"type":        "string",
				"description": g.Description(),
			},
		},
		"required":             []string{g.Field},
		"additionalProperties": false,
	}
}

// Conforms reports whether text has the grammar's surface syntax: a JSON object
// holding exactly the one required string field.
func (g Grammar) Conforms(text string) error {
	fields, err := decodeObject(text)
	if err != nil {
		return err
	}
	if _, err := g.value(fields); err != nil {
		return err
	}
	if len(fields) != 1 {
		return fmt.Errorf("%w: %d fields", ErrUnknownFields, len(fields))
	}
	return nil
}

// Extract returns the value of the grammar's field. Extra fields are ignored.
func (g Grammar) Extract(text string) (string, error) {
	fields, err := decodeObject(text)
	if err != nil {
		return "", err
	}
	return g.value(fields)
}

func (g Grammar) value(fields map[string]json.RawMessage) (string, error) {
	raw, ok := fields[g.Field]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingField, g.Field)
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("%w: %q", ErrNotString, g.Field)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptyValue, g.Field)
	}
	return value, nil
}

func decodeObject(text string) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace([]byte(text))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: %q", ErrNotObject, text)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("%w: json.Unmarshal(%s) > %w", ErrNotObject, text, err)
	}
	return fields, nil
}
