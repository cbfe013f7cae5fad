// Package jsonval holds JSON values at the API boundary as a typed union,
// so callers can check the shape of a payload before it is persisted.
package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
)

type Kind int

const (
	Invalid Kind = iota
	Null
	Object
	Array
	String
	Number
	Bool
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Object:
		return "object"
	case Array:
		return "array"
	case String:
		return "string"
	case Number:
		return "number"
	case Bool:
		return "boolean"
	default:
		return "invalid"
	}
}

var ErrInvalidJSON = errors.New("invalid json value")

// Value is a validated JSON document with its top-level kind.
// The zero Value means "absent".
type Value struct {
	kind Kind
	raw  json.RawMessage
}

// Parse validates data and classifies it.
func Parse(data []byte) (Value, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return Value{}, ErrInvalidJSON
	}

	var kind Kind
	switch trimmed[0] {
	case '{':
		kind = Object
	case '[':
		kind = Array
	case '"':
		kind = String
	case 't', 'f':
		kind = Bool
	case 'n':
		kind = Null
	default:
		kind = Number
	}

	raw := make(json.RawMessage, len(trimmed))
	copy(raw, trimmed)
	return Value{kind: kind, raw: raw}, nil
}

// From encodes v and parses the result.
func From(v any) (Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("encode json value: %w", err)
	}
	return Parse(data)
}

// MustFrom is From for values known to encode.
func MustFrom(v any) Value {
	val, err := From(v)
	if err != nil {
		panic(err)
	}
	return val
}

// FromColumn wraps a stored column. Empty columns yield the zero Value.
func FromColumn(col datatypes.JSON) Value {
	if len(col) == 0 {
		return Value{}
	}
	v, err := Parse(col)
	if err != nil {
		return Value{}
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsZero() bool { return v.kind == Invalid }

// IsContainer reports whether the value is an object or an array.
func (v Value) IsContainer() bool { return v.kind == Object || v.kind == Array }

// Column returns the bytes to store in a json column.
func (v Value) Column() datatypes.JSON {
	if v.IsZero() {
		return nil
	}
	return datatypes.JSON(v.raw)
}

func (v Value) Raw() json.RawMessage { return v.raw }

// Decode unmarshals the value into dst, keeping numbers as json.Number.
func (v Value) Decode(dst any) error {
	if v.IsZero() {
		return ErrInvalidJSON
	}
	dec := json.NewDecoder(bytes.NewReader(v.raw))
	dec.UseNumber()
	return dec.Decode(dst)
}

// Interface decodes the value into maps, slices and scalars.
func (v Value) Interface() (any, error) {
	var out any
	if err := v.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// Canonical re-encodes the value with sorted object keys and no insignificant
// whitespace. Equal documents produce equal bytes.
func (v Value) Canonical() ([]byte, error) {
	decoded, err := v.Interface()
	if err != nil {
		return nil, err
	}
	return json.Marshal(decoded)
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsZero() {
		return []byte("null"), nil
	}
	return v.raw, nil
}

func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
