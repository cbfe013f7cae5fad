// Package patch applies partial updates through a declared set of mutable
// fields. Keys that are not declared are dropped without error.
package patch

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/linskybing/formbuilder-go/pkg/jsonval"
)

type Type int

const (
	String Type = iota
	NullableString
	JSON
	// JSONContainer accepts only objects and arrays.
	JSONContainer
	Bool
	Int
	NullableInt
	Float
	NullableTime
)

// Field declares one mutable field.
type Field struct {
	// Column defaults to the field key.
	Column   string
	Type     Type
	Validate func(v any) error
}

type Schema struct {
	fields map[string]Field
}

// Result is the outcome of a successful Apply.
type Result struct {
	// Updates maps column names to values ready for the database.
	Updates map[string]any
	Applied []string
	Dropped []string
}

var ErrEmpty = errors.New("patch contains no mutable fields")

// FieldErrors lists per-field conversion and validation failures.
type FieldErrors []string

func (e FieldErrors) Error() string {
	return "invalid fields: " + strings.Join(e, "; ")
}

func NewSchema(fields map[string]Field) Schema {
	return Schema{fields: fields}
}

// Allows reports whether key is declared mutable.
func (s Schema) Allows(key string) bool {
	_, ok := s.fields[key]
	return ok
}

// Keys returns the declared field names, sorted.
func (s Schema) Keys() []string {
	keys := make([]string, 0, len(s.fields))
	for k := range s.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Apply filters input down to declared fields and converts each value.
// It returns ErrEmpty when nothing declared is present, and FieldErrors
// when any declared field fails conversion or validation.
func (s Schema) Apply(input map[string]json.RawMessage) (Result, error) {
	res := Result{Updates: map[string]any{}}
	var errs FieldErrors

	keys := make([]string, 0, len(input))
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		field, ok := s.fields[key]
		if !ok {
			res.Dropped = append(res.Dropped, key)
			continue
		}

		val, err := convert(field.Type, input[key])
		if err == nil && field.Validate != nil && val != nil {
			err = field.Validate(val)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", key, err.Error()))
			continue
		}

		column := field.Column
		if column == "" {
			column = key
		}
		res.Updates[column] = val
		res.Applied = append(res.Applied, key)
	}

	if len(errs) > 0 {
		return Result{}, errs
	}
	if len(res.Updates) == 0 {
		return res, ErrEmpty
	}
	return res, nil
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

var timeLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// ParseTime accepts RFC 3339, "2006-01-02 15:04:05" and "2006-01-02".
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q", s)
}

func convert(t Type, raw json.RawMessage) (any, error) {
	switch t {
	case String:
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("must be a string")
		}
		return s, nil
	case NullableString:
		if isNull(raw) {
			return nil, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("must be a string or null")
		}
		return s, nil
	case JSON, JSONContainer:
		if isNull(raw) {
			if t == JSONContainer {
				return nil, errors.New("must be an object or array")
			}
			return nil, nil
		}
		v, err := jsonval.Parse(raw)
		if err != nil {
			return nil, err
		}
		if t == JSONContainer && !v.IsContainer() {
			return nil, errors.New("must be an object or array")
		}
		return v.Column(), nil
	case Bool:
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return nil, errors.New("must be a boolean")
		}
		return b, nil
	case Int, NullableInt:
		if isNull(raw) {
			if t == NullableInt {
				return nil, nil
			}
			return nil, errors.New("must be an integer")
		}
		var n int64
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, errors.New("must be an integer")
		}
		return n, nil
	case Float:
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, errors.New("must be a number")
		}
		return f, nil
	case NullableTime:
		if isNull(raw) {
			return nil, nil
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, errors.New("must be a time string or null")
		}
		return ParseTime(s)
	}
	return nil, fmt.Errorf("unsupported field type %d", t)
}
