// SPDX-License-Identifier: MPL-2.0

package callable

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
)

// ErrArgMissing is returned by Args accessors for names absent from the set.
var ErrArgMissing = errors.New("argument not set")

type (
	// Args is the Argument Set passed to a target: the bound subset of the
	// configuration, or all of it for keyword catch-alls. Values keep their
	// JSON-decoded types; numbers arrive as json.Number.
	Args map[string]any

	// ArgTypeError is returned when an argument cannot be read as the requested type.
	ArgTypeError struct {
		Name string
		Want string
		Got  any
		Err  error
	}
)

// Error implements the error interface.
func (e *ArgTypeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("argument %q: expected %s, got %T: %v", e.Name, e.Want, e.Got, e.Err)
	}
	return fmt.Sprintf("argument %q: expected %s, got %T", e.Name, e.Want, e.Got)
}

// Unwrap returns the conversion failure, if any.
func (e *ArgTypeError) Unwrap() error { return e.Err }

// Has reports whether name is in the set.
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// Get returns the raw value.
func (a Args) Get(name string) (any, bool) {
	v, ok := a[name]
	return v, ok
}

// String returns a string argument. Other JSON types are rejected.
func (a Args) String(name string) (string, error) {
	v, ok := a[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	s, ok := v.(string)
	if !ok {
		return "", &ArgTypeError{Name: name, Want: "string", Got: v}
	}
	return s, nil
}

// StringOr returns a string argument or def when the name is absent.
func (a Args) StringOr(name, def string) (string, error) {
	if !a.Has(name) {
		return def, nil
	}
	return a.String(name)
}

// Int returns an integer argument.
func (a Args) Int(name string) (int, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	if n, isNum := v.(json.Number); isNum {
		i, err := n.Int64()
		if err != nil {
			return 0, &ArgTypeError{Name: name, Want: "int", Got: v, Err: err}
		}
		return int(i), nil
	}
	switch v.(type) {
	case string, bool, nil:
		return 0, &ArgTypeError{Name: name, Want: "int", Got: v}
	}
	i, err := cast.ToIntE(v)
	if err != nil {
		return 0, &ArgTypeError{Name: name, Want: "int", Got: v, Err: err}
	}
	return i, nil
}

// Float returns a floating-point argument.
func (a Args) Float(name string) (float64, error) {
	v, ok := a[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	if n, isNum := v.(json.Number); isNum {
		f, err := n.Float64()
		if err != nil {
			return 0, &ArgTypeError{Name: name, Want: "float", Got: v, Err: err}
		}
		return f, nil
	}
	switch v.(type) {
	case string, bool, nil:
		return 0, &ArgTypeError{Name: name, Want: "float", Got: v}
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, &ArgTypeError{Name: name, Want: "float", Got: v, Err: err}
	}
	return f, nil
}

// Bool returns a boolean argument.
func (a Args) Bool(name string) (bool, error) {
	v, ok := a[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	b, ok := v.(bool)
	if !ok {
		return false, &ArgTypeError{Name: name, Want: "bool", Got: v}
	}
	return b, nil
}

// BoolOr returns a boolean argument or def when the name is absent.
func (a Args) BoolOr(name string, def bool) (bool, error) {
	if !a.Has(name) {
		return def, nil
	}
	return a.Bool(name)
}

// Map returns an object argument.
func (a Args) Map(name string) (map[string]any, error) {
	v, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &ArgTypeError{Name: name, Want: "object", Got: v}
	}
	return m, nil
}

// Slice returns a list argument.
func (a Args) Slice(name string) ([]any, error) {
	v, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrArgMissing, name)
	}
	s, ok := v.([]any)
	if !ok {
		return nil, &ArgTypeError{Name: name, Want: "list", Got: v}
	}
	return s, nil
}

// Decode copies the set into a struct using `json` field tags.
func (a Args) Decode(into any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  into,
	})
	if err != nil {
		return fmt.Errorf("create args decoder: %w", err)
	}
	if err := dec.Decode(map[string]any(a)); err != nil {
		return fmt.Errorf("decode args: %w", err)
	}
	return nil
}
