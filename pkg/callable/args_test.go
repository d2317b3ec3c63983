// SPDX-License-Identifier: MPL-2.0

package callable

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestArgs_Accessors(t *testing.T) {
	t.Parallel()

	args := Args{
		"s":    "text",
		"n":    json.Number("42"),
		"f":    json.Number("1.5"),
		"i":    7,
		"b":    true,
		"m":    map[string]any{"k": "v"},
		"l":    []any{"a", "b"},
		"null": nil,
	}

	if s, err := args.String("s"); err != nil || s != "text" {
		t.Errorf("String(s) = %q, %v", s, err)
	}
	if n, err := args.Int("n"); err != nil || n != 42 {
		t.Errorf("Int(n) = %d, %v", n, err)
	}
	if n, err := args.Int("i"); err != nil || n != 7 {
		t.Errorf("Int(i) = %d, %v", n, err)
	}
	if f, err := args.Float("f"); err != nil || f != 1.5 {
		t.Errorf("Float(f) = %v, %v", f, err)
	}
	if b, err := args.Bool("b"); err != nil || !b {
		t.Errorf("Bool(b) = %v, %v", b, err)
	}
	if m, err := args.Map("m"); err != nil || m["k"] != "v" {
		t.Errorf("Map(m) = %v, %v", m, err)
	}
	if l, err := args.Slice("l"); err != nil || len(l) != 2 {
		t.Errorf("Slice(l) = %v, %v", l, err)
	}
	if s, err := args.StringOr("absent", "dflt"); err != nil || s != "dflt" {
		t.Errorf("StringOr(absent) = %q, %v", s, err)
	}
	if b, err := args.BoolOr("absent", true); err != nil || !b {
		t.Errorf("BoolOr(absent) = %v, %v", b, err)
	}
}

func TestArgs_Errors(t *testing.T) {
	t.Parallel()

	args := Args{"s": "text", "f": json.Number("1.5"), "null": nil}

	if _, err := args.String("missing"); !errors.Is(err, ErrArgMissing) {
		t.Errorf("String(missing) error = %v, want ErrArgMissing", err)
	}

	var typeErr *ArgTypeError
	if _, err := args.Int("s"); !errors.As(err, &typeErr) {
		t.Errorf("Int(s) error = %v, want *ArgTypeError", err)
	}
	if _, err := args.Int("f"); !errors.As(err, &typeErr) {
		t.Errorf("Int(f) error = %v, want *ArgTypeError", err)
	}
	if _, err := args.Bool("s"); !errors.As(err, &typeErr) {
		t.Errorf("Bool(s) error = %v, want *ArgTypeError", err)
	}
	if _, err := args.Map("null"); !errors.As(err, &typeErr) {
		t.Errorf("Map(null) error = %v, want *ArgTypeError", err)
	}
}

func TestArgs_Decode(t *testing.T) {
	t.Parallel()

	var into struct {
		Table string   `json:"table"`
		Limit int      `json:"limit"`
		Tags  []string `json:"tags"`
	}
	args := Args{"table": "users", "limit": json.Number("10"), "tags": []any{"a"}}
	if err := args.Decode(&into); err != nil {
		t.Fatal(err)
	}
	if into.Table != "users" || into.Limit != 10 || len(into.Tags) != 1 {
		t.Errorf("Decode() = %+v", into)
	}
}
