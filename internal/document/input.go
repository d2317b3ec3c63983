// SPDX-License-Identifier: MPL-2.0

package document

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/invowk/callrun/pkg/cueutil"
)

// DefaultMaxInputSize is the default input document size limit (16 MiB).
const DefaultMaxInputSize int64 = 16 << 20

var (
	//go:embed input_schema.cue
	inputSchema []byte

	// ErrInvalidInput is the sentinel error wrapped by InputError.
	ErrInvalidInput = errors.New("invalid input document")
)

type (
	// Input is the decoded input document.
	Input struct {
		// Config is the Configuration. Numbers are json.Number.
		Config map[string]any

		// Keys lists the top-level Config keys in source order.
		Keys []string
	}

	// InputError reports an input document that could not be read or
	// does not satisfy the #Input schema.
	InputError struct {
		Path string
		Err  error
	}

	// ReadOption configures ReadInput.
	ReadOption func(*readOptions)

	readOptions struct {
		maxSize int64
	}
)

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("input %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrInvalidInput together with the underlying cause.
func (e *InputError) Unwrap() []error { return []error{ErrInvalidInput, e.Err} }

// WithMaxSize limits the input document size. Non-positive values keep the default.
func WithMaxSize(n int64) ReadOption {
	return func(o *readOptions) {
		if n > 0 {
			o.maxSize = n
		}
	}
}

// ReadInput reads and validates the input document at path.
func ReadInput(path string, opts ...ReadOption) (*Input, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	in, err := ParseInput(data, path, opts...)
	if err != nil {
		return nil, &InputError{Path: path, Err: err}
	}
	return in, nil
}

// ParseInput validates and decodes an input document. name is used in
// error messages.
func ParseInput(data []byte, name string, opts ...ReadOption) (*Input, error) {
	o := readOptions{maxSize: DefaultMaxInputSize}
	for _, opt := range opts {
		opt(&o)
	}

	if err := cueutil.CheckFileSize(data, o.maxSize, name); err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%s: not a valid JSON document", name)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%s: top-level value must be an object", name)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	// The schema sees the decoded document re-encoded, so string escapes
	// that JSON accepts but CUE rejects (lone surrogates) do not fail it.
	canonical, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if _, err := cueutil.Validate(inputSchema, canonical, "#Input",
		cueutil.WithFilename(name),
		cueutil.WithMaxFileSize(max(o.maxSize, int64(len(canonical)))),
	); err != nil {
		return nil, err
	}

	cfg, _ := doc["config"].(map[string]any)
	if cfg == nil {
		cfg = map[string]any{}
	}
	return &Input{Config: cfg, Keys: configKeys(root.Get("config"), cfg)}, nil
}

// configKeys returns the keys of cfg in the order they first appear in the
// source object.
func configKeys(src gjson.Result, cfg map[string]any) []string {
	keys := make([]string, 0, len(cfg))
	seen := make(map[string]bool, len(cfg))
	src.ForEach(func(k, _ gjson.Result) bool {
		key := k.String()
		if _, ok := cfg[key]; ok && !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
		return true
	})
	return keys
}
