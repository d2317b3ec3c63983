// SPDX-License-Identifier: MPL-2.0

package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invowk/callrun/pkg/session"
)

// OutputError reports a Result Document that could not be written.
type OutputError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *OutputError) Error() string {
	return fmt.Sprintf("output %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying filesystem error.
func (e *OutputError) Unwrap() error { return e.Err }

// EncodeResult encodes res as JSON. indent may be empty for compact output.
// Encoding failures are returned as *session.SerializationError.
func EncodeResult(res *session.Result, indent string) ([]byte, error) {
	data, err := json.Marshal(res)
	if err != nil {
		return nil, &session.SerializationError{Err: err}
	}
	data = unescapeHTML(data)
	if indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", indent); err != nil {
			return nil, &session.SerializationError{Err: err}
		}
		data = buf.Bytes()
	}
	return append(data, '\n'), nil
}

// unescapeHTML reverts the \u003c, \u003e and \u0026 escapes json.Marshal
// applies to strings. The ordered maps marshal their keys and values
// themselves, so an Encoder with SetEscapeHTML(false) does not reach them.
func unescapeHTML(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u00`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c != '\\' || i+1 >= len(data) {
			out = append(out, c)
			continue
		}
		if data[i+1] == 'u' && i+6 <= len(data) {
			switch string(data[i+2 : i+6]) {
			case "003c":
				out = append(out, '<')
				i += 5
				continue
			case "003e":
				out = append(out, '>')
				i += 5
				continue
			case "0026":
				out = append(out, '&')
				i += 5
				continue
			}
		}
		// Any other escape is copied as a pair so an escaped backslash is
		// never read as the start of a sequence.
		out = append(out, c, data[i+1])
		i++
	}
	return out
}

// WriteResult encodes res and writes it to path atomically. Nothing is
// written when encoding fails.
func WriteResult(path string, res *session.Result, indent string) error {
	data, err := EncodeResult(res, indent)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &OutputError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return &OutputError{Path: path, Err: err}
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		cleanup()
		return &OutputError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return &OutputError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return &OutputError{Path: path, Err: err}
	}
	return nil
}
