// SPDX-License-Identifier: MPL-2.0

package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotSerializable is the sentinel error wrapped by SerializationError.
	ErrNotSerializable = errors.New("value is not serializable as JSON")

	// ErrInvalidSubtaskTarget is returned by AddSubtask for targets that are
	// neither a command reference, a configuration map, nor nil.
	ErrInvalidSubtaskTarget = errors.New("invalid sub-task target")
)

// SerializationError is returned when a value destined for the result
// document cannot be encoded as JSON. It matches ErrNotSerializable and the
// underlying encoder failure with errors.Is/As.
type SerializationError struct {
	// Field names the document field or sub-task key being encoded.
	Field string
	// Err is the encoder failure.
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("parameters must be serializable using JSON: %v", e.Err)
	}
	return fmt.Sprintf("parameters of %s must be serializable using JSON: %v", e.Field, e.Err)
}

// Unwrap returns both the sentinel and the encoder failure.
func (e *SerializationError) Unwrap() []error {
	return []error{ErrNotSerializable, e.Err}
}
