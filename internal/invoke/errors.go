// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"errors"
	"fmt"
)

// ErrInvocation is the sentinel error wrapped by InvocationError.
var ErrInvocation = errors.New("invocation failed")

type (
	// PhaseError reports the driver phase that failed.
	PhaseError struct {
		Phase Phase
		Err   error
	}

	// InvocationError wraps an error returned or a panic raised by user
	// code during construction or execution.
	InvocationError struct {
		Callable string
		Err      error
		// Panic holds the recovered value when the target panicked.
		Panic any
		Stack []byte
	}
)

// Error implements the error interface.
func (e *PhaseError) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

// Unwrap returns the underlying error.
func (e *PhaseError) Unwrap() error { return e.Err }

// Error implements the error interface.
func (e *InvocationError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("%s panicked: %v", e.Callable, e.Panic)
	}
	return fmt.Sprintf("%s: %v", e.Callable, e.Err)
}

// Unwrap returns ErrInvocation together with the error raised by the target.
func (e *InvocationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvocation}
	}
	return []error{ErrInvocation, e.Err}
}
