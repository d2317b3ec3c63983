// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"strconv"
)

const (
	// ExitSuccess is returned after the output document has been written.
	ExitSuccess ExitCode = 0
	// ExitFailure is the generic failure status (usage errors, unclassified failures).
	ExitFailure ExitCode = 1
	// ExitResolution is returned when a command reference cannot be resolved.
	ExitResolution ExitCode = 3
	// ExitBinding is returned when a required parameter is absent from the configuration.
	ExitBinding ExitCode = 4
	// ExitSerialization is returned when session state cannot be encoded as JSON.
	ExitSerialization ExitCode = 5
	// ExitInvocation is returned when user code fails during construction or execution.
	ExitInvocation ExitCode = 6
	// ExitIO is returned when the input document cannot be read or the output cannot be written.
	ExitIO ExitCode = 7
)

// ErrInvalidExitCode is the sentinel error wrapped by InvalidExitCodeError.
var ErrInvalidExitCode = errors.New("invalid exit code")

type (
	// ExitCode represents a process exit status code.
	// Exit codes are in the range 0-255 on POSIX systems.
	// The zero value (0) means success.
	ExitCode int

	// InvalidExitCodeError is returned when an ExitCode is outside the
	// valid range (0-255).
	InvalidExitCodeError struct {
		Value ExitCode
	}
)

// Error implements the error interface.
func (e *InvalidExitCodeError) Error() string {
	return fmt.Sprintf("invalid exit code %d (must be in range 0-255)", e.Value)
}

// Unwrap returns ErrInvalidExitCode so callers can use errors.Is for programmatic detection.
func (e *InvalidExitCodeError) Unwrap() error { return ErrInvalidExitCode }

// Validate returns an error if the ExitCode is outside the valid range (0-255).
func (c ExitCode) Validate() error {
	if c < 0 || c > 255 {
		return &InvalidExitCodeError{Value: c}
	}
	return nil
}

// IsSuccess returns true if the exit code indicates successful execution.
func (c ExitCode) IsSuccess() bool { return c == ExitSuccess }

// String returns the decimal string representation of the ExitCode.
func (c ExitCode) String() string { return strconv.Itoa(int(c)) }
