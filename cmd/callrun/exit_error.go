// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/callrun/pkg/types"
)

// ExitError carries the exit class of a failed command (resolution,
// binding, serialization, invocation or IO) up to App.Execute, so RunE
// handlers never call os.Exit themselves.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the one-line diagnostic printed on stderr.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// formatError reports an unsupported --output/--format value. It exits with
// the generic failure code: no invocation phase was reached.
func formatError(value string, supported ...string) *ExitError {
	return &ExitError{
		Code: types.ExitFailure,
		Err:  fmt.Errorf("unsupported output format %q (want %s)", value, joinOr(supported)),
	}
}

// exitCodeOf maps a command error to the process exit code. Errors that
// carry no ExitError, such as cobra flag errors, exit with ExitFailure.
func exitCodeOf(err error) types.ExitCode {
	if err == nil {
		return types.ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Code.Validate() == nil {
		return exitErr.Code
	}
	return types.ExitFailure
}

func joinOr(items []string) string {
	if len(items) < 2 {
		return strings.Join(items, "")
	}
	return strings.Join(items[:len(items)-1], ", ") + " or " + items[len(items)-1]
}
