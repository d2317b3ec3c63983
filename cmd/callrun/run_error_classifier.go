// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"

	"github.com/invowk/callrun/internal/bind"
	"github.com/invowk/callrun/internal/document"
	"github.com/invowk/callrun/internal/invoke"
	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/internal/resolve"
	"github.com/invowk/callrun/pkg/session"
	"github.com/invowk/callrun/pkg/types"
)

// classifyRunError maps a failure of `callrun run` to its exit code and
// issue catalog entry. A serialization failure is reported as such even when
// user code returned it from AddSubtask; any other error raised by user code
// is an invocation failure.
func classifyRunError(err error) (types.ExitCode, issue.Id) {
	var outErr *document.OutputError

	switch {
	case errors.Is(err, session.ErrNotSerializable):
		return types.ExitSerialization, issue.SerializationFailedId
	case errors.Is(err, invoke.ErrInvocation):
		return types.ExitInvocation, issue.InvocationFailedId
	case errors.Is(err, resolve.ErrUnresolved):
		return types.ExitResolution, issue.ResolutionFailedId
	case errors.Is(err, bind.ErrMissingParam):
		return types.ExitBinding, issue.BindingFailedId
	case errors.Is(err, document.ErrInvalidInput):
		return types.ExitIO, issue.InputInvalidId
	case errors.As(err, &outErr):
		return types.ExitIO, issue.OutputWriteFailedId
	default:
		return types.ExitFailure, 0
	}
}
