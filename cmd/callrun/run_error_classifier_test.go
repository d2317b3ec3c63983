// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/invowk/callrun/internal/bind"
	"github.com/invowk/callrun/internal/document"
	"github.com/invowk/callrun/internal/invoke"
	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/internal/resolve"
	"github.com/invowk/callrun/pkg/session"
	"github.com/invowk/callrun/pkg/types"
)

func TestClassifyRunError(t *testing.T) {
	t.Parallel()

	resolution := &resolve.ResolutionError{Ref: "a.b", Err: resolve.ErrAttributeNotFound}

	tests := []struct {
		name      string
		err       error
		wantCode  types.ExitCode
		wantIssue issue.Id
	}{
		{"resolution", &invoke.PhaseError{Phase: invoke.PhaseResolve, Err: resolution}, types.ExitResolution, issue.ResolutionFailedId},
		{"method lookup", &invoke.PhaseError{Phase: invoke.PhaseLookupMethod, Err: resolution}, types.ExitResolution, issue.ResolutionFailedId},
		{"binding", &invoke.PhaseError{Phase: invoke.PhaseBind, Err: &bind.BindingError{Callable: "a.b", Param: "x"}}, types.ExitBinding, issue.BindingFailedId},
		{"output serialization", &session.SerializationError{Err: errors.New("bad")}, types.ExitSerialization, issue.SerializationFailedId},
		{"invocation", &invoke.PhaseError{Phase: invoke.PhaseInvoke, Err: &invoke.InvocationError{Callable: "a.b", Err: errors.New("boom")}}, types.ExitInvocation, issue.InvocationFailedId},
		{
			"serialization raised by user code",
			&invoke.InvocationError{Callable: "a.b", Err: &session.SerializationError{Err: errors.New("bad")}},
			types.ExitSerialization, issue.SerializationFailedId,
		},
		{"input", &document.InputError{Path: "in.json", Err: fs.ErrNotExist}, types.ExitIO, issue.InputInvalidId},
		{"output", &document.OutputError{Path: "out.json", Err: fs.ErrPermission}, types.ExitIO, issue.OutputWriteFailedId},
		{"other", fmt.Errorf("context: %w", errors.New("x")), types.ExitFailure, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, id := classifyRunError(tt.err)
			if code != tt.wantCode || id != tt.wantIssue {
				t.Errorf("classifyRunError() = (%d, %d), want (%d, %d)", code, id, tt.wantCode, tt.wantIssue)
			}
		})
	}
}
