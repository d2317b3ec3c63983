// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/invowk/callrun/internal/issue"
)

func TestNewServiceError_PanicsOnNilErr(t *testing.T) {
	t.Parallel()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic on nil Err, got none")
		}
		if msg, ok := r.(string); !ok || msg != "ServiceError: Err must not be nil" {
			t.Fatalf("unexpected panic: %v", r)
		}
	}()

	newServiceError(nil, 0)
}

func TestServiceError_ErrorAndUnwrap(t *testing.T) {
	t.Parallel()

	underlying := errors.New("underlying error")
	svcErr := newServiceError(underlying, issue.BindingFailedId)

	if svcErr.Error() != "underlying error" {
		t.Errorf("Error() = %q", svcErr.Error())
	}
	if !errors.Is(svcErr, underlying) {
		t.Error("errors.Is should find underlying error via Unwrap")
	}

	wrapped := &ExitError{Code: 4, Err: svcErr}
	var got *ServiceError
	if !errors.As(wrapped, &got) || got.IssueID != issue.BindingFailedId {
		t.Error("errors.As should find the ServiceError through ExitError")
	}
}

func TestRenderServiceError(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, nil, "notty")
		if buf.Len() != 0 {
			t.Errorf("expected no output, got %q", buf.String())
		}
	})

	t.Run("issue entry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(errors.New("x"), issue.BindingFailedId), "notty")
		if buf.Len() == 0 {
			t.Error("expected the issue entry to be rendered")
		}
	})

	t.Run("actionable details", func(t *testing.T) {
		t.Parallel()

		err := issue.NewErrorContext().
			WithOperation("load configuration").
			WithSuggestion("Check the file").
			Wrap(errors.New("bad value")).
			BuildError()

		var buf bytes.Buffer
		renderServiceError(&buf, newServiceError(err, 0), "notty")
		if !strings.Contains(buf.String(), "Check the file") || !strings.Contains(buf.String(), "Error chain:") {
			t.Errorf("details not rendered:\n%s", buf.String())
		}
	})
}

func TestExitError(t *testing.T) {
	t.Parallel()

	if got := (&ExitError{Code: 3}).Error(); got != "exit status 3" {
		t.Errorf("Error() = %q", got)
	}
	inner := errors.New("inner")
	if err := (&ExitError{Code: 1, Err: inner}); err.Error() != "inner" || !errors.Is(err, inner) {
		t.Errorf("ExitError does not expose its cause: %v", err)
	}
}
