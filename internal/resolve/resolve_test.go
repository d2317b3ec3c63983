// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"context"
	"errors"
	"testing"

	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

type job struct{}

func testRegistry(t *testing.T) *callable.Registry {
	t.Helper()

	noop := func(context.Context, *session.Env, callable.Args) (any, error) { return nil, nil }
	method := func(context.Context, *job, *session.Env, callable.Args) (any, error) { return nil, nil }

	cls := callable.Must(callable.NewClass[*job]("Job", nil))
	if err := callable.AddMethod(cls, "run", method); err != nil {
		t.Fatal(err)
	}
	if err := callable.AddMethod(cls, "check", method); err != nil {
		t.Fatal(err)
	}

	reg := callable.NewRegistry()
	reg.MustModule("pkg.mod").MustAdd(
		callable.Must(callable.NewFunction("f", noop)),
		cls,
	)
	reg.MustModule("pkg").MustAdd(callable.Must(callable.NewFunction("helper", noop)))
	return reg
}

func TestResolve(t *testing.T) {
	t.Parallel()

	r := New(testRegistry(t))

	tests := []struct {
		ref        string
		wantKind   Kind
		wantMethod string
		wantModule string
		wantAttr   string
		wantErr    error
	}{
		{ref: "pkg.mod.f", wantKind: KindFunction},
		{ref: "pkg.mod.Job", wantKind: KindClassDefaultMethod, wantMethod: "run"},
		{ref: "pkg.mod.Job.check", wantKind: KindClassExplicitMethod, wantMethod: "check"},
		// The method is looked up on the instance, after construction.
		{ref: "pkg.mod.Job.missing", wantKind: KindClassExplicitMethod, wantMethod: "missing"},
		// Attribute failures in an importable module never fall back.
		{ref: "pkg.mod.typo", wantModule: "pkg.mod", wantAttr: "typo", wantErr: ErrAttributeNotFound},
		{ref: "pkg.mod.Missing.run", wantModule: "pkg.mod", wantAttr: "Missing", wantErr: ErrAttributeNotFound},
		{ref: "pkg.mod.f.run", wantModule: "pkg.mod", wantAttr: "f", wantErr: ErrNotAClass},
		{ref: "nope.mod.f", wantModule: "nope", wantAttr: "mod", wantErr: callable.ErrModuleNotFound},
		{ref: "nope.f", wantModule: "nope", wantAttr: "f", wantErr: callable.ErrModuleNotFound},
		{ref: "f", wantErr: ErrMalformedReference},
		{ref: "", wantErr: ErrMalformedReference},
		{ref: "pkg.", wantErr: ErrMalformedReference},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			t.Parallel()

			target, err := r.Resolve(tt.ref)
			if tt.wantErr != nil {
				var resErr *ResolutionError
				if !errors.As(err, &resErr) {
					t.Fatalf("Resolve(%q) error = %v, want *ResolutionError", tt.ref, err)
				}
				if !errors.Is(err, ErrUnresolved) || !errors.Is(err, tt.wantErr) {
					t.Errorf("Resolve(%q) error = %v, want %v", tt.ref, err, tt.wantErr)
				}
				if resErr.Module != tt.wantModule || resErr.Attribute != tt.wantAttr {
					t.Errorf("ResolutionError module/attribute = %q/%q, want %q/%q",
						resErr.Module, resErr.Attribute, tt.wantModule, tt.wantAttr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.ref, err)
			}
			if target.Kind != tt.wantKind {
				t.Errorf("Kind = %v, want %v", target.Kind, tt.wantKind)
			}
			if target.Method != tt.wantMethod {
				t.Errorf("Method = %q, want %q", target.Method, tt.wantMethod)
			}
			if target.Constructed() != (tt.wantKind != KindFunction) {
				t.Errorf("Constructed() = %v for kind %v", target.Constructed(), target.Kind)
			}
			if tt.wantKind == KindFunction && target.Function == nil {
				t.Error("Function not set")
			}
			if tt.wantKind != KindFunction && target.Class == nil {
				t.Error("Class not set")
			}
		})
	}
}

func TestResolve_FunctionReadingWins(t *testing.T) {
	t.Parallel()

	// "pkg.helper" resolves as a function in module "pkg" even though
	// "pkg" also prefixes module "pkg.mod".
	target, err := New(testRegistry(t)).Resolve("pkg.helper")
	if err != nil {
		t.Fatal(err)
	}
	if target.Kind != KindFunction || target.Function.QualifiedName() != "pkg.helper" {
		t.Errorf("Resolve(pkg.helper) = %+v", target)
	}
}
