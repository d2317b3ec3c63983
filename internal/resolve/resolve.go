// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/invowk/callrun/pkg/callable"
)

const (
	// KindFunction is a directly invocable function.
	KindFunction Kind = iota + 1
	// KindClassDefaultMethod is a class reference invoked through its "run" method.
	KindClassDefaultMethod
	// KindClassExplicitMethod is a "module.Class.method" reference.
	KindClassExplicitMethod
)

var (
	// ErrUnresolved is the sentinel error wrapped by ResolutionError.
	ErrUnresolved = errors.New("command reference does not resolve")
	// ErrAttributeNotFound is returned when a module exists but lacks the attribute.
	ErrAttributeNotFound = errors.New("attribute not found")
	// ErrNotAClass is returned when the class reading names a function.
	ErrNotAClass = errors.New("attribute is not a class")
	// ErrMalformedReference is returned for references without a module path.
	ErrMalformedReference = errors.New("malformed command reference")
)

type (
	// Kind tags the shape of a resolved target.
	Kind int

	// Target is a resolved command reference. Function is set for
	// KindFunction; Class and Method are set for both class kinds.
	Target struct {
		Kind     Kind
		Ref      string
		Function *callable.Function
		Class    *callable.Class
		Method   string
	}

	// ResolutionError names the module path and attribute that failed to resolve.
	ResolutionError struct {
		Ref       string
		Module    string
		Attribute string
		Err       error
	}

	// Resolver resolves references against a registry.
	Resolver struct {
		reg *callable.Registry
	}
)

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	if e.Module == "" {
		return fmt.Sprintf("cannot resolve %q: %v", e.Ref, e.Err)
	}
	return fmt.Sprintf("cannot resolve %q: module %q, attribute %q: %v", e.Ref, e.Module, e.Attribute, e.Err)
}

// Unwrap returns ErrUnresolved together with the underlying cause.
func (e *ResolutionError) Unwrap() []error { return []error{ErrUnresolved, e.Err} }

// String returns a short label for the kind.
func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindClassDefaultMethod:
		return "class"
	case KindClassExplicitMethod:
		return "method"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Constructed reports whether the target requires an instance.
func (t Target) Constructed() bool {
	return t.Kind == KindClassDefaultMethod || t.Kind == KindClassExplicitMethod
}

// New creates a Resolver over reg.
func New(reg *callable.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve resolves ref. Every failure is a *ResolutionError.
func (r *Resolver) Resolve(ref string) (Target, error) {
	modPath, attrName, ok := cut(ref)
	if !ok {
		return Target{}, &ResolutionError{Ref: ref, Err: fmt.Errorf("%w: expected module.attribute", ErrMalformedReference)}
	}

	mod, err := r.reg.Import(modPath)
	if err == nil {
		attr, found := mod.Attr(attrName)
		if !found {
			return Target{}, &ResolutionError{Ref: ref, Module: modPath, Attribute: attrName, Err: ErrAttributeNotFound}
		}
		switch a := attr.(type) {
		case *callable.Class:
			return Target{Kind: KindClassDefaultMethod, Ref: ref, Class: a, Method: callable.DefaultMethod}, nil
		case *callable.Function:
			return Target{Kind: KindFunction, Ref: ref, Function: a}, nil
		default:
			return Target{}, &ResolutionError{Ref: ref, Module: modPath, Attribute: attrName, Err: fmt.Errorf("unsupported attribute %T", attr)}
		}
	}
	if !errors.Is(err, callable.ErrModuleNotFound) {
		return Target{}, &ResolutionError{Ref: ref, Module: modPath, Attribute: attrName, Err: err}
	}

	// module.Class.method
	classMod, className, ok := cut(modPath)
	if !ok {
		return Target{}, &ResolutionError{Ref: ref, Module: modPath, Attribute: attrName, Err: err}
	}
	mod, err = r.reg.Import(classMod)
	if err != nil {
		return Target{}, &ResolutionError{Ref: ref, Module: classMod, Attribute: className, Err: err}
	}
	attr, found := mod.Attr(className)
	if !found {
		return Target{}, &ResolutionError{Ref: ref, Module: classMod, Attribute: className, Err: ErrAttributeNotFound}
	}
	cls, isClass := attr.(*callable.Class)
	if !isClass {
		return Target{}, &ResolutionError{Ref: ref, Module: classMod, Attribute: className, Err: ErrNotAClass}
	}
	return Target{Kind: KindClassExplicitMethod, Ref: ref, Class: cls, Method: attrName}, nil
}

// cut splits ref at its last dot. Both halves must be non-empty.
func cut(ref string) (head, last string, ok bool) {
	i := strings.LastIndexByte(ref, '.')
	if i <= 0 || i == len(ref)-1 {
		return "", "", false
	}
	return ref[:i], ref[i+1:], true
}
