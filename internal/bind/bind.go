// SPDX-License-Identifier: MPL-2.0

// Package bind computes the Argument Set a target receives from the
// configuration.
package bind

import (
	"errors"
	"fmt"
	"maps"

	"github.com/invowk/callrun/pkg/callable"
)

// ErrMissingParam is the sentinel error wrapped by BindingError.
var ErrMissingParam = errors.New("missing required parameter")

// BindingError names the callable and the required parameter absent from
// the configuration.
type BindingError struct {
	Callable string
	Param    string
}

// Error implements the error interface.
func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: missing required parameter %q", e.Callable, e.Param)
}

// Unwrap returns ErrMissingParam for errors.Is() compatibility.
func (e *BindingError) Unwrap() error { return ErrMissingParam }

// Bind returns the arguments sig receives from cfg. name identifies the
// callable in errors. With skipReceiver set, a leading receiver parameter
// is not bound.
//
// A parameter is optional iff it lies in the trailing defaulted suffix of
// the declared list; optional parameters absent from cfg are left unset.
// A signature with a keyword catch-all receives a copy of all of cfg once
// every required parameter has been checked.
func Bind(name string, sig callable.Signature, cfg map[string]any, skipReceiver bool) (callable.Args, error) {
	if sig.Implicit {
		return callable.Args{}, nil
	}

	params := sig.Params
	firstOptional := len(params) - sig.DefaultCount()
	start := 0
	if skipReceiver && sig.HasReceiver() {
		start = 1
	}

	args := make(callable.Args, len(params))
	for i := start; i < len(params); i++ {
		p := params[i]
		if v, ok := cfg[p.Name]; ok {
			args[p.Name] = v
			continue
		}
		if i >= firstOptional {
			continue
		}
		return nil, &BindingError{Callable: name, Param: p.Name}
	}

	if sig.AcceptsKeywords() {
		return callable.Args(maps.Clone(cfg)), nil
	}
	return args, nil
}
