// SPDX-License-Identifier: MPL-2.0

package callable

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ParamPositional is a named parameter bound from the configuration key of the same name.
	ParamPositional ParamKind = iota
	// ParamKeywords is a catch-all keyword receiver.
	ParamKeywords
	// ParamReceiver is the implicit leading receiver of constructors and methods.
	ParamReceiver
)

// ReceiverName is the declared name of the implicit receiver parameter.
const ReceiverName = "self"

// ErrInvalidSignature is the sentinel error wrapped by InvalidSignatureError.
var ErrInvalidSignature = errors.New("invalid signature")

type (
	// ParamKind distinguishes positional, keyword catch-all and receiver parameters.
	ParamKind int

	// Param declares one parameter of a target.
	Param struct {
		Name        string
		Kind        ParamKind
		Default     any
		HasDefault  bool
		Description string
	}

	// Signature is the declared parameter list of a callable, in declaration
	// order. Keyword catch-alls are not part of Params; Keywords records their
	// presence.
	Signature struct {
		Params   []Param
		Keywords string
		// Implicit marks the default constructor of a class registered
		// without one: it declares only the receiver and always binds to an
		// empty argument set.
		Implicit bool
	}

	// InvalidSignatureError is returned when a parameter list cannot form a
	// valid signature.
	InvalidSignatureError struct {
		Param  string
		Reason string
	}
)

// Required declares a parameter without a default.
func Required(name string) Param {
	return Param{Name: name}
}

// Optional declares a parameter with a default. The target applies the
// default itself; the binder only uses its presence to decide optionality.
func Optional(name string, def any) Param {
	return Param{Name: name, Default: def, HasDefault: true}
}

// Kwargs declares a catch-all keyword receiver. It must be the last parameter.
func Kwargs(name string) Param {
	return Param{Name: name, Kind: ParamKeywords}
}

// Describe returns a copy of the parameter with a description attached.
func (p Param) Describe(text string) Param {
	p.Description = text
	return p
}

// Error implements the error interface.
func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature: parameter %q: %s", e.Param, e.Reason)
}

// Unwrap returns ErrInvalidSignature for errors.Is() compatibility.
func (e *InvalidSignatureError) Unwrap() error { return ErrInvalidSignature }

// NewSignature builds a Signature from a parameter list. Names must be
// unique and non-empty, parameters with defaults must form a trailing
// suffix, and at most one Kwargs parameter may appear, in last position.
func NewSignature(params ...Param) (Signature, error) {
	var sig Signature
	seen := make(map[string]bool, len(params))
	sawDefault := false

	for i, p := range params {
		if strings.TrimSpace(p.Name) == "" {
			return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "name must not be empty"}
		}
		if seen[p.Name] {
			return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "duplicate parameter name"}
		}
		seen[p.Name] = true

		switch p.Kind {
		case ParamKeywords:
			if i != len(params)-1 {
				return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "keyword catch-all must be the last parameter"}
			}
			sig.Keywords = p.Name
			continue
		case ParamReceiver:
			if i != 0 {
				return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "receiver must be the first parameter"}
			}
		case ParamPositional:
			if p.HasDefault {
				sawDefault = true
			} else if sawDefault {
				return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "parameter without default follows a parameter with default"}
			}
		default:
			return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: fmt.Sprintf("unknown parameter kind %d", p.Kind)}
		}
		sig.Params = append(sig.Params, p)
	}

	return sig, nil
}

// newReceiverSignature builds a signature whose first parameter is the
// implicit receiver.
func newReceiverSignature(params ...Param) (Signature, error) {
	for _, p := range params {
		if p.Name == ReceiverName {
			return Signature{}, &InvalidSignatureError{Param: p.Name, Reason: "name is reserved for the receiver"}
		}
	}
	return NewSignature(append([]Param{{Name: ReceiverName, Kind: ParamReceiver}}, params...)...)
}

// HasReceiver reports whether the first declared parameter is the receiver.
func (s Signature) HasReceiver() bool {
	return len(s.Params) > 0 && s.Params[0].Kind == ParamReceiver
}

// AcceptsKeywords reports whether the signature declares a catch-all keyword receiver.
func (s Signature) AcceptsKeywords() bool {
	return s.Keywords != ""
}

// DefaultCount returns the length of the trailing defaulted suffix.
func (s Signature) DefaultCount() int {
	n := 0
	for i := len(s.Params) - 1; i >= 0; i-- {
		if !s.Params[i].HasDefault {
			break
		}
		n++
	}
	return n
}

// String renders the signature as "(self, a, b=1, **kw)".
func (s Signature) String() string {
	parts := make([]string, 0, len(s.Params)+1)
	for _, p := range s.Params {
		if p.HasDefault {
			parts = append(parts, fmt.Sprintf("%s=%v", p.Name, p.Default))
		} else {
			parts = append(parts, p.Name)
		}
	}
	if s.Keywords != "" {
		parts = append(parts, "**"+s.Keywords)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
