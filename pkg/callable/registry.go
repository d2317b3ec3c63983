// SPDX-License-Identifier: MPL-2.0

package callable

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrModuleNotFound is returned by Import for module paths that were never registered.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidName is returned for empty or malformed module and attribute names.
	ErrInvalidName = errors.New("invalid name")
	// ErrDuplicateAttribute is returned when a module already has an attribute of the same name.
	ErrDuplicateAttribute = errors.New("duplicate attribute")
)

type (
	// Registry maps dotted module paths to modules. It is populated during
	// program initialization and read-only afterwards.
	Registry struct {
		modules map[string]*Module
		order   []string
	}

	// Module is a named group of functions and classes.
	Module struct {
		path  string
		attrs map[string]Attribute
		order []string
	}

	// TargetInfo describes one invokable dotted reference.
	TargetInfo struct {
		Ref       string
		Kind      AttributeKind
		Signature Signature
	}
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*Module)}
}

// Module returns the module registered at path, creating it if needed.
func (r *Registry) Module(path string) (*Module, error) {
	if err := validatePath(path); err != nil {
		return nil, err
	}
	if m, ok := r.modules[path]; ok {
		return m, nil
	}
	m := &Module{path: path, attrs: make(map[string]Attribute)}
	r.modules[path] = m
	r.order = append(r.order, path)
	return m, nil
}

// MustModule is like Module but panics on an invalid path.
func (r *Registry) MustModule(path string) *Module {
	return Must(r.Module(path))
}

// Import returns the module registered at path. Unknown paths, including
// the empty path, yield an error matching ErrModuleNotFound.
func (r *Registry) Import(path string) (*Module, error) {
	m, ok := r.modules[path]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrModuleNotFound, path)
	}
	return m, nil
}

// Modules returns the registered module paths in registration order.
func (r *Registry) Modules() []string {
	return append([]string(nil), r.order...)
}

// Targets lists every invokable reference: functions, classes (invoked
// through their default method) and class methods.
func (r *Registry) Targets() []TargetInfo {
	var out []TargetInfo
	for _, path := range r.order {
		m := r.modules[path]
		for _, name := range m.order {
			switch a := m.attrs[name].(type) {
			case *Function:
				out = append(out, TargetInfo{Ref: a.QualifiedName(), Kind: AttrFunction, Signature: a.Signature()})
			case *Class:
				out = append(out, TargetInfo{Ref: a.QualifiedName(), Kind: AttrClass, Signature: a.ConstructorSignature()})
				for _, method := range a.order {
					out = append(out, TargetInfo{Ref: a.methods[method].QualifiedName(), Kind: AttrClass, Signature: a.methods[method].Signature()})
				}
			}
		}
	}
	return out
}

// Path returns the dotted module path.
func (m *Module) Path() string { return m.path }

// Add registers attributes in the module.
func (m *Module) Add(attrs ...Attribute) error {
	for _, a := range attrs {
		if a == nil {
			return fmt.Errorf("module %q: nil attribute", m.path)
		}
		if _, exists := m.attrs[a.Name()]; exists {
			return fmt.Errorf("module %q: %w: %q", m.path, ErrDuplicateAttribute, a.Name())
		}
		if err := a.attach(m.path); err != nil {
			return err
		}
		m.attrs[a.Name()] = a
		m.order = append(m.order, a.Name())
	}
	return nil
}

// MustAdd is like Add but panics on error.
func (m *Module) MustAdd(attrs ...Attribute) *Module {
	if err := m.Add(attrs...); err != nil {
		panic(err)
	}
	return m
}

// Attr returns the named attribute.
func (m *Module) Attr(name string) (Attribute, bool) {
	a, ok := m.attrs[name]
	return a, ok
}

// Attrs returns the attribute names in registration order.
func (m *Module) Attrs() []string {
	return append([]string(nil), m.order...)
}

func validateName(name string) error {
	if name == "" || strings.ContainsAny(name, ". \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("%w: empty module path", ErrInvalidName)
	}
	for _, seg := range strings.Split(path, ".") {
		if err := validateName(seg); err != nil {
			return fmt.Errorf("module path %q: %w", path, err)
		}
	}
	return nil
}
