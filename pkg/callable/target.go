// SPDX-License-Identifier: MPL-2.0

package callable

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/invowk/callrun/pkg/session"
)

const (
	// AttrFunction marks a directly invocable function.
	AttrFunction AttributeKind = iota + 1
	// AttrClass marks a constructible class with named methods.
	AttrClass
)

// DefaultMethod is the method invoked when a command reference names a class.
const DefaultMethod = "run"

var (
	// ErrDuplicateMethod is returned when a class already declares a method of the same name.
	ErrDuplicateMethod = errors.New("duplicate method")
	// ErrReceiverType is returned when a method's receiver type differs from the class instance type.
	ErrReceiverType = errors.New("receiver type mismatch")
)

type (
	// AttributeKind distinguishes functions from classes.
	AttributeKind int

	// Attribute is a named member of a Module: a *Function or a *Class.
	Attribute interface {
		Name() string
		QualifiedName() string
		Kind() AttributeKind
		attach(module string) error
	}

	// Func is the Go shape of a directly invocable target. Its return value is
	// discarded by the runner; observable effects go through env.
	Func func(ctx context.Context, env *session.Env, args Args) (any, error)

	// Function is a registered direct-form target.
	Function struct {
		name   string
		module string
		sig    Signature
		fn     Func
	}

	// Class is a registered constructible target.
	Class struct {
		name      string
		module    string
		typ       reflect.Type
		init      Signature
		construct func(ctx context.Context, env *session.Env, args Args) (any, error)
		methods   map[string]*Method
		order     []string
	}

	// Method is a named method of a Class.
	Method struct {
		name  string
		class *Class
		sig   Signature
		call  func(ctx context.Context, recv any, env *session.Env, args Args) (any, error)
	}
)

// NewFunction creates a direct-form target.
func NewFunction(name string, fn Func, params ...Param) (*Function, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, fmt.Errorf("function %q: nil implementation", name)
	}
	sig, err := NewSignature(params...)
	if err != nil {
		return nil, fmt.Errorf("function %q: %w", name, err)
	}
	return &Function{name: name, sig: sig, fn: fn}, nil
}

// Name returns the attribute name within its module.
func (f *Function) Name() string { return f.name }

// QualifiedName returns the dotted reference of the function.
func (f *Function) QualifiedName() string { return qualify(f.module, f.name) }

// Kind returns AttrFunction.
func (f *Function) Kind() AttributeKind { return AttrFunction }

// Signature returns the declared parameters.
func (f *Function) Signature() Signature { return f.sig }

// Call invokes the function with an already bound argument set.
func (f *Function) Call(ctx context.Context, env *session.Env, args Args) (any, error) {
	return f.fn(ctx, env, args)
}

func (f *Function) attach(module string) error {
	if f.module != "" {
		return fmt.Errorf("function %q is already registered in module %q", f.name, f.module)
	}
	f.module = module
	return nil
}

// NewClass creates a constructible target whose instances have type T.
// A nil constructor registers the implicit default constructor: it declares
// no parameters and produces T's zero value.
func NewClass[T any](name string, ctor func(ctx context.Context, env *session.Env, args Args) (T, error), params ...Param) (*Class, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	c := &Class{
		name:    name,
		typ:     reflect.TypeFor[T](),
		methods: make(map[string]*Method),
	}

	if ctor == nil {
		if len(params) > 0 {
			return nil, fmt.Errorf("class %q: parameters declared without a constructor", name)
		}
		c.init = Signature{Params: []Param{{Name: ReceiverName, Kind: ParamReceiver}}, Implicit: true}
		c.construct = func(context.Context, *session.Env, Args) (any, error) {
			var zero T
			return zero, nil
		}
		return c, nil
	}

	sig, err := newReceiverSignature(params...)
	if err != nil {
		return nil, fmt.Errorf("class %q constructor: %w", name, err)
	}
	c.init = sig
	c.construct = func(ctx context.Context, env *session.Env, args Args) (any, error) {
		return ctor(ctx, env, args)
	}
	return c, nil
}

// AddMethod registers a method on a class. T must be the instance type the
// class was created with.
func AddMethod[T any](c *Class, name string, fn func(ctx context.Context, recv T, env *session.Env, args Args) (any, error), params ...Param) error {
	if err := validateName(name); err != nil {
		return err
	}
	if fn == nil {
		return fmt.Errorf("method %s.%s: nil implementation", c.name, name)
	}
	if got := reflect.TypeFor[T](); got != c.typ {
		return fmt.Errorf("method %s.%s: %w: class instances are %s, method expects %s", c.name, name, ErrReceiverType, c.typ, got)
	}
	if _, exists := c.methods[name]; exists {
		return fmt.Errorf("method %s.%s: %w", c.name, name, ErrDuplicateMethod)
	}

	sig, err := newReceiverSignature(params...)
	if err != nil {
		return fmt.Errorf("method %s.%s: %w", c.name, name, err)
	}

	c.methods[name] = &Method{
		name:  name,
		class: c,
		sig:   sig,
		call: func(ctx context.Context, recv any, env *session.Env, args Args) (any, error) {
			typed, ok := recv.(T)
			if !ok {
				return nil, fmt.Errorf("method %s.%s: %w: got %T", c.name, name, ErrReceiverType, recv)
			}
			return fn(ctx, typed, env, args)
		},
	}
	c.order = append(c.order, name)
	return nil
}

// Name returns the attribute name within its module.
func (c *Class) Name() string { return c.name }

// QualifiedName returns the dotted reference of the class.
func (c *Class) QualifiedName() string { return qualify(c.module, c.name) }

// Kind returns AttrClass.
func (c *Class) Kind() AttributeKind { return AttrClass }

// ConstructorName returns the name used for the constructor in diagnostics.
func (c *Class) ConstructorName() string { return c.QualifiedName() + ".__init__" }

// ConstructorSignature returns the declared constructor parameters,
// receiver first.
func (c *Class) ConstructorSignature() Signature { return c.init }

// New constructs an instance with an already bound argument set.
func (c *Class) New(ctx context.Context, env *session.Env, args Args) (any, error) {
	return c.construct(ctx, env, args)
}

// Method returns the named method.
func (c *Class) Method(name string) (*Method, bool) {
	m, ok := c.methods[name]
	return m, ok
}

// Methods returns the method names in registration order.
func (c *Class) Methods() []string {
	return append([]string(nil), c.order...)
}

func (c *Class) attach(module string) error {
	if c.module != "" {
		return fmt.Errorf("class %q is already registered in module %q", c.name, c.module)
	}
	c.module = module
	return nil
}

// Name returns the method name.
func (m *Method) Name() string { return m.name }

// QualifiedName returns the dotted reference of the method.
func (m *Method) QualifiedName() string { return m.class.QualifiedName() + "." + m.name }

// Signature returns the declared parameters, receiver first.
func (m *Method) Signature() Signature { return m.sig }

// Call invokes the method on an instance with an already bound argument set.
func (m *Method) Call(ctx context.Context, recv any, env *session.Env, args Args) (any, error) {
	return m.call(ctx, recv, env, args)
}

// Must panics if err is non-nil. It is intended for registration code run
// during program initialization.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func qualify(module, name string) string {
	if module == "" {
		return name
	}
	return module + "." + name
}
