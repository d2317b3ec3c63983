// SPDX-License-Identifier: MPL-2.0

package invoke

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/invowk/callrun/internal/bind"
	"github.com/invowk/callrun/internal/resolve"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

// Driver phases, in execution order.
const (
	PhaseResolve         Phase = "resolve"
	PhaseBind            Phase = "bind"
	PhaseBindConstructor Phase = "bind-constructor"
	PhaseConstruct       Phase = "construct"
	PhaseLookupMethod    Phase = "lookup-method"
	PhaseBindMethod      Phase = "bind-method"
	PhaseInvoke          Phase = "invoke"
)

const (
	// StatePending is the state of an Outcome whose run has not finished.
	StatePending State = iota
	// StateSucceeded means the target returned without error.
	StateSucceeded
	// StateFailed means a phase failed; Outcome.Err is a *PhaseError.
	StateFailed
)

type (
	// Phase names one step of the driver.
	Phase string

	// State is the terminal state of a run.
	State int

	// Outcome describes a finished run. Result is the value returned by the
	// target; the runner does not serialize it.
	Outcome struct {
		Target resolve.Target
		State  State
		Phase  Phase
		Result any
		Err    error
	}

	// Option configures a Driver.
	Option func(*Driver)

	// Driver runs command references against a registry.
	Driver struct {
		resolver *resolve.Resolver
		logger   *slog.Logger
	}
)

// String returns a lower-case label for the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// WithLogger sets the logger used for phase tracing. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(d *Driver) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDriver creates a Driver over reg.
func NewDriver(reg *callable.Registry, opts ...Option) *Driver {
	d := &Driver{resolver: resolve.New(reg), logger: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Resolver returns the resolver the driver uses.
func (d *Driver) Resolver() *resolve.Resolver { return d.resolver }

// Run resolves ref and invokes it once with arguments bound from env's
// configuration. The returned error, when non-nil, is the *PhaseError also
// stored in Outcome.Err.
func (d *Driver) Run(ctx context.Context, ref string, env *session.Env) (Outcome, error) {
	out := Outcome{Phase: PhaseResolve}

	target, err := d.resolver.Resolve(ref)
	if err != nil {
		return d.fail(out, err)
	}
	out.Target = target
	d.logger.Debug("resolved command", "ref", ref, "kind", target.Kind.String())

	cfg := env.Config()

	switch target.Kind {
	case resolve.KindFunction:
		out.Phase = PhaseBind
		args, bindErr := bind.Bind(target.Function.QualifiedName(), target.Function.Signature(), cfg, false)
		if bindErr != nil {
			return d.fail(out, bindErr)
		}
		out.Phase = PhaseInvoke
		d.logger.Debug("invoking function", "callable", target.Function.QualifiedName(), "args", len(args))
		res, callErr := guard(target.Function.QualifiedName(), func() (any, error) {
			return target.Function.Call(ctx, env, args)
		})
		if callErr != nil {
			return d.fail(out, callErr)
		}
		out.Result = res

	case resolve.KindClassDefaultMethod, resolve.KindClassExplicitMethod:
		res, phase, runErr := d.runConstructed(ctx, target, env, cfg)
		out.Phase = phase
		if runErr != nil {
			return d.fail(out, runErr)
		}
		out.Result = res

	default:
		return d.fail(out, fmt.Errorf("unsupported target kind %v", target.Kind))
	}

	out.State = StateSucceeded
	d.logger.Debug("command succeeded", "ref", ref)
	return out, nil
}

func (d *Driver) runConstructed(ctx context.Context, target resolve.Target, env *session.Env, cfg map[string]any) (any, Phase, error) {
	cls := target.Class

	ctorArgs, err := bind.Bind(cls.ConstructorName(), cls.ConstructorSignature(), cfg, true)
	if err != nil {
		return nil, PhaseBindConstructor, err
	}

	d.logger.Debug("constructing instance", "class", cls.QualifiedName(), "args", len(ctorArgs))
	inst, err := guard(cls.ConstructorName(), func() (any, error) {
		return cls.New(ctx, env, ctorArgs)
	})
	if err != nil {
		return nil, PhaseConstruct, err
	}

	method, ok := cls.Method(target.Method)
	if !ok {
		return nil, PhaseLookupMethod, &resolve.ResolutionError{
			Ref:       target.Ref,
			Module:    cls.QualifiedName(),
			Attribute: target.Method,
			Err:       resolve.ErrAttributeNotFound,
		}
	}

	args, err := bind.Bind(method.QualifiedName(), method.Signature(), cfg, true)
	if err != nil {
		return nil, PhaseBindMethod, err
	}

	d.logger.Debug("invoking method", "callable", method.QualifiedName(), "args", len(args))
	res, err := guard(method.QualifiedName(), func() (any, error) {
		return method.Call(ctx, inst, env, args)
	})
	if err != nil {
		return nil, PhaseInvoke, err
	}
	return res, PhaseInvoke, nil
}

func (d *Driver) fail(out Outcome, err error) (Outcome, error) {
	out.State = StateFailed
	out.Err = &PhaseError{Phase: out.Phase, Err: err}
	d.logger.Debug("command failed", "phase", string(out.Phase), "error", err)
	return out, out.Err
}

// guard calls fn, wrapping its error or panic in an *InvocationError.
func guard(name string, fn func() (any, error)) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			panicErr, _ := r.(error)
			res = nil
			err = &InvocationError{Callable: name, Err: panicErr, Panic: r, Stack: debug.Stack()}
		}
	}()

	res, err = fn()
	if err != nil {
		return nil, &InvocationError{Callable: name, Err: err}
	}
	return res, nil
}
