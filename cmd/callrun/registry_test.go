// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"

	"github.com/invowk/callrun/internal/builtin"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

type counter struct {
	start int
}

// demoRegistry holds the built-in targets plus a "demo" module exercising
// every target shape and failure class.
func demoRegistry() *callable.Registry {
	reg := callable.Must(builtin.NewRegistry())
	mod := reg.MustModule("demo")

	mod.MustAdd(
		callable.Must(callable.NewFunction("greet", func(_ context.Context, env *session.Env, args callable.Args) (any, error) {
			name, err := args.String("name")
			if err != nil {
				return nil, err
			}
			greeting, err := args.StringOr("greeting", "hello")
			if err != nil {
				return nil, err
			}
			env.Export("greeting", greeting+" "+name)
			env.SetState("greeted", true)
			return nil, nil
		}, callable.Required("name").Describe("Who to greet"), callable.Optional("greeting", "hello"))),
		callable.Must(callable.NewFunction("fail", func(context.Context, *session.Env, callable.Args) (any, error) {
			return nil, errors.New("boom")
		})),
		callable.Must(callable.NewFunction("unserializable", func(_ context.Context, env *session.Env, _ callable.Args) (any, error) {
			env.SetState("callback", func() {})
			return nil, nil
		})),
		callable.Must(callable.NewFunction("badsubtask", func(_ context.Context, env *session.Env, _ callable.Args) (any, error) {
			return nil, env.AddSubtask(nil, map[string]any{"ch": make(chan int)})
		})),
	)

	cls := callable.Must(callable.NewClass("Counter", func(_ context.Context, _ *session.Env, args callable.Args) (*counter, error) {
		start := 0
		if args.Has("start") {
			n, err := args.Int("start")
			if err != nil {
				return nil, err
			}
			start = n
		}
		return &counter{start: start}, nil
	}, callable.Optional("start", 0)))
	mustRegister(callable.AddMethod(cls, "run", func(_ context.Context, c *counter, env *session.Env, args callable.Args) (any, error) {
		step := 1
		if args.Has("step") {
			n, err := args.Int("step")
			if err != nil {
				return nil, err
			}
			step = n
		}
		env.SetState("count", c.start+step)
		return nil, nil
	}, callable.Optional("step", 1)))
	mustRegister(callable.AddMethod(cls, "spawn", func(_ context.Context, c *counter, env *session.Env, _ callable.Args) (any, error) {
		env.ExportChildren().Set("parent", "demo.Counter")
		return nil, env.AddSubtask(session.Call("demo.greet"), map[string]any{"name": "child", "start": c.start})
	}))
	mod.MustAdd(cls)

	return reg
}

func mustRegister(err error) {
	if err != nil {
		panic(err)
	}
}
