// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

// ErrNoCommand is returned by builtin.fanout.each when command is empty.
var ErrNoCommand = errors.New("fanout: command must not be empty")

func registerFanout(reg *callable.Registry) error {
	mod, err := reg.Module(FanoutModule)
	if err != nil {
		return err
	}
	each, err := callable.NewFunction("each", fanoutEach,
		callable.Required("items").Describe("List of values, one sub-task each"),
		callable.Required("command").Describe("Dotted reference each sub-task calls"),
		callable.Optional("param", "item").Describe("Parameter name receiving the item"),
		callable.Kwargs("extra"),
	)
	if err != nil {
		return err
	}
	return mod.Add(each)
}

// fanoutEach declares one sub-task per item. Each sub-task calls command
// with the item under param, plus every configuration entry other than
// items, command and param.
func fanoutEach(_ context.Context, env *session.Env, args callable.Args) (any, error) {
	items, err := args.Slice("items")
	if err != nil {
		return nil, err
	}
	command, err := args.String("command")
	if err != nil {
		return nil, err
	}
	if command == "" {
		return nil, ErrNoCommand
	}
	param, err := args.StringOr("param", "item")
	if err != nil {
		return nil, err
	}

	extra := maps.Clone(map[string]any(args))
	for _, k := range []string{"items", "command", "param"} {
		delete(extra, k)
	}

	for i, item := range items {
		cfg := maps.Clone(extra)
		cfg[param] = item
		if err := env.AddSubtask(session.Call(command), cfg); err != nil {
			return nil, fmt.Errorf("fanout item %d: %w", i, err)
		}
	}
	return len(items), nil
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
