// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

// EchoExportKey is the export parameter set by builtin.params.echo.
const EchoExportKey = "echo_message"

func registerParams(reg *callable.Registry) error {
	mod, err := reg.Module(ParamsModule)
	if err != nil {
		return err
	}

	store, err := callable.NewFunction("store", storeParam,
		callable.Required("key").Describe("State parameter name"),
		callable.Required("value").Describe("Value to persist"),
	)
	if err != nil {
		return err
	}
	export, err := callable.NewFunction("export", exportParams,
		callable.Kwargs("params"),
	)
	if err != nil {
		return err
	}
	echo, err := callable.NewFunction("echo", echoMessage,
		callable.Required("message").Describe("Text to log and export"),
		callable.Optional("level", "info").Describe("Log level: debug, info, warn or error"),
	)
	if err != nil {
		return err
	}
	return mod.Add(store, export, echo)
}

func storeParam(_ context.Context, env *session.Env, args callable.Args) (any, error) {
	key, err := args.String("key")
	if err != nil {
		return nil, err
	}
	if key == "" {
		return nil, fmt.Errorf("store: key must not be empty")
	}
	value, _ := args.Get("value")
	env.SetState(key, value)
	return nil, nil
}

// exportParams exports every configuration entry in source document order.
func exportParams(_ context.Context, env *session.Env, args callable.Args) (any, error) {
	for _, key := range env.ConfigKeys() {
		if v, ok := args[key]; ok {
			env.Export(key, v)
		}
	}
	return nil, nil
}

func echoMessage(ctx context.Context, env *session.Env, args callable.Args) (any, error) {
	msg, err := args.String("message")
	if err != nil {
		return nil, err
	}
	name, err := args.StringOr("level", "info")
	if err != nil {
		return nil, err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return nil, fmt.Errorf("echo: unknown level %q", name)
	}

	slog.Log(ctx, level, msg, "target", ParamsModule+".echo")
	env.Export(EchoExportKey, msg)
	return msg, nil
}
