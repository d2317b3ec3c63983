// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cast"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/session"
)

const (
	// StdoutExportKey is the export parameter set by Script.run with capture.
	StdoutExportKey = "stdout"
	// ScriptValidStateKey is the state parameter set by Script.check.
	ScriptValidStateKey = "script_valid"
	// ScriptErrorStateKey holds the parse error when Script.check fails.
	ScriptErrorStateKey = "script_error"
)

type (
	// Script runs shell scripts through the mvdan/sh interpreter, with no
	// dependency on a system shell.
	Script struct {
		dir    string
		env    []string
		stdout io.Writer
		stderr io.Writer
	}

	// ScriptExitError reports a script that exited with a non-zero status.
	ScriptExitError struct {
		Code int
	}
)

// Error implements the error interface.
func (e *ScriptExitError) Error() string {
	return fmt.Sprintf("script exited with status %d", e.Code)
}

func registerShell(reg *callable.Registry) error {
	mod, err := reg.Module(ShellModule)
	if err != nil {
		return err
	}

	cls, err := callable.NewClass("Script", newScript,
		callable.Optional("dir", ".").Describe("Working directory"),
		callable.Optional("env", map[string]any{}).Describe("Extra environment variables"),
	)
	if err != nil {
		return err
	}
	if err := callable.AddMethod(cls, "run", scriptRun,
		callable.Required("script").Describe("Shell script source"),
		callable.Optional("capture", false).Describe("Export stdout instead of printing it"),
	); err != nil {
		return err
	}
	if err := callable.AddMethod(cls, "check", scriptCheck,
		callable.Required("script").Describe("Shell script source"),
	); err != nil {
		return err
	}
	return mod.Add(cls)
}

func scriptRun(ctx context.Context, s *Script, env *session.Env, args callable.Args) (any, error) {
	return s.run(ctx, env, args)
}

func scriptCheck(ctx context.Context, s *Script, env *session.Env, args callable.Args) (any, error) {
	return s.check(ctx, env, args)
}

// scriptOptions are the Script constructor parameters.
type scriptOptions struct {
	Dir string         `json:"dir"`
	Env map[string]any `json:"env"`
}

func newScript(_ context.Context, _ *session.Env, args callable.Args) (*Script, error) {
	var opts scriptOptions
	if err := args.Decode(&opts); err != nil {
		return nil, err
	}
	if opts.Dir == "" {
		opts.Dir = "."
	}
	s := &Script{dir: opts.Dir, env: os.Environ(), stdout: os.Stdout, stderr: os.Stderr}

	for _, k := range sortedKeys(opts.Env) {
		v, err := cast.ToStringE(opts.Env[k])
		if err != nil {
			return nil, fmt.Errorf("env %s: %w", k, err)
		}
		s.env = append(s.env, k+"="+v)
	}
	return s, nil
}

func (s *Script) run(ctx context.Context, env *session.Env, args callable.Args) (any, error) {
	src, err := args.String("script")
	if err != nil {
		return nil, err
	}
	capture, err := args.BoolOr("capture", false)
	if err != nil {
		return nil, err
	}

	prog, err := syntax.NewParser().Parse(strings.NewReader(src), "script")
	if err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}

	stdout := s.stdout
	var buf bytes.Buffer
	if capture {
		stdout = &buf
	}

	runner, err := interp.New(
		interp.Dir(s.dir),
		interp.Env(expand.ListEnviron(s.env...)),
		interp.StdIO(nil, stdout, s.stderr),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if err := runner.Run(ctx, prog); err != nil {
		var status interp.ExitStatus
		if errors.As(err, &status) {
			return nil, &ScriptExitError{Code: int(status)}
		}
		return nil, fmt.Errorf("script execution failed: %w", err)
	}

	if capture {
		env.Export(StdoutExportKey, strings.TrimRight(buf.String(), "\n"))
	}
	return nil, nil
}

func (s *Script) check(_ context.Context, env *session.Env, args callable.Args) (any, error) {
	src, err := args.String("script")
	if err != nil {
		return nil, err
	}
	_, parseErr := syntax.NewParser().Parse(strings.NewReader(src), "script")
	env.SetState(ScriptValidStateKey, parseErr == nil)
	if parseErr != nil {
		env.SetState(ScriptErrorStateKey, parseErr.Error())
	}
	return parseErr == nil, nil
}
