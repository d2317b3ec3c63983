// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/invowk/callrun/internal/document"
	"github.com/invowk/callrun/internal/invoke"
	"github.com/invowk/callrun/pkg/session"
	"github.com/invowk/callrun/pkg/types"
)

// RunRequest captures the positional inputs of `callrun run`.
type RunRequest struct {
	// Command is the dotted command reference.
	Command string
	// InputPath is the input document holding the configuration.
	InputPath types.FilesystemPath
	// OutputPath receives the result document.
	OutputPath types.FilesystemPath
}

func newRunCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run <command> <input> <output>",
		Short: "Invoke a command once and write its session state",
		Long: `Invoke a command once and write its session state.

<command> is a dotted reference: "module.function", "module.Class" (runs
the class's run method) or "module.Class.method". Parameters are bound by
name from the "config" object of the <input> JSON document; keys the target
does not declare are ignored. On success the result document is written to
<output>:

  {"subtask_config": {...}, "export_params": {...}, "state_params": {...}}

On failure nothing is written and the exit status names the failure class:
3 resolution, 4 binding, 5 serialization, 6 invocation, 7 input/output.`,
		Example: `  callrun run builtin.params.store params.json result.json
  callrun run builtin.shell.Script.run params.json result.json --log-level debug`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), RunRequest{
				Command:    args[0],
				InputPath:  types.FilesystemPath(args[1]),
				OutputPath: types.FilesystemPath(args[2]),
			})
		},
	}
}

// Run reads the input document, invokes req.Command once and writes the
// result document. The returned error is an *ExitError carrying the exit
// code of the failure class.
func (a *App) Run(ctx context.Context, req RunRequest) error {
	in, err := document.ReadInput(string(req.InputPath), document.WithMaxSize(a.cfg.Input.MaxFileSize))
	if err != nil {
		return a.runFailure(req, err)
	}

	env := session.New(in.Config, session.WithKeyOrder(in.Keys))
	driver := invoke.NewDriver(a.Registry, invoke.WithLogger(a.logger))
	outcome, err := driver.Run(ctx, req.Command, env)
	if err != nil {
		return a.runFailure(req, err)
	}
	a.logger.Debug("command finished",
		"command", req.Command,
		"kind", outcome.Target.Kind.String(),
		"subtasks", env.SubtaskCount(),
	)

	indent := strings.Repeat(" ", a.cfg.Output.Indent)
	if err := document.WriteResult(string(req.OutputPath), env.Result(), indent); err != nil {
		return a.runFailure(req, err)
	}
	return nil
}

func (a *App) runFailure(req RunRequest, err error) error {
	code, issueID := classifyRunError(err)
	a.logger.Debug("run failed", "command", req.Command, "exitCode", code, "error", err)
	return a.fail(code, issueID, err)
}
