// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/types"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand builds the command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "callrun",
		Short: "Invoke one registered command with a JSON configuration",
		Long: TitleStyle.Render("callrun") + SubtitleStyle.Render(" - a single-invocation command runner") + `

callrun resolves a dotted command reference against the targets compiled
into the binary, binds the parameters it declares from the "config" object
of an input document, invokes it exactly once and writes the resulting
session state (sub-tasks, exported and persisted parameters) as JSON.

` + SubtitleStyle.Render("Examples:") + `
  callrun run builtin.params.store in.json out.json
  callrun run builtin.shell.Script.check in.json out.json
  callrun list
  callrun describe builtin.fanout.each -o yaml
  callrun config show --format toml`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd.Context(), flags)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default is $XDG_CONFIG_HOME/callrun/config.cue)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "explain failures with the matching issue guide")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format: text, json or logfmt")

	rootCmd.AddCommand(
		newRunCommand(app),
		newListCommand(app),
		newDescribeCommand(app),
		newConfigCommand(app),
	)
	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI against reg and exits the process. A nil registry
// holds the built-in targets only.
func Execute(reg *callable.Registry) {
	os.Exit(int(Main(reg)))
}

// Main runs the CLI with os.Args and returns the process exit code.
func Main(reg *callable.Registry) types.ExitCode {
	app, err := NewApp(Dependencies{Registry: reg})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error:"), err)
		return types.ExitFailure
	}
	return app.Execute(context.Background(), os.Args[1:])
}

// Execute runs the command tree with args and maps the outcome to an exit code.
func (a *App) Execute(ctx context.Context, args []string) types.ExitCode {
	rootCmd := NewRootCommand(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(a.stdout)
	rootCmd.SetErr(a.stderr)

	err := fang.Execute(
		ctx,
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)

	var svcErr *ServiceError
	if a.verbose && errors.As(err, &svcErr) {
		renderServiceError(a.stderr, svcErr, a.glamourStyle())
	}
	return exitCodeOf(err)
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
