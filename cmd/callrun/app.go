// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/invowk/callrun/internal/builtin"
	"github.com/invowk/callrun/internal/config"
	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/internal/logging"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/types"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every Cobra handler receives an App reference.
	App struct {
		Registry *callable.Registry
		Config   config.Provider
		stdout   io.Writer
		stderr   io.Writer

		// Set by the root command before any subcommand runs.
		cfg     *config.Config
		logger  *slog.Logger
		verbose bool
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Registry *callable.Registry
		Config   config.Provider
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// globalFlags holds the persistent flags of the root command.
	globalFlags struct {
		configPath string
		verbose    bool
		logLevel   string
		logFormat  string
	}
)

// NewApp creates an App with defaults for omitted dependencies. The default
// registry holds the built-in targets only.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Registry == nil {
		reg, err := builtin.NewRegistry()
		if err != nil {
			return nil, fmt.Errorf("register built-in targets: %w", err)
		}
		deps.Registry = reg
	}

	return &App{
		Registry: deps.Registry,
		Config:   deps.Config,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
		cfg:      config.DefaultConfig(),
		logger:   logging.Discard(),
	}, nil
}

// setup loads the configuration, applies flag overrides and installs the
// logger as the slog default.
func (a *App) setup(ctx context.Context, flags *globalFlags) error {
	a.verbose = flags.verbose

	cfg, err := a.Config.Load(ctx, config.LoadOptions{
		ConfigFilePath: types.FilesystemPath(flags.configPath),
	})
	if err != nil {
		return a.fail(types.ExitFailure, issue.ConfigLoadFailedId, err)
	}

	if flags.logLevel != "" {
		cfg.LogLevel = config.LogLevel(flags.logLevel)
	}
	if flags.logFormat != "" {
		cfg.LogFormat = config.LogFormat(flags.logFormat)
	}
	if ok, errs := cfg.IsValid(); !ok {
		return a.fail(types.ExitFailure, issue.ConfigLoadFailedId, errs[0])
	}
	a.verbose = a.verbose || cfg.UI.Verbose

	logger, err := logging.New(a.stderr, logging.Options{
		Level:  cfg.LogLevel.String(),
		Format: cfg.LogFormat.String(),
		Prefix: config.AppName,
	})
	if err != nil {
		return a.fail(types.ExitFailure, 0, err)
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	return nil
}

// fail wraps err for the root command: the one-line diagnostic is printed
// by fang, the issue catalog entry is rendered afterwards in verbose mode.
func (a *App) fail(code types.ExitCode, issueID issue.Id, err error) error {
	return &ExitError{Code: code, Err: newServiceError(err, issueID)}
}

// glamourStyle maps the configured color scheme to a glamour style name.
func (a *App) glamourStyle() string {
	switch a.cfg.UI.ColorScheme {
	case config.ColorSchemeDark:
		return "dark"
	case config.ColorSchemeLight:
		return "light"
	default:
		return "auto"
	}
}
