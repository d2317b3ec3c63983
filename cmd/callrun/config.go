// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/invowk/callrun/internal/config"
	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/pkg/types"
)

// newConfigCommand creates the `callrun config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect callrun configuration",
		Long: `Inspect callrun configuration.

Configuration is read from the first file found among:
  - the --config flag
  - $XDG_CONFIG_HOME/callrun/config.cue (macOS: ~/Library/Application Support,
    Windows: %APPDATA%)
  - ./callrun.cue

CALLRUN_* environment variables override file values (CALLRUN_LOG_LEVEL,
CALLRUN_OUTPUT_INDENT, ...).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	var format string
	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := renderConfig(app.cfg, format)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), data)
			return nil
		},
	}
	showCmd.Flags().StringVar(&format, "format", "cue", "output format: cue, toml or json")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			_, source, err := config.LoadWithSource(cmd.Context(), config.LoadOptions{
				ConfigFilePath: types.FilesystemPath(configPath),
			})
			if err != nil {
				return app.fail(types.ExitFailure, issue.ConfigLoadFailedId, err)
			}
			return showConfigPath(cmd, source)
		},
	}

	cfgCmd.AddCommand(showCmd, pathCmd)
	return cfgCmd
}

// renderConfig encodes cfg in the requested format.
func renderConfig(cfg *config.Config, format string) (string, error) {
	switch format {
	case "cue":
		return config.GenerateCUE(cfg), nil
	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return "", fmt.Errorf("encode config as TOML: %w", err)
		}
		return string(data), nil
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return "", fmt.Errorf("encode config as JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", formatError(format, "cue", "toml", "json")
	}
}

func showConfigPath(cmd *cobra.Command, source string) error {
	w := cmd.OutOrStdout()

	cfgDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config directory"), cfgDir)
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("Config file"), filepath.Join(cfgDir, config.ConfigFileName))

	if source == "" {
		fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("In use"), SubtitleStyle.Render("(defaults)"))
		return nil
	}
	if abs, absErr := filepath.Abs(source); absErr == nil {
		source = abs
	}
	fmt.Fprintf(w, "%s: %s\n", CmdStyle.Render("In use"), SuccessStyle.Render(source))
	return nil
}
