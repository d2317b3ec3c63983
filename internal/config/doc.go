// SPDX-License-Identifier: MPL-2.0

// Package config loads the runner's own settings using Viper with CUE as the
// file format.
//
// Settings come from, in increasing precedence: built-in defaults, the CUE
// file (--config, else config.cue in the config directory, else callrun.cue
// in the working directory) and CALLRUN_* environment variables
// (CALLRUN_OUTPUT_INDENT overrides output.indent). Files are validated
// against the embedded config_schema.cue before they are merged.
package config
