// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands for callrun.
//
// The root command wires configuration and logging; `run` is the
// single-invocation runner, while `list`, `describe` and `config` inspect the
// target registry and the effective configuration.
package cmd
