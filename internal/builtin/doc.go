// SPDX-License-Identifier: MPL-2.0

// Package builtin registers the targets shipped with the callrun binary:
//
//	builtin.params.store(key, value)
//	builtin.params.export(**params)
//	builtin.params.echo(message, level="info")
//	builtin.shell.Script(dir=".", env={}).run(script, capture=false)
//	builtin.shell.Script(dir=".", env={}).check(script)
//	builtin.fanout.each(items, command, param="item", **extra)
package builtin
