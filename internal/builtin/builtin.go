// SPDX-License-Identifier: MPL-2.0

package builtin

import (
	"github.com/invowk/callrun/pkg/callable"
)

// Module paths of the built-in targets.
const (
	ParamsModule = "builtin.params"
	ShellModule  = "builtin.shell"
	FanoutModule = "builtin.fanout"
)

// Register adds every built-in target to reg.
func Register(reg *callable.Registry) error {
	for _, register := range []func(*callable.Registry) error{registerParams, registerShell, registerFanout} {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}

// NewRegistry returns a registry holding only the built-in targets.
func NewRegistry() (*callable.Registry, error) {
	reg := callable.NewRegistry()
	if err := Register(reg); err != nil {
		return nil, err
	}
	return reg, nil
}
