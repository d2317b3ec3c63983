// SPDX-License-Identifier: MPL-2.0

// Command callrun invokes one registered command with the configuration of
// an input document and writes the resulting session state as JSON.
package main

import (
	"fmt"
	"os"

	cmd "github.com/invowk/callrun/cmd/callrun"
	"github.com/invowk/callrun/internal/builtin"
)

func main() {
	reg, err := builtin.NewRegistry()
	if err != nil {
		fmt.Fprintln(os.Stderr, "callrun:", err)
		os.Exit(1)
	}
	cmd.Execute(reg)
}
