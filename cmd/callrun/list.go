// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/invowk/callrun/internal/resolve"
)

// targetListing is one row of `callrun list -o json`.
type targetListing struct {
	Ref       string `json:"ref"`
	Kind      string `json:"kind"`
	Signature string `json:"signature"`
}

func newListCommand(app *App) *cobra.Command {
	var output string

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the registered command references",
		Long: `List every command reference the runner can invoke, in registration
order, with its kind and declared parameters. Classes are listed with their
constructor parameters, followed by one line per method.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rows := app.listTargets()
			switch output {
			case "text":
				for _, row := range rows {
					fmt.Fprintf(cmd.OutOrStdout(), "%s%s%s\n",
						kindStyle.Render(row.Kind),
						CmdStyle.Render(row.Ref),
						SubtitleStyle.Render(row.Signature),
					)
				}
				return nil
			case "json":
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			default:
				return formatError(output, "text", "json")
			}
		},
	}

	listCmd.Flags().StringVarP(&output, "output", "o", "text", "output format: text or json")
	return listCmd
}

// listTargets resolves every registered reference so the listed kind is the
// one `run` would use.
func (a *App) listTargets() []targetListing {
	resolver := resolve.New(a.Registry)
	infos := a.Registry.Targets()
	rows := make([]targetListing, 0, len(infos))
	for _, info := range infos {
		kind := "unresolved"
		if target, err := resolver.Resolve(info.Ref); err == nil {
			kind = target.Kind.String()
		}
		rows = append(rows, targetListing{
			Ref:       info.Ref,
			Kind:      kind,
			Signature: info.Signature.String(),
		})
	}
	return rows
}
