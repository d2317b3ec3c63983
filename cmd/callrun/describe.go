// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/invowk/callrun/internal/issue"
	"github.com/invowk/callrun/internal/resolve"
	"github.com/invowk/callrun/pkg/callable"
	"github.com/invowk/callrun/pkg/types"
)

func newDescribeCommand(app *App) *cobra.Command {
	var output string

	describeCmd := &cobra.Command{
		Use:   "describe <command>",
		Short: "Print the JSON Schema of a command's configuration",
		Long: `Print the JSON Schema of the "config" object a command binds from.

For a class target the schema combines the constructor parameters with the
parameters of the invoked method. Parameters without a default are required.`,
		Example: `  callrun describe builtin.params.echo
  callrun describe builtin.shell.Script.run -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := app.describe(args[0])
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(schema, "", "  ")
			if err != nil {
				return fmt.Errorf("encode schema: %w", err)
			}
			switch output {
			case "json":
			case "yaml":
				if data, err = jsonToYAML(data); err != nil {
					return fmt.Errorf("encode schema: %w", err)
				}
			default:
				return formatError(output, "json", "yaml")
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(string(data), "\n"))
			return nil
		},
	}

	describeCmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	return describeCmd
}

// describe resolves ref and builds the schema of the parameters it binds.
func (a *App) describe(ref string) (*jsonschema.Schema, error) {
	target, err := resolve.New(a.Registry).Resolve(ref)
	if err != nil {
		return nil, a.fail(types.ExitResolution, issue.ResolutionFailedId, err)
	}

	schema := &jsonschema.Schema{
		Version:    jsonschema.Version,
		Title:      ref,
		Type:       "object",
		Properties: orderedmap.New[string, *jsonschema.Schema](),
	}

	if target.Kind == resolve.KindFunction {
		addParams(schema, target.Function.Signature())
		return schema, nil
	}

	method, ok := target.Class.Method(target.Method)
	if !ok {
		err := &resolve.ResolutionError{
			Ref:       ref,
			Module:    target.Class.QualifiedName(),
			Attribute: target.Method,
			Err:       resolve.ErrAttributeNotFound,
		}
		return nil, a.fail(types.ExitResolution, issue.ResolutionFailedId, err)
	}
	addParams(schema, target.Class.ConstructorSignature())
	addParams(schema, method.Signature())
	return schema, nil
}

// addParams adds the bindable parameters of sig to schema. A name shared by
// constructor and method is required when either requires it.
func addParams(schema *jsonschema.Schema, sig callable.Signature) {
	if sig.Implicit {
		return
	}

	firstOptional := len(sig.Params) - sig.DefaultCount()
	for i, p := range sig.Params {
		if p.Kind == callable.ParamReceiver {
			continue
		}
		prop, exists := schema.Properties.Get(p.Name)
		if !exists {
			prop = &jsonschema.Schema{Description: p.Description}
			schema.Properties.Set(p.Name, prop)
		}
		if i >= firstOptional {
			if prop.Default == nil {
				prop.Default = p.Default
			}
			continue
		}
		if !slices.Contains(schema.Required, p.Name) {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	if sig.AcceptsKeywords() {
		schema.AdditionalProperties = jsonschema.TrueSchema
		schema.Description = "Receives the whole configuration as **" + sig.Keywords + "."
	}
}

// jsonToYAML re-encodes a JSON document as block-style YAML, keeping key order.
func jsonToYAML(data []byte) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	clearStyle(&node)
	return yaml.Marshal(&node)
}

func clearStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		clearStyle(child)
	}
}
