package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/pkg/dotviz"
)

// jsonCommand creates the json command, which emits the node-link JSON
// without the surrounding HTML.
func (c *CLI) jsonCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "json <input.dot>",
		Short: "Convert a DOT file to node-link JSON",
		Long: `Convert a DOT file to its node-link JSON representation:
nodes with their attributes, and links whose source and target are integer
indices into the node list. This is the same JSON the HTML output embeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runJSON(cmd.Context(), args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runJSON(ctx context.Context, input, output string) error {
	// JSON output never renders HTML, so the template configured in
	// config.toml does not apply here.
	dg := dotviz.New(input)

	data, err := dg.JSON()
	if err != nil {
		return err
	}
	if output == "" {
		// Terminal-friendly: JSON text carries no trailing newline of its own.
		_, err := fmt.Println(data)
		return err
	}
	return c.writeOutput(data, output)
}
