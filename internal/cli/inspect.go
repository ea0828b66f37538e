package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/pkg/dot"
	"github.com/mlorenz/dotviz/pkg/graph"
)

// inspectNodeLimit caps the per-node listing so huge graphs stay readable.
const inspectNodeLimit = 25

// inspectCommand creates the inspect command for a quick structural summary.
func (c *CLI) inspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <input.dot>",
		Short: "Show a structural summary of a DOT file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(args[0])
		},
	}

	return cmd
}

func (c *CLI) runInspect(input string) error {
	g, err := dot.ParseFile(input)
	if err != nil {
		return err
	}

	title := g.Name()
	if title == "" {
		title = filepath.Base(input)
	}
	fmt.Println(StyleTitle.Render(title))

	printKeyValue("nodes", StyleNumber.Render(strconv.Itoa(g.NodeCount())))
	printKeyValue("edges", StyleNumber.Render(strconv.Itoa(g.EdgeCount())))
	if attrs := g.Attrs(); len(attrs) > 0 {
		printKeyValue("attributes", formatAttrs(attrs))
	}

	for i, n := range g.Nodes() {
		if i == inspectNodeLimit {
			fmt.Println(StyleDim.Render(fmt.Sprintf("  … %d more nodes", g.NodeCount()-inspectNodeLimit)))
			break
		}
		line := "  " + n.ID
		if len(n.Attrs) > 0 {
			line += " " + StyleDim.Render("["+formatAttrs(n.Attrs)+"]")
		}
		fmt.Println(line)
	}

	return nil
}

// formatAttrs renders attributes as "k=v" pairs in key order.
func formatAttrs(attrs graph.Attributes) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range attrs.Keys() {
		parts = append(parts, k+"="+attrs[k])
	}
	return strings.Join(parts, " ")
}
