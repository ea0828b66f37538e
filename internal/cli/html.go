package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/pkg/dotviz"
	"github.com/mlorenz/dotviz/pkg/render/html"
)

// htmlOpts holds the command-line flags for HTML generation.
type htmlOpts struct {
	input    string // DOT input file
	output   string // output file path (stdout if empty)
	template string // custom template file path
	page     bool   // wrap fragment in a standalone page
}

// htmlCommand creates the html command, the explicit form of the root
// positional invocation.
func (c *CLI) htmlCommand() *cobra.Command {
	opts := htmlOpts{}

	cmd := &cobra.Command{
		Use:   "html <input.dot>",
		Short: "Render a DOT file as a force-directed HTML fragment",
		Long: `Render a DOT file as an HTML fragment with an embedded d3 force-directed
graph script. The fragment expects an AMD loader (as notebook hosts provide);
use --page to wrap it in a standalone HTML page that loads one from a CDN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return c.runHTML(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "custom HTML template file")
	cmd.Flags().BoolVar(&opts.page, "page", false, "wrap the fragment in a standalone HTML page")

	return cmd
}

// runHTML converts the input DOT file to HTML and writes the result.
// Nothing is written unless the whole conversion succeeds.
func (c *CLI) runHTML(ctx context.Context, opts htmlOpts) error {
	dg, err := c.newFacade(opts.input, opts.template)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	out, err := dg.HTML()
	if err != nil {
		return err
	}
	if opts.page {
		out = html.Page(filepath.Base(opts.input), out)
	}
	prog.done(fmt.Sprintf("Generated HTML for %s", opts.input))

	return c.writeOutput(out, opts.output)
}

// newFacade builds a conversion facade for input, honoring the template
// override from the flag or, failing that, the user config.
func (c *CLI) newFacade(input, templatePath string) (*dotviz.DotGraph, error) {
	cfg, err := loadConfig()
	if err != nil {
		c.Logger.Warnf("Ignoring config: %v", err)
	}
	if templatePath == "" {
		templatePath = cfg.Template
	}
	if templatePath == "" {
		return dotviz.New(input), nil
	}

	tmpl, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("read template %s: %w", templatePath, err)
	}
	return dotviz.NewWithTemplate(input, string(tmpl))
}

// writeOutput writes s to path, or to stdout when path is empty.
// Status lines are only printed in file mode so stdout stays pipeable.
func (c *CLI) writeOutput(s, path string) error {
	if path == "" {
		_, err := fmt.Print(s)
		return err
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	printFile(path)
	return nil
}
