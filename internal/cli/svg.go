package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/pkg/cache"
	"github.com/mlorenz/dotviz/pkg/errors"
	"github.com/mlorenz/dotviz/pkg/render/svg"
)

// svgCacheTTL bounds how long rendered SVGs are kept. The key is derived from
// the DOT content, so entries never serve stale output; the TTL only limits
// disk growth.
const svgCacheTTL = 30 * 24 * time.Hour

// svgOpts holds the command-line flags for the svg command.
type svgOpts struct {
	input   string // DOT input file
	output  string // output file path (stdout if empty)
	noCache bool   // bypass the render cache
}

// svgCommand creates the svg command for server-side Graphviz rendering.
func (c *CLI) svgCommand() *cobra.Command {
	opts := svgOpts{}

	cmd := &cobra.Command{
		Use:   "svg <input.dot>",
		Short: "Render a DOT file to SVG with Graphviz",
		Long: `Render a DOT file to a static SVG using an in-process Graphviz engine.
Unlike the HTML output, layout happens at render time rather than in the
browser. Results are cached by input content under ~/.cache/dotviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return c.runSVG(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runSVG(ctx context.Context, opts svgOpts) error {
	dotSrc, err := os.ReadFile(opts.input)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", opts.input)
	}

	store := newCache(opts.noCache)
	defer store.Close()

	key := cache.Key("svg", dotSrc)
	out, hit, err := store.Get(ctx, key)
	if err != nil {
		c.Logger.Warnf("Cache read failed: %v", err)
	}

	if !hit {
		spinner := newSpinnerWithContext(ctx, "Rendering SVG...")
		spinner.Start()

		out, err = svg.Render(ctx, dotSrc)
		if err != nil {
			spinner.StopWithError("Rendering failed")
			return err
		}
		spinner.Stop()

		if err := store.Set(ctx, key, out, svgCacheTTL); err != nil {
			c.Logger.Warnf("Cache write failed: %v", err)
		}
	}

	if opts.output == "" {
		_, err := os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(opts.output, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	printSuccess("Rendered SVG %s", cacheMarker(hit))
	printFile(opts.output)
	return nil
}
