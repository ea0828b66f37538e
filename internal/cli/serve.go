package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	input    string // DOT input file
	addr     string // listen address
	template string // custom template file path
}

// serveCommand creates the serve command, a live browser preview.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve <input.dot>",
		Short: "Serve a live force-directed preview in the browser",
		Long: `Serve a DOT file as a browsable force-directed visualization.

The file is re-read on every request, so edits show up on refresh without
restarting the server. The node-link JSON is available at /graph.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default "+defaultAddr+")")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "custom HTML template file")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	dg, err := c.newFacade(opts.input, opts.template)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		if cfg, err := loadConfig(); err == nil && cfg.Addr != "" {
			addr = cfg.Addr
		}
	}
	if addr == "" {
		addr = defaultAddr
	}

	logger := loggerFromContext(ctx)
	srv := &http.Server{
		Addr:    addr,
		Handler: server.New(dg, logger).Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	printInfo("Serving %s on http://localhost%s", opts.input, addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}
