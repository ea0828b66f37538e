// Package cli implements the dotviz command-line interface.
//
// The root command mirrors the classic invocation `dotviz <input> [output]`,
// which converts a DOT file into a force-directed HTML fragment. Subcommands
// expose the intermediate pipeline stages (json, svg), a live preview server
// (serve), and a structural summary (inspect).
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so nested code never reaches for globals.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mlorenz/dotviz/pkg/buildinfo"
	"github.com/mlorenz/dotviz/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dotviz"

	// defaultAddr is the default listen address for the preview server.
	defaultAddr = ":8417"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
//
// The root command itself accepts the positional form `dotviz <input>
// [output]`: it reads the DOT file and writes the HTML fragment to the output
// file, or to stdout when no output is given.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "dotviz [input.dot] [output.html]",
		Short: "dotviz renders DOT graphs as force-directed HTML",
		Long: `dotviz converts Graphviz DOT files into interactive force-directed
visualizations: node-link JSON, self-contained HTML fragments with a d3
rendering script, or server-side SVG.

The bare form 'dotviz graph.dot out.html' is shorthand for 'dotviz html'.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		Args:         cobra.MaximumNArgs(2),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			opts := htmlOpts{input: args[0]}
			if len(args) > 1 {
				opts.output = args[1]
			}
			return c.runHTML(cmd.Context(), opts)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.htmlCommand())
	root.AddCommand(c.jsonCommand())
	root.AddCommand(c.svgCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dotviz/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/dotviz/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
