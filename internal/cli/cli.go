// Package cli implements the graphclip command-line interface.
//
// # Commands
//
//   - validate: parse, migrate and validate a document
//   - paste: paste a document into another (or into an empty graph)
//   - inspect: per-node details of a document
//   - browse: interactive node and pin browser
//   - render: Graphviz DOT, SVG or PNG of a document
//   - watch: re-validate a document whenever it changes
//   - snippet: manage the snippet store
//   - serve: run the HTTP API
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/graphclip/config.toml (see
// package config). The --library and --store flags override the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging and
// --log-file to copy log output into a file. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	"github.com/matzehuels/graphclip/pkg/buildinfo"
	"github.com/matzehuels/graphclip/pkg/config"
	pkgio "github.com/matzehuels/graphclip/pkg/io"
	"github.com/matzehuels/graphclip/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// defaultGraphName names graphs created from scratch.
	defaultGraphName = "EventGraph"
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

	stderr  io.Writer
	flags   globalFlags
	cfg     config.Config
	logFile io.Closer
}

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	verbose    bool
	configPath string
	library    string
	store      string
	logFile    string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stderr: w,
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "graphclip copies Blueprint graphs as JSON",
		Long: `graphclip serializes Blueprint node graphs to a portable JSON document and
pastes such documents back into graphs, restoring nodes, pin defaults,
positions and connections.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.teardown()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	c.bindGlobalFlags(root)

	// Register all subcommands
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.snippetCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Codec Factory
// =============================================================================

// library returns the built-in library merged with the configured one.
func (c *CLI) library() (*blueprint.Library, error) {
	lib := blueprint.DefaultLibrary()
	if c.cfg.Library == "" {
		return lib, nil
	}
	extra, err := blueprint.LoadLibrary(c.cfg.Library)
	if err != nil {
		return nil, err
	}
	lib.Merge(extra)
	c.Logger.Debug("loaded library", "path", c.cfg.Library, "kinds", len(extra.KindNames()))
	return lib, nil
}

// codecOptions returns the encoder and decoder options for this run.
func (c *CLI) codecOptions() []pkgio.Option {
	opts := []pkgio.Option{pkgio.WithLogger(c.Logger)}
	if c.cfg.Producer != "" {
		opts = append(opts, pkgio.WithProducer(c.cfg.Producer))
	}
	return opts
}

// newDecoder creates a decoder over the configured library.
func (c *CLI) newDecoder() (*pkgio.Decoder, error) {
	lib, err := c.library()
	if err != nil {
		return nil, err
	}
	return pkgio.NewDecoder(lib, lib, c.codecOptions()...), nil
}

// openStore connects to the configured snippet store.
func (c *CLI) openStore(ctx context.Context) (store.Store, error) {
	spinner := newSpinnerWithContext(ctx, c.stderr, "Opening snippet store")
	spinner.Start()
	st, err := store.Open(ctx, c.cfg.Store)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("opened store", "url", c.cfg.Store)
	return st, nil
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	return os.ReadFile(path)
}
