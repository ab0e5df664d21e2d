package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/config"
	"github.com/matzehuels/graphclip/pkg/observability"
)

// Execute runs the graphclip CLI with ctx and returns the first command error.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//   - With --log-file PATH: log lines are also appended to PATH
func Execute(ctx context.Context) error {
	return New(os.Stderr, LogInfo).RootCommand().ExecuteContext(ctx)
}

func (c *CLI) bindGlobalFlags(root *cobra.Command) {
	f := root.PersistentFlags()
	f.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	f.StringVar(&c.flags.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	f.StringVar(&c.flags.library, "library", "", "TOML library merged over the built-in node kinds")
	f.StringVar(&c.flags.store, "store", "", "snippet store URL (file://, memory://, redis://, mongodb://)")
	f.StringVar(&c.flags.logFile, "log-file", "", "append log output to this file")
}

// setup loads the config file, applies flag overrides and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}

	if c.flags.logFile != "" {
		f, err := openLogFile(c.flags.logFile)
		if err != nil {
			return err
		}
		c.logFile = f
		c.Logger.SetOutput(io.MultiWriter(c.stderr, f))
	}

	cfg, err := config.Load(c.flags.configPath)
	if err != nil {
		return err
	}
	if c.flags.library != "" {
		cfg.Library = c.flags.library
	}
	if c.flags.store != "" {
		cfg.Store = c.flags.store
	}
	c.cfg = cfg

	hooks := logHooks{logger: c.Logger}
	observability.SetCodecHooks(hooks)
	observability.SetStoreHooks(hooks)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

func (c *CLI) teardown() error {
	if c.logFile == nil {
		return nil
	}
	err := c.logFile.Close()
	c.logFile = nil
	c.Logger.SetOutput(c.stderr)
	if err != nil {
		return fmt.Errorf("close log file: %w", err)
	}
	return nil
}
