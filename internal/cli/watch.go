package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphclip/pkg/errors"
)

// watchDebounce coalesces the burst of events editors emit per save.
const watchDebounce = 150 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var schemaOnly bool

	cmd := &cobra.Command{
		Use:   "watch FILE",
		Short: "Re-validate a document every time it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := args[0]
			check := func() {
				data, err := os.ReadFile(path)
				if err != nil {
					printError("%v", err)
					return
				}
				if _, err := c.runValidate(ctx, path, data, !schemaOnly); err != nil {
					printDetail("%s", watchMessage(err))
				}
				fmt.Println()
			}

			check()
			fmt.Println(StyleDim.Render(fmt.Sprintf("watching %s, press Ctrl+C to stop", path)))
			err := watchFile(ctx, path, check)
			if ctx.Err() != nil {
				return nil
			}
			return err
		},
	}

	cmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "skip the trial paste against the node library")

	return cmd
}

// watchMessage describes a failed check. A rejected document is reported by
// its message alone, since the file is printed right above it.
func watchMessage(err error) string {
	if errors.IsStructural(err) {
		return errors.UserMessage(err)
	}
	return err.Error()
}

// watchFile calls onChange after path is written, created or renamed into
// place, until ctx is done. The parent directory is watched so that editors
// which save by replacing the file are followed.
func watchFile(ctx context.Context, path string, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return err
	}

	logger := loggerFromContext(ctx)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("file event", "op", ev.Op.String(), "path", ev.Name)
			timer.Reset(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		case <-timer.C:
			onChange()
		}
	}
}
