package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphclip/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (io.WriteCloser, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Pasted 3 nodes (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports codec and store events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnEncode(graph string, nodes, connections int, d time.Duration) {
	h.logger.Debug("encode", "graph", graph, "nodes", nodes, "connections", connections, "took", d)
}

func (h logHooks) OnDecode(graph string, s observability.DecodeStats, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "graph", graph, "took", d, "err", err)
		return
	}
	h.logger.Debug("decode", "graph", graph,
		"nodes", fmt.Sprintf("%d/%d", s.NodesCreated, s.NodesCreated+s.NodesSkipped),
		"connections", fmt.Sprintf("%d/%d", s.ConnectionsMade, s.ConnectionsAttempted),
		"took", d)
}

func (h logHooks) OnGet(_ context.Context, backend, name string, hit bool) {
	h.logger.Debug("store get", "backend", backend, "name", name, "hit", hit)
}

func (h logHooks) OnPut(_ context.Context, backend, name string, size int) {
	h.logger.Debug("store put", "backend", backend, "name", name, "bytes", size)
}

func (h logHooks) OnDelete(_ context.Context, backend, name string) {
	h.logger.Debug("store delete", "backend", backend, "name", name)
}
