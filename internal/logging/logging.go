// Package logging builds the slog loggers used by the TUI and the subcommands.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the log file kept in the data directory while the TUI runs.
const FileName = "productivelife.log"

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// OpenFile appends to dataDir/productivelife.log. The caller closes the
// returned file when done.
func OpenFile(dataDir string, level slog.Level) (*slog.Logger, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dataDir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return New(f, level), f, nil
}

// Stderr returns a logger for one-shot commands. Messages below warn are
// dropped unless level asks for more.
func Stderr(level slog.Level) *slog.Logger {
	return New(os.Stderr, max(level, slog.LevelWarn))
}
