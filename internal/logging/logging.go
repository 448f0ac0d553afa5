// Package logging builds the structured logger. The interactive browser owns
// stdout, so records go to a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-subprojects/internal/filesystem"
)

// ParseLevel converts debug|info|warn|error into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return l, nil
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// OpenFile returns a logger appending to path, creating its directory. The
// returned closer must be closed on exit. An empty path yields a discarding
// logger.
func OpenFile(fsys filesystem.FileSystem, path, level string) (*slog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, err
	}

	if path == "" {
		return Discard(), io.NopCloser(nil), nil
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := fsys.AppendFile(path, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return New(f, lvl), f, nil
}
