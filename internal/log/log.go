// Package log is the debug log of bgs. The terminal belongs to the TUI, so
// records go to a file named with --debug-log (or log_file in the config).
// Records written before Setup are buffered and flushed into the file once
// it is opened; without a file they are dropped.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

// sink is the io.Writer behind the slog handler.
type sink struct {
	mu      sync.Mutex
	file    *os.File
	buffer  []byte
	discard bool
}

var (
	global = &sink{}
	logger = newLogger(global, slog.LevelDebug)
)

func newLogger(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Write implements io.Writer.
func (s *sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.discard {
		return len(p), nil
	}
	if s.file != nil {
		n, err := s.file.Write(p)
		_ = s.file.Sync()
		return n, err
	}
	// p may be reused by the handler.
	s.buffer = append(s.buffer, p...)
	return len(p), nil
}

// Setup directs the log to path. An empty path discards buffered and
// future records.
func Setup(path string) error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file != nil {
		_ = global.file.Close()
		global.file = nil
	}
	if path == "" {
		global.discard = true
		global.buffer = nil
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec
	if err != nil {
		global.discard = true
		global.buffer = nil
		return err
	}
	global.file = f
	global.discard = false
	if len(global.buffer) > 0 {
		_, _ = f.Write(global.buffer)
		_ = f.Sync()
		global.buffer = nil
	}
	return nil
}

// Close closes the log file if one is open.
func Close() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.file == nil {
		return nil
	}
	err := global.file.Close()
	global.file = nil
	global.discard = true
	return err
}

func Debug(msg string, args ...any) { logger.Debug(msg, args...) }
func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }
