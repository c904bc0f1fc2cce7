package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelOff silences a logger.
const LevelOff = slog.Level(100)

// ParseLevel parses a log level name.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "", "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	case "OFF", "NONE":
		return LevelOff, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", s)
	}
}

// NewLogger returns a text logger writing to w at the configured level.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// OpenLogFile returns a logger for full-screen programs, which cannot write
// to the terminal. Without a configured log file output is discarded. The
// returned close function is never nil.
func OpenLogFile(cfg Config) (*slog.Logger, func() error, error) {
	if cfg.LogFile == "" {
		logger, err := NewLogger(cfg, io.Discard)
		return logger, func() error { return nil }, err
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger, err := NewLogger(cfg, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f.Close, nil
}
