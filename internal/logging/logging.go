// Package logging defines the key-value logger used across matpoint and an
// adapter over log/slog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type Logger interface {
	Info(msg string, keyValues ...any)
	Error(msg string, keyValues ...any)
	Debug(msg string, keyValues ...any)
	Warn(msg string, keyValues ...any)
}

type SlogAdapter struct {
	logger *slog.Logger
}

func NewSlog(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

func (a *SlogAdapter) Info(msg string, keyValues ...any)  { a.logger.Info(msg, keyValues...) }
func (a *SlogAdapter) Error(msg string, keyValues ...any) { a.logger.Error(msg, keyValues...) }
func (a *SlogAdapter) Debug(msg string, keyValues ...any) { a.logger.Debug(msg, keyValues...) }
func (a *SlogAdapter) Warn(msg string, keyValues ...any)  { a.logger.Warn(msg, keyValues...) }

// New returns a text logger writing to w at the named level
// (debug, info, warn, error).
func New(w io.Writer, level string) (*SlogAdapter, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return NewSlog(slog.New(h)), nil
}

func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}

type nop struct{}

func (nop) Info(string, ...any)  {}
func (nop) Error(string, ...any) {}
func (nop) Debug(string, ...any) {}
func (nop) Warn(string, ...any)  {}

// Nop discards everything.
var Nop Logger = nop{}
