// Package logger wraps log/slog behind a process-wide logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Init configures the global logger for the given environment.
// Production logs JSON at info level, everything else logs text at debug level.
func Init(environment string) {
	log = New(os.Stdout, environment)
	slog.SetDefault(log)
}

// New builds a logger writing to w using the environment's format and level.
func New(w io.Writer, environment string) *slog.Logger {
	switch strings.ToLower(environment) {
	case "production", "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case "test":
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelWarn}))
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

// Set replaces the global logger.
func Set(l *slog.Logger) {
	if l != nil {
		log = l
	}
}

func Get() *slog.Logger {
	return log
}

func Debug(msg string, args ...any) {
	log.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	log.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	log.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	log.Error(msg, args...)
}

func Fatal(msg string, args ...any) {
	log.Error(msg, args...)
	os.Exit(1)
}
