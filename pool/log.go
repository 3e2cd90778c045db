package pool

import (
	"log/slog"
	"os"
)

// logLevel controls engine debug logging. The default is LevelInfo, which
// suppresses Debug records.
var logLevel = new(slog.LevelVar)

// SetVerbose enables or disables debug logging for engines that use the
// package logger.
func SetVerbose(v bool) {
	if v {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// LogLevel exposes the shared level so callers can build their own handler
// that follows SetVerbose.
func LogLevel() *slog.LevelVar {
	return logLevel
}

var defaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

// Logger returns the package logger.
func Logger() *slog.Logger {
	return defaultLogger
}

// SetLogger replaces the package logger for engines created afterwards. A
// host that owns the terminal points it at a file. Nil is ignored.
func SetLogger(logger *slog.Logger) {
	if logger != nil {
		defaultLogger = logger
	}
}
