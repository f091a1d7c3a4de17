// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

const quellLogLevelEnvVar = "QUELL_LOG_LEVEL"

type loggerKey struct{}

// LevelVar holds the level shared by DefaultLogger and JSONLogger.
var LevelVar = &slog.LevelVar{}

// DefaultLogger writes human-readable records to stderr.
// Stdout is reserved for the filtered output stream.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

// JSONLogger writes JSON records to stderr.
var JSONLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a copy of ctx carrying logger.
// If logger is nil, DefaultLogger is stored instead.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger carried by ctx, or DefaultLogger if there is none.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs at info level using the logger carried by ctx.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs at debug level using the logger carried by ctx.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs at warn level using the logger carried by ctx.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs at error level using the logger carried by ctx.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// logLevelFromEnv reads QUELL_LOG_LEVEL. Unset or unknown values give WARN,
// which keeps the tool silent unless something goes wrong.
func logLevelFromEnv() slog.Level {
	switch strings.ToUpper(strings.TrimSpace(os.Getenv(quellLogLevelEnvVar))) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
