// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package ctxlog carries a *slog.Logger in a context.Context.
//
// The default logger uses PrettyHandler and writes to stderr, so log records
// never mix with the filtered stdout stream. The level comes from the
// QUELL_LOG_LEVEL environment variable ("DEBUG", "INFO", "WARN" or "ERROR");
// anything else means WARN.
package ctxlog
