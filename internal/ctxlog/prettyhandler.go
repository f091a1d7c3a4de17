// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/TylerBrock/colorjson"
	"github.com/matt-FFFFFF/quell/internal/color"
)

var (
	// ErrMarshalAttribute is returned when an error occurs while marshaling an attribute.
	ErrMarshalAttribute = errors.New("error when marshaling attribute")
	// ErrIoWrite is returned when an error occurs while writing to the output.
	ErrIoWrite = errors.New("error when writing to output")
)

// TimeFormat is the format used for timestamps in log messages.
const TimeFormat = "[15:04:05.000]"

const jsonIndent = 2

// PrettyHandler is a slog.Handler that renders one line per record:
// timestamp, level, message, then the attributes as indented JSON.
type PrettyHandler struct {
	h                slog.Handler
	r                func([]string, slog.Attr) slog.Attr
	b                *bytes.Buffer
	m                *sync.Mutex
	writer           io.Writer
	colour           bool
	outputEmptyAttrs bool
}

// Option implements a functional options pattern for PrettyHandler.
type Option func(h *PrettyHandler)

// WithDestinationWriter sets the destination writer for the PrettyHandler.
func WithDestinationWriter(writer io.Writer) Option {
	return func(h *PrettyHandler) {
		h.writer = writer
	}
}

// WithColour enables color output for the PrettyHandler.
func WithColour() Option {
	return func(h *PrettyHandler) {
		h.colour = true
	}
}

// WithAutoColour enables color output when stderr supports it.
func WithAutoColour() Option {
	return func(h *PrettyHandler) {
		h.colour = color.EnabledFor(os.Stderr.Fd())
	}
}

// WithOutputEmptyAttrs prints "{}" for records without attributes.
func WithOutputEmptyAttrs() Option {
	return func(h *PrettyHandler) {
		h.outputEmptyAttrs = true
	}
}

// NewPrettyHandler creates a new PrettyHandler with the given options.
// Output goes to stderr unless WithDestinationWriter says otherwise.
func NewPrettyHandler(handlerOptions *slog.HandlerOptions, options ...Option) *PrettyHandler {
	if handlerOptions == nil {
		handlerOptions = &slog.HandlerOptions{}
	}

	buf := &bytes.Buffer{}
	handler := &PrettyHandler{
		b: buf,
		h: slog.NewJSONHandler(buf, &slog.HandlerOptions{
			Level:       handlerOptions.Level,
			AddSource:   handlerOptions.AddSource,
			ReplaceAttr: suppressDefaults(handlerOptions.ReplaceAttr),
		}),
		r:      handlerOptions.ReplaceAttr,
		m:      &sync.Mutex{},
		writer: os.Stderr,
	}

	for _, opt := range options {
		opt(handler)
	}

	return handler
}

// Enabled checks if the handler is enabled for the given level.
func (h *PrettyHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.h.Enabled(ctx, level)
}

// WithAttrs creates a new handler with the given attributes.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.h = h.h.WithAttrs(attrs)

	return &clone
}

// WithGroup creates a new handler with the given group name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.h = h.h.WithGroup(name)

	return &clone
}

// Handle implements slog.Handler.
func (h *PrettyHandler) Handle(ctx context.Context, r slog.Record) error {
	out := strings.Builder{}

	if ts, ok := h.builtin(slog.TimeKey, slog.StringValue(r.Time.Format(TimeFormat))); ok {
		out.WriteString(h.paint(ts, color.FgWhite))
		out.WriteString(" ")
	}

	if lvl, ok := h.builtin(slog.LevelKey, slog.AnyValue(r.Level)); ok {
		out.WriteString(h.paint(lvl+":", levelColour(r.Level)))
		out.WriteString(" ")
	}

	if msg, ok := h.builtin(slog.MessageKey, slog.StringValue(r.Message)); ok {
		out.WriteString(h.paint(msg, color.FgHiWhite))
		out.WriteString(" ")
	}

	attrs, err := h.computeAttrs(ctx, r)
	if err != nil {
		return err
	}

	if h.outputEmptyAttrs || len(attrs) > 0 {
		formatter := colorjson.NewFormatter()
		formatter.Indent = jsonIndent
		formatter.DisabledColor = !h.colour

		attrsAsBytes, err := formatter.Marshal(attrs)
		if err != nil {
			return errors.Join(ErrMarshalAttribute, err)
		}

		out.Write(attrsAsBytes)
	}

	out.WriteString("\n")

	h.m.Lock()
	defer h.m.Unlock()

	if _, err := io.WriteString(h.writer, out.String()); err != nil {
		return errors.Join(ErrIoWrite, err)
	}

	return nil
}

// builtin passes one of the record's built-in fields through ReplaceAttr.
// It reports false when ReplaceAttr removed the field.
func (h *PrettyHandler) builtin(key string, value slog.Value) (string, bool) {
	attr := slog.Attr{Key: key, Value: value}
	if h.r != nil {
		attr = h.r([]string{}, attr)
	}

	if attr.Equal(slog.Attr{}) {
		return "", false
	}

	return attr.Value.String(), true
}

func (h *PrettyHandler) paint(s string, c color.Code) string {
	if !h.colour {
		return s
	}

	return color.Force(s, c)
}

func levelColour(level slog.Level) color.Code {
	switch {
	case level <= slog.LevelDebug:
		return color.FgWhite
	case level <= slog.LevelInfo:
		return color.FgCyan
	case level < slog.LevelWarn:
		return color.FgBlue
	case level < slog.LevelError:
		return color.FgYellow
	case level <= slog.LevelError+1:
		return color.FgRed
	default:
		return color.FgHiMagenta
	}
}

// computeAttrs renders the record's attributes through the inner JSON handler
// and decodes them back into a map.
func (h *PrettyHandler) computeAttrs(ctx context.Context, r slog.Record) (map[string]any, error) {
	h.m.Lock()
	defer func() {
		h.b.Reset()
		h.m.Unlock()
	}()

	if err := h.h.Handle(ctx, r); err != nil {
		return nil, fmt.Errorf("error when calling inner handler's Handle: %w", err)
	}

	var attrs map[string]any

	if err := json.Unmarshal(h.b.Bytes(), &attrs); err != nil {
		return nil, fmt.Errorf("error when unmarshaling inner handler's Handle result: %w", err)
	}

	return attrs, nil
}

func suppressDefaults(next func([]string, slog.Attr) slog.Attr,
) func([]string, slog.Attr) slog.Attr {
	return func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey ||
			a.Key == slog.LevelKey ||
			a.Key == slog.MessageKey {
			return slog.Attr{}
		}

		if next == nil {
			return a
		}

		return next(groups, a)
	}
}
