package rood

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// CLIHandler is a slog.Handler that writes plain diagnostic lines.
// Format: "2006-01-02 15:04:05.000 [LEVEL] category: message key=value ..."
type CLIHandler struct {
	w     io.Writer
	level slog.Level
	attrs []slog.Attr
	mu    *sync.Mutex
}

// NewCLIHandler creates a new CLIHandler that writes to w.
// Only records at or above level are written.
func NewCLIHandler(w io.Writer, level slog.Level) *CLIHandler {
	return &CLIHandler{w: w, level: level, mu: &sync.Mutex{}}
}

// Enabled reports whether the handler handles records at the given level.
func (h *CLIHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle writes a record. The category attribute is rendered as a prefix;
// every other attribute is appended as key=value.
func (h *CLIHandler) Handle(_ context.Context, r slog.Record) error {
	var category string
	var rest []slog.Attr

	collect := func(a slog.Attr) {
		if a.Key == LogAttrKeyCategory.String() {
			category = a.Value.String()
			return
		}
		rest = append(rest, a)
	}
	for _, a := range h.attrs {
		collect(a)
	}
	// Record attributes override handler attributes.
	r.Attrs(func(a slog.Attr) bool {
		collect(a)
		return true
	})

	var sb strings.Builder
	sb.WriteString(r.Time.Format("2006-01-02 15:04:05.000"))
	sb.WriteString(" [")
	sb.WriteString(strings.ToUpper(r.Level.String()))
	sb.WriteString("] ")
	if category != "" {
		sb.WriteString(category)
		sb.WriteString(": ")
	}
	sb.WriteString(r.Message)
	for _, a := range rest {
		sb.WriteString(" ")
		sb.WriteString(a.Key)
		sb.WriteString("=")
		sb.WriteString(a.Value.String())
	}
	sb.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.w, sb.String())
	return err
}

// WithAttrs returns a new handler carrying attrs on every record.
func (h *CLIHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CLIHandler{
		w:     h.w,
		level: h.level,
		attrs: append(slices.Clone(h.attrs), attrs...),
		mu:    h.mu,
	}
}

// WithGroup returns h. Groups are not rendered.
func (h *CLIHandler) WithGroup(_ string) slog.Handler {
	return h
}

// NewNopLogger creates a logger that discards all output.
func NewNopLogger() *slog.Logger {
	// LevelError+1 sets threshold above all log levels, filtering everything
	return slog.New(NewCLIHandler(io.Discard, slog.LevelError+1))
}

// LevelForVerbosity converts a -v count to a slog.Level.
//
//	0 (no flag): LevelWarn
//	1 (-v):      LevelInfo
//	2+ (-vv):    LevelDebug
func LevelForVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return slog.LevelDebug
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

// LogAttrKey is a type-safe key for slog attributes.
type LogAttrKey string

// String returns the string value of the key.
func (k LogAttrKey) String() string {
	return string(k)
}

// Attr creates a slog.Attr with this key and the given value.
func (k LogAttrKey) Attr(value string) slog.Attr {
	return slog.String(string(k), value)
}

const LogAttrKeyCategory LogAttrKey = "category"

// Log categories.
const (
	LogCategoryClear  = "clear"
	LogCategoryNotify = "notify"
	LogCategoryFile   = "file"
	LogCategoryConfig = "config"
)
