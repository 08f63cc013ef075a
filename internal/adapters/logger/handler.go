package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/stamp/internal/ui/output"
	"go.trai.ch/stamp/internal/ui/style"
)

// ConsoleHandler is a slog.Handler that prints one tinted line per record:
// the message, prefixed by the severity glyph, followed by key=value pairs.
type ConsoleHandler struct {
	term  *termenv.Output
	level slog.Leveler
	// fixed holds the attributes added through WithAttrs, already rendered.
	fixed  []string
	prefix string
}

// NewConsoleHandler returns a ConsoleHandler writing to w, or to stderr when
// w is nil. Only opts.Level is honored.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	if w == nil {
		w = os.Stderr
	}
	h := &ConsoleHandler{term: output.New(w), level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle implements slog.Handler.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	tone := style.ForLevel(r.Level)

	var line strings.Builder
	line.WriteString(tone.Label(r.Message))
	for _, kv := range h.fixed {
		line.WriteByte(' ')
		line.WriteString(kv)
	}
	r.Attrs(func(a slog.Attr) bool {
		line.WriteByte(' ')
		line.WriteString(h.render(a))
		return true
	})

	tinted := h.term.String(line.String()).Foreground(h.term.Color(string(tone.Color)))
	_, err := io.WriteString(h.term, tinted.String()+"\n")
	return err
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.fixed = make([]string, 0, len(h.fixed)+len(attrs))
	next.fixed = append(next.fixed, h.fixed...)
	for _, a := range attrs {
		next.fixed = append(next.fixed, h.render(a))
	}
	return &next
}

// WithGroup implements slog.Handler. Groups nest: keys logged after
// WithGroup("a").WithGroup("b") are printed as a.b.key.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := *h
	next.prefix = h.prefix + name + "."
	return &next
}

func (h *ConsoleHandler) render(a slog.Attr) string {
	return h.prefix + a.Key + "=" + a.Value.String()
}
