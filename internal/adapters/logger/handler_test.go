package logger_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/stamp/internal/adapters/logger"
)

func TestConsoleHandler_Levels(t *testing.T) {
	tests := []struct {
		name       string
		level      slog.Level
		msg        string
		goldenName string
	}{
		{name: "Info", level: slog.LevelInfo, msg: "wrote public/sw.js", goldenName: "handler_info"},
		{name: "Warn", level: slog.LevelWarn, msg: "failed to cache /app.js", goldenName: "handler_warn"},
		{name: "Error", level: slog.LevelError, msg: "install failed", goldenName: "handler_error"},
		{name: "DebugFiltered", level: slog.LevelDebug, msg: "debug message", goldenName: "handler_debug_filtered"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", "1")

			buf := &bytes.Buffer{}
			lg := slog.New(logger.NewConsoleHandler(buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
			lg.Log(t.Context(), tt.level, tt.msg)

			goldie.New(t).Assert(t, tt.goldenName, buf.Bytes())
		})
	}
}

func TestConsoleHandler_Attrs(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	lg := slog.New(logger.NewConsoleHandler(buf, nil)).
		With("version", "1.0.0-abc1234").
		WithGroup("cache")
	lg.Info("activated", "purged", 2)

	assert.Equal(t, "activated version=1.0.0-abc1234 cache.purged=2\n", buf.String())
}

func TestConsoleHandler_EmptyGroupKeepsKeys(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewConsoleHandler(buf, nil)).WithGroup("").Info("msg", "k", "v")

	assert.Equal(t, "msg k=v\n", buf.String())
}

func TestConsoleHandler_Enabled(t *testing.T) {
	h := logger.NewConsoleHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn})

	assert.False(t, h.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, h.Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, h.Enabled(t.Context(), slog.LevelError))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestConsoleHandler_ReturnsWriteError(t *testing.T) {
	h := logger.NewConsoleHandler(failingWriter{}, nil)

	err := h.Handle(t.Context(), slog.NewRecord(testTime, slog.LevelInfo, "msg", 0))
	assert.Error(t, err)
}

func TestConsoleHandler_NestedGroups(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	buf := &bytes.Buffer{}
	slog.New(logger.NewConsoleHandler(buf, nil)).
		WithGroup("worker").
		With("state", "installed").
		WithGroup("store").
		Info("precached", "entries", 3)

	assert.Equal(t, "precached worker.state=installed worker.store.entries=3\n", buf.String())
}
