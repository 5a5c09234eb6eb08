package api

import (
	"context"
	"io"
	"log/slog"
)

// CallEvent records metadata about one resilient call, across all attempts.
type CallEvent struct {
	RequestID  string
	Method     string
	Path       string
	Attempts   int
	StatusCode int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about API calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events through a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events as text to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{logger: slog.New(slog.NewTextHandler(w, nil))}
}

// NewSlogObserver reuses an existing logger.
func NewSlogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	attrs := []any{
		"request_id", event.RequestID,
		"method", event.Method,
		"path", event.Path,
		"attempts", event.Attempts,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Log(context.Background(), slog.LevelWarn, "api_call_failed", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Log(context.Background(), slog.LevelDebug, "api_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
