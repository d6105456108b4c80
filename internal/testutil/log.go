// Package testutil provides helpers shared by the package tests: loggers
// that write through testing.TB and shortcuts for building parsed trees.
package testutil

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"testing"
)

// NewTestLogger returns a debug-level logger whose records go to t.Log, so
// they only show for failing tests or under -v.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(newTBHandler(t))
}

// NewRecordingLogger is NewTestLogger that also keeps every record, for
// tests that assert on what was logged.
func NewRecordingLogger(t testing.TB) (*slog.Logger, *LogRecords) {
	t.Helper()
	records := &LogRecords{}
	return slog.New(recordingHandler{Handler: newTBHandler(t), records: records}), records
}

func newTBHandler(t testing.TB) slog.Handler {
	return slog.NewTextHandler(tbWriter{t}, &slog.HandlerOptions{Level: slog.LevelDebug})
}

type tbWriter struct {
	t testing.TB
}

func (w tbWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// LogEntry is one recorded log call. Attribute values are rendered with
// slog.Value.String.
type LogEntry struct {
	Level   slog.Level
	Message string
	Attrs   map[string]string
}

// LogRecords collects entries; it is safe for concurrent use.
type LogRecords struct {
	mu      sync.Mutex
	entries []LogEntry
}

// Entries returns the entries logged at exactly level, in order.
func (r *LogRecords) Entries(level slog.Level) []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []LogEntry
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

type recordingHandler struct {
	slog.Handler
	records *LogRecords
	attrs   []slog.Attr
}

func (h recordingHandler) Handle(ctx context.Context, rec slog.Record) error {
	e := LogEntry{Level: rec.Level, Message: rec.Message, Attrs: make(map[string]string)}
	for _, a := range h.attrs {
		e.Attrs[a.Key] = a.Value.String()
	}
	rec.Attrs(func(a slog.Attr) bool {
		e.Attrs[a.Key] = a.Value.String()
		return true
	})

	h.records.mu.Lock()
	h.records.entries = append(h.records.entries, e)
	h.records.mu.Unlock()

	return h.Handler.Handle(ctx, rec)
}

func (h recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return recordingHandler{
		Handler: h.Handler.WithAttrs(attrs),
		records: h.records,
		attrs:   append(slices.Clone(h.attrs), attrs...),
	}
}

func (h recordingHandler) WithGroup(name string) slog.Handler {
	return recordingHandler{Handler: h.Handler.WithGroup(name), records: h.records, attrs: h.attrs}
}
