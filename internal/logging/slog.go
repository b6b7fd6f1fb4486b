package logging

import (
	"context"
	"log/slog"
)

// SlogLogger adapts *slog.Logger to Logger. A name set through Named is
// emitted as the "logger" attribute.
type SlogLogger struct {
	l    *slog.Logger
	out  *slog.Logger
	name string
}

func NewSlogLogger(l *slog.Logger) *SlogLogger {
	return newSlogLogger(l, "")
}

func newSlogLogger(l *slog.Logger, name string) *SlogLogger {
	out := l
	if name != "" {
		out = l.With("logger", name)
	}
	return &SlogLogger{l: l, out: out, name: name}
}

func (s *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	s.out.DebugContext(ctx, msg, args...)
}

func (s *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	s.out.InfoContext(ctx, msg, args...)
}

func (s *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	s.out.WarnContext(ctx, msg, args...)
}

func (s *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	s.out.ErrorContext(ctx, msg, args...)
}

func (s *SlogLogger) With(args ...any) Logger {
	return newSlogLogger(s.l.With(args...), s.name)
}

// Named appends name to the logger name, dot separated like zap does.
func (s *SlogLogger) Named(name string) Logger {
	if s.name != "" {
		name = s.name + "." + name
	}
	return newSlogLogger(s.l, name)
}
