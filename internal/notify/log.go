package notify

import (
	"context"
	"log/slog"
)

type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(ctx context.Context, n Notification) error {
	level := slog.LevelInfo
	if n.Kind == KindPartial {
		level = slog.LevelDebug
	}
	s.logger.Log(ctx, level, "recognition event",
		"session_id", n.SessionID,
		"kind", n.Kind.String(),
		"text", n.Text)
	return nil
}
