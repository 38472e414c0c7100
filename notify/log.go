package notify

import (
	"context"
	"log/slog"
)

// LogNotifier logs events with slog.
type LogNotifier struct {
	Logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs to the given logger.
// If logger is nil, uses the default slog logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{Logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	level := slog.LevelInfo
	switch event.Severity {
	case SeverityWarning:
		level = slog.LevelWarn
	case SeverityError:
		level = slog.LevelError
	}

	attrs := []any{
		"type", event.Type,
		"project", event.Project,
	}
	if event.Version != "" {
		attrs = append(attrs, "version", event.Version)
	}
	if event.Previous != "" {
		attrs = append(attrs, "previous", event.Previous)
	}
	if event.Branch != "" {
		attrs = append(attrs, "branch", event.Branch)
	}
	if event.Tag != "" {
		attrs = append(attrs, "tag", event.Tag)
	}
	if len(event.Metadata) > 0 {
		attrs = append(attrs, "metadata", event.Metadata)
	}

	n.Logger.Log(ctx, level, event.Message, attrs...)
	return nil
}
