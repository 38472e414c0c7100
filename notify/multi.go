package notify

import (
	"context"
	"errors"
	"log/slog"
)

// MultiNotifier sends events to several notifiers.
type MultiNotifier struct {
	Notifiers []Notifier
	Logger    *slog.Logger
}

// NewMultiNotifier creates a notifier that fans out to multiple notifiers.
// A failing notifier is logged and does not stop the others.
func NewMultiNotifier(notifiers ...Notifier) *MultiNotifier {
	return &MultiNotifier{
		Notifiers: notifiers,
		Logger:    slog.Default(),
	}
}

// Notify implements Notifier. It returns every failure joined.
func (n *MultiNotifier) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, notifier := range n.Notifiers {
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
			if n.Logger != nil {
				n.Logger.Warn("notifier failed",
					"error", err,
					"event_type", event.Type,
				)
			}
		}
	}
	return errors.Join(errs...)
}

// NopNotifier discards all events.
type NopNotifier struct{}

// Notify implements Notifier.
func (NopNotifier) Notify(context.Context, Event) error {
	return nil
}
