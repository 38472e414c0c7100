package notify

import (
	"context"
	"log/slog"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// EventType represents the type of release event.
type EventType string

// Event type constants.
const (
	EventVersionStaged  EventType = "version_staged"
	EventTopicStarted   EventType = "topic_started"
	EventReleased       EventType = "released"
	EventReleaseFailed  EventType = "release_failed"
	EventReset          EventType = "reset"
	EventChangelogBuilt EventType = "changelog_built"
)

// Severity constants for notification events.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = "info"
)

// Event describes a release event.
type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"type"`
	Project   string         `json:"project"`
	Version   string         `json:"version,omitempty"`
	Previous  string         `json:"previous,omitempty"` // Version released before, or the superseded staged version
	Branch    string         `json:"branch,omitempty"`
	Tag       string         `json:"tag,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"` // SeverityInfo, SeverityWarning, SeverityError
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier announces release events.
type Notifier interface {
	// Notify sends a notification. Callers treat failures as non-fatal.
	Notify(ctx context.Context, event Event) error
}

// NewEvent creates an info event with a fresh ID and the current time.
func NewEvent(t EventType, project, message string) Event {
	id, _ := nanoid.New()
	return Event{
		ID:        id,
		Type:      t,
		Project:   project,
		Message:   message,
		Severity:  SeverityInfo,
		Timestamp: time.Now().UTC(),
	}
}

// Targets lists where events are delivered besides the log.
type Targets struct {
	WebhookURL    string
	WebhookSecret string // Signs webhook deliveries when set
	SlackURL      string
}

// FromSettings builds the notifier for the configured targets. Events are
// always logged; webhook and Slack targets are added when their URL is set.
func FromSettings(targets Targets, logger *slog.Logger) Notifier {
	notifiers := []Notifier{NewLogNotifier(logger)}
	if targets.WebhookURL != "" {
		webhook := NewWebhookNotifier(targets.WebhookURL, nil)
		webhook.Secret = []byte(targets.WebhookSecret)
		notifiers = append(notifiers, webhook)
	}
	if targets.SlackURL != "" {
		notifiers = append(notifiers, NewSlackNotifier(targets.SlackURL))
	}
	if len(notifiers) == 1 {
		return notifiers[0]
	}

	multi := NewMultiNotifier(notifiers...)
	if logger != nil {
		multi.Logger = logger
	}
	return multi
}
