package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"
)

// SlackNotifier posts events to a Slack incoming webhook.
type SlackNotifier struct {
	WebhookURL string
	Channel    string
	Username   string
	Client     *http.Client
}

// NewSlackNotifier creates a Slack webhook notifier.
func NewSlackNotifier(webhookURL string, opts ...SlackOption) *SlackNotifier {
	n := &SlackNotifier{
		WebhookURL: webhookURL,
		Username:   "rellr",
		Client:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// SlackOption configures SlackNotifier.
type SlackOption func(*SlackNotifier)

// WithSlackChannel sets the channel to post to.
func WithSlackChannel(channel string) SlackOption {
	return func(n *SlackNotifier) { n.Channel = channel }
}

// WithSlackUsername sets the bot username.
func WithSlackUsername(username string) SlackOption {
	return func(n *SlackNotifier) { n.Username = username }
}

// Notify implements Notifier.
func (n *SlackNotifier) Notify(ctx context.Context, event Event) error {
	payload := slackPayload{
		Username: n.Username,
		Channel:  n.Channel,
		Attachments: []slackAttachment{
			{
				Color:     colorForSeverity(event.Severity),
				Title:     fmt.Sprintf("%s %s %s", emojiForEvent(event.Type), event.Project, event.Version),
				Text:      event.Message,
				Footer:    footerFor(event),
				Timestamp: event.Timestamp.Unix(),
				Fields:    fieldsFromMetadata(event.Metadata),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal slack payload: %w", err)
	}
	return postJSON(ctx, n.Client, n.WebhookURL, nil, body, "slack")
}

func emojiForEvent(t EventType) string {
	switch t {
	case EventReleased:
		return ":rocket:"
	case EventVersionStaged:
		return ":package:"
	case EventTopicStarted:
		return ":seedling:"
	case EventReleaseFailed:
		return ":x:"
	case EventReset:
		return ":rewind:"
	case EventChangelogBuilt:
		return ":memo:"
	default:
		return ":loudspeaker:"
	}
}

func colorForSeverity(severity string) string {
	switch severity {
	case SeverityError:
		return "danger"
	case SeverityWarning:
		return "warning"
	default:
		return "good"
	}
}

func footerFor(event Event) string {
	switch {
	case event.Tag != "":
		return "Tag: " + event.Tag
	case event.Branch != "":
		return "Branch: " + event.Branch
	default:
		return string(event.Type)
	}
}

func fieldsFromMetadata(metadata map[string]any) []slackField {
	if len(metadata) == 0 {
		return nil
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]slackField, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, slackField{
			Title: k,
			Value: fmt.Sprintf("%v", metadata[k]),
			Short: true,
		})
	}
	return fields
}

// Slack webhook payload types
type slackPayload struct {
	Username    string            `json:"username,omitempty"`
	Channel     string            `json:"channel,omitempty"`
	Attachments []slackAttachment `json:"attachments"`
}

type slackAttachment struct {
	Color     string       `json:"color,omitempty"`
	Title     string       `json:"title"`
	Text      string       `json:"text"`
	Footer    string       `json:"footer,omitempty"`
	Timestamp int64        `json:"ts,omitempty"`
	Fields    []slackField `json:"fields,omitempty"`
}

type slackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}
