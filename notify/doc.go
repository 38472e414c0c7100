// Package notify announces release events.
//
// Core types:
//   - Notifier: interface for sending notifications
//   - Event: a release event with project, version, branch and tag
//   - EventType: version_staged, released, reset, ...
//
// Implementations:
//   - SlackNotifier: posts to Slack incoming webhooks
//   - WebhookNotifier: posts the event as JSON to any URL
//   - LogNotifier: logs events with slog
//   - MultiNotifier: fans out to several notifiers
//   - NopNotifier: discards events
//
// FromSettings assembles the notifier for the notify_webhook,
// notify_secret and slack_webhook settings:
//
//	notifier := notify.FromSettings(notify.Targets{
//	    WebhookURL:    settings.NotifyWebhook,
//	    WebhookSecret: settings.NotifySecret,
//	    SlackURL:      settings.SlackWebhook,
//	}, logger)
//	event := notify.NewEvent(notify.EventReleased, "demo", "Released demo 1.3.0")
//	event.Version = "1.3.0"
//	err := notifier.Notify(ctx, event)
//
// Signed webhook deliveries carry "Authorization: Bearer <token>"; receivers
// check it with VerifyEvent.
package notify
