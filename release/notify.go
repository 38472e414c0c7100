package release

import (
	"context"

	"github.com/randalmurphal/rellr/config"
	"github.com/randalmurphal/rellr/notify"
	"github.com/randalmurphal/rellr/version"
)

// notify sends event. Notification failures never fail the command.
func (e *Engine) notify(ctx context.Context, p *config.Project, event notify.Event) {
	if e.Notifier == nil {
		return
	}
	if event.Project == "" {
		event.Project = p.Name
	}
	if err := e.Notifier.Notify(ctx, event); err != nil {
		e.logger().Warn("notification failed", "type", string(event.Type), "error", err)
	}
}

func stagedEvent(p *config.Project, state *version.State) notify.Event {
	event := notify.NewEvent(notify.EventVersionStaged, p.Name, "Next version: "+state.Next)
	event.Version = state.Next
	event.Previous = state.Prev
	event.Branch = state.NextBranch()
	event.Metadata = map[string]any{"current": state.Current}
	return event
}

func releasedEvent(p *config.Project, result *Result) notify.Event {
	event := notify.NewEvent(notify.EventReleased, p.Name, "Released "+result.Tag)
	event.Version = result.Version
	event.Previous = result.Previous
	event.Tag = result.Tag
	event.Metadata = buildMetadata(result)
	return event
}

func buildMetadata(result *Result) map[string]any {
	meta := map[string]any{
		"merge": result.Merge.Analysis.String(),
	}
	if result.Commit != nil {
		meta["sha"] = result.Commit.SHA
	}
	if len(result.Manifests) > 0 {
		meta["manifests"] = len(result.Manifests)
	}
	if len(result.Published) > 0 {
		kinds := make([]string, len(result.Published))
		for i, k := range result.Published {
			kinds[i] = k.String()
		}
		meta["published"] = kinds
	}
	if result.Notes != nil {
		meta["releaseUrl"] = result.Notes.URL
	}
	return meta
}
