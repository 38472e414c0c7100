package forge

import "context"

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	PlatformValue     Platform
	CreateReleaseFunc func(ctx context.Context, opts ReleaseOptions) (*Release, error)
	GetReleaseFunc    func(ctx context.Context, tag string) (*Release, error)

	// Created records every CreateRelease call.
	Created []ReleaseOptions
}

// Platform implements Provider.
func (m *MockProvider) Platform() Platform {
	if m.PlatformValue == "" {
		return PlatformGitHub
	}
	return m.PlatformValue
}

// CreateRelease implements Provider.
func (m *MockProvider) CreateRelease(ctx context.Context, opts ReleaseOptions) (*Release, error) {
	m.Created = append(m.Created, opts)
	if m.CreateReleaseFunc != nil {
		return m.CreateReleaseFunc(ctx, opts)
	}
	return &Release{ID: 1, Tag: opts.Tag, Name: opts.name(), Body: opts.Body, URL: "https://example.com/releases/" + opts.Tag}, nil
}

// GetRelease implements Provider.
func (m *MockProvider) GetRelease(ctx context.Context, tag string) (*Release, error) {
	if m.GetReleaseFunc != nil {
		return m.GetReleaseFunc(ctx, tag)
	}
	return &Release{ID: 1, Tag: tag}, nil
}
