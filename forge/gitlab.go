package forge

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/xanzy/go-gitlab"
)

// GitLabProvider implements Provider for GitLab repositories.
type GitLabProvider struct {
	client    *gitlab.Client
	projectID string // Numeric ID or "namespace/project"
	webURL    string // e.g. "https://gitlab.com/namespace/project"
}

// NewGitLabProvider creates a new GitLab provider.
// baseURL is the GitLab instance URL (empty for gitlab.com).
// projectID can be a numeric ID or a "namespace/project" path.
func NewGitLabProvider(token, baseURL, projectID string) (*GitLabProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}
	if projectID == "" {
		return nil, fmt.Errorf("project ID is required")
	}

	var client *gitlab.Client
	var err error

	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
		baseURL = "https://gitlab.com"
	}
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabProvider{
		client:    client,
		projectID: projectID,
		webURL:    strings.TrimSuffix(baseURL, "/") + "/" + projectID,
	}, nil
}

// NewGitLabProviderFromURL creates a GitLab provider from a remote URL.
// Self-hosted instances are reached over https on the remote's host.
func NewGitLabProviderFromURL(token, remoteURL string) (*GitLabProvider, error) {
	remote, err := ParseRemote(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}

	var baseURL string
	if remote.Host != "gitlab.com" {
		baseURL = "https://" + remote.Host
	}
	return NewGitLabProvider(token, baseURL, remote.Path())
}

// Platform implements Provider.
func (p *GitLabProvider) Platform() Platform {
	return PlatformGitLab
}

// CreateRelease implements Provider.
func (p *GitLabProvider) CreateRelease(ctx context.Context, opts ReleaseOptions) (*Release, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := &gitlab.CreateReleaseOptions{
		Name:        gitlab.Ptr(opts.name()),
		TagName:     gitlab.Ptr(opts.Tag),
		Description: gitlab.Ptr(opts.Body),
	}
	if opts.Target != "" {
		req.Ref = gitlab.Ptr(opts.Target)
	}

	rel, resp, err := p.client.Releases.CreateRelease(p.projectID, req, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, fmt.Errorf("%w: %s", ErrReleaseExists, opts.Tag)
		}
		return nil, fmt.Errorf("create GitLab release: %w", err)
	}

	return p.releaseFromGitLab(rel), nil
}

// GetRelease implements Provider.
func (p *GitLabProvider) GetRelease(ctx context.Context, tag string) (*Release, error) {
	rel, resp, err := p.client.Releases.GetRelease(p.projectID, tag, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, tag)
		}
		return nil, fmt.Errorf("get GitLab release: %w", err)
	}
	return p.releaseFromGitLab(rel), nil
}

func (p *GitLabProvider) releaseFromGitLab(rel *gitlab.Release) *Release {
	out := &Release{
		Tag:  rel.TagName,
		Name: rel.Name,
		Body: rel.Description,
		URL:  p.webURL + "/-/releases/" + url.PathEscape(rel.TagName),
	}
	if rel.CreatedAt != nil {
		out.CreatedAt = *rel.CreatedAt
	}
	return out
}
