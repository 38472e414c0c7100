package forge

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubProvider implements Provider for GitHub repositories.
type GitHubProvider struct {
	client *github.Client
	owner  string
	repo   string
}

// NewGitHubProvider creates a new GitHub provider.
// token is a personal access token or GitHub App token.
func NewGitHubProvider(token, owner, repo string) (*GitHubProvider, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("owner and repo are required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return &GitHubProvider{
		client: github.NewClient(tc),
		owner:  owner,
		repo:   repo,
	}, nil
}

// NewGitHubProviderFromURL creates a GitHub provider from a remote URL.
// Example: "git@github.com:owner/project.git"
func NewGitHubProviderFromURL(token, remoteURL string) (*GitHubProvider, error) {
	owner, repo, err := ParseRepoFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}
	return NewGitHubProvider(token, owner, repo)
}

// Platform implements Provider.
func (p *GitHubProvider) Platform() Platform {
	return PlatformGitHub
}

// CreateRelease implements Provider.
func (p *GitHubProvider) CreateRelease(ctx context.Context, opts ReleaseOptions) (*Release, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	req := &github.RepositoryRelease{
		TagName:    github.String(opts.Tag),
		Name:       github.String(opts.name()),
		Body:       github.String(opts.Body),
		Draft:      github.Bool(opts.Draft),
		Prerelease: github.Bool(opts.Prerelease),
	}
	if opts.Target != "" {
		req.TargetCommitish = github.String(opts.Target)
	}

	rel, resp, err := p.client.Repositories.CreateRelease(ctx, p.owner, p.repo, req)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity && isAlreadyExists(err) {
			return nil, fmt.Errorf("%w: %s", ErrReleaseExists, opts.Tag)
		}
		return nil, fmt.Errorf("create GitHub release: %w", err)
	}

	return releaseFromGitHub(rel), nil
}

// GetRelease implements Provider.
func (p *GitHubProvider) GetRelease(ctx context.Context, tag string) (*Release, error) {
	rel, resp, err := p.client.Repositories.GetReleaseByTag(ctx, p.owner, p.repo, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, tag)
		}
		return nil, fmt.Errorf("get GitHub release: %w", err)
	}
	return releaseFromGitHub(rel), nil
}

func isAlreadyExists(err error) bool {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		for _, e := range ghErr.Errors {
			if e.Code == "already_exists" {
				return true
			}
		}
	}
	return strings.Contains(err.Error(), "already_exists")
}

func releaseFromGitHub(rel *github.RepositoryRelease) *Release {
	out := &Release{
		ID:   rel.GetID(),
		Tag:  rel.GetTagName(),
		Name: rel.GetName(),
		Body: rel.GetBody(),
		URL:  rel.GetHTMLURL(),
	}
	if rel.CreatedAt != nil {
		out.CreatedAt = rel.CreatedAt.Time
	}
	return out
}
