package forge

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Platform identifies a git hosting service.
type Platform string

const (
	PlatformGitHub Platform = "github"
	PlatformGitLab Platform = "gitlab"
)

// Provider publishes release notes on a git hosting service.
// Implementations exist for GitHub and GitLab.
type Provider interface {
	// Platform reports which service the provider talks to.
	Platform() Platform

	// CreateRelease publishes release notes for an existing tag.
	CreateRelease(ctx context.Context, opts ReleaseOptions) (*Release, error)

	// GetRelease retrieves the release for a tag.
	GetRelease(ctx context.Context, tag string) (*Release, error)
}

// ReleaseOptions configures release creation.
type ReleaseOptions struct {
	Tag        string // Tag the release points at (required)
	Name       string // Display name (default: the tag)
	Body       string // Release notes (markdown)
	Target     string // Commit-ish for the tag when it is not pushed yet
	Draft      bool   // GitHub only
	Prerelease bool   // GitHub only
}

// Release is a published release.
type Release struct {
	ID        int64
	Tag       string
	Name      string
	Body      string
	URL       string
	CreatedAt time.Time
}

// NewReleaseOptions returns options for a version tag, named after the
// project and version.
func NewReleaseOptions(project, version, tag, notes string) ReleaseOptions {
	name := tag
	if project != "" {
		name = fmt.Sprintf("%s %s", project, version)
	}
	return ReleaseOptions{
		Tag:  tag,
		Name: name,
		Body: notes,
	}
}

func (o ReleaseOptions) validate() error {
	if o.Tag == "" {
		return ErrTagRequired
	}
	return nil
}

func (o ReleaseOptions) name() string {
	if o.Name == "" {
		return o.Tag
	}
	return o.Name
}

// DetectProvider detects the hosting platform from a remote URL.
func DetectProvider(remoteURL string) (Platform, error) {
	remoteURL = strings.ToLower(remoteURL)

	if strings.Contains(remoteURL, "github.com") {
		return PlatformGitHub, nil
	}
	if strings.Contains(remoteURL, "gitlab") {
		return PlatformGitLab, nil
	}

	return "", ErrUnknownProvider
}

// Remote is a parsed git remote URL.
type Remote struct {
	Host  string // e.g. "github.com"
	Owner string // owner or group path, e.g. "group/subgroup"
	Repo  string
}

// Path returns "owner/repo".
func (r Remote) Path() string {
	return r.Owner + "/" + r.Repo
}

// ParseRemote parses SSH (git@host:owner/repo.git), ssh:// and HTTP(S)
// remote URLs.
func ParseRemote(remoteURL string) (Remote, error) {
	var host, path string

	switch {
	case strings.HasPrefix(remoteURL, "git@"):
		rest := strings.TrimPrefix(remoteURL, "git@")
		parts := strings.SplitN(rest, ":", 2)
		if len(parts) != 2 {
			return Remote{}, fmt.Errorf("invalid SSH URL format: %s", remoteURL)
		}
		host, path = parts[0], parts[1]

	default:
		rest := remoteURL
		for _, scheme := range []string{"https://", "http://", "ssh://"} {
			rest = strings.TrimPrefix(rest, scheme)
		}
		if rest == remoteURL {
			return Remote{}, fmt.Errorf("invalid URL format: %s", remoteURL)
		}
		host, path, _ = strings.Cut(rest, "/")
		if i := strings.LastIndex(host, "@"); i >= 0 {
			host = host[i+1:]
		}
	}

	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")
	i := strings.LastIndex(path, "/")
	if host == "" || i <= 0 || i == len(path)-1 {
		return Remote{}, fmt.Errorf("invalid repository path: %s", remoteURL)
	}

	return Remote{Host: host, Owner: path[:i], Repo: path[i+1:]}, nil
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	r, err := ParseRemote(remoteURL)
	if err != nil {
		return "", "", err
	}
	return r.Owner, r.Repo, nil
}
