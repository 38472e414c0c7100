package git

import (
	"fmt"
	"time"
)

// CommitResult contains the result of a commit operation.
type CommitResult struct {
	SHA     string    // Full commit SHA
	Branch  string    // Branch name
	Message string    // Commit message
	Tag     string    // Tag created for the commit, if any
	Date    time.Time // Commit timestamp
}

// PushResult contains the result of a push operation.
type PushResult struct {
	Remote string   // Remote name (e.g., "origin")
	Refs   []string // Refs that were pushed
	SHA    string   // Commit SHA at HEAD when pushed
	URL    string   // Remote URL (for reference)
}

// CheckoutNewAt creates and checks out a new branch at the specified ref.
func (g *Context) CheckoutNewAt(name, ref string) error {
	if err := g.CreateBranchAt(name, ref); err != nil {
		return fmt.Errorf("create branch %q: %w", name, err)
	}
	if err := g.Checkout(name); err != nil {
		return fmt.Errorf("checkout new branch %q: %w", name, err)
	}
	return nil
}

// PushRelease pushes the branch and the release tag to remote.
func (g *Context) PushRelease(remote, branch, tag string) (*PushResult, error) {
	refs := []string{branch, "refs/tags/" + tag}
	if err := g.Push(remote, refs...); err != nil {
		return nil, err
	}

	sha, err := g.HeadCommit()
	if err != nil {
		return nil, fmt.Errorf("get head: %w", err)
	}

	url, _ := g.GetRemoteURL(remote) // URL is informational only

	return &PushResult{
		Remote: remote,
		Refs:   refs,
		SHA:    sha,
		URL:    url,
	}, nil
}
