package changelog

import "strings"

// Commit is a read-only projection of a repository commit.
type Commit struct {
	ID        string
	Message   string
	Author    string
	Timestamp int64 // Unix seconds, committer time
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	line, _, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")
	return strings.TrimSpace(line)
}

// ShortID returns the abbreviated commit id.
func (c Commit) ShortID() string {
	if len(c.ID) > 7 {
		return c.ID[:7]
	}
	return c.ID
}

// Release is a group of commits bounded by a version tag.
type Release struct {
	Version   string   // Tag name; empty for the unreleased head bucket
	CommitID  string   // Boundary commit
	Timestamp int64    // Commit time of the boundary commit
	Commits   []Commit // Oldest first
	Previous  int      // Index of the preceding release in the chain, -1 for none
}

// Unreleased reports whether the release has no tag.
func (r *Release) Unreleased() bool {
	return r.Version == ""
}

// Chain is an arena of releases linked through Previous indices.
// Head is the newest release, or -1 when the chain is empty.
type Chain struct {
	Releases []Release
	Head     int
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{Head: -1}
}

// Len returns the number of releases in the arena, including synthetic ones.
func (c *Chain) Len() int {
	return len(c.Releases)
}

// At returns the release at index i.
func (c *Chain) At(i int) *Release {
	return &c.Releases[i]
}

// HeadRelease returns the newest release, or nil for an empty chain.
func (c *Chain) HeadRelease() *Release {
	if c.Head < 0 {
		return nil
	}
	return &c.Releases[c.Head]
}

// PreviousOf returns the release preceding r, if any.
func (c *Chain) PreviousOf(r *Release) (*Release, bool) {
	if r.Previous < 0 || r.Previous >= len(c.Releases) {
		return nil, false
	}
	return &c.Releases[r.Previous], true
}

// Walk returns the releases from newest to oldest by following Previous
// from Head.
func (c *Chain) Walk() []*Release {
	var out []*Release
	seen := make(map[int]bool, len(c.Releases))
	for i := c.Head; i >= 0 && i < len(c.Releases) && !seen[i]; i = c.Releases[i].Previous {
		seen[i] = true
		out = append(out, &c.Releases[i])
	}
	return out
}

// CommitCount returns the number of commits across all releases.
func (c *Chain) CommitCount() int {
	n := 0
	for _, r := range c.Releases {
		n += len(r.Commits)
	}
	return n
}
