package git

import (
	"regexp"
	"strings"
)

var (
	nonSlugChars    = regexp.MustCompile(`[^a-z0-9.-]`)
	repeatedHyphens = regexp.MustCompile(`-+`)
)

// BranchNamer generates topic branch names following conventions.
type BranchNamer struct {
	TypePrefix string // Branch type prefix (e.g., "feature", "hotfix")
	MaxLength  int    // Maximum branch name length
}

// DefaultBranchNamer returns a namer with default settings.
func DefaultBranchNamer() *BranchNamer {
	return &BranchNamer{
		TypePrefix: "feature",
		MaxLength:  100,
	}
}

// ForTopic generates a branch name from a free-form description.
// Example: "Add User Authentication" -> "feature/add-user-authentication"
func (n *BranchNamer) ForTopic(name string) string {
	branch := n.TypePrefix + "/" + Slugify(name)

	if n.MaxLength > 0 && len(branch) > n.MaxLength {
		branch = branch[:n.MaxLength]
	}

	return CleanBranch(branch)
}

// Slugify converts a string to a branch-safe slug. Dots are kept so version
// numbers survive.
func Slugify(s string) string {
	s = strings.ToLower(s)

	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	s = nonSlugChars.ReplaceAllString(s, "")
	s = repeatedHyphens.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}

// CleanBranch ensures a branch name is valid.
func CleanBranch(s string) string {
	s = repeatedHyphens.ReplaceAllString(s, "-")

	// Remove trailing hyphens (but not before /)
	parts := strings.Split(s, "/")
	for i, part := range parts {
		parts[i] = strings.TrimRight(part, "-")
	}
	return strings.Join(parts, "/")
}
