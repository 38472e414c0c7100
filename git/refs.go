package git

import (
	"strings"
)

// Identity is a commit author/committer identity.
type Identity struct {
	Name  string
	Email string
}

// DefaultIdentity is used when the repository has no configured user.
// git rejects empty identities, so an empty name or email falls back here.
var DefaultIdentity = Identity{Name: "rellr", Email: "rellr@localhost"}

// ResolveRef returns the commit SHA a ref points to.
func (g *Context) ResolveRef(ref string) (string, error) {
	sha, err := g.runGit("rev-parse", "--verify", ref+"^{commit}")
	if err != nil {
		return "", &Error{Op: "resolve " + ref, Err: err}
	}
	return sha, nil
}

// IsAncestor reports whether ancestor is reachable from descendant.
// A commit is its own ancestor.
func (g *Context) IsAncestor(ancestor, descendant string) (bool, error) {
	_, err := g.runGit("merge-base", "--is-ancestor", ancestor, descendant)
	if err == nil {
		return true, nil
	}
	if ExitCodeOf(err) == 1 {
		return false, nil
	}
	return false, &Error{Op: "check ancestry", Err: err}
}

// ConfigValue returns a git config value, or "" if it is not set.
func (g *Context) ConfigValue(key string) string {
	value, err := g.runGit("config", "--get", key)
	if err != nil {
		return ""
	}
	return value
}

// Identity returns the configured user identity, falling back to
// DefaultIdentity for unset fields.
func (g *Context) Identity() Identity {
	id := Identity{
		Name:  g.ConfigValue("user.name"),
		Email: g.ConfigValue("user.email"),
	}
	if id.Name == "" {
		id.Name = DefaultIdentity.Name
	}
	if id.Email == "" {
		id.Email = DefaultIdentity.Email
	}
	return id
}

// WriteTree writes the index to a tree object and returns its SHA.
func (g *Context) WriteTree() (string, error) {
	tree, err := g.runGit("write-tree")
	if err != nil {
		return "", &Error{Op: "write tree", Err: err}
	}
	return tree, nil
}

// ReadTree replaces the index with the contents of tree.
func (g *Context) ReadTree(tree string) error {
	if _, err := g.runGit("read-tree", tree); err != nil {
		return &Error{Op: "read tree", Err: err}
	}
	return nil
}

// CommitTree creates a commit object for tree with the given parent and
// message, authored and committed by id. It does not move any ref.
func (g *Context) CommitTree(tree, parent, message string, id Identity) (string, error) {
	args := []string{
		"-c", "user.name=" + id.Name,
		"-c", "user.email=" + id.Email,
		"commit-tree", tree,
	}
	if parent != "" {
		args = append(args, "-p", parent)
	}
	args = append(args, "-m", message)

	sha, err := g.runGit(args...)
	if err != nil {
		return "", &Error{Op: "commit tree", Err: err}
	}
	return sha, nil
}

// UpdateRef points ref at newSHA. When oldSHA is not empty the update only
// happens if ref currently points at oldSHA.
func (g *Context) UpdateRef(ref, newSHA, oldSHA string) error {
	args := []string{"update-ref", ref, newSHA}
	if oldSHA != "" {
		args = append(args, oldSHA)
	}
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "update ref " + ref, Err: err}
	}
	return nil
}

// ResetHard resets the current branch, index and working tree to ref.
func (g *Context) ResetHard(ref string) error {
	if _, err := g.runGit("reset", "--hard", ref); err != nil {
		return &Error{Op: "reset", Err: err}
	}
	return nil
}

// ListBranches returns local branch names matching pattern (e.g. "release/*").
func (g *Context) ListBranches(pattern string) ([]string, error) {
	args := []string{"for-each-ref", "--format=%(refname:short)", "refs/heads/"}
	if pattern != "" {
		args[len(args)-1] = "refs/heads/" + pattern
	}
	out, err := g.runGit(args...)
	if err != nil {
		return nil, &Error{Op: "list branches", Err: err}
	}
	return splitLines(out), nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
