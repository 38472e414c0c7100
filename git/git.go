package git

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Context manages git operations for a repository.
type Context struct {
	repoPath string        // Path to the repository root
	workDir  string        // Working directory for commands (defaults to repoPath)
	runner   CommandRunner // Command runner (defaults to ExecRunner)
}

// Option configures Context.
type Option func(*Context)

// NewContext creates a new git context for the repository.
// It applies any options and then validates that the path is a git repository.
func NewContext(repoPath string, opts ...Option) (*Context, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("resolve path: %w", err)
	}

	g := &Context{
		repoPath: absPath,
		workDir:  absPath,
		runner:   NewExecRunner(),
	}

	for _, opt := range opts {
		opt(g)
	}

	if _, err := g.runGit("rev-parse", "--git-dir"); err != nil {
		return nil, ErrNotGitRepo
	}

	return g, nil
}

// WithRunner sets a custom command runner for git operations.
// This is primarily used for testing to inject mock command execution.
func WithRunner(runner CommandRunner) Option {
	return func(g *Context) {
		g.runner = runner
	}
}

// RepoPath returns the path to the repository.
func (g *Context) RepoPath() string {
	return g.repoPath
}

// Runner returns the command runner used by the context.
func (g *Context) Runner() CommandRunner {
	return g.runner
}

// CurrentBranch returns the current branch name.
func (g *Context) CurrentBranch() (string, error) {
	branch, err := g.runGit("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", &Error{Op: "get current branch", Err: err}
	}
	return branch, nil
}

// Checkout switches to the specified ref (branch, tag, or commit).
func (g *Context) Checkout(ref string) error {
	if _, err := g.runGit("checkout", ref); err != nil {
		return &Error{Op: "checkout", Err: err}
	}
	return nil
}

// ForceCheckout switches to the branch and overwrites the working tree,
// discarding uncommitted changes to tracked files.
func (g *Context) ForceCheckout(branch string) error {
	if _, err := g.runGit("checkout", "--force", branch); err != nil {
		return &Error{Op: "force checkout", Err: err}
	}
	return nil
}

// CreateBranch creates a new branch at HEAD.
func (g *Context) CreateBranch(name string) error {
	return g.CreateBranchAt(name, "HEAD")
}

// CreateBranchAt creates a new branch starting at ref.
func (g *Context) CreateBranchAt(name, ref string) error {
	if _, err := g.runGit("branch", name, ref); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch", Err: err}
	}
	return nil
}

// RenameBranch renames a branch in place, keeping its commits.
func (g *Context) RenameBranch(oldName, newName string) error {
	if _, err := g.runGit("branch", "-m", oldName, newName); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "rename branch", Err: err}
	}
	return nil
}

// DeleteBranch deletes a branch. If force is true, uses -D instead of -d.
func (g *Context) DeleteBranch(name string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	if _, err := g.runGit("branch", flag, name); err != nil {
		return &Error{Op: "delete branch", Err: err}
	}
	return nil
}

// BranchExists checks if a local branch exists.
func (g *Context) BranchExists(name string) bool {
	_, err := g.runGit("rev-parse", "--verify", "--quiet", "refs/heads/"+name)
	return err == nil
}

// Stage adds files to the staging area.
func (g *Context) Stage(files ...string) error {
	if len(files) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, files...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "stage files", Err: err}
	}
	return nil
}

// Status returns the working tree status in short format.
func (g *Context) Status() (string, error) {
	status, err := g.runGit("status", "--short")
	if err != nil {
		return "", &Error{Op: "status", Err: err}
	}
	return status, nil
}

// IsClean returns true if the working tree has no uncommitted changes.
func (g *Context) IsClean() (bool, error) {
	status, err := g.Status()
	if err != nil {
		return false, err
	}
	return status == "", nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *Context) HeadCommit() (string, error) {
	sha, err := g.runGit("rev-parse", "HEAD")
	if err != nil {
		return "", &Error{Op: "get HEAD commit", Err: err}
	}
	return sha, nil
}

// Push pushes refs to the remote.
func (g *Context) Push(remote string, refs ...string) error {
	args := append([]string{"push", remote}, refs...)
	if _, err := g.runGit(args...); err != nil {
		return &Error{Op: "push", Err: err}
	}
	return nil
}

// GetRemoteURL returns the URL of the specified remote.
func (g *Context) GetRemoteURL(remote string) (string, error) {
	url, err := g.runGit("remote", "get-url", remote)
	if err != nil {
		return "", &Error{Op: "get remote URL", Err: err}
	}
	return url, nil
}

// RunGit executes an arbitrary git command in the repository.
func (g *Context) RunGit(args ...string) (string, error) {
	return g.runGit(args...)
}

// runGit executes a git command and returns stdout.
func (g *Context) runGit(args ...string) (string, error) {
	return g.runner.Run(g.workDir, "git", args...)
}
