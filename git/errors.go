package git

import "errors"

// Git operation errors.
var (
	// ErrNotGitRepo indicates the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrBranchNotFound indicates the branch does not exist.
	ErrBranchNotFound = errors.New("branch not found")

	// ErrTagExists indicates the tag already exists.
	ErrTagExists = errors.New("tag already exists")

	// ErrNothingToCommit indicates there are no staged changes to commit.
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrMergeConflict indicates a merge would conflict.
	ErrMergeConflict = errors.New("merge conflict")
)

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "commit", "push")
	Output string // Combined stdout/stderr output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
