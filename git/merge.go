package git

import (
	"errors"
	"fmt"
	"strings"
)

// MergeAnalysis classifies merging a head branch into a base branch.
type MergeAnalysis int

const (
	// MergeUpToDate means head is already reachable from base.
	MergeUpToDate MergeAnalysis = iota
	// MergeFastForward means base is a strict ancestor of head.
	MergeFastForward
	// MergeNormal means the branches diverged without conflicts.
	MergeNormal
	// MergeConflicted means a three-way merge would conflict.
	MergeConflicted
)

func (a MergeAnalysis) String() string {
	switch a {
	case MergeUpToDate:
		return "up-to-date"
	case MergeFastForward:
		return "fast-forward"
	case MergeNormal:
		return "normal"
	case MergeConflicted:
		return "conflicted"
	default:
		return fmt.Sprintf("MergeAnalysis(%d)", int(a))
	}
}

// AnalyzeMerge classifies merging head into base without touching the
// index, working tree or any ref. For conflicted merges it also returns the
// conflicting paths.
func (g *Context) AnalyzeMerge(base, head string) (MergeAnalysis, []string, error) {
	upToDate, err := g.IsAncestor(head, base)
	if err != nil {
		return MergeConflicted, nil, err
	}
	if upToDate {
		return MergeUpToDate, nil, nil
	}

	fastForward, err := g.IsAncestor(base, head)
	if err != nil {
		return MergeConflicted, nil, err
	}
	if fastForward {
		return MergeFastForward, nil, nil
	}

	// merge-tree exits 1 when the merge has conflicts. The first line of
	// output is the resulting tree, followed by the conflicted paths.
	out, err := g.runGit("merge-tree", "--write-tree", "--name-only", "--no-messages", base, head)
	if err == nil {
		return MergeNormal, nil, nil
	}
	if ExitCodeOf(err) != 1 {
		return MergeConflicted, nil, &Error{Op: "analyze merge", Err: err}
	}

	lines := splitLines(out)
	var conflicts []string
	if len(lines) > 1 {
		conflicts = lines[1:]
	}
	return MergeConflicted, conflicts, nil
}

// MergeFastForward advances the current branch to branch.
// Fails rather than creating a merge commit.
func (g *Context) MergeFastForward(branch string) error {
	if _, err := g.runGit("merge", "--ff-only", branch); err != nil {
		return &Error{Op: "fast-forward merge", Err: err}
	}
	return nil
}

// MergeNoFastForward merges branch into the current branch with a merge
// commit. On conflict the merge is aborted and ErrMergeConflict returned.
func (g *Context) MergeNoFastForward(branch, message string, id Identity) error {
	_, err := g.runGit(
		"-c", "user.name="+id.Name,
		"-c", "user.email="+id.Email,
		"merge", "--no-ff", "-m", message, branch,
	)
	if err == nil {
		return nil
	}

	mergeErr := &Error{Op: "merge", Err: err}
	conflicts, err := g.UnmergedPaths()
	if err != nil {
		return errors.Join(mergeErr, err)
	}
	if len(conflicts) == 0 {
		return mergeErr
	}

	conflictErr := fmt.Errorf("%w: %s", ErrMergeConflict, strings.Join(conflicts, ", "))
	if err := g.AbortMerge(); err != nil {
		return errors.Join(conflictErr, err)
	}
	return conflictErr
}

// UnmergedPaths lists paths with unresolved conflicts in the index.
func (g *Context) UnmergedPaths() ([]string, error) {
	out, err := g.runGit("diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, &Error{Op: "check for conflicts", Err: err}
	}
	return splitLines(out), nil
}

// AbortMerge aborts an in-progress merge.
func (g *Context) AbortMerge() error {
	if _, err := g.runGit("merge", "--abort"); err != nil {
		return &Error{Op: "abort merge", Err: err}
	}
	return nil
}
