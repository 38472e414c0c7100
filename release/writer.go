package release

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/rellr/git"
	"github.com/randalmurphal/rellr/version"
)

// Writer commits and tags releases.
type Writer struct {
	Git    *git.Context
	Logger *slog.Logger
}

// NewWriter returns a writer for the repository of g.
func NewWriter(g *git.Context, logger *slog.Logger) *Writer {
	return &Writer{Git: g, Logger: logger}
}

// snapshot is the index and HEAD before a commit.
type snapshot struct {
	tree string
	head string // "" on an unborn branch
}

// Commit stages paths, commits them with the bare version as message and
// tags the commit v{version}. If any step fails the index and HEAD are
// restored. Returns git.ErrTagExists, without touching the repository, when
// the tag is already present.
func (w *Writer) Commit(ver string, paths []string) (*git.CommitResult, error) {
	tag := version.TagName(ver)
	if w.Git.TagExists(tag) {
		return nil, fmt.Errorf("%w: %s", git.ErrTagExists, tag)
	}

	snap, err := w.snapshot()
	if err != nil {
		return nil, err
	}

	result, err := w.commit(ver, tag, snap, dedupe(paths))
	if err != nil {
		if rbErr := w.restore(snap); rbErr != nil {
			w.logger().Error("rollback failed", "tag", tag, "error", rbErr)
			return nil, fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		w.logger().Debug("rolled back release commit", "tag", tag)
		return nil, err
	}
	return result, nil
}

func (w *Writer) commit(ver, tag string, snap snapshot, paths []string) (*git.CommitResult, error) {
	if err := w.Git.Stage(paths...); err != nil {
		return nil, err
	}

	tree, err := w.Git.WriteTree()
	if err != nil {
		return nil, err
	}

	id := w.Git.Identity()
	sha, err := w.Git.CommitTree(tree, snap.head, ver, id)
	if err != nil {
		return nil, err
	}
	if err := w.Git.UpdateRef("HEAD", sha, snap.head); err != nil {
		return nil, err
	}
	if err := w.Git.CreateAnnotatedTag(tag, sha, ver, id); err != nil {
		return nil, fmt.Errorf("tag %s: %w", tag, err)
	}

	branch, _ := w.Git.CurrentBranch() // informational only
	w.logger().Info("committed release", "version", ver, "tag", tag, "sha", sha, "files", len(paths))

	return &git.CommitResult{
		SHA:     sha,
		Branch:  branch,
		Message: ver,
		Tag:     tag,
		Date:    time.Now(),
	}, nil
}

func (w *Writer) snapshot() (snapshot, error) {
	tree, err := w.Git.WriteTree()
	if err != nil {
		return snapshot{}, fmt.Errorf("snapshot index: %w", err)
	}
	// An unborn branch has no HEAD commit yet.
	head, _ := w.Git.ResolveRef("HEAD")
	return snapshot{tree: tree, head: head}, nil
}

func (w *Writer) restore(snap snapshot) error {
	current, _ := w.Git.ResolveRef("HEAD")
	if current != snap.head {
		if snap.head == "" {
			if _, err := w.Git.RunGit("update-ref", "-d", "HEAD"); err != nil {
				return &git.Error{Op: "restore HEAD", Err: err}
			}
		} else if err := w.Git.UpdateRef("HEAD", snap.head, current); err != nil {
			return err
		}
	}
	return w.Git.ReadTree(snap.tree)
}

// Reset removes the release commit and tag of ver. The tag must point at
// HEAD; the working tree is reset to the parent commit.
func (w *Writer) Reset(ver string) error {
	tag := version.TagName(ver)
	if !w.Git.TagExists(tag) {
		return fmt.Errorf("%w: %s", ErrReleaseNotFound, tag)
	}

	tagged, err := w.Git.ResolveRef("refs/tags/" + tag)
	if err != nil {
		return err
	}
	head, err := w.Git.HeadCommit()
	if err != nil {
		return err
	}
	if tagged != head {
		return fmt.Errorf("%w: %s", ErrTagNotAtHead, tag)
	}

	if err := w.Git.DeleteTag(tag); err != nil {
		return err
	}
	if err := w.Git.ResetHard("HEAD~1"); err != nil {
		return err
	}
	w.logger().Info("reset release", "version", ver, "tag", tag)
	return nil
}

func (w *Writer) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}

func dedupe(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
