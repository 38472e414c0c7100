package release

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/rellr/config"
	"github.com/randalmurphal/rellr/git"
	"github.com/randalmurphal/rellr/version"
)

// MergeOutcome describes how a release branch was merged into main.
type MergeOutcome struct {
	Analysis  git.MergeAnalysis
	Branch    string   // Release branch that was merged
	Base      string   // Branch merged into
	Conflicts []string // Conflicting paths, only for MergeConflicted
	Deleted   bool     // Release branch was deleted after merging
}

// Lifecycle manages the branch of the staged version.
type Lifecycle struct {
	Git        *git.Context
	MainBranch string
	MergeMode  config.MergeMode
	Logger     *slog.Logger
	Reporter   Reporter
}

// NewLifecycle returns a lifecycle on the main branch of g that merges
// diverged branches automatically.
func NewLifecycle(g *git.Context, mainBranch string, logger *slog.Logger) *Lifecycle {
	return &Lifecycle{
		Git:        g,
		MainBranch: mainBranch,
		MergeMode:  config.MergeAuto,
		Logger:     logger,
	}
}

// EnsureBranch makes the branch of the staged version exist. A branch left
// over from the previously staged version is renamed in place, keeping the
// work done on it. Calling it again with the same state changes nothing.
func (l *Lifecycle) EnsureBranch(state *version.State) error {
	if !state.Staged() {
		return ErrReleaseNotSet
	}

	next := state.NextBranch()
	prev := state.PrevBranch()

	if prev != "" && prev != next && l.Git.BranchExists(prev) {
		if l.Git.BranchExists(next) {
			l.logger().Warn("both release branches exist, keeping both", "prev", prev, "next", next)
			return nil
		}
		if err := l.Git.RenameBranch(prev, next); err != nil {
			return fmt.Errorf("rename %s: %w", prev, err)
		}
		l.logger().Info("renamed release branch", "from", prev, "to", next)
		return nil
	}

	if l.Git.BranchExists(next) {
		l.logger().Debug("release branch exists", "branch", next)
		return nil
	}

	if err := l.Git.CreateBranchAt(next, l.mainBranch()); err != nil {
		return fmt.Errorf("create %s: %w", next, err)
	}
	l.logger().Info("created release branch", "branch", next, "from", l.mainBranch())
	return nil
}

// Checkout force-checks out name, discarding uncommitted changes to tracked
// files. An empty or missing branch falls back to the main branch.
func (l *Lifecycle) Checkout(name string) error {
	target := name
	switch {
	case target == "":
		target = l.mainBranch()
	case !l.Git.BranchExists(target):
		l.logger().Warn("branch not found, checking out main", "branch", name, "main", l.mainBranch())
		target = l.mainBranch()
	}

	if err := l.Git.ForceCheckout(target); err != nil {
		return fmt.Errorf("checkout %s: %w", target, err)
	}
	return nil
}

// Merge merges the branch of the staged version into the main branch and
// deletes it. Conflicted merges and diverged branches in manual mode return
// an error with main and the release branch untouched.
func (l *Lifecycle) Merge(state *version.State) (MergeOutcome, error) {
	if !state.Staged() {
		return MergeOutcome{}, ErrReleaseNotSet
	}

	branch := state.NextBranch()
	base := l.mainBranch()
	outcome := MergeOutcome{Branch: branch, Base: base}

	if !l.Git.BranchExists(branch) {
		return outcome, fmt.Errorf("%w: %s", git.ErrBranchNotFound, branch)
	}
	if err := l.Checkout(base); err != nil {
		return outcome, err
	}

	analysis, conflicts, err := l.Git.AnalyzeMerge(base, branch)
	if err != nil {
		return outcome, err
	}
	outcome.Analysis = analysis
	l.logger().Debug("merge analysis", "branch", branch, "base", base, "result", analysis.String())

	switch analysis {
	case git.MergeUpToDate:
		l.reporter().Info("%s is already merged into %s", branch, base)
		return outcome, nil
	case git.MergeFastForward:
		if err := l.Git.MergeFastForward(branch); err != nil {
			return outcome, err
		}
	case git.MergeNormal:
		if l.MergeMode == config.MergeManual {
			return outcome, fmt.Errorf("%w: %s into %s", ErrManualMergeRequired, branch, base)
		}
		message := fmt.Sprintf("Merge branch '%s'", branch)
		if err := l.Git.MergeNoFastForward(branch, message, l.Git.Identity()); err != nil {
			return outcome, err
		}
	default:
		outcome.Conflicts = conflicts
		return outcome, fmt.Errorf("%w: %s", git.ErrMergeConflict, strings.Join(conflicts, ", "))
	}

	if err := l.Git.DeleteBranch(branch, false); err != nil {
		return outcome, fmt.Errorf("delete %s: %w", branch, err)
	}
	outcome.Deleted = true
	l.logger().Info("merged release branch", "branch", branch, "base", base, "merge", analysis.String())
	return outcome, nil
}

func (l *Lifecycle) mainBranch() string {
	if l.MainBranch == "" {
		return config.DefaultMainBranch
	}
	return l.MainBranch
}

func (l *Lifecycle) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

func (l *Lifecycle) reporter() Reporter {
	if l.Reporter == nil {
		return nopReporter{}
	}
	return l.Reporter
}
