// Package git wraps the git command line for release automation: branches,
// refs, low-level commit and tree plumbing, annotated tags, and merge
// analysis.
//
// Core types:
//   - Context: repository handle running git through a CommandRunner
//   - CommandRunner: interface for executing commands (ExecRunner, MockRunner,
//     SequentialMockRunner)
//   - MergeAnalysis: classification of merging one branch into another
//   - BranchNamer: topic branch names from free-form descriptions
//
// Example usage:
//
//	gc, err := git.NewContext("/path/to/repo")
//	analysis, conflicts, err := gc.AnalyzeMerge("main", "release/1.3.0")
//	if analysis == git.MergeFastForward {
//	    err = gc.MergeFastForward("release/1.3.0")
//	}
package git
