package git

import (
	"errors"
	"strings"
	"testing"

	"github.com/randalmurphal/rellr/testutil"
)

func repoContext(t *testing.T, dir string) *Context {
	t.Helper()
	gc, err := NewContext(dir)
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	return gc
}

func TestAnalyzeMerge(t *testing.T) {
	t.Run("up to date", func(t *testing.T) {
		dir := testutil.SetupTestRepo(t)
		testutil.CreateBranch(t, dir, "release/1.0.0")
		testutil.SwitchBranch(t, dir, "main")

		analysis, _, err := repoContext(t, dir).AnalyzeMerge("main", "release/1.0.0")
		if err != nil {
			t.Fatalf("AnalyzeMerge: %v", err)
		}
		if analysis != MergeUpToDate {
			t.Errorf("analysis = %v, want up-to-date", analysis)
		}
	})

	t.Run("fast forward", func(t *testing.T) {
		dir := testutil.SetupTestRepo(t)
		testutil.CreateBranch(t, dir, "release/1.0.0")
		testutil.CommitFile(t, dir, "a.txt", "a\n", "feat: a")
		testutil.SwitchBranch(t, dir, "main")

		analysis, _, err := repoContext(t, dir).AnalyzeMerge("main", "release/1.0.0")
		if err != nil {
			t.Fatalf("AnalyzeMerge: %v", err)
		}
		if analysis != MergeFastForward {
			t.Errorf("analysis = %v, want fast-forward", analysis)
		}
	})

	t.Run("normal", func(t *testing.T) {
		dir := testutil.SetupTestRepo(t)
		testutil.CreateBranch(t, dir, "release/1.0.0")
		testutil.CommitFile(t, dir, "a.txt", "a\n", "feat: a")
		testutil.SwitchBranch(t, dir, "main")
		testutil.CommitFile(t, dir, "b.txt", "b\n", "fix: b")

		analysis, conflicts, err := repoContext(t, dir).AnalyzeMerge("main", "release/1.0.0")
		if err != nil {
			t.Fatalf("AnalyzeMerge: %v", err)
		}
		if analysis != MergeNormal {
			t.Errorf("analysis = %v, want normal", analysis)
		}
		if len(conflicts) != 0 {
			t.Errorf("conflicts = %v, want none", conflicts)
		}
	})

	t.Run("conflicted", func(t *testing.T) {
		dir := testutil.SetupTestRepo(t)
		testutil.CreateBranch(t, dir, "release/1.0.0")
		testutil.CommitFile(t, dir, "README.md", "release side\n", "docs: release")
		testutil.SwitchBranch(t, dir, "main")
		testutil.CommitFile(t, dir, "README.md", "main side\n", "docs: main")
		mainHead := testutil.GetHeadSHA(t, dir)

		analysis, conflicts, err := repoContext(t, dir).AnalyzeMerge("main", "release/1.0.0")
		if err != nil {
			t.Fatalf("AnalyzeMerge: %v", err)
		}
		if analysis != MergeConflicted {
			t.Errorf("analysis = %v, want conflicted", analysis)
		}
		if len(conflicts) != 1 || conflicts[0] != "README.md" {
			t.Errorf("conflicts = %v, want [README.md]", conflicts)
		}
		if testutil.GetHeadSHA(t, dir) != mainHead {
			t.Error("analysis must not move HEAD")
		}
	})
}

func TestMergeNoFastForward_Conflict(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.CreateBranch(t, dir, "feature/x")
	testutil.CommitFile(t, dir, "README.md", "topic side\n", "docs: topic")
	testutil.SwitchBranch(t, dir, "main")
	testutil.CommitFile(t, dir, "README.md", "main side\n", "docs: main")
	mainHead := testutil.GetHeadSHA(t, dir)

	gc := repoContext(t, dir)
	err := gc.MergeNoFastForward("feature/x", "Merge feature/x", gc.Identity())
	if !errors.Is(err, ErrMergeConflict) {
		t.Fatalf("MergeNoFastForward error = %v, want ErrMergeConflict", err)
	}
	if testutil.GetHeadSHA(t, dir) != mainHead {
		t.Error("failed merge must leave main unchanged")
	}
	if clean, _ := gc.IsClean(); !clean {
		t.Error("failed merge must leave a clean working tree")
	}
}

func TestMergeNoFastForward_AbortFailure(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput(".git", nil)
	runner.AddExitCode("CONFLICT (content)", 1)
	runner.AddOutput("README.md", nil)
	runner.AddExitCode("fatal: no merge to abort", 128)

	gc, err := NewContext("/repo", WithRunner(runner))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	err = gc.MergeNoFastForward("feature/x", "Merge feature/x", Identity{Name: "a", Email: "a@b"})
	if !errors.Is(err, ErrMergeConflict) {
		t.Fatalf("error = %v, want ErrMergeConflict", err)
	}
	if !strings.Contains(err.Error(), "abort merge") {
		t.Errorf("error %q does not report the failed abort", err)
	}
	if got := runner.Args(3); len(got) != 2 || got[0] != "merge" || got[1] != "--abort" {
		t.Errorf("call 4 args = %v, want [merge --abort]", got)
	}
}

func TestMergeNoFastForward_ConflictCheckFailure(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput(".git", nil)
	runner.AddExitCode("merge failed", 1)
	runner.AddExitCode("fatal: bad index", 128)

	gc, err := NewContext("/repo", WithRunner(runner))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	err = gc.MergeNoFastForward("feature/x", "Merge feature/x", Identity{Name: "a", Email: "a@b"})
	if err == nil || errors.Is(err, ErrMergeConflict) {
		t.Fatalf("error = %v, want a non-conflict merge failure", err)
	}
	if !strings.Contains(err.Error(), "check for conflicts") {
		t.Errorf("error %q does not report the failed conflict check", err)
	}
}

func TestCommitTreeAndTag(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	gc := repoContext(t, dir)

	parent, err := gc.HeadCommit()
	if err != nil {
		t.Fatalf("HeadCommit: %v", err)
	}

	testutil.WriteFile(t, dir, "VERSION", "1.0.0\n")
	if err := gc.Stage("VERSION"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	tree, err := gc.WriteTree()
	if err != nil {
		t.Fatalf("WriteTree: %v", err)
	}
	sha, err := gc.CommitTree(tree, parent, "1.0.0", gc.Identity())
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	if err := gc.UpdateRef("HEAD", sha, parent); err != nil {
		t.Fatalf("UpdateRef: %v", err)
	}
	if err := gc.CreateAnnotatedTag("v1.0.0", sha, "1.0.0", gc.Identity()); err != nil {
		t.Fatalf("CreateAnnotatedTag: %v", err)
	}

	if testutil.GetRefSHA(t, dir, "v1.0.0") != sha {
		t.Error("tag should point at the new commit")
	}
	if msg := testutil.GitOutput(t, dir, "log", "-1", "--format=%s"); msg != "1.0.0" {
		t.Errorf("commit message = %q, want 1.0.0", msg)
	}
	if clean, _ := gc.IsClean(); !clean {
		t.Error("working tree should be clean after commit")
	}

	err = gc.CreateAnnotatedTag("v1.0.0", sha, "1.0.0", gc.Identity())
	if !errors.Is(err, ErrTagExists) {
		t.Errorf("second tag error = %v, want ErrTagExists", err)
	}

	if err := gc.DeleteTag("v1.0.0"); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if gc.TagExists("v1.0.0") {
		t.Error("tag should be gone after DeleteTag")
	}
}

func TestListBranches(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.CreateBranch(t, dir, "release/1.0.0")
	testutil.CreateBranch(t, dir, "feature/login")
	testutil.SwitchBranch(t, dir, "main")

	branches, err := repoContext(t, dir).ListBranches("release/*")
	if err != nil {
		t.Fatalf("ListBranches: %v", err)
	}
	if len(branches) != 1 || branches[0] != "release/1.0.0" {
		t.Errorf("branches = %v, want [release/1.0.0]", branches)
	}
}

func TestMergeAnalysis_String(t *testing.T) {
	tests := []struct {
		a    MergeAnalysis
		want string
	}{
		{MergeUpToDate, "up-to-date"},
		{MergeFastForward, "fast-forward"},
		{MergeNormal, "normal"},
		{MergeConflicted, "conflicted"},
		{MergeAnalysis(9), "MergeAnalysis(9)"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
