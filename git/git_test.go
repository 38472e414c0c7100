package git

import (
	"errors"
	"testing"
)

func mockContext(runner CommandRunner) *Context {
	return &Context{
		repoPath: "/test/repo",
		workDir:  "/test/repo",
		runner:   runner,
	}
}

func TestNewContext_NotGitRepo(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--git-dir").Return("", errors.New("fatal: not a git repository"))

	_, err := NewContext(t.TempDir(), WithRunner(runner))
	if !errors.Is(err, ErrNotGitRepo) {
		t.Fatalf("NewContext error = %v, want ErrNotGitRepo", err)
	}
}

func TestNewContext_WithMockRunner(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--git-dir").Return(".git", nil)
	runner.OnCommand("git", "status", "--short").Return("M modified.go", nil)

	gc, err := NewContext(t.TempDir(), WithRunner(runner))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	status, err := gc.Status()
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if status != "M modified.go" {
		t.Errorf("Status = %q, want %q", status, "M modified.go")
	}
}

func TestContext_DeleteBranch(t *testing.T) {
	tests := []struct {
		name  string
		force bool
		flag  string
	}{
		{"soft delete", false, "-d"},
		{"force delete", true, "-D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner()
			runner.OnCommand("git", "branch", tt.flag, "release/1.0.0").Return("", nil)

			if err := mockContext(runner).DeleteBranch("release/1.0.0", tt.force); err != nil {
				t.Fatalf("DeleteBranch: %v", err)
			}
			if !runner.WasCalled("git", "branch", tt.flag, "release/1.0.0") {
				t.Errorf("expected git branch %s to be called", tt.flag)
			}
		})
	}
}

func TestContext_CreateBranchAt_Exists(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "branch", "release/1.0.0", "main").
		Return("", errors.New("fatal: a branch named 'release/1.0.0' already exists"))

	err := mockContext(runner).CreateBranchAt("release/1.0.0", "main")
	if !errors.Is(err, ErrBranchExists) {
		t.Fatalf("CreateBranchAt error = %v, want ErrBranchExists", err)
	}
}

func TestContext_RenameBranch(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "branch", "-m", "release/1.2.4", "release/1.3.0").Return("", nil)

	if err := mockContext(runner).RenameBranch("release/1.2.4", "release/1.3.0"); err != nil {
		t.Fatalf("RenameBranch: %v", err)
	}
}

func TestContext_BranchExists(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--verify", "--quiet", "refs/heads/main").Return("abc123", nil)
	runner.OnCommand("git", "rev-parse", "--verify", "--quiet", "refs/heads/missing").
		Return("", &CommandError{ExitCode: 1})

	gc := mockContext(runner)
	if !gc.BranchExists("main") {
		t.Error("BranchExists(main) = false, want true")
	}
	if gc.BranchExists("missing") {
		t.Error("BranchExists(missing) = true, want false")
	}
}

func TestContext_Identity_Fallback(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "config", "--get", "user.name").Return("", &CommandError{ExitCode: 1})
	runner.OnCommand("git", "config", "--get", "user.email").Return("dev@example.com", nil)

	id := mockContext(runner).Identity()
	if id.Name != DefaultIdentity.Name {
		t.Errorf("Name = %q, want %q", id.Name, DefaultIdentity.Name)
	}
	if id.Email != "dev@example.com" {
		t.Errorf("Email = %q, want %q", id.Email, "dev@example.com")
	}
}

func TestContext_CommitTree(t *testing.T) {
	runner := NewSequentialMockRunner()
	runner.AddOutput("c0ffee", nil)

	sha, err := mockContext(runner).CommitTree("tree1", "parent1", "1.2.4", Identity{Name: "Dev", Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("CommitTree: %v", err)
	}
	if sha != "c0ffee" {
		t.Errorf("sha = %q, want %q", sha, "c0ffee")
	}

	want := []string{
		"-c", "user.name=Dev", "-c", "user.email=dev@example.com",
		"commit-tree", "tree1", "-p", "parent1", "-m", "1.2.4",
	}
	if !argsMatch(runner.Args(0), want) {
		t.Errorf("args = %v, want %v", runner.Args(0), want)
	}
}

func TestContext_CreateAnnotatedTag_Exists(t *testing.T) {
	runner := NewMockRunner()
	runner.OnCommand("git", "rev-parse", "--verify", "--quiet", "refs/tags/v1.0.0").Return("abc", nil)

	err := mockContext(runner).CreateAnnotatedTag("v1.0.0", "HEAD", "1.0.0", DefaultIdentity)
	if !errors.Is(err, ErrTagExists) {
		t.Fatalf("CreateAnnotatedTag error = %v, want ErrTagExists", err)
	}
	if runner.WasCalled("git", "-c") {
		t.Error("tag command should not run when the tag exists")
	}
}

func TestContext_IsAncestor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    bool
		wantErr bool
	}{
		{"ancestor", nil, true, false},
		{"not ancestor", &CommandError{ExitCode: 1}, false, false},
		{"bad revision", &CommandError{ExitCode: 128, Output: "fatal: Not a valid object name"}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner()
			runner.OnCommand("git", "merge-base", "--is-ancestor", "a", "b").Return("", tt.err)

			got, err := mockContext(runner).IsAncestor("a", "b")
			if (err != nil) != tt.wantErr {
				t.Fatalf("IsAncestor error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("IsAncestor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestError_Format(t *testing.T) {
	err := &Error{Op: "push", Err: errors.New("exit status 1")}
	if got := err.Error(); got != "push: exit status 1" {
		t.Errorf("Error() = %q", got)
	}
	err.Output = "rejected"
	if got := err.Error(); got != "push: rejected" {
		t.Errorf("Error() = %q", got)
	}
}
