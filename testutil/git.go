package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// DefaultBranch is the branch every test repository starts on.
const DefaultBranch = "main"

// baseTime anchors commit dates so commits created by CommitFileAt sort
// deterministically regardless of wall-clock resolution.
var baseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// SetupTestRepo creates a temporary git repository on the main branch with a
// single initial commit. The repository is removed when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	mustGit(t, dir, "init", "-b", DefaultBranch)
	mustGit(t, dir, "config", "user.email", "test@test.com")
	mustGit(t, dir, "config", "user.name", "Test User")
	mustGit(t, dir, "config", "commit.gpgsign", "false")
	mustGit(t, dir, "config", "tag.gpgsign", "false")

	WriteFile(t, dir, "README.md", "# Test Repository\n")
	mustGit(t, dir, "add", ".")
	mustGitAt(t, dir, baseTime, "commit", "-m", "Initial commit")

	return dir
}

// SetupTestRepoWithFiles creates a test repo with the given files committed
// on top of the initial commit.
func SetupTestRepoWithFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := SetupTestRepo(t)
	for path, content := range files {
		WriteFile(t, dir, path, content)
	}
	mustGit(t, dir, "add", ".")
	mustGitAt(t, dir, baseTime.Add(time.Minute), "commit", "-m", "Add test files")

	return dir
}

// SetupBareRepo creates an empty bare repository to push to.
func SetupBareRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	mustGit(t, dir, "init", "--bare", "-b", DefaultBranch)
	return dir
}

// CreateBranch creates a new branch and checks it out.
func CreateBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", "-b", branch)
}

// SwitchBranch switches to an existing branch.
func SwitchBranch(t *testing.T, repoDir, branch string) {
	t.Helper()
	mustGit(t, repoDir, "checkout", branch)
}

// CommitFile creates or updates a file and commits it.
func CommitFile(t *testing.T, repoDir, path, content, message string) string {
	t.Helper()

	WriteFile(t, repoDir, path, content)
	mustGit(t, repoDir, "add", path)
	mustGit(t, repoDir, "commit", "-m", message)

	return GetHeadSHA(t, repoDir)
}

// CommitFileAt is CommitFile with author and committer dates fixed to the
// initial commit time plus offset.
func CommitFileAt(t *testing.T, repoDir string, offset time.Duration, path, content, message string) string {
	t.Helper()

	WriteFile(t, repoDir, path, content)
	mustGit(t, repoDir, "add", path)
	mustGitAt(t, repoDir, baseTime.Add(offset), "commit", "-m", message)

	return GetHeadSHA(t, repoDir)
}

// Tag creates a lightweight tag at HEAD.
func Tag(t *testing.T, repoDir, tag string) {
	t.Helper()
	mustGit(t, repoDir, "tag", tag)
}

// AnnotatedTag creates an annotated tag at HEAD.
func AnnotatedTag(t *testing.T, repoDir, tag, message string) {
	t.Helper()
	mustGit(t, repoDir, "tag", "-a", tag, "-m", message)
}

// Tags returns all tag names in the repository.
func Tags(t *testing.T, repoDir string) []string {
	t.Helper()
	out := GitOutput(t, repoDir, "tag", "--list")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

// BranchExists reports whether a local branch exists.
func BranchExists(t *testing.T, repoDir, branch string) bool {
	t.Helper()
	return runGit(t, repoDir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// GetCurrentBranch returns the current branch name.
func GetCurrentBranch(t *testing.T, repoDir string) string {
	t.Helper()
	return GitOutput(t, repoDir, "branch", "--show-current")
}

// GetHeadSHA returns the current HEAD SHA.
func GetHeadSHA(t *testing.T, repoDir string) string {
	t.Helper()
	return GitOutput(t, repoDir, "rev-parse", "HEAD")
}

// GetRefSHA returns the commit SHA a ref resolves to.
func GetRefSHA(t *testing.T, repoDir, ref string) string {
	t.Helper()
	return GitOutput(t, repoDir, "rev-parse", ref+"^{commit}")
}

// AddRemote adds a remote to the repository.
func AddRemote(t *testing.T, repoDir, name, url string) {
	t.Helper()
	mustGit(t, repoDir, "remote", "add", name, url)
}

// GitOutput runs git and returns trimmed stdout, failing the test on error.
func GitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = gitEnv(time.Time{})

	output, err := cmd.Output()
	if err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
	return strings.TrimSpace(string(output))
}

// WriteFile writes content to path under dir, creating parent directories.
func WriteFile(t *testing.T, dir, path, content string) {
	t.Helper()

	fullPath := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// ReadFile returns the content of path under dir.
func ReadFile(t *testing.T, dir, path string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, path))
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}
	return string(data)
}

func mustGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	if err := runGit(t, dir, args...); err != nil {
		t.Fatalf("git %v failed: %v", args, err)
	}
}

func mustGitAt(t *testing.T, dir string, when time.Time, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = gitEnv(when)

	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
}

// runGit runs a git command in the specified directory.
func runGit(t *testing.T, dir string, args ...string) error {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = gitEnv(time.Time{})

	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("git %v output: %s", args, output)
		return err
	}
	return nil
}

func gitEnv(when time.Time) []string {
	env := append(os.Environ(),
		"GIT_AUTHOR_NAME=Test User",
		"GIT_AUTHOR_EMAIL=test@test.com",
		"GIT_COMMITTER_NAME=Test User",
		"GIT_COMMITTER_EMAIL=test@test.com",
		"GIT_CONFIG_NOSYSTEM=1",
	)
	if !when.IsZero() {
		stamp := when.Format(time.RFC3339)
		env = append(env, "GIT_AUTHOR_DATE="+stamp, "GIT_COMMITTER_DATE="+stamp)
	}
	return env
}
