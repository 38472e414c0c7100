package changelog

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/randalmurphal/rellr/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoGitSource_Commits(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	b := testutil.CommitFileAt(t, dir, time.Hour, "a.txt", "a", "feat: add a")
	c := testutil.CommitFileAt(t, dir, 2*time.Hour, "b.txt", "b", "fix: repair b")

	src, err := OpenGoGit(dir)
	require.NoError(t, err)

	commits, err := src.Commits()
	require.NoError(t, err)
	require.Len(t, commits, 3)

	assert.Equal(t, c, commits[0].ID)
	assert.Equal(t, b, commits[1].ID)
	assert.Equal(t, "Initial commit", commits[2].Summary())
	assert.Equal(t, "Test User", commits[0].Author)
	assert.Greater(t, commits[0].Timestamp, commits[1].Timestamp)
}

func TestGoGitSource_OpenFromSubdirectory(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, err := OpenGoGit(sub)
	assert.NoError(t, err)

	_, err = OpenGoGit(t.TempDir())
	assert.Error(t, err)
}

func TestGoGitSource_Tags(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	first := testutil.GetHeadSHA(t, dir)
	testutil.AnnotatedTag(t, dir, "v1.0.0", "1.0.0")

	second := testutil.CommitFileAt(t, dir, time.Hour, "a.txt", "a", "feat: add a")
	testutil.Tag(t, dir, "v1.1.0")
	testutil.Tag(t, dir, "nightly")

	src, err := OpenGoGit(dir)
	require.NoError(t, err)

	tags, err := src.Tags(regexp.MustCompile(DefaultTagPattern))
	require.NoError(t, err)

	assert.Equal(t, []string{"v1.0.0", "v1.1.0"}, tags.Names())

	name, ok := tags.Get(first)
	assert.True(t, ok, "annotated tag should be peeled to its commit")
	assert.Equal(t, "v1.0.0", name)

	name, ok = tags.Get(second)
	assert.True(t, ok)
	assert.Equal(t, "v1.1.0", name)

	all, err := src.Tags(nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.Len(), "nightly shares a commit with v1.1.0")
}

func TestBuilder_Build(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.Tag(t, dir, "v1.0.0")
	testutil.CommitFileAt(t, dir, time.Hour, "a.txt", "a", "feat(core): add a")
	testutil.CommitFileAt(t, dir, 2*time.Hour, "b.txt", "b", "fix: repair b")

	b := NewBuilder(dir, Options{TipTag: "v1.1.0"}, quietLogger())
	path, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultOutput), path)

	content := testutil.ReadFile(t, dir, DefaultOutput)
	assert.Contains(t, content, "## [1.1.0] - 2024-01-01")
	assert.Contains(t, content, "## [1.0.0] - 2024-01-01")
	assert.Contains(t, content, "- **core:** Add a\n")
	assert.Contains(t, content, "### Bug Fixes\n\n- Repair b\n")
	assert.Less(t, strings.Index(content, "[1.1.0]"), strings.Index(content, "[1.0.0]"))
}

func TestBuilder_Build_CustomOutput(t *testing.T) {
	dir := testutil.SetupTestRepo(t)

	b := NewBuilder(dir, Options{TipTag: "v0.1.0"}, quietLogger())
	b.Output = "docs/HISTORY.md"
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o755))

	path, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs", "HISTORY.md"), path)
	assert.Contains(t, testutil.ReadFile(t, dir, "docs/HISTORY.md"), "## [0.1.0]")
}

func TestBuilder_Build_MultipleRepositories(t *testing.T) {
	root := t.TempDir()

	one := testutil.SetupTestRepo(t)
	testutil.Tag(t, one, "v1.2.0")
	two := testutil.SetupTestRepo(t)
	testutil.Tag(t, two, "v0.3.1")
	testutil.CommitFileAt(t, two, time.Hour, "x.txt", "x", "feat: unreleased work")
	empty := testutil.SetupTestRepo(t)

	b := NewBuilder(root, Options{}, quietLogger())
	path, err := b.Build(one, two, empty)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0\nv0.3.1", string(data))
}

func TestBuilder_Notes(t *testing.T) {
	dir := testutil.SetupTestRepo(t)
	testutil.Tag(t, dir, "v1.0.0")
	testutil.CommitFileAt(t, dir, time.Hour, "a.txt", "a", "feat: add a")

	b := NewBuilder(dir, Options{TipTag: "v1.1.0"}, quietLogger())
	notes, err := b.Notes()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(notes, "## [1.1.0]"), notes)
	assert.Contains(t, notes, "- Add a")
	assert.NotContains(t, notes, "1.0.0")
}

func TestBuilder_StaticSource(t *testing.T) {
	src := &StaticSource{
		History: history("A", "B"),
		TagList: tagSet("A", "v1.0.0", "A2", "release-1"),
	}

	b := NewBuilder(t.TempDir(), Options{TipTag: "v1.0.1"}, quietLogger())
	b.Open = func(string) (Source, error) { return src, nil }

	chain, err := b.Chain(b.Dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"v1.0.1", "v1.0.0"}, versions(chain))
}

func TestBuilder_InvalidPattern(t *testing.T) {
	b := NewBuilder(t.TempDir(), Options{TagPattern: "("}, quietLogger())
	_, err := b.Build()
	assert.Error(t, err)
}
