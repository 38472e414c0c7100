package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/randalmurphal/rellr/forge"
	"github.com/randalmurphal/rellr/release"
	"github.com/randalmurphal/rellr/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, dir string, args ...string) runResult {
	t.Helper()
	return runWith(t, nil, dir, args...)
}

func runWith(t *testing.T, configure func(*release.Engine), dir string, args ...string) runResult {
	t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(&out, &errOut)
	a.configure = configure

	full := append([]string{"--dir", dir, "--no-color"}, args...)
	code := execute(full, a)
	return runResult{code: code, stdout: out.String(), stderr: errOut.String()}
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestCLI_ReleaseCycle(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	res := run(t, dir, "init", "demo", "-v", "1.2.3")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "The rellr configuration file was created successfully\n", res.stdout)

	res = run(t, dir, "init", "demo")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, "The rellr configuration file has already been created\n", res.stdout)

	res = run(t, dir, "next")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "Next version: 1.2.4\n", res.stdout)
	assert.Equal(t, "release/1.2.4", testutil.GetCurrentBranch(t, dir))

	res = run(t, dir, "next", "patch")
	require.Equal(t, 0, res.code)
	assert.Equal(t, "The release already exists\nNext version: 1.2.4\n", res.stdout)

	testutil.CommitFile(t, dir, "fix.txt", "fix", "fix: repair")

	res = run(t, dir, "release", "--no-publish")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "Version 1.2.4 released\n", res.stdout)
	assert.Equal(t, []string{"v1.2.4"}, testutil.Tags(t, dir))
	assert.Equal(t, testutil.DefaultBranch, testutil.GetCurrentBranch(t, dir))

	res = run(t, dir, "release", "--no-publish")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "The release version has not yet been set")
	assert.Contains(t, res.stdout, "rellr next")

	res = run(t, dir, "reset", "v1.2.4")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "Reset version 1.2.4\n", res.stdout)
	assert.Empty(t, testutil.Tags(t, dir))
}

func TestCLI_ReleaseDirArgument(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	require.Equal(t, 0, run(t, dir, "init", "demo", "-v", "0.1.0").code)
	require.Equal(t, 0, run(t, dir, "next", "minor").code)

	var out, errOut bytes.Buffer
	code := execute([]string{"--no-color", "release", "--no-publish", dir}, newApp(&out, &errOut))
	require.Equal(t, 0, code, out.String()+errOut.String())
	assert.Equal(t, []string{"v0.2.0"}, testutil.Tags(t, dir))
}

func TestCLI_MissingConfig(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	res := run(t, dir, "next")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stdout, "The rellr configuration file is missing in the selected directory")
	assert.Contains(t, res.stdout, "rellr init")
}

func TestCLI_InvalidArguments(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown bump kind", []string{"next", "huge"}},
		{"init without name", []string{"init"}},
		{"unknown command", []string{"deploy"}},
		{"invalid version", []string{"init", "demo", "-v", "1.2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := run(t, dir, tt.args...)
			assert.Equal(t, 1, res.code)
			assert.NotEmpty(t, res.stdout)
		})
	}
}

func TestCLI_Topics(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	res := run(t, dir, "feat", "add", "login")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "New feature was created successfully\n", res.stdout)
	assert.Equal(t, "feature/add-login", testutil.GetCurrentBranch(t, dir))

	res = run(t, dir, "fix", "crash")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "New hotfix was created successfully\n", res.stdout)
	assert.Equal(t, "hotfix/crash", testutil.GetCurrentBranch(t, dir))
}

func TestCLI_Changelog(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)
	require.Equal(t, 0, run(t, dir, "init", "demo").code)
	testutil.CommitFile(t, dir, "a.txt", "a", "feat: first feature")

	res := run(t, dir, "changelog")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "Changelog written to CHANGELOG.md\n", res.stdout)

	data, err := os.ReadFile(filepath.Join(dir, "CHANGELOG.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "- First feature")
}

func TestCLI_ReleaseNotes(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)
	testutil.AddRemote(t, dir, "origin", "https://github.com/acme/demo.git")
	testutil.WriteFile(t, dir, ".rellr.yaml", "release_notes: auto\n")

	provider := &forge.MockProvider{}
	configure := func(e *release.Engine) {
		e.Provider = func(string, string) (forge.Provider, error) { return provider, nil }
	}

	require.Equal(t, 0, runWith(t, configure, dir, "init", "demo", "-v", "2.0.0").code)
	require.Equal(t, 0, runWith(t, configure, dir, "next", "major").code)

	res := runWith(t, configure, dir, "release", "--no-publish")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	require.Len(t, provider.Created, 1)
	assert.Equal(t, "v3.0.0", provider.Created[0].Tag)
}

func TestCLI_Config(t *testing.T) {
	isolateHome(t)
	dir := testutil.SetupTestRepo(t)

	res := run(t, dir, "config", "get", "merge_mode")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Equal(t, "auto\n", res.stdout)

	res = run(t, dir, "config", "set", "merge_mode", "manual")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)
	assert.Contains(t, testutil.ReadFile(t, dir, ".rellr.yaml"), "merge_mode: manual")

	res = run(t, dir, "config", "get", "merge_mode")
	assert.Equal(t, "manual\n", res.stdout)

	res = run(t, dir, "config", "set", "--global", "git_token", "secret")
	require.Equal(t, 0, res.code, res.stdout+res.stderr)

	res = run(t, dir, "config", "list")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "(local)")
	assert.Contains(t, res.stdout, "********")
	assert.NotContains(t, res.stdout, "secret")

	res = run(t, dir, "config", "unset", "git_token")
	require.Equal(t, 0, res.code)
	res = run(t, dir, "config", "get", "git_token")
	assert.Equal(t, "\n", res.stdout)

	res = run(t, dir, "config", "get", "nope")
	assert.Equal(t, 1, res.code)

	res = run(t, dir, "config", "set", "git_token", "local-secret")
	assert.Equal(t, 1, res.code)
	assert.True(t, strings.Contains(res.stdout, "unknown local config key"))
}

func TestExitCode(t *testing.T) {
	var buf bytes.Buffer
	a := newApp(&buf, &buf)
	a.noColor = true
	require.NoError(t, a.setup())

	assert.Equal(t, 0, exitCode(nil, a.printer))
	assert.Empty(t, buf.String())
}
