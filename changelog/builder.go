package changelog

import (
	"bytes"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/rellr/fileutil"
)

// DefaultOutput is the changelog file name.
const DefaultOutput = "CHANGELOG.md"

// OpenFunc opens the history source for a repository directory.
type OpenFunc func(dir string) (Source, error)

// Builder assembles, renders and writes the changelog of a project.
type Builder struct {
	Dir     string  // Project root
	Output  string  // Output path; relative paths are joined to Dir
	Options Options // Partitioning options
	Open    OpenFunc
	Logger  *slog.Logger
}

// NewBuilder returns a builder reading history with go-git.
func NewBuilder(dir string, opts Options, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		Dir:     dir,
		Output:  DefaultOutput,
		Options: opts,
		Open: func(dir string) (Source, error) {
			return OpenGoGit(dir)
		},
		Logger: logger,
	}
}

// OutputPath returns the absolute or Dir-relative path of the changelog.
func (b *Builder) OutputPath() string {
	out := b.Output
	if out == "" {
		out = DefaultOutput
	}
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(b.Dir, out)
}

// Chain assembles the release chain of the repository at dir.
func (b *Builder) Chain(dir string) (*Chain, error) {
	patterns, err := b.Options.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile tag patterns: %w", err)
	}

	src, err := b.Open(dir)
	if err != nil {
		return nil, err
	}
	commits, err := src.Commits()
	if err != nil {
		return nil, err
	}
	tags, err := src.Tags(patterns.Tag)
	if err != nil {
		return nil, err
	}

	return Assemble(commits, tags, b.Options, b.logger())
}

// Build writes the changelog and returns its path. With no repositories or
// one repository it renders full release history. With several it writes
// the newest version of each, one per line.
func (b *Builder) Build(repos ...string) (string, error) {
	if len(repos) == 0 {
		repos = []string{b.Dir}
	}

	var content []byte
	if len(repos) == 1 {
		chain, err := b.Chain(repos[0])
		if err != nil {
			return "", err
		}
		renderer, err := b.renderer()
		if err != nil {
			return "", err
		}
		out, err := renderer.RenderString(chain)
		if err != nil {
			return "", err
		}
		content = []byte(out)
	} else {
		versions, err := b.Versions(repos...)
		if err != nil {
			return "", err
		}
		content = []byte(strings.Join(versions, "\n"))
	}

	path := b.OutputPath()
	if err := fileutil.WriteAtomic(path, content, fileutil.PermOf(path, 0o644)); err != nil {
		return "", fmt.Errorf("write changelog: %w", err)
	}
	b.logger().Debug("wrote changelog", "path", path, "repos", len(repos))
	return path, nil
}

// Versions returns the newest release version of each repository. A
// repository without releases is skipped.
func (b *Builder) Versions(repos ...string) ([]string, error) {
	var versions []string
	for _, dir := range repos {
		chain, err := b.Chain(dir)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dir, err)
		}
		for _, rel := range chain.Walk() {
			if rel.Version != "" {
				versions = append(versions, rel.Version)
				break
			}
		}
	}
	return versions, nil
}

// Notes renders the newest release section of the project, for hosted
// release notes.
func (b *Builder) Notes() (string, error) {
	chain, err := b.Chain(b.Dir)
	if err != nil {
		return "", err
	}
	renderer, err := b.renderer()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := renderer.RenderLatest(&buf, chain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (b *Builder) renderer() (*Renderer, error) {
	patterns, err := b.Options.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile tag patterns: %w", err)
	}
	return NewRenderer(b.Dir, patterns.Skip)
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}
