package release

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/randalmurphal/rellr/changelog"
	"github.com/randalmurphal/rellr/config"
	"github.com/randalmurphal/rellr/forge"
	"github.com/randalmurphal/rellr/git"
	"github.com/randalmurphal/rellr/manifest"
	"github.com/randalmurphal/rellr/notify"
	"github.com/randalmurphal/rellr/version"
)

// Reporter prints user-facing progress. Warnings are state conflicts the
// command recovers from.
type Reporter interface {
	Info(format string, args ...any)
	Warn(err error)
}

type nopReporter struct{}

func (nopReporter) Info(string, ...any) {}
func (nopReporter) Warn(error) {}

// ProviderFunc returns the hosting provider for a remote URL.
type ProviderFunc func(remoteURL, token string) (forge.Provider, error)

// Engine runs rellr commands against the project in Dir.
type Engine struct {
	Dir      string
	Settings *config.Settings
	Logger   *slog.Logger
	Reporter Reporter
	Notifier notify.Notifier
	Runner   git.CommandRunner // Runs git and package manager commands
	Provider ProviderFunc      // Hosting provider for release notes
}

// NewEngine returns an engine for dir. Nil settings mean the built-in
// defaults.
func NewEngine(dir string, settings *config.Settings, logger *slog.Logger) *Engine {
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		Dir:      dir,
		Settings: settings,
		Logger:   logger,
		Reporter: nopReporter{},
		Notifier: notify.NopNotifier{},
		Runner:   git.NewExecRunner(),
		Provider: forge.ProviderFromRemote,
	}
}

// Options configure a release.
type Options struct {
	Repos     []string // Repositories listed in a whole-project changelog
	NoPublish bool     // Skip package publishing
	Push      bool     // Push the main branch and tag to Settings.Remote
}

// Result describes a completed release.
type Result struct {
	Version   string
	Previous  string
	Tag       string
	Merge     MergeOutcome
	Commit    *git.CommitResult
	Changelog string          // Path of the written changelog
	Manifests []string        // Rewritten manifest paths
	Published []manifest.Kind // Package managers that published
	Push      *git.PushResult // Set when the release was pushed
	Notes     *forge.Release  // Set when hosted release notes were created
}

// Init creates rellr.json for project name at ver. An empty ver means
// config.DefaultVersion.
func (e *Engine) Init(name, ver string) (*config.Project, error) {
	if name == "" {
		return nil, errors.New("project name is required")
	}
	p, err := config.CreateProject(e.Dir, name, ver)
	if err != nil {
		return nil, err
	}
	e.reporter().Info("The rellr configuration file was created successfully")
	e.logger().Debug("project initialized", "name", p.Name, "version", p.Current, "dir", e.Dir)
	return p, nil
}

// Next stages the next version, materializes its branch and checks it out.
// Staging the version that is already staged is reported as a warning and
// the branch is still ensured.
func (e *Engine) Next(ctx context.Context, kind version.Kind) (*version.State, error) {
	p, g, err := e.open()
	if err != nil {
		return nil, err
	}

	state := p.State()
	if err := state.Bump(kind); err != nil {
		if !errors.Is(err, version.ErrAlreadyStaged) {
			return nil, err
		}
		e.reporter().Warn(err)
	}

	lc := e.lifecycle(g, p)
	if err := lc.EnsureBranch(state); err != nil {
		return nil, err
	}
	if err := lc.Checkout(state.NextBranch()); err != nil {
		return nil, err
	}

	p.Apply(state)
	if err := p.Save(); err != nil {
		return nil, err
	}

	e.reporter().Info("Next version: %s", state.Next)
	e.notify(ctx, p, stagedEvent(p, state))
	return state, nil
}

// StartTopic creates a feature or hotfix branch named after name from the
// main branch and checks it out.
func (e *Engine) StartTopic(ctx context.Context, scheme version.Scheme, name string) (string, error) {
	if git.Slugify(name) == "" {
		return "", fmt.Errorf("invalid %s name %q", scheme, name)
	}

	g, err := e.gitContext()
	if err != nil {
		return "", err
	}

	mainBranch := config.DefaultMainBranch
	p, err := config.LoadProject(e.Dir)
	switch {
	case err == nil:
		mainBranch = p.MainBranch
	case !errors.Is(err, config.ErrConfigMissing):
		return "", err
	}

	namer := &git.BranchNamer{TypePrefix: scheme.String(), MaxLength: 100}
	branch := namer.ForTopic(name)
	if err := g.CheckoutNewAt(branch, mainBranch); err != nil {
		return "", err
	}

	if scheme == version.SchemeHotfix {
		e.reporter().Info("New hotfix was created successfully")
	} else {
		e.reporter().Info("New feature was created successfully")
	}

	if p != nil {
		event := notify.NewEvent(notify.EventTopicStarted, p.Name, "Started "+branch)
		event.Branch = branch
		e.notify(ctx, p, event)
	}
	return branch, nil
}

// Release merges the staged branch, promotes the staged version, rewrites
// manifests and the changelog, then commits and tags the result. Package
// publishing, pushing and hosted release notes follow the commit.
func (e *Engine) Release(ctx context.Context, opts Options) (*Result, error) {
	p, g, err := e.open()
	if err != nil {
		return nil, err
	}

	state := p.State()
	if !state.Staged() {
		return nil, ErrReleaseNotSet
	}
	if tag := version.TagName(state.Next); g.TagExists(tag) {
		return nil, fmt.Errorf("%w: %s", git.ErrTagExists, tag)
	}

	result, err := e.release(ctx, p, g, state, opts)
	if err != nil {
		event := notify.NewEvent(notify.EventReleaseFailed, p.Name, err.Error())
		event.Severity = notify.SeverityError
		event.Version = state.Next
		e.notify(ctx, p, event)
		return result, err
	}

	e.reporter().Info("Version %s released", result.Version)
	e.notify(ctx, p, releasedEvent(p, result))
	return result, nil
}

func (e *Engine) release(ctx context.Context, p *config.Project, g *git.Context, state *version.State, opts Options) (*Result, error) {
	lc := e.lifecycle(g, p)
	outcome, err := lc.Merge(state)
	if err != nil {
		return nil, err
	}

	result := &Result{Previous: state.Current, Merge: outcome}
	if err := state.Promote(); err != nil {
		return nil, err
	}
	result.Version = state.Current
	result.Tag = state.CurrentTag()

	for _, pm := range p.PackageManagers {
		updated, err := manifest.UpdateVersion(p.Dir(), pm, p.Name, state.Current, e.logger())
		if err != nil {
			return result, err
		}
		result.Manifests = append(result.Manifests, updated...)
	}

	builder := e.builder(p, result.Tag)
	path, err := builder.Build(opts.Repos...)
	if err != nil {
		return result, fmt.Errorf("build changelog: %w", err)
	}
	result.Changelog = path

	p.Apply(state)
	if err := p.Save(); err != nil {
		return result, err
	}

	paths := append([]string{}, result.Manifests...)
	paths = append(paths, e.relative(p, path), config.ProjectFile)
	commit, err := NewWriter(g, e.logger()).Commit(state.Current, paths)
	if err != nil {
		return result, err
	}
	result.Commit = commit

	if !opts.NoPublish {
		for _, pm := range p.PackageManagers {
			if !pm.Publish {
				continue
			}
			if err := manifest.Publish(ctx, e.runner(), p.Dir(), pm); err != nil {
				return result, err
			}
			result.Published = append(result.Published, pm.Kind)
		}
	}

	if opts.Push {
		pushed, err := g.PushRelease(e.Settings.Remote, p.MainBranch, result.Tag)
		if err != nil {
			return result, fmt.Errorf("push release: %w", err)
		}
		result.Push = pushed
	}

	if e.Settings.ReleaseNotes == config.ReleaseNotesAuto {
		notes, err := e.publishNotes(ctx, p, g, builder, result)
		if err != nil {
			e.reporter().Warn(fmt.Errorf("release notes: %w", err))
		}
		result.Notes = notes
	}
	return result, nil
}

func (e *Engine) publishNotes(ctx context.Context, p *config.Project, g *git.Context, builder *changelog.Builder, result *Result) (*forge.Release, error) {
	remoteURL, err := g.GetRemoteURL(e.Settings.Remote)
	if err != nil {
		return nil, err
	}
	provider, err := e.Provider(remoteURL, e.Settings.GitToken)
	if err != nil {
		return nil, err
	}
	body, err := builder.Notes()
	if err != nil {
		return nil, err
	}

	rel, err := provider.CreateRelease(ctx, forge.NewReleaseOptions(p.Name, result.Version, result.Tag, body))
	if err != nil {
		return nil, err
	}
	e.logger().Info("created release notes", "platform", provider.Platform(), "url", rel.URL)
	return rel, nil
}

// Reset removes the release commit and tag of ver and stages ver again on
// a fresh release branch. An empty ver means the current version.
func (e *Engine) Reset(ctx context.Context, ver string) error {
	p, g, err := e.open()
	if err != nil {
		return err
	}
	if ver == "" {
		ver = p.Current
	}
	if err := version.Validate(ver); err != nil {
		return err
	}

	if err := NewWriter(g, e.logger()).Reset(ver); err != nil {
		return err
	}
	restored, err := e.restage(p, g, ver)
	if err != nil {
		return err
	}
	if err := e.lifecycle(g, restored).EnsureBranch(restored.State()); err != nil {
		return err
	}

	e.reporter().Info("Reset version %s", ver)
	event := notify.NewEvent(notify.EventReset, p.Name, "Reset version "+ver)
	event.Version = ver
	event.Tag = version.TagName(ver)
	e.notify(ctx, p, event)
	return nil
}

// restage saves rellr.json with ver as the staged version. The first
// release commit adds rellr.json, so resetting it removes the file; the
// project is then rebuilt from memory with the newest remaining release
// as current.
func (e *Engine) restage(p *config.Project, g *git.Context, ver string) (*config.Project, error) {
	restored, err := config.LoadProject(p.Dir())
	switch {
	case errors.Is(err, config.ErrConfigMissing):
		restored = p
		restored.Current = lastRelease(g)
	case err != nil:
		return nil, err
	}
	restored.Next = ver
	if err := restored.Save(); err != nil {
		return nil, err
	}
	e.logger().Debug("restaged version", "current", restored.Current, "next", ver)
	return restored, nil
}

// lastRelease returns the newest version tag reachable from HEAD, or
// config.DefaultVersion when there is none.
func lastRelease(g *git.Context) string {
	tag, err := g.RunGit("describe", "--tags", "--abbrev=0", "--match", "v[0-9]*")
	if err != nil {
		return config.DefaultVersion
	}
	ver := strings.TrimPrefix(tag, "v")
	if version.Validate(ver) != nil {
		return config.DefaultVersion
	}
	return ver
}

// Changelog rebuilds the changelog without releasing. Commits after the
// last release tag are listed as unreleased.
func (e *Engine) Changelog(ctx context.Context, repos ...string) (string, error) {
	p, err := config.LoadProject(e.Dir)
	if err != nil {
		return "", err
	}

	path, err := e.builder(p, "").Build(repos...)
	if err != nil {
		return "", fmt.Errorf("build changelog: %w", err)
	}

	e.reporter().Info("Changelog written to %s", e.relative(p, path))
	event := notify.NewEvent(notify.EventChangelogBuilt, p.Name, "Changelog rebuilt")
	event.Version = p.Current
	e.notify(ctx, p, event)
	return path, nil
}

func (e *Engine) open() (*config.Project, *git.Context, error) {
	p, err := config.LoadProject(e.Dir)
	if err != nil {
		return nil, nil, err
	}
	g, err := e.gitContext()
	if err != nil {
		return nil, nil, err
	}
	return p, g, nil
}

func (e *Engine) gitContext() (*git.Context, error) {
	return git.NewContext(e.Dir, git.WithRunner(e.runner()))
}

func (e *Engine) lifecycle(g *git.Context, p *config.Project) *Lifecycle {
	lc := NewLifecycle(g, p.MainBranch, e.logger())
	lc.MergeMode = e.Settings.MergeMode
	lc.Reporter = e.reporter()
	return lc
}

func (e *Engine) builder(p *config.Project, tipTag string) *changelog.Builder {
	b := changelog.NewBuilder(p.Dir(), changelog.Options{
		TagPattern:   e.Settings.TagPattern,
		SkipTags:     e.Settings.SkipTags,
		IgnoreTags:   e.Settings.IgnoreTags,
		LimitCommits: e.Settings.LimitCommits,
		TipTag:       tipTag,
	}, e.logger())
	b.Output = p.ChangelogFile()
	return b
}

// relative returns path relative to the project directory when possible.
func (e *Engine) relative(p *config.Project, path string) string {
	rel, err := filepath.Rel(p.Dir(), path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}

func (e *Engine) runner() git.CommandRunner {
	if e.Runner == nil {
		return git.NewExecRunner()
	}
	return e.Runner
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

func (e *Engine) reporter() Reporter {
	if e.Reporter == nil {
		return nopReporter{}
	}
	return e.Reporter
}
