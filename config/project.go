package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/randalmurphal/rellr/fileutil"
	"github.com/randalmurphal/rellr/manifest"
	"github.com/randalmurphal/rellr/version"
)

// ProjectFile is the name of the project state file.
const ProjectFile = "rellr.json"

// Project defaults.
const (
	DefaultVersion    = "0.0.0"
	DefaultMainBranch = "main"
	DefaultChangelog  = "CHANGELOG.md"
)

// Project errors.
var (
	// ErrConfigMissing indicates rellr.json does not exist.
	ErrConfigMissing = errors.New("the rellr configuration file is missing in the selected directory")

	// ErrConfigExists indicates rellr.json already exists.
	ErrConfigExists = errors.New("the rellr configuration file has already been created")
)

// Project is the persisted project state in rellr.json.
type Project struct {
	Name            string                    `json:"name"`
	Current         string                    `json:"current"`
	Next            string                    `json:"next,omitempty"`
	MainBranch      string                    `json:"main_branch"`
	Changelog       string                    `json:"changelog,omitempty"`
	PackageManagers []manifest.PackageManager `json:"package_managers,omitempty"`

	dir string
}

// NewProject returns a project with defaults applied. An empty ver means
// DefaultVersion.
func NewProject(name, ver string) (*Project, error) {
	if ver == "" {
		ver = DefaultVersion
	}
	if err := version.Validate(ver); err != nil {
		return nil, err
	}
	return &Project{
		Name:       name,
		Current:    ver,
		MainBranch: DefaultMainBranch,
	}, nil
}

// ProjectPath returns the path of rellr.json in dir.
func ProjectPath(dir string) string {
	return filepath.Join(dir, ProjectFile)
}

// CreateProject writes a new rellr.json in dir.
// Returns ErrConfigExists if one is already present.
func CreateProject(dir, name, ver string) (*Project, error) {
	if _, err := os.Stat(ProjectPath(dir)); err == nil {
		return nil, ErrConfigExists
	}

	p, err := NewProject(name, ver)
	if err != nil {
		return nil, err
	}
	p.dir = dir

	if err := p.Save(); err != nil {
		return nil, err
	}
	return p, nil
}

// LoadProject reads and validates rellr.json in dir.
func LoadProject(dir string) (*Project, error) {
	data, err := os.ReadFile(ProjectPath(dir))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrConfigMissing
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ProjectFile, err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse %s: %w", ProjectFile, err)
	}
	p.dir = dir

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ProjectFile, err)
	}
	if p.MainBranch == "" {
		p.MainBranch = DefaultMainBranch
	}
	return &p, nil
}

// Validate checks the versions held by the project.
func (p *Project) Validate() error {
	if err := version.Validate(p.Current); err != nil {
		return fmt.Errorf("current: %w", err)
	}
	if p.Next == "" {
		return nil
	}
	if err := version.Validate(p.Next); err != nil {
		return fmt.Errorf("next: %w", err)
	}
	if p.Next == p.Current {
		return fmt.Errorf("next: %w: equals current %s", version.ErrInvalidVersion, p.Current)
	}
	return nil
}

// Save writes the project to rellr.json atomically.
func (p *Project) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", ProjectFile, err)
	}
	data = append(data, '\n')

	path := ProjectPath(p.dir)
	if err := fileutil.WriteAtomic(path, data, fileutil.PermOf(path, 0o644)); err != nil {
		return fmt.Errorf("write %s: %w", ProjectFile, err)
	}
	return nil
}

// Dir returns the directory holding rellr.json.
func (p *Project) Dir() string {
	return p.dir
}

// ChangelogFile returns the changelog path relative to the project directory.
func (p *Project) ChangelogFile() string {
	if p.Changelog != "" {
		return p.Changelog
	}
	return DefaultChangelog
}

// State returns the version state held by the project.
func (p *Project) State() *version.State {
	return &version.State{Current: p.Current, Next: p.Next}
}

// Apply copies the persisted fields of s into the project.
func (p *Project) Apply(s *version.State) {
	p.Current = s.Current
	p.Next = s.Next
}

// ManifestPaths returns the manifest paths of every package manager.
func (p *Project) ManifestPaths() []string {
	return manifest.Paths(p.PackageManagers)
}
