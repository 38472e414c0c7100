package config

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ResolverConfig configures the layered settings resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to upper-cased keys for environment lookup,
	// so "merge_mode" maps to RELLR_MERGE_MODE.
	EnvPrefix string

	// GlobalPath is the global settings file. Empty skips the global layer.
	GlobalPath string

	// LocalConfigName is the settings file looked up in the git root.
	LocalConfigName string

	// StartDir is where git root detection begins. Defaults to ".".
	StartDir string

	Defaults map[string]string

	// ValidGlobalKeys and ValidLocalKeys restrict each file. Nil allows
	// every key.
	ValidGlobalKeys []string
	ValidLocalKeys  []string

	// Logger receives warnings about unreadable settings files.
	Logger *slog.Logger
}

// Resolver merges settings from defaults, files, environment and flags.
type Resolver struct {
	config    ResolverConfig
	localPath string
	gitRoot   string
}

// NewResolver creates a resolver and locates the git root from StartDir.
func NewResolver(cfg ResolverConfig) *Resolver {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.StartDir == "" {
		cfg.StartDir = "."
	}

	r := &Resolver{config: cfg, gitRoot: findGitRoot(cfg.StartDir)}
	if r.gitRoot != "" && cfg.LocalConfigName != "" {
		r.localPath = filepath.Join(r.gitRoot, cfg.LocalConfigName)
	}
	return r
}

// Resolved holds the merged settings.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or "" if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// GetWithSource returns both the value and where it came from.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// Keys returns all keys in sorted order.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve merges defaults < global < local < env.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
	r.applyFile(cfg, r.config.GlobalPath, r.config.ValidGlobalKeys, SourceGlobal)
	r.applyFile(cfg, r.localPath, r.config.ValidLocalKeys, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves settings and applies non-empty flag overrides.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()
	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}
	return cfg
}

func (r *Resolver) applyFile(cfg *Resolved, path string, validKeys []string, source Source) {
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		r.config.Logger.Warn("could not parse settings file", "path", path, "source", string(source), "error", err)
		return
	}

	for key, value := range parsed {
		if validKeys != nil && !slices.Contains(validKeys, key) {
			r.config.Logger.Warn("ignoring unknown settings key", "key", key, "path", path)
			continue
		}
		if s := toString(value); s != "" {
			cfg.values[key] = s
			cfg.sources[key] = source
		}
	}
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	if r.config.EnvPrefix != "" {
		keys := slices.Concat(slices.Collect(maps.Keys(r.config.Defaults)), r.config.ValidGlobalKeys, r.config.ValidLocalKeys)
		for _, key := range keys {
			if value := os.Getenv(r.config.EnvPrefix + strings.ToUpper(key)); value != "" {
				cfg.values[key] = value
				cfg.sources[key] = SourceEnv
			}
		}
	}

	// NO_COLOR is honored regardless of prefix.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.values[KeyNoColor] = "true"
		cfg.sources[KeyNoColor] = SourceEnv
	}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global settings file.
func (r *Resolver) GlobalPath() string {
	return r.config.GlobalPath
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool, int, int64, float64:
		return fmt.Sprint(val)
	default:
		return ""
	}
}

// findGitRoot walks up from startDir to the nearest directory containing .git.
func findGitRoot(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
