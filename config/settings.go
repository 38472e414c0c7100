package config

import (
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/randalmurphal/rellr/changelog"
)

// Settings keys.
const (
	KeyTagPattern    = "tag_pattern"
	KeySkipTags      = "skip_tags"
	KeyIgnoreTags    = "ignore_tags"
	KeyLimitCommits  = "limit_commits"
	KeyMergeMode     = "merge_mode"
	KeyNotifyWebhook = "notify_webhook"
	KeyNotifySecret  = "notify_secret"
	KeySlackWebhook  = "slack_webhook"
	KeyReleaseNotes  = "release_notes"
	KeyGitToken      = "git_token"
	KeyRemote        = "remote"
	KeyNoColor       = "no_color"
	KeyLogLevel      = "log_level"
)

// DefaultTagPattern matches release tags.
const DefaultTagPattern = changelog.DefaultTagPattern

// EnvPrefix is the environment variable prefix for settings.
const EnvPrefix = "RELLR_"

// LocalSettingsName is the settings file in the git root.
const LocalSettingsName = ".rellr.yaml"

// GlobalSettingsName is the settings file under ~/.config/rellr.
const GlobalSettingsName = "config.yaml"

// MergeMode selects how a diverged release branch is merged.
type MergeMode string

const (
	// MergeAuto performs conflict-free normal merges with a merge commit.
	MergeAuto MergeMode = "auto"
	// MergeManual stops and asks the user to merge by hand.
	MergeManual MergeMode = "manual"
)

// ReleaseNotesMode selects whether hosted release notes are published.
type ReleaseNotesMode string

const (
	ReleaseNotesNone ReleaseNotesMode = "none"
	ReleaseNotesAuto ReleaseNotesMode = "auto"
)

// ErrInvalidSetting indicates a settings value failed validation.
var ErrInvalidSetting = errors.New("invalid setting")

// Defaults are the built-in settings values.
var Defaults = map[string]string{
	KeyTagPattern:   DefaultTagPattern,
	KeySkipTags:     "",
	KeyIgnoreTags:   "",
	KeyLimitCommits: "0",
	KeyMergeMode:    string(MergeAuto),
	KeyReleaseNotes: string(ReleaseNotesNone),
	KeyRemote:       "origin",
	KeyNoColor:      "false",
	KeyLogLevel:     "info",
}

// GlobalKeys may be set in ~/.config/rellr/config.yaml.
var GlobalKeys = []string{
	KeyMergeMode, KeyNotifyWebhook, KeyNotifySecret, KeySlackWebhook, KeyReleaseNotes,
	KeyGitToken, KeyRemote, KeyNoColor, KeyLogLevel,
}

// LocalKeys may be set in .rellr.yaml. Tokens and secrets stay out of the repository.
var LocalKeys = []string{
	KeyTagPattern, KeySkipTags, KeyIgnoreTags, KeyLimitCommits, KeyMergeMode,
	KeyNotifyWebhook, KeySlackWebhook, KeyReleaseNotes, KeyRemote, KeyLogLevel,
}

// Settings are the typed tool settings for one invocation.
type Settings struct {
	TagPattern    string
	SkipTags      string
	IgnoreTags    string
	LimitCommits  int
	MergeMode     MergeMode
	NotifyWebhook string
	NotifySecret  string
	SlackWebhook  string
	ReleaseNotes  ReleaseNotesMode
	GitToken      string
	Remote        string
	NoColor       bool
	LogLevel      slog.Level
}

// DefaultSettings returns settings built from Defaults alone.
func DefaultSettings() *Settings {
	s, _ := ParseSettings(&Resolved{values: copyMap(Defaults)})
	return s
}

// NewSettingsResolver returns a resolver for rellr settings rooted at dir.
func NewSettingsResolver(dir string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	global, err := DefaultSaveConfig().globalPath()
	if err != nil {
		logger.Debug("no global settings file", "error", err)
	}
	return NewResolver(ResolverConfig{
		EnvPrefix:       EnvPrefix,
		GlobalPath:      global,
		LocalConfigName: LocalSettingsName,
		StartDir:        dir,
		Defaults:        Defaults,
		ValidGlobalKeys: GlobalKeys,
		ValidLocalKeys:  LocalKeys,
		Logger:          logger,
	})
}

// ParseSettings validates resolved values and converts them to Settings.
func ParseSettings(r *Resolved) (*Settings, error) {
	s := &Settings{
		TagPattern:    r.Get(KeyTagPattern),
		SkipTags:      r.Get(KeySkipTags),
		IgnoreTags:    r.Get(KeyIgnoreTags),
		NotifyWebhook: r.Get(KeyNotifyWebhook),
		NotifySecret:  r.Get(KeyNotifySecret),
		SlackWebhook:  r.Get(KeySlackWebhook),
		GitToken:      r.Get(KeyGitToken),
		Remote:        r.Get(KeyRemote),
	}
	if s.TagPattern == "" {
		s.TagPattern = DefaultTagPattern
	}
	if s.Remote == "" {
		s.Remote = "origin"
	}

	for _, key := range []string{KeyTagPattern, KeySkipTags, KeyIgnoreTags} {
		if pattern := r.Get(key); pattern != "" {
			if _, err := regexp.Compile(pattern); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidSetting, key, err)
			}
		}
	}

	if limit := r.Get(KeyLimitCommits); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer, got %q", ErrInvalidSetting, KeyLimitCommits, limit)
		}
		s.LimitCommits = n
	}

	switch mode := MergeMode(strings.ToLower(r.Get(KeyMergeMode))); mode {
	case "", MergeAuto:
		s.MergeMode = MergeAuto
	case MergeManual:
		s.MergeMode = MergeManual
	default:
		return nil, fmt.Errorf("%w: %s must be auto or manual, got %q", ErrInvalidSetting, KeyMergeMode, mode)
	}

	switch notes := ReleaseNotesMode(strings.ToLower(r.Get(KeyReleaseNotes))); notes {
	case "", ReleaseNotesNone:
		s.ReleaseNotes = ReleaseNotesNone
	case ReleaseNotesAuto:
		s.ReleaseNotes = ReleaseNotesAuto
	default:
		return nil, fmt.Errorf("%w: %s must be none or auto, got %q", ErrInvalidSetting, KeyReleaseNotes, notes)
	}

	if noColor := r.Get(KeyNoColor); noColor != "" {
		b, err := strconv.ParseBool(noColor)
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a boolean, got %q", ErrInvalidSetting, KeyNoColor, noColor)
		}
		s.NoColor = b
	}

	level, err := ParseLogLevel(r.Get(KeyLogLevel))
	if err != nil {
		return nil, err
	}
	s.LogLevel = level

	return s, nil
}

// ParseLogLevel parses debug, info, warn or error. Empty means info.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %s must be debug, info, warn or error, got %q", ErrInvalidSetting, KeyLogLevel, s)
	}
}

func copyMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
