package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/randalmurphal/rellr/fileutil"
	"gopkg.in/yaml.v3"
)

// SaveConfig writes individual settings to the global or local file.
type SaveConfig struct {
	// GlobalConfigDir is the directory under ~/.config/ for global settings.
	GlobalConfigDir string

	// LocalConfigName is the filename for local settings in the git root.
	LocalConfigName string

	// ValidGlobalKeys lists keys that can be set in global settings.
	ValidGlobalKeys []string

	// ValidLocalKeys lists keys that can be set in local settings.
	ValidLocalKeys []string
}

// DefaultSaveConfig returns the SaveConfig for rellr settings.
func DefaultSaveConfig() SaveConfig {
	return SaveConfig{
		GlobalConfigDir: "rellr",
		LocalConfigName: LocalSettingsName,
		ValidGlobalKeys: GlobalKeys,
		ValidLocalKeys:  LocalKeys,
	}
}

func (c SaveConfig) globalPath() (string, error) {
	if c.GlobalConfigDir == "" {
		return "", errors.New("global config directory not configured")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", c.GlobalConfigDir, GlobalSettingsName), nil
}

// SaveGlobal saves a key-value pair to the global settings file.
func (c SaveConfig) SaveGlobal(key, value string) error {
	if len(c.ValidGlobalKeys) > 0 && !slices.Contains(c.ValidGlobalKeys, key) {
		return fmt.Errorf("unknown global config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidGlobalKeys, ", "))
	}

	configPath, err := c.globalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o700); err != nil {
		return err
	}

	return updateFile(configPath, 0o600, func(existing map[string]interface{}) {
		existing[key] = parseValue(value)
	})
}

// SaveLocal saves a key-value pair to the local settings file in gitRoot.
func (c SaveConfig) SaveLocal(gitRoot, key, value string) error {
	if gitRoot == "" {
		return errors.New("git root not found")
	}
	if c.LocalConfigName == "" {
		return errors.New("local config name not configured")
	}
	if len(c.ValidLocalKeys) > 0 && !slices.Contains(c.ValidLocalKeys, key) {
		return fmt.Errorf("unknown local config key: %s\n\nValid keys: %s",
			key, strings.Join(c.ValidLocalKeys, ", "))
	}

	// Local settings are committed with the project and must stay readable.
	return updateFile(filepath.Join(gitRoot, c.LocalConfigName), 0o644, func(existing map[string]interface{}) {
		existing[key] = parseValue(value)
	})
}

// UnsetGlobal removes a key from the global settings file.
func (c SaveConfig) UnsetGlobal(key string) error {
	configPath, err := c.globalPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(configPath); err != nil {
		return nil // Nothing to delete
	}
	return updateFile(configPath, 0o600, func(existing map[string]interface{}) {
		delete(existing, key)
	})
}

func updateFile(path string, perm os.FileMode, mutate func(map[string]interface{})) error {
	var existing map[string]interface{}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &existing); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if existing == nil {
		existing = make(map[string]interface{})
	}

	mutate(existing)

	data, err := yaml.Marshal(existing)
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, data, perm)
}

// parseValue converts string values to YAML types.
func parseValue(value string) interface{} {
	switch strings.ToLower(value) {
	case "true":
		return true
	case "false":
		return false
	default:
		return value
	}
}
