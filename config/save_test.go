package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func readYAML(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var saved map[string]interface{}
	if err := yaml.Unmarshal(data, &saved); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return saved
}

func TestSaveConfig_SaveGlobal(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	cfg := DefaultSaveConfig()
	configPath := filepath.Join(tmpHome, ".config", "rellr", "config.yaml")

	t.Run("creates config file", func(t *testing.T) {
		if err := cfg.SaveGlobal(KeyRemote, "upstream"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		if saved := readYAML(t, configPath); saved[KeyRemote] != "upstream" {
			t.Errorf("remote = %v, want upstream", saved[KeyRemote])
		}
	})

	t.Run("updates existing config", func(t *testing.T) {
		if err := cfg.SaveGlobal(KeyNoColor, "true"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		saved := readYAML(t, configPath)
		if saved[KeyRemote] != "upstream" {
			t.Errorf("remote = %v, want upstream", saved[KeyRemote])
		}
		if saved[KeyNoColor] != true {
			t.Errorf("no_color = %v, want true", saved[KeyNoColor])
		}
	})

	t.Run("rejects local-only key", func(t *testing.T) {
		err := cfg.SaveGlobal(KeyTagPattern, "^v")
		if err == nil || !strings.Contains(err.Error(), "unknown global config key") {
			t.Errorf("error = %v, want unknown global config key", err)
		}
	})

	t.Run("unset removes key", func(t *testing.T) {
		if err := cfg.UnsetGlobal(KeyRemote); err != nil {
			t.Fatalf("UnsetGlobal() error = %v", err)
		}
		saved := readYAML(t, configPath)
		if _, ok := saved[KeyRemote]; ok {
			t.Error("remote should be removed")
		}
		if saved[KeyNoColor] != true {
			t.Error("other keys should survive")
		}
	})
}

func TestSaveConfig_UnsetGlobal_NoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	if err := DefaultSaveConfig().UnsetGlobal(KeyRemote); err != nil {
		t.Errorf("UnsetGlobal() without file error = %v", err)
	}
}

func TestSaveConfig_SaveLocal(t *testing.T) {
	gitRoot := t.TempDir()
	cfg := DefaultSaveConfig()

	if err := cfg.SaveLocal(gitRoot, KeyTagPattern, "^release-"); err != nil {
		t.Fatalf("SaveLocal() error = %v", err)
	}

	path := filepath.Join(gitRoot, LocalSettingsName)
	if saved := readYAML(t, path); saved[KeyTagPattern] != "^release-" {
		t.Errorf("tag_pattern = %v", saved[KeyTagPattern])
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if info.Mode().Perm() != 0o644 {
		t.Errorf("perm = %o, want 644", info.Mode().Perm())
	}

	if err := cfg.SaveLocal(gitRoot, KeyGitToken, "secret"); err == nil {
		t.Error("git_token must not be accepted in local settings")
	}
	if err := cfg.SaveLocal("", KeyRemote, "origin"); err == nil {
		t.Error("expected error without git root")
	}
}

func TestSaveConfig_MalformedYAML(t *testing.T) {
	gitRoot := t.TempDir()
	path := filepath.Join(gitRoot, LocalSettingsName)
	writeYAML(t, path, "remote: [broken\n")

	if err := DefaultSaveConfig().SaveLocal(gitRoot, KeyRemote, "origin"); err == nil {
		t.Fatal("expected parse error instead of overwriting a malformed file")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "remote: [broken\n" {
		t.Errorf("malformed file was modified: %q", data)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want interface{}
	}{
		{"true", true},
		{"FALSE", false},
		{"origin", "origin"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
