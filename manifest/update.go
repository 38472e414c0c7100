package manifest

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"

	"github.com/randalmurphal/rellr/fileutil"
	"github.com/randalmurphal/rellr/git"
)

// versionPattern matches a name/version pair in TOML or JSON manifests:
//
//	name = "pkg"            "name": "pkg",
//	version = "1.2.3"       "version": "1.2.3"
//
// Group 1 is everything up to the quoted version.
func versionPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(
		`(?m)("*name("|\s)(:|=)\s"` + regexp.QuoteMeta(name) + `",*\s*("*version("|\s)(:|=)\s))("\d+\.\d+\.\d+")`,
	)
}

// RewriteVersion replaces the version of the named package in content.
// Only the first matching pair is rewritten. It reports whether a pair was
// found.
func RewriteVersion(content []byte, name, version string) ([]byte, bool) {
	loc := versionPattern(name).FindSubmatchIndex(content)
	if loc == nil {
		return content, false
	}
	// loc[2:4] is group 1; loc[1] ends the quoted version.
	out := make([]byte, 0, len(content)+len(version))
	out = append(out, content[:loc[3]]...)
	out = append(out, '"')
	out = append(out, version...)
	out = append(out, '"')
	out = append(out, content[loc[1]:]...)
	return out, true
}

// UpdateVersion rewrites the version of package name in every manifest of pm
// under root. Missing manifests are skipped. It returns the paths, relative
// to root, that were rewritten.
func UpdateVersion(root string, pm PackageManager, name, version string, logger *slog.Logger) ([]string, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var updated []string
	for _, rel := range pm.Paths() {
		full := filepath.Join(root, filepath.FromSlash(rel))
		content, err := os.ReadFile(full)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("manifest not found, skipping", "path", rel, "manager", pm.Kind.String())
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("read %s: %w", rel, err)
		}

		rewritten, ok := RewriteVersion(content, name, version)
		if !ok {
			logger.Warn("no version entry for package", "path", rel, "package", name)
			continue
		}

		if err := fileutil.WriteAtomic(full, rewritten, fileutil.PermOf(full, 0o644)); err != nil {
			return updated, fmt.Errorf("write %s: %w", rel, err)
		}
		logger.Debug("manifest updated", "path", rel, "version", version)
		updated = append(updated, rel)
	}
	return updated, nil
}

// Publish runs the publish command of pm in its directory under root.
// It does nothing when pm.Publish is false.
func Publish(ctx context.Context, runner git.CommandRunner, root string, pm PackageManager) error {
	if !pm.Publish {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	dir := filepath.Join(root, filepath.FromSlash(pm.Path))
	name, args := publishCommand(pm.Kind)
	if name == "" {
		return fmt.Errorf("publish: %w: %s", ErrUnknownKind, pm.Kind)
	}

	if _, err := runner.Run(dir, name, args...); err != nil {
		return fmt.Errorf("%s publish: %w", pm.Kind, err)
	}
	return nil
}

func publishCommand(kind Kind) (string, []string) {
	switch kind {
	case Cargo:
		return "cargo", []string{"publish"}
	case Npm:
		if runtime.GOOS == "windows" {
			return "npm.cmd", []string{"publish"}
		}
		return "npm", []string{"publish"}
	default:
		return "", nil
	}
}
