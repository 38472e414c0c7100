// Package manifest rewrites package manager manifests to a new version and
// runs the package manager's publish step.
//
// The set of package managers is closed: Cargo and Npm. Each is a Kind with a
// fixed list of manifest files; behavior is selected with a switch on Kind.
package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrUnknownKind is returned when a package manager type is not recognized.
var ErrUnknownKind = errors.New("unknown package manager")

// Kind identifies a package manager.
type Kind int

const (
	// Cargo is the Rust package manager.
	Cargo Kind = iota
	// Npm is the Node.js package manager.
	Npm
)

// String returns the config name of the kind.
func (k Kind) String() string {
	switch k {
	case Cargo:
		return "cargo"
	case Npm:
		return "npm"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a config name ("cargo" or "npm").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cargo":
		return Cargo, nil
	case "npm":
		return Npm, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case Cargo, Npm:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(k))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Files returns the manifest files the kind keeps a version in.
func (k Kind) Files() []string {
	switch k {
	case Cargo:
		return []string{"Cargo.toml", "Cargo.lock"}
	case Npm:
		return []string{"package.json"}
	default:
		return nil
	}
}

// PackageManager is one package manager entry of a project.
type PackageManager struct {
	Kind    Kind   `json:"type"`
	Path    string `json:"path,omitempty"`    // Directory of the manifests, relative to the project root
	Publish bool   `json:"publish,omitempty"` // Run the publish step after a release
}

// Paths returns the manifest paths of the package manager relative to the
// project root, with any leading "./" removed.
func (pm PackageManager) Paths() []string {
	files := pm.Kind.Files()
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, joinPath(pm.Path, file))
	}
	return paths
}

// Paths returns the manifest paths of every package manager, deduplicated,
// in declaration order.
func Paths(pms []PackageManager) []string {
	seen := make(map[string]bool)
	var paths []string
	for _, pm := range pms {
		for _, p := range pm.Paths() {
			if seen[p] {
				continue
			}
			seen[p] = true
			paths = append(paths, p)
		}
	}
	return paths
}

func joinPath(dir, file string) string {
	p := strings.ReplaceAll(dir, "\\", "/")
	p = path.Clean(path.Join(p, file))
	for strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(p, "./")
	}
	return strings.TrimPrefix(p, "/")
}
