package version

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Version errors.
var (
	// ErrInvalidVersion indicates a version string is not three dot-separated
	// non-negative integers.
	ErrInvalidVersion = errors.New("invalid version")

	// ErrAlreadyStaged indicates the bumped version equals the staged one.
	ErrAlreadyStaged = errors.New("the release already exists")

	// ErrNotStaged indicates no release version has been staged.
	ErrNotStaged = errors.New("the release version has not yet been set")
)

// Kind selects which version component a bump increments.
type Kind int

const (
	Patch Kind = iota
	Minor
	Major
)

// String returns the lower-case name of the bump kind.
func (k Kind) String() string {
	switch k {
	case Major:
		return "major"
	case Minor:
		return "minor"
	default:
		return "patch"
	}
}

// index returns the component position the kind increments.
func (k Kind) index() int {
	switch k {
	case Major:
		return 0
	case Minor:
		return 1
	default:
		return 2
	}
}

// ParseKind parses "patch", "minor" or "major". Empty means patch.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "patch":
		return Patch, nil
	case "minor":
		return Minor, nil
	case "major":
		return Major, nil
	default:
		return Patch, fmt.Errorf("unknown bump kind %q (want patch, minor or major)", s)
	}
}

// Version is a parsed dotted numeric version.
type Version [3]uint64

// Parse parses a version of the form "x.y.z".
func Parse(s string) (Version, error) {
	var v Version
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != len(v) {
		return v, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return v, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
		}
		v[i] = n
	}
	return v, nil
}

// Validate reports whether s parses as a version.
func Validate(s string) error {
	_, err := Parse(s)
	return err
}

// Bump returns the version with the selected component incremented and
// every component to its right reset to zero. A component already at
// math.MaxUint64 cannot be incremented.
func (v Version) Bump(kind Kind) (Version, error) {
	i := kind.index()
	if v[i] == math.MaxUint64 {
		return v, fmt.Errorf("%w: %s %s overflows", ErrInvalidVersion, v, kind)
	}
	v[i]++
	for j := i + 1; j < len(v); j++ {
		v[j] = 0
	}
	return v, nil
}

// String formats the version as "x.y.z".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// TagName returns the git tag name for a version.
func TagName(version string) string {
	return "v" + version
}
