package version

import "fmt"

// Scheme selects the branch name prefix for a version branch.
type Scheme int

const (
	SchemeRelease Scheme = iota
	SchemeFeature
	SchemeHotfix
)

// String returns the lower-case branch prefix.
func (s Scheme) String() string {
	switch s {
	case SchemeFeature:
		return "feature"
	case SchemeHotfix:
		return "hotfix"
	default:
		return "release"
	}
}

// BranchName returns "{scheme}/{name}".
func (s Scheme) BranchName(name string) string {
	return s.String() + "/" + name
}

// State is the version state of a project for one command invocation.
type State struct {
	Current string // Released version, always set
	Next    string // Staged version ("" when no release is in flight)
	Prev    string // Previously staged version, never persisted
	Scheme  Scheme // Branch naming scheme, never persisted
}

// Staged reports whether a release is in flight.
func (s *State) Staged() bool {
	return s.Next != ""
}

// Bump stages the next version computed from Current.
// Returns ErrAlreadyStaged, leaving the state untouched, when the computed
// version is already staged.
func (s *State) Bump(kind Kind) error {
	current, err := Parse(s.Current)
	if err != nil {
		return err
	}

	bumped, err := current.Bump(kind)
	if err != nil {
		return err
	}
	next := bumped.String()
	if next == s.Next {
		return fmt.Errorf("%w: %s", ErrAlreadyStaged, next)
	}

	s.Prev = s.Next
	s.Next = next
	return nil
}

// Promote makes the staged version current.
func (s *State) Promote() error {
	if s.Next == "" {
		return ErrNotStaged
	}
	s.Current = s.Next
	s.Next = ""
	s.Prev = ""
	return nil
}

// NextBranch returns the branch name for the staged version, or "" if none.
func (s *State) NextBranch() string {
	if s.Next == "" {
		return ""
	}
	return s.Scheme.BranchName(s.Next)
}

// PrevBranch returns the branch name for the previously staged version, or "".
func (s *State) PrevBranch() string {
	if s.Prev == "" {
		return ""
	}
	return s.Scheme.BranchName(s.Prev)
}

// CurrentTag returns the tag name for the current version.
func (s *State) CurrentTag() string {
	return TagName(s.Current)
}
