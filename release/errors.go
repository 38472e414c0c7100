package release

import "errors"

// Release errors.
var (
	// ErrReleaseNotSet indicates an operation needs a staged version.
	ErrReleaseNotSet = errors.New("the release version has not yet been set")

	// ErrManualMergeRequired indicates the release branch diverged from the
	// main branch and merge_mode is manual.
	ErrManualMergeRequired = errors.New("release branch diverged from main, merge it manually")

	// ErrReleaseNotFound indicates the release tag to reset does not exist.
	ErrReleaseNotFound = errors.New("release not found")

	// ErrTagNotAtHead indicates a reset was asked for a release that is not
	// the last commit.
	ErrTagNotAtHead = errors.New("release tag does not point at HEAD")
)
