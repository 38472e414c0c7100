package forge

import "errors"

// Forge errors
var (
	// ErrUnknownProvider indicates the git remote uses an unknown provider.
	ErrUnknownProvider = errors.New("unknown git provider")

	// ErrNoToken indicates no access token was found for the provider.
	ErrNoToken = errors.New("no access token configured")

	// ErrTagRequired indicates release options without a tag.
	ErrTagRequired = errors.New("release tag is required")

	// ErrReleaseExists indicates a release already exists for the tag.
	ErrReleaseExists = errors.New("release already exists for this tag")

	// ErrNotFound indicates the release does not exist.
	ErrNotFound = errors.New("release not found")
)
