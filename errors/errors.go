package errors

import "errors"

// Errors from hosted services (forge and webhooks).
var (
	// ErrNotAuthenticated indicates the token is missing or rejected.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrTokenExpired indicates the token has expired or is invalid.
	ErrTokenExpired = errors.New("token expired")

	// ErrPermissionDenied indicates insufficient permissions.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrConnectionFailed indicates the server is unreachable.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNotInGitRepo indicates the command requires a git repository.
	ErrNotInGitRepo = errors.New("not in a git repository")
)
