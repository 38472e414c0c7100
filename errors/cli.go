package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/randalmurphal/rellr/config"
	"github.com/randalmurphal/rellr/git"
	"github.com/randalmurphal/rellr/release"
	"github.com/randalmurphal/rellr/version"
)

// CLIError wraps an error with user-facing context and suggestions.
type CLIError struct {
	// Err is the underlying error
	Err error

	// Message is a user-facing description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ErrorMessenger provides the user-facing text for each error condition.
// Implement it to customize wording.
type ErrorMessenger interface {
	ConfigMissingMessage() (message, suggestion string)
	ConfigExistsMessage() (message, suggestion string)
	ReleaseNotSetMessage() (message, suggestion string)
	AlreadyStagedMessage() (message, suggestion string)
	TagExistsMessage() (message, suggestion string)
	InvalidVersionMessage() (message, suggestion string)
	MergeConflictMessage() (message, suggestion string)
	ManualMergeMessage() (message, suggestion string)
	NotInGitRepoMessage() (message, suggestion string)

	AuthErrorMessage() (message, suggestion string)
	TokenExpiredMessage() (message, suggestion string)
	PermissionDeniedMessage() (message, suggestion string)
	ConnectionErrorMessage(serverURL string) (message, suggestion string)
	TLSErrorMessage(serverURL string) (message, suggestion string)
	TimeoutErrorMessage(serverURL string) (message, suggestion string)
}

// DefaultMessenger provides the default rellr messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) ConfigMissingMessage() (string, string) {
	return "The rellr configuration file is missing in the selected directory",
		"To create a configuration file, run the command: `rellr init <your-project-name> -v <your-project-version>`"
}

func (m DefaultMessenger) ConfigExistsMessage() (string, string) {
	return "The rellr configuration file has already been created", ""
}

func (m DefaultMessenger) ReleaseNotSetMessage() (string, string) {
	return "The release version has not yet been set",
		"Stage a release first: `rellr next [patch|minor|major]`"
}

func (m DefaultMessenger) AlreadyStagedMessage() (string, string) {
	return "The release already exists", ""
}

func (m DefaultMessenger) TagExistsMessage() (string, string) {
	return "The release tag already exists",
		"Undo the previous release with `rellr reset <version>` or stage a new one with `rellr next`"
}

func (m DefaultMessenger) InvalidVersionMessage() (string, string) {
	return "The version is not valid",
		"Versions are three dot-separated non-negative numbers, for example 1.2.3"
}

func (m DefaultMessenger) MergeConflictMessage() (string, string) {
	return "The release branch conflicts with the main branch",
		"Resolve the conflicts manually, commit the merge, then run `rellr release` again"
}

func (m DefaultMessenger) ManualMergeMessage() (string, string) {
	return "The release branch has diverged from the main branch",
		"Merge it manually, or set merge_mode to auto, then run `rellr release` again"
}

func (m DefaultMessenger) NotInGitRepoMessage() (string, string) {
	return "This command must be run from within a git repository.",
		"Run it from a git repository or pass --dir."
}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "The release host rejected the request.",
		"Set GITHUB_TOKEN, GITLAB_TOKEN or git_token with a valid token."
}

func (m DefaultMessenger) TokenExpiredMessage() (string, string) {
	return "The access token has expired or is invalid.",
		"Create a new token and update GITHUB_TOKEN, GITLAB_TOKEN or git_token."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "The token does not have permission to publish releases.",
		"Grant the token write access to the repository's releases."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to %s", serverURL),
		"Check that:\n  - The URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The server may be overloaded or unreachable.\nTry again in a moment."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

func getMessenger(opts []Option) ErrorMessenger {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg.Messenger
}

// Wrap attaches the user-facing message and suggestion for known rellr
// conditions. Unknown errors are checked for auth failures and otherwise
// returned unchanged. Errors that are already a CLIError pass through.
func Wrap(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return err
	}

	messenger := getMessenger(opts)

	var pick func() (string, string)
	switch {
	case errors.Is(err, config.ErrConfigMissing):
		pick = messenger.ConfigMissingMessage
	case errors.Is(err, config.ErrConfigExists):
		pick = messenger.ConfigExistsMessage
	case errors.Is(err, release.ErrReleaseNotSet), errors.Is(err, version.ErrNotStaged):
		pick = messenger.ReleaseNotSetMessage
	case errors.Is(err, version.ErrAlreadyStaged):
		pick = messenger.AlreadyStagedMessage
	case errors.Is(err, git.ErrTagExists):
		pick = messenger.TagExistsMessage
	case errors.Is(err, version.ErrInvalidVersion):
		pick = messenger.InvalidVersionMessage
	case errors.Is(err, git.ErrMergeConflict):
		pick = messenger.MergeConflictMessage
	case errors.Is(err, release.ErrManualMergeRequired):
		pick = messenger.ManualMergeMessage
	case errors.Is(err, git.ErrNotGitRepo), errors.Is(err, ErrNotInGitRepo):
		pick = messenger.NotInGitRepoMessage
	default:
		return WrapAuthError(err, opts...)
	}

	msg, suggestion := pick()
	wrapped := &CLIError{Err: err, Message: msg, Suggestion: suggestion}
	if detail := err.Error(); !strings.EqualFold(detail, msg) {
		wrapped.Details = detail
	}
	return wrapped
}

// WrapAuthError wraps authentication-related errors with guidance.
func WrapAuthError(err error, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if strings.Contains(errStr, "token") && (strings.Contains(errStr, "expired") || strings.Contains(errStr, "invalid")) {
		msg, suggestion := messenger.TokenExpiredMessage()
		return &CLIError{Err: ErrTokenExpired, Message: msg, Suggestion: suggestion, Details: err.Error()}
	}

	if strings.Contains(errStr, "unauthenticated") || strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401") || strings.Contains(errStr, "bad credentials") {
		msg, suggestion := messenger.AuthErrorMessage()
		return &CLIError{Err: ErrNotAuthenticated, Message: msg, Suggestion: suggestion, Details: err.Error()}
	}

	if strings.Contains(errStr, "permission denied") || strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "403") {
		msg, suggestion := messenger.PermissionDeniedMessage()
		return &CLIError{Err: ErrPermissionDenied, Message: msg, Suggestion: suggestion, Details: err.Error()}
	}

	return err
}

// WrapConnectionError wraps connection-related errors with guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getMessenger(opts)

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp") {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{Err: ErrConnectionFailed, Message: msg, Suggestion: suggestion}
	}

	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{Err: ErrConnectionFailed, Message: msg, Details: err.Error(), Suggestion: suggestion}
	}

	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{Err: ErrConnectionFailed, Message: msg, Suggestion: suggestion}
	}

	return err
}

// NewNotInGitRepoError creates an error for commands that require a git
// repository.
func NewNotInGitRepoError(opts ...Option) error {
	msg, suggestion := getMessenger(opts).NotInGitRepoMessage()
	return &CLIError{Err: ErrNotInGitRepo, Message: msg, Suggestion: suggestion}
}
