package errors

import (
	"errors"
	"strings"

	"github.com/randalmurphal/rellr/config"
	"github.com/randalmurphal/rellr/git"
	"github.com/randalmurphal/rellr/release"
	"github.com/randalmurphal/rellr/version"
)

// Severity says how the command boundary treats an error.
type Severity int

const (
	// SeverityFatal errors terminate the command with a non-zero status.
	SeverityFatal Severity = iota
	// SeverityWarning errors are printed and the command exits cleanly.
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "fatal"
}

// Classify returns the severity of err. State conflicts that leave the
// repository untouched are warnings; everything else is fatal.
func Classify(err error) Severity {
	switch {
	case errors.Is(err, version.ErrAlreadyStaged),
		errors.Is(err, config.ErrConfigExists),
		errors.Is(err, git.ErrTagExists):
		return SeverityWarning
	default:
		return SeverityFatal
	}
}

// IsWarning reports whether err is a recoverable state conflict.
func IsWarning(err error) bool {
	return err != nil && Classify(err) == SeverityWarning
}

// IsFatal reports whether err must terminate the command.
func IsFatal(err error) bool {
	return err != nil && Classify(err) == SeverityFatal
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNotAuthenticated) || errors.Is(err, ErrTokenExpired) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "unauthenticated") ||
		strings.Contains(errStr, "unauthorized") ||
		strings.Contains(errStr, "401")
}

// IsConnectionError checks if an error is connection-related, including TLS
// errors and timeouts.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, marker := range []string{
		"connection refused", "no such host", "network is unreachable", "dial tcp",
		"certificate", "tls", "x509",
		"timeout", "deadline exceeded",
	} {
		if strings.Contains(errStr, marker) {
			return true
		}
	}
	return false
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrPermissionDenied) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "permission denied") ||
		strings.Contains(errStr, "forbidden") ||
		strings.Contains(errStr, "403")
}

// IsPrecondition reports whether err is a missing-config or
// missing-staged-version condition.
func IsPrecondition(err error) bool {
	return errors.Is(err, config.ErrConfigMissing) ||
		errors.Is(err, version.ErrNotStaged) ||
		errors.Is(err, release.ErrReleaseNotSet)
}
