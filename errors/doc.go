// Package errors turns rellr failures into user-facing CLI errors.
//
// Core types:
//   - CLIError: wraps an error with message, suggestion and details
//   - ErrorMessenger: interface for customizing the wording
//   - Severity: fatal or warning, decided by Classify
//
// Wrap maps the sentinels of the other packages (config.ErrConfigMissing,
// release.ErrReleaseNotSet, git.ErrMergeConflict, ...) to messages; Classify
// tells the command boundary whether to exit non-zero:
//
//	if err := run(); err != nil {
//	    wrapped := errors.Wrap(err)
//	    if errors.IsWarning(err) {
//	        printer.Warn(wrapped.Error())
//	        return 0
//	    }
//	    printer.Error(wrapped.Error())
//	    return 1
//	}
//
// Failures talking to GitHub, GitLab or webhooks are mapped by WrapAuthError
// and WrapConnectionError.
package errors
