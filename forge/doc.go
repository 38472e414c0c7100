// Package forge publishes hosted release notes on GitHub and GitLab.
//
// Core types:
//   - Provider: interface for creating and reading releases
//   - ReleaseOptions: tag, name and notes for a new release
//   - Release: a published release with its web URL
//
// Implementations:
//   - GitHubProvider: GitHub releases using go-github
//   - GitLabProvider: GitLab releases using go-gitlab
//   - MockProvider: records calls for tests
//
// Example usage:
//
//	provider, err := forge.ProviderFromRemote(remoteURL, settings.GitToken)
//	if err != nil {
//	    return err
//	}
//	rel, err := provider.CreateRelease(ctx, forge.NewReleaseOptions("demo", "1.3.0", "v1.3.0", notes))
package forge
