package forge

import (
	"fmt"
	"os"
)

// TokenEnv lists the environment variables checked for each platform,
// most specific first.
var TokenEnv = map[Platform][]string{
	PlatformGitHub: {"GITHUB_TOKEN", "GIT_TOKEN"},
	PlatformGitLab: {"GITLAB_TOKEN", "GIT_TOKEN"},
}

// ResolveToken returns the configured token, or the first non-empty
// environment variable for the platform.
func ResolveToken(platform Platform, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	for _, name := range TokenEnv[platform] {
		if token := os.Getenv(name); token != "" {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w: set %s or the git_token setting", ErrNoToken, joinEnv(TokenEnv[platform]))
}

// ProviderFromRemote creates a provider for the remote's platform.
// configured is the git_token setting and may be empty.
//
// Example:
//
//	remoteURL, _ := gitCtx.GetRemoteURL("origin")
//	provider, err := forge.ProviderFromRemote(remoteURL, settings.GitToken)
//	if err != nil {
//	    return err
//	}
//	rel, err := provider.CreateRelease(ctx, opts)
func ProviderFromRemote(remoteURL, configured string) (Provider, error) {
	platform, err := DetectProvider(remoteURL)
	if err != nil {
		return nil, err
	}

	token, err := ResolveToken(platform, configured)
	if err != nil {
		return nil, err
	}

	switch platform {
	case PlatformGitHub:
		return NewGitHubProviderFromURL(token, remoteURL)
	case PlatformGitLab:
		return NewGitLabProviderFromURL(token, remoteURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, platform)
	}
}

func joinEnv(names []string) string {
	switch len(names) {
	case 0:
		return "a token variable"
	case 1:
		return names[0]
	}
	out := names[0]
	for _, n := range names[1 : len(names)-1] {
		out += ", " + n
	}
	return out + " or " + names[len(names)-1]
}
