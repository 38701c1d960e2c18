package git

import (
	"regexp"
	"strings"
)

// scpLikePattern matches SSH locators like git@github.com:owner/repo.git
var scpLikePattern = regexp.MustCompile(`^[\w.-]+@([\w.-]+):(.+?)(?:\.git)?/?$`)

// httpsPattern matches HTTPS locators like https://github.com/owner/repo.git
var httpsPattern = regexp.MustCompile(`^https?://(?:[^@/]+@)?([^/]+)/(.+?)(?:\.git)?/?$`)

// IsSSHURL returns true if the URL is an scp-like SSH git URL
func IsSSHURL(url string) bool {
	return scpLikePattern.MatchString(url)
}

// IsHTTPSURL returns true if the URL is an HTTPS git URL
func IsHTTPSURL(url string) bool {
	return strings.HasPrefix(url, "https://")
}

// SSHToHTTPS converts an scp-like SSH git URL to HTTPS format.
// For example: git@github.com:owner/repo.git -> https://github.com/owner/repo.git
// Anything else is returned unchanged.
func SSHToHTTPS(url string) string {
	matches := scpLikePattern.FindStringSubmatch(url)
	if len(matches) < 3 {
		return url
	}
	return "https://" + matches[1] + "/" + matches[2] + ".git"
}

// NormalizeGitHubURL rewrites GitHub locators to https://github.com/owner/repo.git.
// Other hosts and local paths are left alone, they may need their own credentials.
func NormalizeGitHubURL(url string) string {
	host, _ := splitLocator(url)
	if host != "github.com" {
		return url
	}
	if IsSSHURL(url) {
		url = SSHToHTTPS(url)
	}
	if IsHTTPSURL(url) && !strings.HasSuffix(url, ".git") {
		url = strings.TrimSuffix(url, "/") + ".git"
	}
	return url
}

// RepoPath returns the owner/repo path of a remote locator, or "" for local paths.
func RepoPath(url string) string {
	_, path := splitLocator(url)
	return path
}

// DisplayName is a short human name for a locator: owner/repo when known.
func DisplayName(url string) string {
	if path := RepoPath(url); path != "" {
		return path
	}
	return url
}

func splitLocator(url string) (host string, path string) {
	if matches := scpLikePattern.FindStringSubmatch(url); len(matches) >= 3 {
		return strings.ToLower(matches[1]), matches[2]
	}
	if matches := httpsPattern.FindStringSubmatch(url); len(matches) >= 3 {
		return strings.ToLower(matches[1]), matches[2]
	}
	return "", ""
}
