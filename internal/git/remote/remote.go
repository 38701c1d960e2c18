package remote

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	gitpkg "github.com/rancher/tagpin/internal/git"
	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/rancher/tagpin/internal/util"
)

// GoGitLister lists remote tags in-process with go-git, without cloning.
type GoGitLister struct {
	// NormalizeURLs rewrites SSH GitHub locators to HTTPS so no SSH agent is needed.
	NormalizeURLs bool
}

func (l *GoGitLister) ListTags(ctx context.Context, locator string) (string, error) {
	url := locator
	if l.NormalizeURLs {
		url = gitpkg.NormalizeGitHubURL(locator)
	}

	remote := git.NewRemote(nil, &config.RemoteConfig{
		Name: git.DefaultRemoteName,
		URLs: []string{url},
	})
	log.Log.Debugf("Listing remote refs of %s", url)
	refs, err := remote.ListContext(ctx, &git.ListOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: listing remote refs of %s: %v", tagresolve.ErrListingFailed, url, err)
	}

	return FormatTagReferences(refs), nil
}

// FormatTagReferences renders tag references the way `git ls-remote --tags --refs` does.
func FormatTagReferences(refs []*plumbing.Reference) string {
	tags := util.FilterSlice(refs, func(ref *plumbing.Reference) bool {
		return ref.Name().IsTag() && ref.Type() == plumbing.HashReference
	})

	var b strings.Builder
	for _, ref := range tags {
		b.WriteString(ref.Hash().String())
		b.WriteByte('\t')
		b.WriteString(ref.Name().String())
		b.WriteByte('\n')
	}
	return b.String()
}
