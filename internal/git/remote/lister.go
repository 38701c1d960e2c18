package remote

import (
	"fmt"
	"time"

	"github.com/rancher/tagpin/internal/tagresolve"
)

// Lister kinds accepted by NewLister.
const (
	KindGoGit = "go-git"
	KindExec  = "git"
	KindFile  = "file"
)

type Options struct {
	NormalizeURLs bool
	GitBinary     string
	Retries       uint
	RetryDelay    time.Duration
}

// NewLister builds the Lister for kind, wrapped for retries when opts.Retries > 0.
func NewLister(kind string, opts Options) (tagresolve.Lister, error) {
	var lister tagresolve.Lister
	switch kind {
	case KindGoGit, "":
		lister = &GoGitLister{NormalizeURLs: opts.NormalizeURLs}
	case KindExec:
		lister = &ExecLister{Binary: opts.GitBinary}
	case KindFile:
		lister = FileLister{}
	default:
		return nil, fmt.Errorf("unknown lister %q (want %s, %s or %s)", kind, KindGoGit, KindExec, KindFile)
	}

	if opts.Retries > 0 {
		lister = &RetryingLister{
			Lister:   lister,
			Attempts: opts.Retries + 1,
			Delay:    opts.RetryDelay,
		}
	}
	return lister, nil
}
