package remote

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
)

// RetryingLister retries failed listings of the wrapped Lister.
// A missing listing tool is never retried.
type RetryingLister struct {
	Lister   tagresolve.Lister
	Attempts uint
	Delay    time.Duration
}

func (l *RetryingLister) ListTags(ctx context.Context, locator string) (string, error) {
	attempts := l.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.DoWithData(
		func() (string, error) {
			return l.Lister.ListTags(ctx, locator)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(l.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, tagresolve.ErrToolUnavailable)
		}),
		retry.OnRetry(func(n uint, err error) {
			log.Log.Warnf("Listing tags of %s failed (attempt %d/%d): %v", locator, n+1, attempts, err)
		}),
	)
}
