package tagresolve

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	log "github.com/rancher/tagpin/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listing(tags ...string) string {
	var b strings.Builder
	for i, tag := range tags {
		fmt.Fprintf(&b, "%040x\trefs/tags/%s\n", i+1, tag)
	}
	return b.String()
}

func staticLister(raw string) Lister {
	return ListerFunc(func(context.Context, string) (string, error) {
		return raw, nil
	})
}

func failingLister(err error) Lister {
	return ListerFunc(func(context.Context, string) (string, error) {
		return "", err
	})
}

func TestResolveScenarios(t *testing.T) {
	tests := []struct {
		name       string
		tags       []string
		prefix     string
		minimum    string
		wantTag    string
		wantReason Reason
	}{
		{
			name:    "smallest satisfying version",
			tags:    []string{"v1.0.0", "v1.2.0", "v2.0.0"},
			prefix:  "v",
			minimum: "1.1.0",
			wantTag: "v1.2.0",
		},
		{
			name:    "four component tags against three component minimum",
			tags:    []string{"sdk-1.3.283.0", "sdk-1.3.290.0"},
			prefix:  "sdk-",
			minimum: "1.3.285",
			wantTag: "sdk-1.3.290.0",
		},
		{
			name:       "matching tag without a version poisons the result",
			tags:       []string{"rel-1.0", "rel-abc"},
			prefix:     "rel-",
			minimum:    "0.1",
			wantReason: MalformedVersionTag,
		},
		{
			name:       "malformed tag poisons even when a candidate satisfies",
			tags:       []string{"v2.0.0", "v2.1.0-rc1"},
			prefix:     "v",
			minimum:    "1.0.0",
			wantReason: MalformedVersionTag,
		},
		{
			name:       "nothing at least the minimum",
			tags:       []string{"v0.9.0"},
			prefix:     "v",
			minimum:    "1.0.0",
			wantReason: NoSatisfyingVersion,
		},
		{
			name:       "no matching tags at all",
			tags:       []string{"release-1.0"},
			prefix:     "v",
			minimum:    "1.0.0",
			wantReason: NoSatisfyingVersion,
		},
		{
			name:    "non matching tags never influence selection",
			tags:    []string{"latest", "nightly-2024", "v1.5", "docs-v1"},
			prefix:  "v",
			minimum: "1",
			wantTag: "v1.5",
		},
		{
			name:    "alternation across historical prefixes",
			tags:    []string{"sdk-1.3.275.0", "vulkan-sdk-1.3.290.0", "vulkan-sdk-1.4.304.0"},
			prefix:  "sdk-|vulkan-sdk-",
			minimum: "1.3.280",
			wantTag: "vulkan-sdk-1.3.290.0",
		},
		{
			name:    "equal minimum is satisfied",
			tags:    []string{"v1.2.0", "v1.1.0"},
			prefix:  "v",
			minimum: "1.1.0",
			wantTag: "v1.1.0",
		},
		{
			name:    "tie resolves to first listed",
			tags:    []string{"sdk-1.3.290", "vulkan-sdk-1.3.290"},
			prefix:  "sdk-|vulkan-sdk-",
			minimum: "1.3.290",
			wantTag: "sdk-1.3.290",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := New(staticLister(listing(tc.tags...)))
			got, err := resolver.Resolve(context.Background(), "https://example.com/repo.git", tc.prefix, tc.minimum)
			if tc.wantReason != ReasonNone {
				require.Error(t, err)
				assert.Equal(t, tc.wantReason, ReasonOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantTag, got.Tag)
		})
	}
}

func TestResolveListerFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantReason Reason
	}{
		{name: "listing failed", err: fmt.Errorf("%w: exit status 128", ErrListingFailed), wantReason: ListingFailed},
		{name: "unclassified error", err: errors.New("connection reset"), wantReason: ListingFailed},
		{name: "tool unavailable", err: fmt.Errorf("%w: git not found", ErrToolUnavailable), wantReason: ListingToolUnavailable},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, prefix := range []string{"v", "sdk-"} {
				_, err := New(failingLister(tc.err)).Resolve(context.Background(), "repo", prefix, "1.0")
				require.Error(t, err)
				assert.Equal(t, tc.wantReason, ReasonOf(err))
				assert.ErrorIs(t, err, tc.err)

				var resolveErr *Error
				require.ErrorAs(t, err, &resolveErr)
				assert.Equal(t, "repo", resolveErr.Locator)
			}
		})
	}
}

func TestResolveMalformedReportsTag(t *testing.T) {
	_, err := New(staticLister(listing("rel-1.0", "rel-abc"))).Resolve(context.Background(), "repo", "rel-", "1.0")

	var resolveErr *Error
	require.ErrorAs(t, err, &resolveErr)
	assert.Equal(t, MalformedVersionTag, resolveErr.Reason)
	assert.Equal(t, "rel-abc", resolveErr.Tag)
	assert.Equal(t, "repo", resolveErr.Locator)
	assert.Contains(t, err.Error(), "rel-abc")
}

func TestResolveUsageErrors(t *testing.T) {
	called := false
	lister := ListerFunc(func(context.Context, string) (string, error) {
		called = true
		return "", nil
	})

	_, err := New(lister).Resolve(context.Background(), "repo", "v", "1.0.0-beta")
	assert.ErrorIs(t, err, ErrInvalidMinimum)
	assert.Equal(t, ReasonNone, ReasonOf(err))

	_, err = New(lister).Resolve(context.Background(), "repo", "v[", "1.0.0")
	assert.ErrorIs(t, err, ErrInvalidPrefix)

	assert.False(t, called, "lister must not be called for invalid arguments")
}

func TestResolvePassesLocatorAndContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "marker")
	lister := ListerFunc(func(got context.Context, locator string) (string, error) {
		assert.Equal(t, "marker", got.Value(key{}))
		assert.Equal(t, "git@github.com:owner/repo.git", locator)
		return listing("v1.0"), nil
	})

	got, err := New(lister).Resolve(ctx, "git@github.com:owner/repo.git", "v", "1")
	require.NoError(t, err)
	assert.Equal(t, "v1.0", got.Tag)
	assert.Equal(t, "1.0", got.Version.String())
	assert.Equal(t, 1, got.Candidates)
}

func TestResolveText(t *testing.T) {
	raw := "aaaa\trefs/heads/main\r\nbbbb\trefs/tags/v1.0.0\r\ncccc\trefs/tags/v1.2.0\r\n"
	got, err := ResolveText(raw, "v", "1.1")
	require.NoError(t, err)
	assert.Equal(t, "v1.2.0", got.Tag)
	assert.Equal(t, 2, got.Candidates)

	_, err = ResolveText(raw, "v", "1.3")
	assert.Equal(t, NoSatisfyingVersion, ReasonOf(err))
}

func TestReasonText(t *testing.T) {
	for _, reason := range []Reason{ReasonNone, ListingToolUnavailable, ListingFailed, MalformedVersionTag, NoSatisfyingVersion} {
		text, err := reason.MarshalText()
		require.NoError(t, err)

		var decoded Reason
		require.NoError(t, decoded.UnmarshalText(text))
		assert.Equal(t, reason, decoded)
	}

	var decoded Reason
	assert.Error(t, decoded.UnmarshalText([]byte("bogus")))
	_, err := Reason(42).MarshalText()
	assert.Error(t, err)
}

func TestResolveLogsThroughApplicationLogger(t *testing.T) {
	var out bytes.Buffer
	previousLevel, previousOut := log.Log.GetLevel(), log.Log.Out
	log.Log.SetOutput(&out)
	log.Log.SetLevel(logrus.DebugLevel)
	t.Cleanup(func() {
		log.Log.SetOutput(previousOut)
		log.Log.SetLevel(previousLevel)
	})

	_, err := New(staticLister(listing("v1.0", "v1.2"))).Resolve(context.Background(), "repo", "v", "1.1")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "to tag v1.2")
}
