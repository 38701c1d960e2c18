package tagresolve

import (
	"context"
	"errors"
	"fmt"

	log "github.com/rancher/tagpin/internal/logging"
)

// Lister returns the raw `hash\trefs/tags/name` listing of a repository.
// Errors wrapping ErrToolUnavailable are reported as ListingToolUnavailable,
// any other error as ListingFailed.
type Lister interface {
	ListTags(ctx context.Context, locator string) (string, error)
}

// ListerFunc adapts a function to the Lister interface.
type ListerFunc func(ctx context.Context, locator string) (string, error)

func (f ListerFunc) ListTags(ctx context.Context, locator string) (string, error) {
	return f(ctx, locator)
}

// Resolution is a successful resolution.
type Resolution struct {
	Tag     string
	Version Version
	// Candidates counts the prefix-matching tags that were considered.
	Candidates int
}

// Resolver picks the tag of a repository that best satisfies a minimum version.
// It keeps no state between calls.
type Resolver struct {
	lister Lister
}

func New(lister Lister) *Resolver {
	return &Resolver{lister: lister}
}

// Resolve lists the tags of locator and selects the smallest version, among tags
// starting with prefix, that is at least minimum. The result is all-or-nothing:
// a single prefix-matching tag without a valid version fails the whole call.
func (r *Resolver) Resolve(ctx context.Context, locator, prefix, minimum string) (Resolution, error) {
	matcher, minVersion, err := prepare(prefix, minimum)
	if err != nil {
		return Resolution{}, err
	}

	raw, err := r.lister.ListTags(ctx, locator)
	if err != nil {
		reason := ListingFailed
		if errors.Is(err, ErrToolUnavailable) {
			reason = ListingToolUnavailable
		}
		return Resolution{}, &Error{Reason: reason, Locator: locator, Err: err}
	}

	resolution, err := resolve(raw, matcher, minVersion)
	if err != nil {
		var resolveErr *Error
		if errors.As(err, &resolveErr) {
			resolveErr.Locator = locator
		}
		return Resolution{}, err
	}
	log.Log.Debugf("Resolved %s with prefix %q and minimum %s to tag %s (%d candidates)",
		locator, prefix, minVersion, resolution.Tag, resolution.Candidates)
	return resolution, nil
}

// ResolveText resolves against an already obtained ls-remote listing.
func ResolveText(raw, prefix, minimum string) (Resolution, error) {
	matcher, minVersion, err := prepare(prefix, minimum)
	if err != nil {
		return Resolution{}, err
	}
	return resolve(raw, matcher, minVersion)
}

// Candidates returns the prefix-matching tags of a listing with their versions,
// in listing order. It fails on the first matching tag without a valid version.
func Candidates(raw string, matcher *PrefixMatcher) ([]Candidate, error) {
	var candidates []Candidate
	for _, name := range ParseReferences(raw) {
		remainder, ok := matcher.Extract(name)
		if !ok {
			continue
		}
		version, err := ParseVersion(remainder)
		if err != nil {
			return nil, &Error{Reason: MalformedVersionTag, Tag: name, Err: err}
		}
		candidates = append(candidates, Candidate{Tag: name, Version: version})
	}
	return candidates, nil
}

func prepare(prefix, minimum string) (*PrefixMatcher, Version, error) {
	minVersion, err := ParseVersion(minimum)
	if err != nil {
		return nil, Version{}, fmt.Errorf("%w: %v", ErrInvalidMinimum, err)
	}
	matcher, err := CompilePrefix(prefix)
	if err != nil {
		return nil, Version{}, err
	}
	return matcher, minVersion, nil
}

func resolve(raw string, matcher *PrefixMatcher, minimum Version) (Resolution, error) {
	candidates, err := Candidates(raw, matcher)
	if err != nil {
		return Resolution{}, err
	}
	best, ok := Select(candidates, minimum)
	if !ok {
		return Resolution{}, &Error{
			Reason: NoSatisfyingVersion,
			Err:    fmt.Errorf("%d tags match %q, none is at least %s", len(candidates), matcher, minimum),
		}
	}
	return Resolution{Tag: best.Tag, Version: best.Version, Candidates: len(candidates)}, nil
}
