package tagresolve

import (
	"errors"
	"fmt"
)

// Reason identifies why a resolution failed.
type Reason int

const (
	ReasonNone Reason = iota
	ListingToolUnavailable
	ListingFailed
	MalformedVersionTag
	NoSatisfyingVersion
)

var reasonNames = map[Reason]string{
	ReasonNone:             "none",
	ListingToolUnavailable: "listing-tool-unavailable",
	ListingFailed:          "listing-failed",
	MalformedVersionTag:    "malformed-version-tag",
	NoSatisfyingVersion:    "no-satisfying-version",
}

func (r Reason) String() string {
	if name, ok := reasonNames[r]; ok {
		return name
	}
	return fmt.Sprintf("reason(%d)", int(r))
}

func (r Reason) MarshalText() ([]byte, error) {
	if _, ok := reasonNames[r]; !ok {
		return nil, fmt.Errorf("unknown resolution reason %d", int(r))
	}
	return []byte(r.String()), nil
}

func (r *Reason) UnmarshalText(text []byte) error {
	for reason, name := range reasonNames {
		if name == string(text) {
			*r = reason
			return nil
		}
	}
	return fmt.Errorf("unknown resolution reason %q", string(text))
}

var (
	// ErrToolUnavailable is wrapped by listers that could not invoke their listing mechanism at all.
	ErrToolUnavailable = errors.New("tag listing tool unavailable")
	// ErrListingFailed is wrapped by listers whose listing attempt reported failure.
	ErrListingFailed = errors.New("tag listing failed")

	// ErrInvalidMinimum and ErrInvalidPrefix are caller mistakes, not resolution outcomes.
	ErrInvalidMinimum = errors.New("invalid minimum version")
	ErrInvalidPrefix  = errors.New("invalid tag prefix pattern")
)

// Error is the failure result of a resolution.
type Error struct {
	Reason  Reason
	Locator string
	// Tag is the offending tag name for MalformedVersionTag.
	Tag string
	Err error
}

func (e *Error) Error() string {
	msg := e.Reason.String()
	switch e.Reason {
	case ListingToolUnavailable, ListingFailed:
		msg = fmt.Sprintf("%s: cannot list tags of %s", msg, e.Locator)
	case MalformedVersionTag:
		msg = fmt.Sprintf("%s: tag %q matches the prefix but does not carry a valid version", msg, e.Tag)
	case NoSatisfyingVersion:
		if e.Locator != "" {
			msg = fmt.Sprintf("%s: no tag of %s satisfies the minimum version", msg, e.Locator)
		}
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ReasonOf returns the failure reason carried by err, or ReasonNone.
func ReasonOf(err error) Reason {
	var resolveErr *Error
	if errors.As(err, &resolveErr) {
		return resolveErr.Reason
	}
	return ReasonNone
}
