package tagresolve

import (
	"fmt"
	"regexp"
)

// PrefixMatcher isolates the version remainder of tag names that start with a prefix pattern.
type PrefixMatcher struct {
	pattern string
	re      *regexp.Regexp
}

// CompilePrefix compiles pattern, anchored at the start of the tag name.
// The pattern may use alternation and capturing groups of its own.
func CompilePrefix(pattern string) (*PrefixMatcher, error) {
	re, err := regexp.Compile(fmt.Sprintf(`^(?:%s)(.+)$`, pattern))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPrefix, pattern, err)
	}
	return &PrefixMatcher{pattern: pattern, re: re}, nil
}

func (m *PrefixMatcher) String() string {
	return m.pattern
}

// Extract returns whatever follows the prefix in name.
func (m *PrefixMatcher) Extract(name string) (string, bool) {
	matches := m.re.FindStringSubmatch(name)
	if matches == nil {
		return "", false
	}
	// The remainder group is always the last one, after any groups of the prefix.
	return matches[len(matches)-1], true
}
