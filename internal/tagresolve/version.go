package tagresolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MaxComponents is the most dot-separated components a version may have.
const MaxComponents = 4

var versionPattern = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)

// Version is a release number of one to four non-negative integer components.
// Components that are not written are absent, not zero.
type Version struct {
	components []uint64
}

// ParseVersion parses s as a strict dotted version such as "1", "1.3" or "1.3.290.0".
// Anything else, including pre-release suffixes or a leading "v", is rejected.
func ParseVersion(s string) (Version, error) {
	if !versionPattern.MatchString(s) {
		return Version{}, fmt.Errorf("%q is not a version of 1 to %d dot-separated integers", s, MaxComponents)
	}
	parts := strings.Split(s, ".")
	components := make([]uint64, len(parts))
	for i, part := range parts {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Version{}, fmt.Errorf("version %q component %d: %w", s, i+1, err)
		}
		components[i] = n
	}
	return Version{components: components}, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Components returns a copy of the explicit components.
func (v Version) Components() []uint64 {
	return append([]uint64(nil), v.components...)
}

func (v Version) String() string {
	parts := make([]string, len(v.components))
	for i, c := range v.components {
		parts[i] = strconv.FormatUint(c, 10)
	}
	return strings.Join(parts, ".")
}

// Compare returns -1, 0 or +1. Components are compared left to right; when one
// version runs out first and all shared components are equal, it is the smaller,
// so 1.3 < 1.3.0 < 1.3.0.0 < 1.3.1.
func (v Version) Compare(o Version) int {
	for i := 0; i < len(v.components) && i < len(o.components); i++ {
		switch {
		case v.components[i] < o.components[i]:
			return -1
		case v.components[i] > o.components[i]:
			return 1
		}
	}
	switch {
	case len(v.components) < len(o.components):
		return -1
	case len(v.components) > len(o.components):
		return 1
	}
	return 0
}

func (v Version) Equal(o Version) bool {
	return v.Compare(o) == 0
}

func (v Version) LessThan(o Version) bool {
	return v.Compare(o) < 0
}

func (v Version) AtLeast(o Version) bool {
	return v.Compare(o) >= 0
}

// Semver maps v onto a semantic version for reporting. Missing major, minor or
// patch components become 0 and a fourth component is kept as build metadata.
func (v Version) Semver() *semver.Version {
	var core [3]uint64
	copy(core[:], v.components)
	metadata := ""
	if len(v.components) == MaxComponents {
		metadata = strconv.FormatUint(v.components[3], 10)
	}
	return semver.New(core[0], core[1], core[2], "", metadata)
}

func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
