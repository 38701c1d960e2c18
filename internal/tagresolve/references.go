package tagresolve

import (
	"regexp"
	"strings"
)

// referenceLine matches one `git ls-remote` line for a tag.
var referenceLine = regexp.MustCompile(`^[0-9a-f]+\t ?refs/tags/(.+)$`)

// ParseReferences extracts tag names from raw ls-remote output, keeping input order.
// Lines that are not tag references are dropped.
func ParseReferences(raw string) []string {
	var names []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		matches := referenceLine.FindStringSubmatch(line)
		if matches == nil {
			continue
		}
		names = append(names, matches[1])
	}
	return names
}
