package tagresolve

// Candidate is a prefix-matching tag together with its parsed version.
type Candidate struct {
	Tag     string
	Version Version
}

// Select returns the candidate with the smallest version that is at least minimum.
// Equal versions resolve to the earliest candidate. ok is false when nothing qualifies.
func Select(candidates []Candidate, minimum Version) (Candidate, bool) {
	var best Candidate
	found := false
	for _, candidate := range candidates {
		if !candidate.Version.AtLeast(minimum) {
			continue
		}
		if !found || candidate.Version.LessThan(best.Version) {
			best = candidate
			found = true
		}
	}
	return best, found
}
