package manifest

import "github.com/rancher/tagpin/internal/tagresolve"

// Dependency declares one repository to pin.
type Dependency struct {
	Name       string `yaml:"name" json:"name"`
	Repository string `yaml:"repository" json:"repository"`
	Prefix     string `yaml:"prefix" json:"prefix"`
	Minimum    string `yaml:"minimum" json:"minimum"`
	// DefaultTag is used when resolution fails. Empty means failures are fatal for the entry.
	DefaultTag string `yaml:"default_tag,omitempty" json:"default_tag,omitempty"`
}

type Manifest struct {
	Dependencies []Dependency `yaml:"dependencies" json:"dependencies"`
}

// Pin is the outcome for one dependency.
type Pin struct {
	Name       string            `yaml:"name" json:"name"`
	Repository string            `yaml:"repository" json:"repository"`
	Tag        string            `yaml:"tag,omitempty" json:"tag,omitempty"`
	Version    string            `yaml:"version,omitempty" json:"version,omitempty"`
	Semver     string            `yaml:"semver,omitempty" json:"semver,omitempty"`
	FellBack   bool              `yaml:"fell_back,omitempty" json:"fell_back,omitempty"`
	Reason     tagresolve.Reason `yaml:"reason,omitempty" json:"reason,omitempty"`
	Error      string            `yaml:"error,omitempty" json:"error,omitempty"`
}

// Failed reports whether the dependency ended up without any tag.
func (p Pin) Failed() bool {
	return p.Tag == ""
}

type Report struct {
	Pins []Pin `yaml:"pins" json:"pins"`
}

// Failures counts pins without a tag.
func (r Report) Failures() int {
	n := 0
	for _, pin := range r.Pins {
		if pin.Failed() {
			n++
		}
	}
	return n
}
