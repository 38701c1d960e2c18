package manifest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/rancher/tagpin/internal/util"
	"gopkg.in/yaml.v3"
)

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	if !util.IsFile(path) {
		return nil, fmt.Errorf("manifest %s does not exist or is not a file", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Parse(content)
}

// Parse decodes and validates manifest YAML. Unknown keys are rejected.
func Parse(content []byte) (*Manifest, error) {
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks every dependency before anything is listed.
func (m *Manifest) Validate() error {
	if len(m.Dependencies) == 0 {
		return errors.New("manifest declares no dependencies")
	}
	names := util.NewSet[string]()
	var errs []error
	for i, dep := range m.Dependencies {
		if err := dep.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("dependency %d (%s): %w", i+1, dep.Name, err))
			continue
		}
		if names.Contains(dep.Name) {
			errs = append(errs, fmt.Errorf("dependency %d: duplicate name %q", i+1, dep.Name))
			continue
		}
		_ = names.Add(dep.Name)
	}
	return errors.Join(errs...)
}

func (d Dependency) Validate() error {
	switch {
	case d.Name == "":
		return errors.New("name is required")
	case d.Repository == "":
		return errors.New("repository is required")
	}
	if _, err := tagresolve.ParseVersion(d.Minimum); err != nil {
		return fmt.Errorf("%w: %v", tagresolve.ErrInvalidMinimum, err)
	}
	if _, err := tagresolve.CompilePrefix(d.Prefix); err != nil {
		return err
	}
	return nil
}

// ResolveAll resolves every dependency in declaration order. A failed dependency
// with a default tag falls back to it; without one the pin carries only the failure.
func ResolveAll(ctx context.Context, resolver *tagresolve.Resolver, m *Manifest) Report {
	report := Report{Pins: make([]Pin, 0, len(m.Dependencies))}
	for _, dep := range m.Dependencies {
		report.Pins = append(report.Pins, resolveOne(ctx, resolver, dep))
	}
	return report
}

func resolveOne(ctx context.Context, resolver *tagresolve.Resolver, dep Dependency) Pin {
	pin := Pin{Name: dep.Name, Repository: dep.Repository}

	resolution, err := resolver.Resolve(ctx, dep.Repository, dep.Prefix, dep.Minimum)
	if err == nil {
		pin.Tag = resolution.Tag
		pin.Version = resolution.Version.String()
		pin.Semver = resolution.Version.Semver().String()
		log.Log.Infof("%s: pinned to %s", dep.Name, pin.Tag)
		return pin
	}

	pin.Reason = tagresolve.ReasonOf(err)
	pin.Error = err.Error()
	if dep.DefaultTag != "" {
		pin.Tag = dep.DefaultTag
		pin.FellBack = true
		log.Log.Warnf("%s: %v; falling back to %s", dep.Name, err, dep.DefaultTag)
		return pin
	}
	log.Log.Errorf("%s: %v", dep.Name, err)
	return pin
}
