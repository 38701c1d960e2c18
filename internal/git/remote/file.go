package remote

import (
	"context"
	"fmt"
	"os"

	"github.com/rancher/tagpin/internal/tagresolve"
)

// FileLister reads a listing saved earlier with `tagpin tags:save`. The locator is the file path.
type FileLister struct{}

func (FileLister) ListTags(_ context.Context, locator string) (string, error) {
	content, err := os.ReadFile(locator)
	if err != nil {
		return "", fmt.Errorf("%w: %v", tagresolve.ErrListingFailed, err)
	}
	return string(content), nil
}

// SaveListing writes a raw listing to path so FileLister can replay it.
func SaveListing(path string, raw string) error {
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		return fmt.Errorf("saving tag listing: %w", err)
	}
	return nil
}
