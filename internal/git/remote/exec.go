package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
)

const defaultGitBinary = "git"

// ExecLister lists remote tags by running `git ls-remote`.
type ExecLister struct {
	// Binary is the git executable, looked up on PATH. Defaults to "git".
	Binary string
}

func (l *ExecLister) ListTags(ctx context.Context, locator string) (string, error) {
	binary := l.Binary
	if binary == "" {
		binary = defaultGitBinary
	}

	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %v", tagresolve.ErrToolUnavailable, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, "ls-remote", "--tags", "--refs", locator)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	log.Log.Debugf("Running %s", strings.Join(cmd.Args, " "))

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) && ctx.Err() == nil {
			// The binary was found but could not be started.
			return "", fmt.Errorf("%w: %v", tagresolve.ErrToolUnavailable, err)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%w: git ls-remote %s: %s", tagresolve.ErrListingFailed, locator, msg)
	}

	return stdout.String(), nil
}
