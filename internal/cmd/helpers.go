package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rancher/tagpin/internal/git/remote"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Helper functions for cmds

// Viper keys shared by the commands.
const (
	ListerKey        = "lister"
	GitBinaryKey     = "git-binary"
	RetriesKey       = "retries"
	RetryDelayKey    = "retry-delay"
	TimeoutKey       = "timeout"
	NormalizeURLsKey = "normalize-urls"
)

// StdinLocator makes commands read the listing from stdin instead of a repository.
const StdinLocator = "-"

// Output formats.
const (
	OutputText = "text"
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// IsDataFromStdin helps to determine if there's data from stdin
func IsDataFromStdin() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	// Check if stdin is not a terminal and there is data to read
	return info.Mode()&os.ModeCharDevice == 0
}

// NewLister builds the tag lister configured through flags, env and config file.
func NewLister() (tagresolve.Lister, error) {
	retries := viper.GetInt(RetriesKey)
	if retries < 0 {
		return nil, fmt.Errorf("--%s must not be negative", RetriesKey)
	}
	return remote.NewLister(viper.GetString(ListerKey), remote.Options{
		NormalizeURLs: viper.GetBool(NormalizeURLsKey),
		GitBinary:     viper.GetString(GitBinaryKey),
		Retries:       uint(retries),
		RetryDelay:    viper.GetDuration(RetryDelayKey),
	})
}

// ListerFor returns a stdin lister for StdinLocator and the configured lister otherwise.
func ListerFor(locator string) (tagresolve.Lister, error) {
	if locator == StdinLocator {
		if !IsDataFromStdin() {
			return nil, fmt.Errorf("locator %q needs an ls-remote listing piped to stdin", StdinLocator)
		}
		return NewReaderLister(os.Stdin), nil
	}
	return NewLister()
}

// NewReaderLister serves a listing read once from r, whatever the locator.
func NewReaderLister(r io.Reader) tagresolve.Lister {
	read := sync.OnceValues(func() ([]byte, error) {
		return io.ReadAll(r)
	})
	return tagresolve.ListerFunc(func(context.Context, string) (string, error) {
		content, err := read()
		if err != nil {
			return "", fmt.Errorf("%w: reading stdin: %v", tagresolve.ErrListingFailed, err)
		}
		return string(content), nil
	})
}

// Context bounds a command run by the configured timeout, if any.
func Context() (context.Context, context.CancelFunc) {
	if timeout := viper.GetDuration(TimeoutKey); timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// PrintStructured writes v as YAML or JSON.
func PrintStructured(w io.Writer, format string, v any) error {
	switch format {
	case OutputYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, OutputText, OutputYAML, OutputJSON)
	}
}

// ValidateOutput checks an --output value.
func ValidateOutput(format string) error {
	switch format {
	case OutputText, OutputYAML, OutputJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s, %s or %s)", format, OutputText, OutputYAML, OutputJSON)
}
