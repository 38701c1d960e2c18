package cmd

import (
	"errors"
	"fmt"
	"io"

	helpers "github.com/rancher/tagpin/internal/cmd"
	gitpkg "github.com/rancher/tagpin/internal/git"
	log "github.com/rancher/tagpin/internal/logging"
	"github.com/rancher/tagpin/internal/tagresolve"
	"github.com/spf13/cobra"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <repository> <prefix> <minimum>",
	Short: "Print the smallest tag version of a repository that is at least the minimum",
	Long: `Lists the tags of <repository>, keeps those whose name starts with the regular
expression <prefix>, and prints the full name of the tag with the smallest version
greater than or equal to <minimum>.

Use '-' as repository to read 'git ls-remote --tags' output from stdin.`,
	Example: `  tagpin resolve https://github.com/KhronosGroup/Vulkan-Headers.git 'v|sdk-' 1.3.285
  git ls-remote --tags --refs https://github.com/KhronosGroup/glslang.git | tagpin resolve - 'sdk-|vulkan-sdk-' 1.3.285`,
	Args: cobra.ExactArgs(3),
	RunE: resolveHandler,
}

type resolveResult struct {
	Repository string            `yaml:"repository" json:"repository"`
	Prefix     string            `yaml:"prefix" json:"prefix"`
	Minimum    string            `yaml:"minimum" json:"minimum"`
	Tag        string            `yaml:"tag" json:"tag"`
	Version    string            `yaml:"version,omitempty" json:"version,omitempty"`
	Semver     string            `yaml:"semver,omitempty" json:"semver,omitempty"`
	Candidates int               `yaml:"candidates" json:"candidates"`
	FellBack   bool              `yaml:"fell_back,omitempty" json:"fell_back,omitempty"`
	Reason     tagresolve.Reason `yaml:"reason,omitempty" json:"reason,omitempty"`
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().String("default-tag", "", "Print this tag instead of failing when no tag can be resolved")
	resolveCmd.Flags().StringP("output", "o", helpers.OutputText, "Output format: text, yaml or json")
}

func resolveHandler(cmd *cobra.Command, args []string) error {
	repository, prefix, minimum := args[0], args[1], args[2]
	defaultTag, _ := cmd.Flags().GetString("default-tag")
	output, _ := cmd.Flags().GetString("output")
	if err := helpers.ValidateOutput(output); err != nil {
		return err
	}

	lister, err := helpers.ListerFor(repository)
	if err != nil {
		return err
	}
	ctx, cancel := helpers.Context()
	defer cancel()

	result := resolveResult{Repository: repository, Prefix: prefix, Minimum: minimum}
	resolution, err := tagresolve.New(lister).Resolve(ctx, repository, prefix, minimum)
	switch {
	case err == nil:
		result.Tag = resolution.Tag
		result.Version = resolution.Version.String()
		result.Semver = resolution.Version.Semver().String()
		result.Candidates = resolution.Candidates
	case defaultTag != "" && tagresolve.ReasonOf(err) != tagresolve.ReasonNone:
		log.Log.Warnf("Cannot resolve a tag of %s: %v. Falling back to %s", gitpkg.DisplayName(repository), err, defaultTag)
		result.Tag = defaultTag
		result.FellBack = true
		result.Reason = tagresolve.ReasonOf(err)
	default:
		return describeFailure(repository, err)
	}

	return printResolveResult(cmd.OutOrStdout(), output, result)
}

func printResolveResult(w io.Writer, output string, result resolveResult) error {
	if output != helpers.OutputText {
		return helpers.PrintStructured(w, output, result)
	}
	_, err := fmt.Fprintln(w, result.Tag)
	return err
}

func describeFailure(repository string, err error) error {
	var resolveErr *tagresolve.Error
	if !errors.As(err, &resolveErr) {
		return err
	}
	hint := ""
	switch resolveErr.Reason {
	case tagresolve.ListingToolUnavailable:
		hint = "install git or use --lister go-git"
	case tagresolve.ListingFailed:
		hint = "check the repository locator and your network or credentials"
	case tagresolve.MalformedVersionTag:
		hint = "the prefix is too loose, run tags:list to see which tags it matches"
	case tagresolve.NoSatisfyingVersion:
		hint = "lower the minimum or pass --default-tag"
	}
	return fmt.Errorf("%s: %w (%s)", gitpkg.DisplayName(repository), err, hint)
}
