package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rancher/tagpin/cmd/groups"
	"github.com/rancher/tagpin/cmd/manifest"
	"github.com/rancher/tagpin/cmd/tags"
	helpers "github.com/rancher/tagpin/internal/cmd"
	"github.com/rancher/tagpin/internal/git/remote"
	"github.com/rancher/tagpin/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliName = "tagpin"

var (
	// Version represents the current version of tagpin
	Version = "v0.0.0-dev"
	// GitCommit represents the latest commit when building tagpin
	GitCommit = "HEAD"
	// Date represents the build timestamp
	Date = "now"
)

var (
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   cliName,
	Short: "Pin git dependencies to the first tag satisfying a minimum version",
	Long: `A CLI tool that picks which tag of a remote git repository to build against.

Given a tag prefix (a regular expression, e.g. 'sdk-|vulkan-sdk-') and a minimum
version such as a locally installed SDK version, tagpin selects the smallest
tagged version that is greater than or equal to the minimum.

A tag that matches the prefix but does not carry a plain dotted version fails the
whole resolution, so an overly loose prefix is caught instead of silently used.`,
	Version:       fmt.Sprintf("%s (%s) Built at %s", Version, GitCommit, Date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		initConfig()
		logging.Configure(cmd)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Log.Error(err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/."+cliName+".yaml)")
	flags.StringP(logging.LevelKey, "l", "info", "Set the logging level (debug, info, warn, error, fatal, panic)")
	flags.String(helpers.ListerKey, remote.KindGoGit, "How tags are listed: go-git (in-process), git (git ls-remote) or file (saved listing)")
	flags.String(helpers.GitBinaryKey, "git", "git executable used by the git lister")
	flags.Int(helpers.RetriesKey, 0, "Retry a failed listing this many times")
	flags.Duration(helpers.RetryDelayKey, time.Second, "Initial delay between listing retries")
	flags.Duration(helpers.TimeoutKey, 0, "Give up on a command after this long (0 means no limit)")
	flags.Bool(helpers.NormalizeURLsKey, true, "Rewrite SSH GitHub locators to HTTPS for the go-git lister")

	viper.SetEnvPrefix("TAGPIN")
	// Keys like retry-delay are read from TAGPIN_RETRY_DELAY.
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Bind the flags to Viper (this also makes them available via viper.Get*)
	for _, key := range []string{
		logging.LevelKey,
		helpers.ListerKey,
		helpers.GitBinaryKey,
		helpers.RetriesKey,
		helpers.RetryDelayKey,
		helpers.TimeoutKey,
		helpers.NormalizeURLsKey,
	} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			logging.Log.Error(err)
			return
		}
	}

	rootCmd.AddGroup(&groups.TagsGroup, &groups.ManifestGroup)
	tags.RegisterTagsSubcommands(rootCmd)
	manifest.RegisterManifestSubcommands(rootCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tagpin" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName("." + cliName)
	}

	if err := viper.ReadInConfig(); err == nil {
		logging.Log.Debugf("Using config file: %s", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		logging.Log.Warnf("Cannot read config file %s: %v", cfgFile, err)
	}
}
