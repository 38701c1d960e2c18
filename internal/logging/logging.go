package logging

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// LevelKey is the viper key holding the log level.
const LevelKey = "log-level"

// EnvLevel is the environment variable that overrides the log level.
const EnvLevel = "TAGPIN_LOG_LEVEL"

// Log is the global Logrus logger instance for the application.
var Log *logrus.Logger

func init() {
	// Resolved tags are written to stdout, so logs stay on stderr.
	Log = logrus.New()
	Log.SetOutput(os.Stderr)
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	Log.SetLevel(logrus.InfoLevel)
}

// Configure sets the logger level from viper (flag > env var > config file > default).
func Configure(cmd *cobra.Command) {
	levelStr := viper.GetString(LevelKey)

	level, err := logrus.ParseLevel(levelStr)
	if err != nil {
		Log.Warnf("Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		Log.SetLevel(logrus.InfoLevel)
		return
	}
	Log.SetLevel(level)

	Log.Debugf("Logrus level set to: %s (source: %s)", level.String(), levelSource(cmd))
}

func levelSource(cmd *cobra.Command) string {
	if flag := cmd.Flags().Lookup(LevelKey); flag != nil && flag.Changed {
		return "flag"
	}
	if os.Getenv(EnvLevel) != "" {
		return "environment variable"
	}
	if viper.ConfigFileUsed() != "" && viper.IsSet(LevelKey) {
		return "config file"
	}
	return "default"
}
