package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/kickstart/internal/config"
)

// Dependencies holds the services a command run needs. It is built once per
// command execution from the persistent flags and the user settings.
type Dependencies struct {
	Settings *config.Settings
	Logger   *slog.Logger

	closer io.Closer
}

// Close releases the log file, if any.
func (d *Dependencies) Close() error {
	return d.closer.Close()
}

// newDependencies loads the settings selected by --config, applies the
// --log-level and --log-file overrides and builds the logger.
func newDependencies(cmd *cobra.Command) (*Dependencies, error) {
	settings, err := config.Load(getStringFlag(cmd, "config"))
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if lvl := getStringFlag(cmd, "log-level"); lvl != "" {
		settings.Log.Level = strings.ToLower(lvl)
	}
	if file := getStringFlag(cmd, "log-file"); file != "" {
		settings.Log.File = file
	}
	if err := config.Validate(settings); err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(loggerOptions{
		level:      settings.LogLevel(),
		file:       settings.Log.File,
		maxSizeMB:  settings.Log.MaxSizeMB,
		maxBackups: settings.Log.MaxBackups,
		console:    cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	return &Dependencies{Settings: settings, Logger: logger, closer: closer}, nil
}

// getStringFlag retrieves a string flag value, including persistent flags.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
