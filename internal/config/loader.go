package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/modu-ai/kickstart/internal/defs"
)

// Dir returns the per-user settings directory (~/.kickstart).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defs.ConfigDir
	}
	return filepath.Join(home, defs.ConfigDir)
}

// FilePath returns the default settings file (~/.kickstart/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), defs.ConfigYAML)
}

// newViper creates a viper instance with defaults and KICKSTART_*
// environment overrides.
func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(defs.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the settings file at path, applies environment overrides and
// validates the result. An empty path selects FilePath and tolerates its
// absence; an explicit path must exist.
func Load(path string) (*Settings, error) {
	v := newViper()

	explicit := path != ""
	if !explicit {
		path = FilePath()
	}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w: %w", path, ErrInvalidYAML, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
		slog.Debug("settings file not found, using defaults", "path", path)
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	default:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w: %w", ErrInvalidConfig, err)
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
