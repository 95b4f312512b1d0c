package config

import (
	"github.com/spf13/viper"

	"github.com/modu-ai/kickstart/pkg/models"
)

// Default value constants.
const (
	DefaultGroupID    = "org.acme"
	DefaultVersion    = "1.0.0-SNAPSHOT"
	DefaultLogLevel   = "warn"
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
)

// NewDefaultSettings returns settings populated with compiled defaults.
func NewDefaultSettings() *Settings {
	return &Settings{
		Defaults: DefaultsConfig{
			GroupID:   DefaultGroupID,
			Version:   DefaultVersion,
			BuildTool: string(models.DefaultBuildTool),
		},
		Log: LogConfig{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultMaxSizeMB,
			MaxBackups: DefaultMaxBackups,
		},
	}
}

// setDefaults registers every key with viper. Keys without a default are
// still registered so that environment overrides reach Unmarshal.
func setDefaults(v *viper.Viper) {
	d := NewDefaultSettings()
	v.SetDefault("defaults.group_id", d.Defaults.GroupID)
	v.SetDefault("defaults.version", d.Defaults.Version)
	v.SetDefault("defaults.build_tool", d.Defaults.BuildTool)
	v.SetDefault("defaults.extensions", []string{})
	v.SetDefault("platform.file", "")
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
}
