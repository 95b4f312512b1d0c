package config

// Settings is the full user settings document.
type Settings struct {
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
	Platform PlatformConfig `mapstructure:"platform" yaml:"platform"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

// DefaultsConfig supplies project coordinates the command line leaves out.
type DefaultsConfig struct {
	GroupID    string   `mapstructure:"group_id" yaml:"group_id"`
	Version    string   `mapstructure:"version" yaml:"version"`
	BuildTool  string   `mapstructure:"build_tool" yaml:"build_tool"`
	Extensions []string `mapstructure:"extensions" yaml:"extensions"`
}

// PlatformConfig selects the platform descriptor.
type PlatformConfig struct {
	// File is a YAML platform descriptor. Empty selects the embedded one.
	File string `mapstructure:"file" yaml:"file"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	File       string `mapstructure:"file" yaml:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}
