package config

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/modu-ai/kickstart/pkg/models"
)

// Dynamic token patterns that must not appear in settings values.
var dynamicTokenPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{\{[^}]+\}\}`),      // {{VAR}}
	regexp.MustCompile(`\$[A-Z_][A-Z0-9_]*`), // $VAR
}

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Validate checks the settings for correctness and reports every problem.
func Validate(s *Settings) error {
	var errs []ValidationError

	errs = append(errs, validateDefaults(&s.Defaults)...)
	errs = append(errs, validateLog(&s.Log)...)
	errs = append(errs, validateDynamicTokens(s)...)

	if len(errs) > 0 {
		return &ValidationErrors{Errors: errs}
	}
	return nil
}

func validateDefaults(d *DefaultsConfig) []ValidationError {
	var errs []ValidationError

	if d.GroupID != "" && !models.ValidGroupID(d.GroupID) {
		errs = append(errs, ValidationError{
			Field:   "defaults.group_id",
			Message: "must be dot-separated identifiers (example: org.acme)",
			Value:   d.GroupID,
			Wrapped: ErrInvalidConfig,
		})
	}
	if d.Version != "" && !models.ValidVersion(d.Version) {
		errs = append(errs, ValidationError{
			Field:   "defaults.version",
			Message: "must start with a digit (example: 1.0.0-SNAPSHOT)",
			Value:   d.Version,
			Wrapped: ErrInvalidConfig,
		})
	}
	if d.BuildTool != "" && !models.BuildTool(strings.ToLower(d.BuildTool)).IsValid() {
		errs = append(errs, ValidationError{
			Field:   "defaults.build_tool",
			Message: "must be one of: maven, gradle",
			Value:   d.BuildTool,
			Wrapped: ErrInvalidBuildTool,
		})
	}
	for _, ext := range d.Extensions {
		if strings.TrimSpace(ext) == "" {
			errs = append(errs, ValidationError{
				Field:   "defaults.extensions",
				Message: "must not contain empty entries",
				Wrapped: ErrInvalidConfig,
			})
			break
		}
	}
	return errs
}

func validateLog(l *LogConfig) []ValidationError {
	var errs []ValidationError

	if _, ok := logLevels[strings.ToLower(l.Level)]; l.Level != "" && !ok {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: "must be one of: debug, info, warn, error",
			Value:   l.Level,
			Wrapped: ErrInvalidLogLevel,
		})
	}
	if l.MaxSizeMB < 0 {
		errs = append(errs, ValidationError{
			Field:   "log.max_size_mb",
			Message: "must not be negative",
			Value:   l.MaxSizeMB,
			Wrapped: ErrInvalidConfig,
		})
	}
	if l.MaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "log.max_backups",
			Message: "must not be negative",
			Value:   l.MaxBackups,
			Wrapped: ErrInvalidConfig,
		})
	}
	return errs
}

// validateDynamicTokens rejects values that still hold template tokens.
// Versions are exempt because ${revision} style values are legitimate.
func validateDynamicTokens(s *Settings) []ValidationError {
	fields := map[string]string{
		"defaults.group_id": s.Defaults.GroupID,
		"platform.file":     s.Platform.File,
		"log.file":          s.Log.File,
	}
	var errs []ValidationError
	for _, field := range []string{"defaults.group_id", "platform.file", "log.file"} {
		value := fields[field]
		for _, re := range dynamicTokenPatterns {
			if re.MatchString(value) {
				errs = append(errs, ValidationError{
					Field:   field,
					Message: "contains an unexpanded token",
					Value:   value,
					Wrapped: ErrDynamicToken,
				})
				break
			}
		}
	}
	return errs
}

// LogLevel returns the configured slog level, warn when unset.
func (s *Settings) LogLevel() slog.Level {
	if lvl, ok := logLevels[strings.ToLower(s.Log.Level)]; ok {
		return lvl
	}
	return slog.LevelWarn
}

// ApplyDefaults fills the empty coordinates of cfg from the settings.
// Extensions from the settings come first, followed by cfg's own.
func (s *Settings) ApplyDefaults(cfg *models.ProjectConfig) {
	if cfg.GroupID == "" {
		cfg.GroupID = s.Defaults.GroupID
	}
	if cfg.Version == "" {
		cfg.Version = s.Defaults.Version
	}
	if cfg.BuildTool == "" && s.Defaults.BuildTool != "" {
		cfg.BuildTool = models.BuildTool(strings.ToLower(s.Defaults.BuildTool))
	}
	if len(s.Defaults.Extensions) > 0 {
		cfg.Extensions = append(append([]string(nil), s.Defaults.Extensions...), cfg.Extensions...)
	}
}
