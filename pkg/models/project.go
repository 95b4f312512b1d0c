package models

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultResourcePath is the HTTP path of the generated sample resource.
const DefaultResourcePath = "/hello"

// Features holds the typed feature flags of a scaffold request.
type Features struct {
	// SpringController generates a Spring Web style controller instead of
	// the default JAX-RS resource.
	SpringController bool `yaml:"spring_controller" json:"spring_controller"`

	// ResourcePath is the path the sample resource is mounted on.
	ResourcePath string `yaml:"resource_path" json:"resource_path"`
}

// ProjectConfig describes one scaffold request.
type ProjectConfig struct {
	GroupID    string    `yaml:"group_id" json:"group_id"`
	ArtifactID string    `yaml:"artifact_id" json:"artifact_id"`
	Version    string    `yaml:"version" json:"version"`
	BuildTool  BuildTool `yaml:"build_tool" json:"build_tool"`

	// ClassName is the optional sample resource class, either fully qualified
	// (org.acme.MyResource) or simple (MyResource). Empty means no sample class.
	ClassName string `yaml:"class_name" json:"class_name"`

	Features Features `yaml:"features" json:"features"`

	// Extensions lists extra dependencies as "artifactId",
	// "groupId:artifactId" or "groupId:artifactId:version".
	Extensions []string `yaml:"extensions" json:"extensions"`

	// PlatformOverrides replaces platform descriptor values by key.
	PlatformOverrides map[string]string `yaml:"platform_overrides" json:"platform_overrides"`

	// Root is the target directory.
	Root string `yaml:"root" json:"root"`

	// DryRun plans the scaffold without touching the filesystem.
	DryRun bool `yaml:"dry_run" json:"dry_run"`
}

// Clone returns a deep copy so callers may keep mutating the original.
func (c ProjectConfig) Clone() ProjectConfig {
	out := c
	out.Extensions = slices.Clone(c.Extensions)
	if c.PlatformOverrides != nil {
		out.PlatformOverrides = maps.Clone(c.PlatformOverrides)
	}
	return out
}

// EffectiveBuildTool returns the configured build tool or the default.
func (c ProjectConfig) EffectiveBuildTool() BuildTool {
	if c.BuildTool == "" {
		return DefaultBuildTool
	}
	return c.BuildTool
}

// EffectiveResourcePath returns the configured resource path or the default.
func (c ProjectConfig) EffectiveResourcePath() string {
	if c.Features.ResourcePath == "" {
		return DefaultResourcePath
	}
	return c.Features.ResourcePath
}

// Dependency is a group:artifact[:version] coordinate with an optional scope.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Scope      string
}

// Key returns the version-less "group:artifact" coordinate used for matching.
func (d Dependency) Key() string {
	return d.GroupID + ":" + d.ArtifactID
}

// String returns "group:artifact" or "group:artifact:version".
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Key()
	}
	return d.Key() + ":" + d.Version
}

// ParseDependency parses an extension spec. A bare artifact id is placed in
// defaultGroup and gets prefix prepended unless it already starts with it.
func ParseDependency(spec, defaultGroup, prefix string) (Dependency, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Dependency{}, fmt.Errorf("%w: empty extension", ErrInvalidConfiguration)
	}

	parts := strings.Split(spec, ":")
	var d Dependency
	switch len(parts) {
	case 1:
		d.GroupID = defaultGroup
		d.ArtifactID = parts[0]
		if prefix != "" && !strings.HasPrefix(d.ArtifactID, prefix) {
			d.ArtifactID = prefix + d.ArtifactID
		}
	case 2:
		d.GroupID, d.ArtifactID = parts[0], parts[1]
	case 3:
		d.GroupID, d.ArtifactID, d.Version = parts[0], parts[1], parts[2]
	default:
		return Dependency{}, fmt.Errorf("%w: extension %q has too many segments", ErrInvalidConfiguration, spec)
	}

	if !groupIDPattern.MatchString(d.GroupID) {
		return Dependency{}, fmt.Errorf("%w: extension %q has invalid group id", ErrInvalidConfiguration, spec)
	}
	if !artifactIDPattern.MatchString(d.ArtifactID) {
		return Dependency{}, fmt.Errorf("%w: extension %q has invalid artifact id", ErrInvalidConfiguration, spec)
	}
	if d.Version != "" && !versionPattern.MatchString(d.Version) {
		return Dependency{}, fmt.Errorf("%w: extension %q has invalid version", ErrInvalidConfiguration, spec)
	}
	return d, nil
}
