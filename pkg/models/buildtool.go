package models

import (
	"fmt"
	"strings"
)

// BuildTool identifies the build tooling a scaffold is generated for.
type BuildTool string

const (
	// BuildToolMaven generates a pom.xml based project (default).
	BuildToolMaven BuildTool = "maven"

	// BuildToolGradle generates a Groovy DSL Gradle project.
	BuildToolGradle BuildTool = "gradle"
)

// DefaultBuildTool is used when no build tool is chosen.
const DefaultBuildTool = BuildToolMaven

// ValidBuildTools returns all supported build tools in display order.
func ValidBuildTools() []BuildTool {
	return []BuildTool{BuildToolMaven, BuildToolGradle}
}

// IsValid reports whether t is a supported build tool.
func (t BuildTool) IsValid() bool {
	switch t {
	case BuildToolMaven, BuildToolGradle:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (t BuildTool) String() string {
	return string(t)
}

// ParseBuildTool converts a user supplied name into a BuildTool.
// The empty string maps to DefaultBuildTool.
func ParseBuildTool(name string) (BuildTool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultBuildTool, nil
	}
	t := BuildTool(name)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown build tool %q (want one of: %s)",
			ErrInvalidConfiguration, name, strings.Join(buildToolStrings(), ", "))
	}
	return t, nil
}

func buildToolStrings() []string {
	tools := ValidBuildTools()
	out := make([]string, len(tools))
	for i, t := range tools {
		out[i] = string(t)
	}
	return out
}
