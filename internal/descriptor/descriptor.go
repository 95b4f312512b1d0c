// Package descriptor holds what the build descriptor merges share: the
// malformed-input sentinel, the merge result and the requirement set
// injected into a descriptor. Format specific trees live in the pom and
// gradle subpackages.
package descriptor

import (
	"errors"
	"fmt"

	"github.com/modu-ai/kickstart/pkg/models"
)

// ErrMalformed indicates an existing descriptor could not be parsed.
// Malformed descriptors are never rewritten.
var ErrMalformed = errors.New("malformed descriptor")

// SyntaxError reports where a descriptor failed to parse.
type SyntaxError struct {
	File   string
	Offset int
	Msg    string
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: offset %d: %s", e.File, e.Offset, e.Msg)
	}
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Unwrap returns ErrMalformed.
func (e *SyntaxError) Unwrap() error {
	return ErrMalformed
}

// Requirements lists what a merge must make present in a descriptor.
type Requirements struct {
	// Coordinates of the generated project, used when creating missing
	// identity entries (settings rootProject.name, for instance).
	GroupID    string
	ArtifactID string
	Version    string

	PluginGroupID    string
	PluginArtifactID string
	PluginVersion    string
	GradlePluginID   string

	BOMGroupID    string
	BOMArtifactID string
	BOMVersion    string

	// Dependencies are appended when no entry with the same group and
	// artifact exists. Scope "test" marks test-only dependencies.
	Dependencies []models.Dependency
}

// Result is the outcome of merging requirements into one document.
type Result struct {
	Content  []byte
	Changed  bool
	Warnings []string
}
