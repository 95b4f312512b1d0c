// Package project implements the "create" operation: it classifies the
// target directory, writes or merges the build descriptor, scaffolds the
// remaining files and reports everything in an immutable Outcome.
package project

import (
	"context"
	"errors"

	"github.com/modu-ai/kickstart/internal/descriptor"
	"github.com/modu-ai/kickstart/pkg/models"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidRoot indicates the target path exists but is not a directory.
	ErrInvalidRoot = errors.New("invalid project root path")

	// ErrPlatformUnavailable indicates the platform descriptor could not be loaded.
	ErrPlatformUnavailable = errors.New("platform descriptor unavailable")
)

// FailureKind classifies why a create operation failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureInvalidConfiguration
	FailureUnreadableDescriptor
	FailureFilesystem
	FailureCancelled
)

// String returns the kebab-case kind name.
func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidConfiguration:
		return "invalid-configuration"
	case FailureUnreadableDescriptor:
		return "unreadable-descriptor"
	case FailureFilesystem:
		return "filesystem"
	case FailureCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// classify maps an error to its failure kind. Anything that is neither a
// configuration, descriptor nor cancellation problem happened while
// producing files and counts as a filesystem failure.
func classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return FailureCancelled
	case errors.Is(err, models.ErrInvalidConfiguration):
		return FailureInvalidConfiguration
	case errors.Is(err, descriptor.ErrMalformed):
		return FailureUnreadableDescriptor
	default:
		return FailureFilesystem
	}
}
