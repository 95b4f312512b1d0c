package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modu-ai/kickstart/internal/buildtool"
	"github.com/modu-ai/kickstart/pkg/models"
)

// DetectState classifies root for the given build tool. Only the names of
// top-level entries are inspected, never file contents. Warnings name
// descriptors that belong to another ecosystem.
func DetectState(root string, bt models.BuildTool) (models.DetectedState, []string, error) {
	root = filepath.Clean(root)
	if err := validateRoot(root); err != nil {
		return models.StateEmpty, nil, err
	}
	tool, err := buildtool.For(bt)
	if err != nil {
		return models.StateEmpty, nil, fmt.Errorf("%w: %w", models.ErrInvalidConfiguration, err)
	}
	return tool.Detect(root)
}

// validateRoot accepts a missing path or a directory.
func validateRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInvalidRoot, root)
	}
	return nil
}
