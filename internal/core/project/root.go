package project

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveRoot turns the user supplied target into an absolute, clean path.
// An empty dir means the current working directory.
func ResolveRoot(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	if err := validateRoot(abs); err != nil {
		return "", err
	}
	return abs, nil
}

// DefaultRoot returns the directory a project named artifactID is created
// in when no target is given: a child of the working directory.
func DefaultRoot(artifactID string) (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(wd, artifactID), nil
}
