package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the project configuration file looked up by Find.
const ConfigFileName = "ocl.toml"

// Find walks up from startDir to locate ocl.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindRoot returns the directory containing ocl.toml, if any.
func FindRoot(startDir string) (root string, ok bool, err error) {
	configPath, ok, err := Find(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(configPath), true, nil
}
