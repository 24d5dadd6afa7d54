package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/yaklabco/ctxport/pkg/config"
)

const (
	appName = "ctxport"

	// ProjectConfigFile is searched in the target directory and every ancestor.
	ProjectConfigFile = config.ProjectFile

	// GlobalConfigFile lives under the user's config directory.
	GlobalConfigFile = config.GlobalFile

	// LegacyIgnoreFile is only read from the target directory.
	LegacyIgnoreFile = config.LegacyIgnoreFile
)

// GlobalConfigCandidates returns global config locations in preference order.
// Empty xdgConfigHome or homeDir disable the locations derived from them.
func GlobalConfigCandidates(xdgConfigHome, homeDir string) []string {
	var candidates []string
	if xdgConfigHome != "" {
		candidates = append(candidates, filepath.Join(xdgConfigHome, appName, GlobalConfigFile))
	}
	if homeDir != "" {
		candidates = append(candidates,
			filepath.Join(homeDir, ".config", appName, GlobalConfigFile),
			filepath.Join(homeDir, ProjectConfigFile),
		)
	}
	return candidates
}

// GlobalConfigTarget returns where `ctxport --init-global-config` writes.
func GlobalConfigTarget(xdgConfigHome, homeDir string) (string, error) {
	if xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, appName, GlobalConfigFile), nil
	}
	if homeDir == "" {
		return "", fmt.Errorf("cannot determine config directory: no home directory")
	}
	return filepath.Join(homeDir, ".config", appName, GlobalConfigFile), nil
}

// FindGlobalConfig returns the first existing global config, or "".
func FindGlobalConfig(xdgConfigHome, homeDir string) string {
	for _, p := range GlobalConfigCandidates(xdgConfigHome, homeDir) {
		if fileExists(p) {
			return p
		}
	}
	return ""
}

// FindDirectoryConfigs returns every ProjectConfigFile from dir up to and including the
// filesystem root, ordered root-most first so later entries take precedence.
func FindDirectoryConfigs(ctx context.Context, dir string) ([]string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve absolute path: %w", err)
	}

	var found []string
	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		path := filepath.Join(currentDir, ProjectConfigFile)
		if fileExists(path) {
			found = append(found, path)
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	// Walked closest-first; callers merge root-most first.
	slices.Reverse(found)
	return found, nil
}

// FindLegacyIgnore returns dir/context.ignore if it exists. Parents are not searched.
func FindLegacyIgnore(dir string) string {
	path := filepath.Join(dir, LegacyIgnoreFile)
	if fileExists(path) {
		return path
	}
	return ""
}

// fileExists returns true if the path exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
