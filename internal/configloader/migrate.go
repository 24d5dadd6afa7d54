package configloader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrNothingToMigrate is returned when the directory has no legacy ignore file.
var ErrNothingToMigrate = errors.New("no " + LegacyIgnoreFile + " to migrate")

// MigrationResult describes the conversion of a legacy ignore file into a project config.
type MigrationResult struct {
	// SourcePath is the legacy ignore file that was read.
	SourcePath string

	// TargetPath is the project config to write.
	TargetPath string

	// TargetExists is true when TargetPath already existed and was extended.
	TargetExists bool

	// Content is the new project config.
	Content []byte

	// Added lists patterns that were not already in the project config.
	Added []string

	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string
}

// MigrateLegacyIgnore folds dir/context.ignore into dir/.ctxport.json.
// Existing settings in the project config are preserved, including comment entries.
// Nothing is written; the caller decides where and how to persist Content.
func MigrateLegacyIgnore(dir string) (*MigrationResult, error) {
	result := &MigrationResult{
		SourcePath: filepath.Join(dir, LegacyIgnoreFile),
		TargetPath: filepath.Join(dir, ProjectConfigFile),
	}

	legacy, err := os.ReadFile(result.SourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNothingToMigrate
		}
		return nil, fmt.Errorf("read %s: %w", LegacyIgnoreFile, err)
	}
	patterns := ParseIgnoreLines(legacy)

	doc := map[string]any{}
	existing, err := os.ReadFile(result.TargetPath)
	switch {
	case err == nil:
		result.TargetExists = true
		parsed, perr := jsonschema.UnmarshalJSON(bytes.NewReader(existing))
		obj, ok := parsed.(map[string]any)
		if perr != nil || !ok {
			return nil, fmt.Errorf("existing %s is not a JSON object; fix or remove it first", result.TargetPath)
		}
		doc = obj
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("read %s: %w", ProjectConfigFile, err)
	}

	var current []any
	switch v := doc[keyIgnorePatterns].(type) {
	case nil:
	case []any:
		current = v
	default:
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s in %s is not a list; replacing it", keyIgnorePatterns, result.TargetPath))
	}

	have := make(map[string]bool, len(current))
	for _, item := range current {
		if s, ok := item.(string); ok {
			have[s] = true
		}
	}
	for _, p := range patterns {
		if have[p] {
			continue
		}
		have[p] = true
		current = append(current, p)
		result.Added = append(result.Added, p)
	}
	if current == nil {
		current = []any{}
	}
	doc[keyIgnorePatterns] = current

	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ProjectConfigFile, err)
	}
	result.Content = append(content, '\n')

	return result, nil
}
