// Package configloader discovers, loads and layers ctxport configuration.
//
// Sources are merged in this order, later ones winning: built-in defaults, the
// global config, every .ctxport.json from the filesystem root down to the target
// directory, and finally a legacy context.ignore in the target directory.
package configloader

import (
	"bytes"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/yaklabco/ctxport/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// commentPrefix marks keys and list entries that are ignored when loading.
const commentPrefix = "#"

// Config file keys.
const (
	keyLanguageMap     = "language_map"
	keyFilenameMap     = "filename_map"
	keyTextExtensions  = "text_extensions"
	keyIgnorePatterns  = "ignore_patterns"
	keyDefaultLanguage = "default_language"
)

// LoadFile reads a JSON config file.
//
// The file never fails the caller for content problems: unreadable or malformed
// files yield an empty Config plus a warning, and values of the wrong type are
// skipped one key at a time, each with a warning.
func LoadFile(path string) (*config.Config, []string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return config.New(), []string{fmt.Sprintf("%s: read config: %v", path, err)}
	}

	cfg, warnings := Parse(data)
	for i, w := range warnings {
		warnings[i] = path + ": " + w
	}
	return cfg, warnings
}

// Parse decodes config file content. See LoadFile for the error policy.
func Parse(data []byte) (*config.Config, []string) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return config.New(), []string{fmt.Sprintf("invalid JSON, ignoring file: %v", err)}
	}

	root, ok := doc.(map[string]any)
	if !ok {
		return config.New(), []string{"config must be a JSON object, ignoring file"}
	}

	var warnings []string
	validation := &ValidationResult{}
	validateDocument(stripComments(root), validation)
	for _, verr := range validation.Errors {
		warnings = append(warnings, verr.Error())
	}

	return decode(root), warnings
}

// decode builds a Config from a generic JSON object, keeping only well-typed values.
func decode(root map[string]any) *config.Config {
	cfg := config.New()

	if m, ok := root[keyLanguageMap].(map[string]any); ok {
		decodeStringMap(m, cfg.LanguageByExtension)
	}
	if m, ok := root[keyFilenameMap].(map[string]any); ok {
		decodeStringMap(m, cfg.LanguageByFilename)
	}
	if list, ok := root[keyTextExtensions].([]any); ok {
		for _, ext := range decodeStringList(list) {
			cfg.TextExtensions[strings.ToLower(ext)] = struct{}{}
		}
	}
	if list, ok := root[keyIgnorePatterns].([]any); ok {
		cfg.IgnorePatterns = decodeStringList(list)
	}
	if lang, ok := root[keyDefaultLanguage].(string); ok {
		cfg.DefaultLanguage = lang
	}

	return cfg
}

func decodeStringMap(src map[string]any, dst map[string]string) {
	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.HasPrefix(k, commentPrefix) {
			continue
		}
		if v, ok := src[k].(string); ok {
			dst[strings.ToLower(k)] = v
		}
	}
}

func decodeStringList(src []any) []string {
	var out []string
	for _, item := range src {
		s, ok := item.(string)
		if !ok || strings.HasPrefix(s, commentPrefix) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// stripComments returns a copy of doc without comment keys or comment list entries,
// so the schema only sees real settings.
func stripComments(doc any) any {
	switch v := doc.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			if strings.HasPrefix(k, commentPrefix) {
				continue
			}
			out[k] = stripComments(child)
		}
		return out
	case []any:
		out := make([]any, 0, len(v))
		for _, child := range v {
			if s, ok := child.(string); ok && strings.HasPrefix(s, commentPrefix) {
				continue
			}
			out = append(out, stripComments(child))
		}
		return out
	default:
		return doc
	}
}

// LoadLegacyIgnoreFile reads a newline-separated ignore list. Lines are trimmed;
// blank lines and lines starting with "#" are skipped.
func LoadLegacyIgnoreFile(path string) (*config.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ignore file: %w", err)
	}
	return &config.Config{IgnorePatterns: ParseIgnoreLines(data)}, nil
}

// ParseIgnoreLines extracts patterns from context.ignore content.
func ParseIgnoreLines(data []byte) []string {
	var patterns []string
	for line := range strings.Lines(string(data)) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns
}
