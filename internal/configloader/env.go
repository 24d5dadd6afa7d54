package configloader

import (
	"os"
	"sort"
	"strings"

	"github.com/yaklabco/ctxport/pkg/config"
)

// envVarPrefix is the prefix for all ctxport environment variables.
const envVarPrefix = "CTXPORT_"

// envMappings maps environment variable names (without prefix) to config setters.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]func(cfg *config.Config, value string){
	"IGNORE": func(cfg *config.Config, value string) {
		cfg.IgnorePatterns = splitList(value)
	},
	"TEXT_EXTENSIONS": func(cfg *config.Config, value string) {
		for _, ext := range splitList(value) {
			cfg.TextExtensions[strings.ToLower(ext)] = struct{}{}
		}
	},
	"DEFAULT_LANGUAGE": func(cfg *config.Config, value string) {
		cfg.DefaultLanguage = value
	},
}

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// EnvOverlay builds a Config from CTXPORT_* variables. It returns nil when none are set.
// List values are comma-separated.
func EnvOverlay(lookup LookupFunc) *config.Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	names := make([]string, 0, len(envMappings))
	for name := range envMappings {
		names = append(names, name)
	}
	sort.Strings(names)

	var overlay *config.Config
	for _, name := range names {
		value, ok := lookup(envVarPrefix + name)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			continue
		}
		if overlay == nil {
			overlay = config.New()
		}
		envMappings[name](overlay, value)
	}
	return overlay
}

// ApplyEnv layers CTXPORT_* variables over cfg and reports whether any were set.
func ApplyEnv(cfg *config.Config, lookup LookupFunc) (*config.Config, bool) {
	overlay := EnvOverlay(lookup)
	if overlay == nil {
		return cfg, false
	}
	return cfg.Merge(overlay), true
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
