package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/config"
)

// SourceKind identifies the layer a configuration came from.
type SourceKind string

const (
	SourceDefault   SourceKind = "default"
	SourceGlobal    SourceKind = "global"
	SourceDirectory SourceKind = "directory"
	SourceLegacy    SourceKind = "legacy"
	SourceEnv       SourceKind = "env"
	SourceCLI       SourceKind = "cli"
)

// Source is one configuration layer that contributed to a resolution.
type Source struct {
	Kind SourceKind
	Path string
}

// String renders the source for logs and `config show`.
func (s Source) String() string {
	if s.Path == "" {
		return string(s.Kind)
	}
	return string(s.Kind) + " " + s.Path
}

// Resolution is the effective configuration for one directory.
type Resolution struct {
	// Dir is the normalised directory the resolution belongs to.
	Dir string

	// Config is the merged configuration. Shared with the cache; do not modify.
	Config *config.Config

	// Sources lists loaded layers in precedence order, lowest first.
	Sources []Source

	// Warnings contains non-fatal problems found while loading.
	Warnings []string
}

// ResolverOptions configures a Resolver.
type ResolverOptions struct {
	// XDGConfigHome overrides $XDG_CONFIG_HOME.
	XDGConfigHome string

	// HomeDir overrides the user's home directory.
	HomeDir string

	// IgnoreGlobal skips the global configuration.
	IgnoreGlobal bool

	// Logger receives warnings and debug output. Defaults to logging.Default().
	Logger *log.Logger
}

// Resolver computes effective configurations and caches them per directory.
type Resolver struct {
	opts   ResolverOptions
	logger *log.Logger

	mu         sync.Mutex
	cache      map[string]*Resolution
	global     *globalLayer
	globalDone bool
}

type globalLayer struct {
	path     string
	config   *config.Config
	warnings []string
}

// NewResolver creates a resolver. Empty XDGConfigHome and HomeDir fall back to the environment.
func NewResolver(opts ResolverOptions) *Resolver {
	if opts.XDGConfigHome == "" {
		opts.XDGConfigHome = os.Getenv("XDG_CONFIG_HOME")
	}
	if opts.HomeDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			opts.HomeDir = home
		}
	}

	return &Resolver{
		opts:   opts,
		logger: logging.OrDefault(opts.Logger),
		cache:  make(map[string]*Resolution),
	}
}

// Resolve returns the effective configuration for dir.
func (r *Resolver) Resolve(ctx context.Context, dir string) (*config.Config, error) {
	res, err := r.Resolution(ctx, dir)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// Resolution returns the effective configuration for dir along with its sources.
// Repeated calls for the same directory return the cached value.
func (r *Resolver) Resolution(ctx context.Context, dir string) (*Resolution, error) {
	key, err := normalizeDir(dir)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.cache[key]; ok {
		return cached, nil
	}

	res, err := r.resolve(ctx, key)
	if err != nil {
		return nil, err
	}
	r.cache[key] = res
	return res, nil
}

// ClearCache drops cached resolutions and the memoised global config.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()

	clear(r.cache)
	r.global = nil
	r.globalDone = false
}

func (r *Resolver) resolve(ctx context.Context, dir string) (*Resolution, error) {
	res := &Resolution{
		Dir:     dir,
		Config:  config.Default(),
		Sources: []Source{{Kind: SourceDefault}},
	}

	global := r.loadGlobal()
	if global != nil {
		res.Config = res.Config.Merge(global.config)
		res.Sources = append(res.Sources, Source{Kind: SourceGlobal, Path: global.path})
		res.Warnings = append(res.Warnings, global.warnings...)
	}

	paths, err := FindDirectoryConfigs(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("discover directory configs: %w", err)
	}
	for _, p := range paths {
		cfg, warnings := LoadFile(p)
		r.warn(warnings)
		res.Warnings = append(res.Warnings, warnings...)
		res.Config = res.Config.Merge(cfg)
		res.Sources = append(res.Sources, Source{Kind: SourceDirectory, Path: p})
		r.logger.Debug("loaded config", logging.FieldSource, SourceDirectory, logging.FieldPath, p)
	}

	if legacy := FindLegacyIgnore(dir); legacy != "" {
		cfg, err := LoadLegacyIgnoreFile(legacy)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", legacy, err)
			r.warn([]string{msg})
			res.Warnings = append(res.Warnings, msg)
		} else {
			res.Config = res.Config.Merge(cfg)
			res.Sources = append(res.Sources, Source{Kind: SourceLegacy, Path: legacy})
			r.logger.Debug("loaded legacy ignore file", logging.FieldPath, legacy,
				"patterns", len(cfg.IgnorePatterns))
		}
	}

	r.logger.Debug("resolved configuration", logging.FieldDir, dir, logging.FieldSources, len(res.Sources))
	return res, nil
}

// loadGlobal loads the global config once per resolver. Must be called with r.mu held.
func (r *Resolver) loadGlobal() *globalLayer {
	if r.globalDone {
		return r.global
	}
	r.globalDone = true

	if r.opts.IgnoreGlobal {
		return nil
	}

	path := FindGlobalConfig(r.opts.XDGConfigHome, r.opts.HomeDir)
	if path == "" {
		r.logger.Debug("no global config found")
		return nil
	}

	cfg, warnings := LoadFile(path)
	r.warn(warnings)
	r.global = &globalLayer{path: path, config: cfg, warnings: warnings}
	r.logger.Debug("loaded config", logging.FieldSource, SourceGlobal, logging.FieldPath, path)
	return r.global
}

func (r *Resolver) warn(warnings []string) {
	for _, w := range warnings {
		r.logger.Warn(w)
	}
}

// normalizeDir returns the absolute, symlink-free form of dir when it can be resolved.
func normalizeDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}
