package configloader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/logging"
)

// isolatedResolver returns a resolver whose global config lives under a fresh temp home.
func isolatedResolver(t *testing.T) (*Resolver, string) {
	t.Helper()
	home := t.TempDir()
	return NewResolver(ResolverOptions{
		HomeDir:       home,
		XDGConfigHome: filepath.Join(home, "xdg"),
		Logger:        logging.Discard(),
	}), home
}

func pyConfig(lang string) string {
	return `{"language_map": {".py": "` + lang + `"}}`
}

func TestResolvePrecedence(t *testing.T) {
	t.Parallel()

	resolver, home := isolatedResolver(t)
	writeFile(t, filepath.Join(home, "xdg", "ctxport", GlobalConfigFile), pyConfig("py3"))

	root := t.TempDir()
	target := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(target, 0o755))
	writeFile(t, filepath.Join(root, ProjectConfigFile), pyConfig("py3-custom"))
	writeFile(t, filepath.Join(target, ProjectConfigFile), pyConfig("local-py"))

	res, err := resolver.Resolution(context.Background(), target)
	require.NoError(t, err)

	assert.Equal(t, "local-py", res.Config.LanguageByExtension[".py"])
	assert.Equal(t, "go", res.Config.LanguageByExtension[".go"], "defaults survive")

	kinds := make([]SourceKind, 0, len(res.Sources))
	for _, s := range res.Sources {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SourceKind{SourceDefault, SourceGlobal, SourceDirectory, SourceDirectory}, kinds)

	middle, err := resolver.Resolve(context.Background(), filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Equal(t, "py3-custom", middle.LanguageByExtension[".py"])
}

func TestResolveGlobalOnly(t *testing.T) {
	t.Parallel()

	resolver, home := isolatedResolver(t)
	writeFile(t, filepath.Join(home, ".config", "ctxport", GlobalConfigFile), pyConfig("py3"))

	cfg, err := resolver.Resolve(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "py3", cfg.LanguageByExtension[".py"])
}

func TestResolveIgnoreGlobal(t *testing.T) {
	t.Parallel()

	home := t.TempDir()
	writeFile(t, filepath.Join(home, ".config", "ctxport", GlobalConfigFile), pyConfig("py3"))
	resolver := NewResolver(ResolverOptions{
		HomeDir:       home,
		XDGConfigHome: filepath.Join(home, "xdg"),
		IgnoreGlobal:  true,
		Logger:        logging.Discard(),
	})

	cfg, err := resolver.Resolve(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.LanguageByExtension[".py"])
}

func TestResolveLegacyIgnoreIsLast(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigFile), `{"ignore_patterns": ["dist/"]}`)
	writeFile(t, filepath.Join(dir, LegacyIgnoreFile), "*.log\ndist/\n")

	res, err := resolver.Resolution(context.Background(), dir)
	require.NoError(t, err)

	patterns := res.Config.IgnorePatterns
	require.GreaterOrEqual(t, len(patterns), 2)
	assert.Equal(t, []string{"dist/", "*.log"}, patterns[len(patterns)-2:])
	assert.Equal(t, SourceLegacy, res.Sources[len(res.Sources)-1].Kind)
}

func TestResolveLegacyIgnoreNotInherited(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	parent := t.TempDir()
	child := filepath.Join(parent, "child")
	require.NoError(t, os.MkdirAll(child, 0o755))
	writeFile(t, filepath.Join(parent, LegacyIgnoreFile), "secret.txt\n")

	cfg, err := resolver.Resolve(context.Background(), child)
	require.NoError(t, err)
	assert.NotContains(t, cfg.IgnorePatterns, "secret.txt")
}

func TestResolveMalformedConfigDoesNotAbort(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigFile), `{not json`)

	res, err := resolver.Resolution(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "python", res.Config.LanguageByExtension[".py"])
	assert.NotEmpty(t, res.Warnings)
}

func TestResolveCache(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ProjectConfigFile)
	writeFile(t, cfgPath, pyConfig("first"))

	ctx := context.Background()
	first, err := resolver.Resolve(ctx, dir)
	require.NoError(t, err)

	writeFile(t, cfgPath, pyConfig("second"))

	again, err := resolver.Resolve(ctx, dir+string(filepath.Separator)+".")
	require.NoError(t, err)
	assert.Same(t, first, again, "equivalent paths share a cache entry")
	assert.Equal(t, "first", again.LanguageByExtension[".py"])

	resolver.ClearCache()
	fresh, err := resolver.Resolve(ctx, dir)
	require.NoError(t, err)
	assert.Equal(t, "second", fresh.LanguageByExtension[".py"])
}

func TestResolveDoesNotMutateDefaults(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, ProjectConfigFile), pyConfig("changed"))

	_, err := resolver.Resolve(context.Background(), dir)
	require.NoError(t, err)

	other, _ := isolatedResolver(t)
	cfg, err := other.Resolve(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.LanguageByExtension[".py"])
}

func TestResolveCancelledContext(t *testing.T) {
	t.Parallel()

	resolver, _ := isolatedResolver(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := resolver.Resolve(ctx, t.TempDir())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResolveHomeConfigBeatsAncestor(t *testing.T) {
	t.Parallel()

	outer := t.TempDir()
	home := filepath.Join(outer, "home")
	target := filepath.Join(home, "proj")
	require.NoError(t, os.MkdirAll(target, 0o755))
	writeFile(t, filepath.Join(outer, ProjectConfigFile), pyConfig("outer"))
	writeFile(t, filepath.Join(home, ProjectConfigFile), pyConfig("home"))

	resolver := NewResolver(ResolverOptions{
		HomeDir:       home,
		XDGConfigHome: filepath.Join(home, "xdg"),
		Logger:        logging.Discard(),
	})

	res, err := resolver.Resolution(context.Background(), target)
	require.NoError(t, err)
	assert.Equal(t, "home", res.Config.LanguageByExtension[".py"])

	kinds := make([]SourceKind, 0, len(res.Sources))
	for _, s := range res.Sources {
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []SourceKind{SourceDefault, SourceGlobal, SourceDirectory, SourceDirectory}, kinds,
		"the home file is merged again at its place in the walk")
}
