package classify_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/classify"
	"github.com/yaklabco/ctxport/pkg/config"
	"github.com/yaklabco/ctxport/pkg/pattern"
)

func writeFile(t *testing.T, root, rel string, content []byte) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

func newClassifier(t *testing.T, root string, cfg *config.Config, opts classify.Options) *classify.Classifier {
	t.Helper()
	opts.Logger = logging.Discard()
	c, err := classify.New(root, cfg, opts)
	require.NoError(t, err)
	return c
}

func binaryContent(n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = byte(i % 256)
	}
	return buf
}

func TestClassifyDefaults(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", []byte("package main\n"))
	writeFile(t, root, "Dockerfile", []byte("FROM alpine\n"))
	writeFile(t, root, "archive.bin", binaryContent(5000))
	writeFile(t, root, ".ctxport.json", []byte("{}"))
	writeFile(t, root, "ctxport.json", []byte("{}"))
	writeFile(t, root, "context.ignore", []byte("x\n"))
	writeFile(t, root, "node_modules/lib/index.js", []byte("x"))
	writeFile(t, root, "src/node_modules/pkg/a.js", []byte("x"))
	writeFile(t, root, "app.min.js", []byte("x"))
	writeFile(t, root, "notes", []byte("plain words\n"))
	writeFile(t, root, "LICENSE.weird", []byte("MIT\n"))
	writeFile(t, root, "letter", []byte{0x93, 'D', 'e', 'a', 'r', 0x94, ' ', 0x85, '\n'})
	writeFile(t, root, "garbled", []byte{'a', 0x81, 0x8D, 'b', 0xE9})

	c := newClassifier(t, root, config.Default(), classify.Options{})

	tests := []struct {
		path     string
		include  bool
		language string
		reason   classify.Reason
	}{
		{path: "main.go", include: true, language: "go"},
		{path: "Dockerfile", include: true, language: "dockerfile"},
		{path: "archive.bin", reason: classify.ReasonBinary},
		{path: ".ctxport.json", reason: classify.ReasonProtected},
		{path: "ctxport.json", reason: classify.ReasonProtected},
		{path: "context.ignore", reason: classify.ReasonProtected},
		{path: "node_modules/lib/index.js", reason: classify.ReasonIgnored},
		{path: "src/node_modules/pkg/a.js", reason: classify.ReasonIgnored},
		{path: "app.min.js", reason: classify.ReasonIgnored},
		{path: "notes", include: true, language: ""},
		{path: "LICENSE.weird", include: true, language: ""},
		{path: "letter", include: true, language: ""},
		{path: "garbled", reason: classify.ReasonBinary},
		{path: "src", reason: classify.ReasonNotRegular},
		{path: "missing.txt", reason: classify.ReasonNotRegular},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()
			d := c.Classify(tt.path)
			assert.Equal(t, tt.include, d.Include)
			assert.Equal(t, tt.reason, d.Reason)
			assert.Equal(t, tt.language, d.Language)
		})
	}
}

func TestClassifyDockerfileWithoutTextExtensions(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "Dockerfile", []byte("FROM alpine\n"))

	cfg := config.Default().Clone()
	cfg.TextExtensions = config.NewStringSet()

	assert.True(t, classify.IsText(filepath.Join(root, "Dockerfile"), cfg))
	assert.Equal(t, "dockerfile", classify.LanguageFor("Dockerfile", cfg))

	d := newClassifier(t, root, cfg, classify.Options{}).Classify("Dockerfile")
	assert.True(t, d.Include)
	assert.Equal(t, "dockerfile", d.Language)
}

func TestClassifyIgnoredPatternIsReported(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "a/.git/config", []byte("[core]\n"))

	d := newClassifier(t, root, config.Default(), classify.Options{}).Classify("a/.git/config")
	assert.False(t, d.Include)
	assert.Equal(t, ".git/", d.Pattern)
	assert.Equal(t, "a/.git/config", d.RelPath)
}

func TestClassifyDefaultLanguage(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "notes.txt", []byte("hi\n"))

	cfg := config.Default().Merge(&config.Config{DefaultLanguage: "text"})
	d := newClassifier(t, root, cfg, classify.Options{}).Classify("notes.txt")
	assert.True(t, d.Include)
	assert.Equal(t, "text", d.Language)
}

func TestClassifyIsIdempotent(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	for _, rel := range []string{"a.py", "b.bin", "venv/x.py", "README"} {
		content := []byte("print(1)\n")
		if rel == "b.bin" {
			content = binaryContent(4096)
		}
		writeFile(t, root, rel, content)
	}

	c := newClassifier(t, root, config.Default(), classify.Options{})
	for _, rel := range []string{"a.py", "b.bin", "venv/x.py", "README"} {
		first := c.Classify(rel)
		second := c.Classify(filepath.Join(root, rel))
		assert.Equal(t, first, second, rel)
	}
}

func TestClassifyOptionalFilters(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "keep.go", []byte("package keep\n"))
	writeFile(t, root, "big.go", bytes.Repeat([]byte("a"), 2048))
	writeFile(t, root, "gen/out.go", []byte("package gen\n"))
	writeFile(t, root, "doc.md", []byte("# doc\n"))

	include, err := pattern.CompileInclude([]string{"*.go"})
	require.NoError(t, err)

	c := newClassifier(t, root, config.Default(), classify.Options{
		GitIgnore:   pattern.NewGitIgnore("gen/"),
		Include:     include,
		MaxFileSize: 1024,
	})

	assert.True(t, c.Classify("keep.go").Include)
	assert.Equal(t, classify.ReasonTooLarge, c.Classify("big.go").Reason)
	assert.Equal(t, classify.ReasonGitIgnored, c.Classify("gen/out.go").Reason)
	assert.Equal(t, classify.ReasonNotIncluded, c.Classify("doc.md").Reason)
}

func TestClassifyOutsideRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	other := writeFile(t, t.TempDir(), "x.go", []byte("package x\n"))

	d := newClassifier(t, root, config.Default(), classify.Options{}).Classify(other)
	assert.False(t, d.Include)
	assert.Equal(t, classify.ReasonOutsideRoot, d.Reason)
}

func TestLanguageFor(t *testing.T) {
	t.Parallel()

	cfg := config.Default().Merge(&config.Config{
		LanguageByFilename: map[string]string{"build.py": "starlark"},
	})

	tests := []struct {
		name string
		want string
	}{
		{name: "build.py", want: "starlark"},
		{name: "other.py", want: "python"},
		{name: "Makefile", want: "makefile"},
		{name: "style.SCSS", want: "scss"},
		{name: "unknown.xyz", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, classify.LanguageFor(tt.name, cfg))
		})
	}
}
