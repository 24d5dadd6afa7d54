package configloader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestParse(t *testing.T) {
	t.Parallel()

	cfg, warnings := Parse([]byte(`{
		"language_map": {".PY": "py3", "# note": "...", ".rs": "rust"},
		"filename_map": {"Justfile": "make"},
		"text_extensions": [".Custom", "# more here"],
		"ignore_patterns": ["# dirs", "dist/", "*.log"],
		"default_language": "text",
		"unknown_key": 42
	}`))

	assert.Empty(t, warnings)
	assert.Equal(t, map[string]string{".py": "py3", ".rs": "rust"}, cfg.LanguageByExtension)
	assert.Equal(t, map[string]string{"justfile": "make"}, cfg.LanguageByFilename)
	assert.Equal(t, []string{".custom"}, cfg.TextExtensions.Sorted())
	assert.Equal(t, []string{"dist/", "*.log"}, cfg.IgnorePatterns)
	assert.Equal(t, "text", cfg.DefaultLanguage)
}

func TestParseMalformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "invalid json", data: `{"language_map": `},
		{name: "not an object", data: `["a", "b"]`},
		{name: "empty", data: ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg, warnings := Parse([]byte(tt.data))
			require.NotNil(t, cfg)
			assert.Empty(t, cfg.LanguageByExtension)
			assert.Empty(t, cfg.IgnorePatterns)
			assert.Len(t, warnings, 1)
		})
	}
}

func TestParseSkipsWrongTypes(t *testing.T) {
	t.Parallel()

	cfg, warnings := Parse([]byte(`{
		"language_map": {".py": 3, ".go": "go"},
		"text_extensions": ".txt",
		"ignore_patterns": ["ok", 7],
		"default_language": false
	}`))

	assert.Equal(t, map[string]string{".go": "go"}, cfg.LanguageByExtension)
	assert.Empty(t, cfg.TextExtensions)
	assert.Equal(t, []string{"ok"}, cfg.IgnorePatterns)
	assert.Empty(t, cfg.DefaultLanguage)
	assert.NotEmpty(t, warnings)
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nope.json")
	cfg, warnings := LoadFile(path)
	require.NotNil(t, cfg)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], path)
}

func TestLoadLegacyIgnoreFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), LegacyIgnoreFile)
	writeFile(t, path, "# generated\n\n  *.log  \ntmp/\n\t\n")

	cfg, err := LoadLegacyIgnoreFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"*.log", "tmp/"}, cfg.IgnorePatterns)

	_, err = LoadLegacyIgnoreFile(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestParseIgnoreLinesLongLine(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 128*1024)
	data := "*.log\n" + long + "\r\ndist/\n"

	assert.Equal(t, []string{"*.log", long, "dist/"}, ParseIgnoreLines([]byte(data)))
}
