package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/ctxport/pkg/config"
)

func TestToYAML(t *testing.T) {
	t.Parallel()

	t.Run("nil config", func(t *testing.T) {
		t.Parallel()
		var c *config.Config
		out, err := c.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, out)
	})

	t.Run("text extensions are sorted", func(t *testing.T) {
		t.Parallel()
		cfg := config.New()
		cfg.TextExtensions = config.NewStringSet(".z", ".a", ".m")
		cfg.IgnorePatterns = []string{"b/", "a/"}

		out, err := cfg.ToYAML()
		require.NoError(t, err)

		var decoded struct {
			TextExtensions []string `yaml:"text_extensions"`
			IgnorePatterns []string `yaml:"ignore_patterns"`
		}
		require.NoError(t, yaml.Unmarshal(out, &decoded))
		assert.Equal(t, []string{".a", ".m", ".z"}, decoded.TextExtensions)
		assert.Equal(t, []string{"b/", "a/"}, decoded.IgnorePatterns)
	})

	t.Run("header lines are commented", func(t *testing.T) {
		t.Parallel()
		out, err := config.New().ToYAMLWithHeader("sources:", "  default")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(out), "# sources:\n#   default\n\n"))
	})
}
