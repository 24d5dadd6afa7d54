package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/ui/pretty"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)
	assert.NotEmpty(t, styles.Success.Render("x"))
	assert.NotEmpty(t, styles.Reason.Render("x"))
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, rendered := range []string{
		styles.Bold.Render("test"),
		styles.Error.Render("test"),
		styles.FilePath.Render("test"),
		styles.TableSeparator.Render("test"),
	} {
		assert.Equal(t, "test", rendered)
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, &buf))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorNever, os.Stdout))
	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, &buf), "a buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled(pretty.ColorAuto, os.Stdout))
	assert.True(t, pretty.IsColorEnabled(pretty.ColorAlways, os.Stdout), "always wins over NO_COLOR")
}

func TestValidColorMode(t *testing.T) {
	t.Parallel()

	for _, mode := range []string{"auto", "always", "never"} {
		assert.True(t, pretty.ValidColorMode(mode), mode)
	}
	assert.False(t, pretty.ValidColorMode("sometimes"))
	assert.False(t, pretty.ValidColorMode(""))
}
