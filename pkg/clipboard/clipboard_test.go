package clipboard_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/logging"
	"github.com/yaklabco/ctxport/pkg/clipboard"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
}

func TestDefaultCommands(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "pbcopy", clipboard.DefaultCommands("darwin")[0].Name)
	assert.Equal(t, "clip", clipboard.DefaultCommands("windows")[0].Name)

	linux := clipboard.DefaultCommands("linux")
	require.Len(t, linux, 3)
	assert.Equal(t, "xclip -selection clipboard", linux[0].String())
	assert.Equal(t, "xsel --clipboard --input", linux[1].String())
	assert.Equal(t, "wl-copy", linux[2].String())

	assert.Empty(t, clipboard.DefaultCommands("plan9"))
}

func TestCopyUsesFirstWorkingHelper(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	out := filepath.Join(t.TempDir(), "clip.txt")
	c := &clipboard.Copier{
		Commands: []clipboard.Command{
			{Name: "ctxport-no-such-helper"},
			{Name: "sh", Args: []string{"-c", "exit 3"}},
			{Name: "sh", Args: []string{"-c", `cat > "$CLIP_OUT"`}, Env: []string{"CLIP_OUT=" + out}},
		},
		Timeout: 5 * time.Second,
		Logger:  logging.Discard(),
	}

	require.NoError(t, c.Copy(context.Background(), "hello clipboard"))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "hello clipboard", string(got))
}

func TestCopyAllFail(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := &clipboard.Copier{
		Commands: []clipboard.Command{
			{Name: "ctxport-no-such-helper"},
			{Name: "sh", Args: []string{"-c", "echo nope >&2; exit 1"}},
		},
		Logger: logging.Discard(),
	}

	err := c.Copy(context.Background(), "x")
	require.ErrorIs(t, err, clipboard.ErrNoClipboard)
	assert.Contains(t, err.Error(), "nope")
}

func TestCopyTimeout(t *testing.T) {
	t.Parallel()
	skipOnWindows(t)

	c := &clipboard.Copier{
		Commands: []clipboard.Command{{Name: "sh", Args: []string{"-c", "sleep 5"}}},
		Timeout:  100 * time.Millisecond,
		Logger:   logging.Discard(),
	}

	start := time.Now()
	err := c.Copy(context.Background(), "x")
	require.ErrorIs(t, err, clipboard.ErrNoClipboard)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestCopyUnsupported(t *testing.T) {
	t.Parallel()

	c := &clipboard.Copier{Logger: logging.Discard()}
	assert.ErrorIs(t, c.Copy(context.Background(), "x"), clipboard.ErrUnsupported)
}
