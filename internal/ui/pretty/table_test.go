package pretty_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/ui/pretty"
	"github.com/yaklabco/ctxport/pkg/classify"
	"github.com/yaklabco/ctxport/pkg/runner"
)

func TestFormatSkipped_Empty(t *testing.T) {
	t.Parallel()

	table := pretty.NewTableFormatter(pretty.NewStyles(false), 0)
	assert.Empty(t, table.FormatSkipped(nil))
	assert.Empty(t, table.FormatSkipped(&runner.Result{}))
}

func TestFormatSkipped(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Skipped: []runner.Skipped{
		{RelPath: "node_modules", Reason: classify.ReasonIgnored, Pattern: "node_modules/", Dir: true},
		{RelPath: "archive.bin", Reason: classify.ReasonBinary},
	}}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 80).FormatSkipped(result)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)

	assert.Contains(t, lines[0], "PATH")
	assert.Contains(t, lines[0], "REASON")
	assert.True(t, strings.HasPrefix(lines[1], "==="))
	assert.Contains(t, lines[2], "node_modules/")
	assert.Contains(t, lines[2], "ignored")
	assert.True(t, strings.HasSuffix(lines[2], "node_modules/"))
	assert.Contains(t, lines[3], "archive.bin")
	assert.True(t, strings.HasSuffix(lines[3], "binary"), "no trailing padding without a pattern")
}

func TestFormatSkipped_TruncatesLongPaths(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("deep/", 30) + "file.txt"
	result := &runner.Result{Skipped: []runner.Skipped{{RelPath: long, Reason: classify.ReasonTooLarge}}}

	out := pretty.NewTableFormatter(pretty.NewStyles(false), 60).FormatSkipped(result)
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "file.txt")
	assert.NotContains(t, out, long)
}

func TestSkippedToTableRow(t *testing.T) {
	t.Parallel()

	row := pretty.SkippedToTableRow(runner.Skipped{RelPath: "venv", Reason: classify.ReasonIgnored, Pattern: "venv/", Dir: true})
	assert.Equal(t, pretty.TableRow{Path: "venv/", Reason: "ignored", Pattern: "venv/"}, row)
}
