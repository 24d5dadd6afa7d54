package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/ctxport/internal/ui/pretty"
	"github.com/yaklabco/ctxport/pkg/runner"
)

func TestFormatExportSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "nothing exported",
			stats: runner.Stats{FilesSeen: 4, FilesSkipped: 4},
			want:  "No files exported (4 files seen)\n",
		},
		{
			name:  "single file",
			stats: runner.Stats{FilesSeen: 1, FilesExported: 1, BytesExported: 12},
			want:  "1 file exported (12 B)\n",
		},
		{
			name: "everything",
			stats: runner.Stats{
				FilesSeen:     10,
				FilesExported: 6,
				FilesSkipped:  4,
				FilesErrored:  1,
				DirsPruned:    1,
				BytesExported: 2048,
			},
			want: "6 files exported (2.0 KiB), 4 skipped, 1 directory pruned, 1 unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatExportSummary(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	out := styles.FormatSummary(runner.Stats{FilesSeen: 3, FilesExported: 2, FilesSkipped: 1, BytesExported: 100})

	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Files seen:        3")
	assert.Contains(t, out, "Files exported:    2")
	assert.Contains(t, out, "Content size:      100 B")
	assert.NotContains(t, out, "Dirs pruned")
	assert.NotContains(t, out, "Unreadable")
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0 B", pretty.FormatBytes(0))
	assert.Equal(t, "1023 B", pretty.FormatBytes(1023))
	assert.Equal(t, "1.0 KiB", pretty.FormatBytes(1024))
	assert.Equal(t, "1.5 MiB", pretty.FormatBytes(1536*1024))
}
