package formatter

import (
	"strings"
)

// minFence is the shortest code fence emitted.
const minFence = 3

// Markdown renders a document with one H2 section and fenced block per file.
type Markdown struct {
	lines []string
}

// NewMarkdown returns an empty markdown formatter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// BeginDocument implements Formatter.
func (m *Markdown) BeginDocument(projectName string) {
	m.lines = []string{
		"# Code Context Export: " + projectName,
		"",
	}
}

// AddFile implements Formatter.
func (m *Markdown) AddFile(path, content, language string) {
	fence := fenceFor(content)
	m.lines = append(m.lines,
		"## "+path,
		"",
		fence+language,
		content,
		fence,
		"",
	)
}

// AddError implements Formatter.
func (m *Markdown) AddError(message string) {
	fence := fenceFor(message)
	m.lines = append(m.lines,
		"### Error",
		"",
		fence,
		message,
		fence,
		"",
	)
}

// EndDocument implements Formatter.
func (m *Markdown) EndDocument() string {
	return strings.Join(m.lines, "\n")
}

// fenceFor returns a backtick fence longer than any backtick run in content,
// so the content cannot close the block early.
func fenceFor(content string) string {
	longest, run := 0, 0
	for i := 0; i < len(content); i++ {
		if content[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(minFence, longest+1))
}
