package langdetect_test

import (
	"testing"

	"github.com/yaklabco/ctxport/pkg/langdetect"
)

func BenchmarkDetect(b *testing.B) {
	inputs := []struct {
		name    string
		content string
	}{
		{"heuristic", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n"},
		{"classifier", "module Greeter\n  def self.hello\n    puts 'hi'\n  end\nend\n"},
		{"shebang", "#!/bin/sh\nset -eu\nexec make \"$@\"\n"},
	}
	for _, input := range inputs {
		content := []byte(input.content)
		b.Run(input.name, func(b *testing.B) {
			for b.Loop() {
				langdetect.Detect("snippet", content)
			}
		})
	}
}
