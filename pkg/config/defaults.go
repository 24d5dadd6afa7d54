package config

import "sync"

// Default returns the built-in configuration.
// The returned value is shared and must not be modified; use Clone or Merge to derive from it.
func Default() *Config {
	return defaultConfig()
}

//nolint:gochecknoglobals // Built once, read-only afterwards.
var defaultConfig = sync.OnceValue(func() *Config {
	return &Config{
		LanguageByExtension: map[string]string{
			".py":     "python",
			".js":     "javascript",
			".jsx":    "jsx",
			".ts":     "typescript",
			".tsx":    "tsx",
			".html":   "html",
			".css":    "css",
			".scss":   "scss",
			".sass":   "sass",
			".json":   "json",
			".yaml":   "yaml",
			".yml":    "yaml",
			".md":     "markdown",
			".sh":     "bash",
			".bash":   "bash",
			".zsh":    "zsh",
			".fish":   "fish",
			".ps1":    "powershell",
			".c":      "c",
			".cpp":    "cpp",
			".cc":     "cpp",
			".cxx":    "cpp",
			".h":      "c",
			".hpp":    "cpp",
			".hxx":    "cpp",
			".rs":     "rust",
			".go":     "go",
			".java":   "java",
			".kt":     "kotlin",
			".swift":  "swift",
			".rb":     "ruby",
			".php":    "php",
			".sql":    "sql",
			".r":      "r",
			".m":      "matlab",
			".jl":     "julia",
			".tex":    "latex",
			".xml":    "xml",
			".vue":    "vue",
			".svelte": "svelte",
		},
		LanguageByFilename: map[string]string{
			"dockerfile":  "dockerfile",
			"makefile":    "makefile",
			"gnumakefile": "makefile",
			"rakefile":    "ruby",
			"gemfile":     "ruby",
			"vagrantfile": "ruby",
			"jenkinsfile": "groovy",
			"fastfile":    "ruby",
			"procfile":    "yaml",
			"podfile":     "ruby",
			"cakefile":    "coffeescript",
			"gulpfile":    "javascript",
			"gruntfile":   "javascript",
		},
		TextExtensions: NewStringSet(
			".txt", ".md", ".yml", ".yaml", ".json", ".xml", ".html", ".css",
			".js", ".jsx", ".ts", ".tsx", ".py", ".rb", ".php", ".java",
			".cpp", ".c", ".h", ".rs", ".go", ".sh", ".bash", ".zsh", ".fish",
			".ps1", ".dockerfile", ".gitignore", ".env", ".conf", ".cfg",
			".ini", ".toml", ".lock", ".sum", ".mod",
		),
		IgnorePatterns: []string{
			".git/",
			"__pycache__/",
			"*.pyc",
			"*.pyo",
			"*.pyd",
			".DS_Store",
			".vscode/",
			".idea/",
			"node_modules/",
			"venv/",
			".env/",
			"*.min.js",
			"*.min.css",
		},
	}
})
