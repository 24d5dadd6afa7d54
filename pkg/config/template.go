package config

// ExampleJSON returns the annotated example configuration written by `ctxport --init-config`.
// Keys and list entries starting with "#" are comments and are dropped when the file is loaded.
func ExampleJSON() []byte {
	return []byte(exampleTemplate)
}

const exampleTemplate = `{
  "language_map": {
    ".custom": "custom-language",
    ".myext": "mylang",
    "# Add more extension mappings here": "..."
  },
  "filename_map": {
    "customfile": "custom-language",
    "configfile": "yaml",
    "# Add more filename mappings here": "..."
  },
  "text_extensions": [
    ".custom",
    ".myext",
    "# Add more extensions here"
  ],
  "ignore_patterns": [
    "# Common directories to ignore",
    "node_modules/",
    "dist/",
    "build/",
    "__pycache__/",
    ".git/",
    ".venv/",
    "venv/",
    "# Common files to ignore",
    "*.pyc",
    "*.min.js",
    "*.min.css",
    ".DS_Store",
    "# Add more patterns here"
  ],
  "default_language": "text"
}
`
