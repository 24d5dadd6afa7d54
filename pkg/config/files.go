package config

// Configuration file names.
const (
	// ProjectFile is the per-directory configuration file.
	ProjectFile = ".ctxport.json"

	// GlobalFile is the file name of the global configuration under the config directory.
	GlobalFile = "ctxport.json"

	// LegacyIgnoreFile is the newline-separated ignore list read from the target directory only.
	LegacyIgnoreFile = "context.ignore"
)

// IsProtectedName reports whether a file name belongs to ctxport's own configuration.
// Such files are never exported.
func IsProtectedName(name string) bool {
	switch name {
	case ProjectFile, GlobalFile, LegacyIgnoreFile:
		return true
	default:
		return false
	}
}
