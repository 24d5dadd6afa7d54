package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// BackupSuffix is appended to a file name to form its backup path.
const BackupSuffix = ".bak"

// BackupPath returns the backup location for path.
func BackupPath(path string) string {
	return path + BackupSuffix
}

// CreateBackup copies path to BackupPath(path), replacing any older backup.
// It returns the backup path, or "" when path does not exist.
func CreateBackup(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", nil
	case err != nil:
		return "", fmt.Errorf("back up %s: %w", path, err)
	case info.IsDir():
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("back up %s: %w", path, err)
	}

	backup := BackupPath(path)
	if err := WriteAtomic(ctx, backup, content, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}
	return backup, nil
}

// RestoreBackup moves the backup of path back into place.
// It reports false when there is no backup.
func RestoreBackup(ctx context.Context, path string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("restore backup: %w", err)
	}

	err := os.Rename(BackupPath(path), path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("restore backup: %w", err)
	}
}
