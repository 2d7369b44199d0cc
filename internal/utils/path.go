// Package utils provides path and file helpers shared by the day-list store
// and session resolution.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolveForWrite returns the path to write to, resolving symlinks.
// If path is a symlink, returns the resolved target path so that a rewrite
// replaces the target instead of the link.
// If path doesn't exist, returns path unchanged (new file).
func ResolveForWrite(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return path, nil
		}
		return "", err
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return filepath.EvalSymlinks(path)
	}
	return path, nil
}

// ExpandHome replaces a leading "~" or "~/" with the given home directory.
// Paths like "~other/x" are returned unchanged.
func ExpandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, "~"+string(filepath.Separator)) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// HomeDir returns the user's home directory, preferring $HOME.
func HomeDir() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return os.UserHomeDir()
}
