package store

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultFileName is used when the user does not name a new reminder file.
const DefaultFileName = "reminders" + FileExt

// DataDirEnv names the variable that overrides the data directory.
const DataDirEnv = "REM_DATA_DIR"

const appDir = "rem"

// ResolveDataDir returns the directory holding preferences, config and logs:
// $REM_DATA_DIR if set, else the per-user application data directory
// (%APPDATA%\rem, ~/Library/Application Support/rem, or
// $XDG_DATA_HOME/rem falling back to ~/.local/share/rem).
func ResolveDataDir() (string, error) {
	if dir := os.Getenv(DataDirEnv); dir != "" {
		return dir, nil
	}
	if runtime.GOOS == "windows" {
		base := os.Getenv("APPDATA")
		if base == "" {
			return "", fmt.Errorf("reminder data dir: APPDATA is empty, set %s", DataDirEnv)
		}
		return filepath.Join(base, appDir), nil
	}
	if runtime.GOOS != "darwin" {
		if base := os.Getenv("XDG_DATA_HOME"); filepath.IsAbs(base) {
			return filepath.Join(base, appDir), nil
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("reminder data dir: %w, set %s", err, DataDirEnv)
	}
	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Application Support", appDir), nil
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}

// HasFileExt reports whether path ends in .rem, ignoring case.
func HasFileExt(path string) bool {
	return strings.EqualFold(filepath.Ext(path), FileExt)
}

// NewFilePath turns a user-supplied name into an absolute reminder file path
// under dir. An empty name yields DefaultFileName; a missing .rem extension
// is appended.
func NewFilePath(dir, name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultFileName
	} else if !HasFileExt(name) {
		name += FileExt
	}
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(dir, name)
}
