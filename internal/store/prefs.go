package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Preferences remember the last session so the next one can offer it.
type Preferences struct {
	LastFile string `json:"last_file"`
	LastDate string `json:"last_date"` // YYYY-MM-DD
}

// PrefsPath returns prefs.json inside the data directory dir, creating dir
// on first use.
func PrefsPath(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("preferences dir: %w", err)
	}
	return filepath.Join(dir, "prefs.json"), nil
}

// LoadPreferences reads the preferences at path. Before the first save there
// is no file, which yields zero Preferences and no error.
func LoadPreferences(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, fmt.Errorf("read preferences: %w", err)
	}
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("preferences %s: %w", path, err)
	}
	return p, nil
}

// SavePreferences replaces the preferences file atomically.
func SavePreferences(path string, p Preferences) error {
	return writeAtomic(path, "prefs-*.tmp", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&p)
	})
}
