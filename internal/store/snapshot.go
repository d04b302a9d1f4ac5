package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/rdo34/rem/internal/model"
)

// FileExt is the extension used for reminder files.
const FileExt = ".rem"

// snapshot is the on-disk document. Keys are stored as numbers so that any
// triple round-trips, including ones that are not real dates.
type snapshot struct {
	Reminders []record `json:"reminders"`
}

// record holds text that is not valid UTF-8 in Raw (base64) so that it
// survives the JSON round trip byte for byte.
type record struct {
	Day   int    `json:"day"`
	Month int    `json:"month"`
	Year  int    `json:"year"`
	Text  string `json:"text,omitempty"`
	Raw   []byte `json:"raw,omitempty"`
}

func newRecord(e Entry) record {
	rec := record{Day: e.Key.Day(), Month: e.Key.Month(), Year: e.Key.Year()}
	if utf8.ValidString(e.Text) {
		rec.Text = e.Text
	} else {
		rec.Raw = []byte(e.Text)
	}
	return rec
}

func (rec record) text() (string, error) {
	if rec.Raw == nil {
		return rec.Text, nil
	}
	if rec.Text != "" {
		return "", errors.New("reminder has both text and raw")
	}
	return string(rec.Raw), nil
}

// LoadFromPath reads a snapshot written by SaveToPath. It returns either the
// whole mapping or a *FileError, never a partial result. An empty file is an
// empty mapping.
func LoadFromPath(path string) (map[model.DateKey]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, loadError(path, ErrNotFound, err)
		}
		return nil, loadError(path, ErrUnreadable, err)
	}
	defer f.Close()

	dec := json.NewDecoder(bufio.NewReader(f))
	dec.DisallowUnknownFields()

	var doc snapshot
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return map[model.DateKey]string{}, nil
		}
		return nil, decodeError(path, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected data after snapshot")
		}
		return nil, decodeError(path, err)
	}
	if doc.Reminders == nil {
		return nil, loadError(path, ErrCorrupt, errors.New("missing reminders list"))
	}

	out := make(map[model.DateKey]string, len(doc.Reminders))
	for _, rec := range doc.Reminders {
		key := model.NewDateKey(rec.Day, rec.Month, rec.Year)
		if _, dup := out[key]; dup {
			return nil, loadError(path, ErrCorrupt, fmt.Errorf("duplicate reminder for %s", key))
		}
		text, err := rec.text()
		if err != nil {
			return nil, loadError(path, ErrCorrupt, fmt.Errorf("%s: %w", key, err))
		}
		out[key] = text
	}
	return out, nil
}

func decodeError(path string, err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return loadError(path, ErrUnreadable, err)
	}
	return loadError(path, ErrCorrupt, err)
}

// writeSnapshot replaces path atomically: the document goes to a temp file
// in the same directory which is renamed over path once fully written.
func writeSnapshot(path string, entries []Entry) error {
	doc := snapshot{Reminders: make([]record, 0, len(entries))}
	for _, e := range entries {
		doc.Reminders = append(doc.Reminders, newRecord(e))
	}

	err := writeAtomic(path, ".rem-*.tmp", func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(&doc)
	})
	if err != nil {
		return saveError(path, err)
	}
	return nil
}
