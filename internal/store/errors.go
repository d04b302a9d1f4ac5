package store

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("reminder file not found")
	ErrUnreadable = errors.New("reminder file unreadable")
	ErrCorrupt    = errors.New("reminder file corrupt")
	ErrUnwritable = errors.New("reminder file unwritable")
)

// FileError is returned by load and save. Both are all-or-nothing, so a
// FileError means nothing was loaded or nothing new was written.
type FileError struct {
	Op   string // "load" or "save"
	Path string
	Kind error
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes Kind so callers can use errors.Is(err, ErrCorrupt).
func (e *FileError) Unwrap() error { return e.Kind }

// Cause returns the underlying I/O or decode error.
func (e *FileError) Cause() error { return e.Err }

func loadError(path string, kind, err error) error {
	return &FileError{Op: "load", Path: path, Kind: kind, Err: err}
}

func saveError(path string, err error) error {
	return &FileError{Op: "save", Path: path, Kind: ErrUnwritable, Err: err}
}
