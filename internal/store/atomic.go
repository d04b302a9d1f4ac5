package store

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// writeAtomic streams encode's output to a temp file next to path and
// renames it over path. The temp file is removed on every failure.
func writeAtomic(path, pattern string, encode func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	bw := bufio.NewWriter(tmp)
	if err := encode(bw); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
