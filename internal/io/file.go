// Package ioutils provides file system utilities for the lyrics-editor.
//
// This package contains functions for:
//   - Access checks before a file is rewritten
//   - Atomic file replacement
//   - Directory creation
package ioutils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotRegular is returned by CheckWritable for directories and other
// non-regular files.
var ErrNotRegular = errors.New("not a regular file")

// CheckWritable verifies that path exists, is a regular file and can be
// opened for writing by the current process.
//
// The file is opened without O_TRUNC or O_CREATE, so its contents are never
// touched. The returned error wraps the underlying os error, which lets
// callers use os.IsNotExist / os.IsPermission or errors.Is with fs.ErrNotExist.
//
// Example:
//
//	if err := CheckWritable("/music/song.flac"); err != nil {
//	    return err // nothing has been modified
//	}
func CheckWritable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	return f.Close()
}

// WriteFileAtomic replaces the contents of path with data.
//
// Data is written to a temporary file in the same directory, synced, given
// the permission bits of the existing file and renamed over path. Readers
// observe either the old or the new contents, never a partial write. If any
// step fails the temporary file is removed and path is left unchanged.
//
// Example:
//
//	err := WriteFileAtomic("/music/song.flac", newBytes)
func WriteFileAtomic(path string, data []byte) (err error) {
	perm := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
