package fileops

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// Exists reports whether anything exists at p. Only unexpected stat failures
// are returned as errors.
func Exists(p scpath.AbsolutePath) (bool, error) {
	_, err := os.Stat(p.String())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("check existence: %w", err)
}

// IsFile reports whether p exists and is a regular file.
func IsFile(p scpath.AbsolutePath) (bool, error) {
	info, err := os.Stat(p.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("stat: %w", err)
	}
	return info.Mode().IsRegular(), nil
}

// EnsureDir creates p and any missing parents.
func EnsureDir(p scpath.AbsolutePath) error {
	if err := os.MkdirAll(p.String(), 0755); err != nil {
		return fmt.Errorf("ensure directory %s: %w", p, err)
	}
	return nil
}

// EnsureParentDir creates the directory that will contain p.
func EnsureParentDir(p scpath.AbsolutePath) error {
	return EnsureDir(p.Dir())
}

// ReadBytes returns the file content, or nil without error when the file is missing.
func ReadBytes(p scpath.AbsolutePath) ([]byte, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", p, err)
	}
	return data, nil
}

// ReadStringStrict reads a small text file and trims surrounding whitespace.
// A missing file is an error.
func ReadStringStrict(p scpath.AbsolutePath) (string, error) {
	data, err := os.ReadFile(p.String())
	if err != nil {
		return "", fmt.Errorf("read %s: %w", p, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// WriteConfig atomically writes a small mutable state file with mode 0644.
func WriteConfig(p scpath.AbsolutePath, data []byte) error {
	return AtomicWrite(p, data, 0644)
}

// WriteReadOnly atomically writes an immutable file with mode 0444.
func WriteReadOnly(p scpath.AbsolutePath, data []byte) error {
	return AtomicWrite(p, data, 0444)
}

// SafeRemove deletes p, treating a missing file as success.
func SafeRemove(p scpath.AbsolutePath) error {
	if err := os.Remove(p.String()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p, err)
	}
	return nil
}

// PruneEmptyDirs removes now-empty parent directories of p, walking upward
// until stop (exclusive) or the first non-empty directory.
func PruneEmptyDirs(p scpath.AbsolutePath, stop scpath.AbsolutePath) {
	dir := filepath.Dir(p.String())
	stopDir := filepath.Clean(stop.String())
	for dir != stopDir && strings.HasPrefix(dir, stopDir) {
		if err := os.Remove(dir); err != nil {
			return
		}
		dir = filepath.Dir(dir)
	}
}
