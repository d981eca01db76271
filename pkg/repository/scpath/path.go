package scpath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RepositoryPath is the absolute path of a working tree root.
// Example: "/home/user/project"
type RepositoryPath string

// SourcePath is an absolute path inside the .gitlet directory.
type SourcePath string

// AbsolutePath is any absolute filesystem path.
type AbsolutePath string

// RelativePath is a slash-separated path relative to the working tree root,
// cleaned and guaranteed not to climb out of it.
// Example: "src/main.go"
type RelativePath string

// NewRepositoryPath resolves path to an absolute RepositoryPath.
func NewRepositoryPath(path string) (RepositoryPath, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve repository path: %w", err)
	}
	return RepositoryPath(abs), nil
}

func (rp RepositoryPath) String() string {
	return string(rp)
}

// Join joins elements onto the working tree root.
func (rp RepositoryPath) Join(elem ...string) AbsolutePath {
	return AbsolutePath(filepath.Join(append([]string{string(rp)}, elem...)...))
}

// JoinRelative maps a RelativePath onto the filesystem.
func (rp RepositoryPath) JoinRelative(rel RelativePath) AbsolutePath {
	return AbsolutePath(filepath.Join(string(rp), filepath.FromSlash(string(rel))))
}

// Rel converts an absolute filesystem path into a RelativePath under rp.
func (rp RepositoryPath) Rel(abs string) (RelativePath, error) {
	r, err := filepath.Rel(string(rp), abs)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	return NewRelativePath(r)
}

// SourcePath returns the .gitlet directory of the repository.
func (rp RepositoryPath) SourcePath() SourcePath {
	return SourcePath(filepath.Join(string(rp), SourceDir))
}

func (sp SourcePath) String() string {
	return string(sp)
}

// Join joins elements onto the source path.
func (sp SourcePath) Join(elem ...string) SourcePath {
	return SourcePath(filepath.Join(append([]string{string(sp)}, elem...)...))
}

// ToAbsolutePath converts to an AbsolutePath.
func (sp SourcePath) ToAbsolutePath() AbsolutePath {
	return AbsolutePath(sp)
}

func (sp SourcePath) ObjectsPath() SourcePath { return sp.Join(ObjectsDir) }
func (sp SourcePath) BlobsPath() SourcePath   { return sp.Join(ObjectsDir, BlobsDir) }
func (sp SourcePath) CommitsPath() SourcePath { return sp.Join(ObjectsDir, CommitsDir) }
func (sp SourcePath) RefsPath() SourcePath    { return sp.Join(RefsDir) }
func (sp SourcePath) HeadPath() SourcePath    { return sp.Join(RefsDir, HeadFile) }
func (sp SourcePath) IndexPath() SourcePath   { return sp.Join(IndexFile) }
func (sp SourcePath) ConfigPath() SourcePath  { return sp.Join(ConfigFile) }
func (sp SourcePath) CatalogPath() SourcePath { return sp.Join(CatalogFile) }

func (ap AbsolutePath) String() string {
	return string(ap)
}

// Dir returns the parent directory.
func (ap AbsolutePath) Dir() AbsolutePath {
	return AbsolutePath(filepath.Dir(string(ap)))
}

// NewRelativePath cleans path into slash form and rejects anything absolute,
// empty, or escaping the working tree.
func NewRelativePath(path string) (RelativePath, error) {
	if path == "" {
		return "", fmt.Errorf("empty path")
	}
	if filepath.IsAbs(path) || strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("path %q must be relative", path)
	}

	cleaned := filepath.ToSlash(filepath.Clean(path))
	cleaned = strings.TrimPrefix(cleaned, "./")
	if cleaned == "." || cleaned == "" {
		return "", fmt.Errorf("path %q names the repository root", path)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("path %q escapes the repository", path)
	}
	if strings.ContainsAny(cleaned, "\n\r") {
		return "", fmt.Errorf("path %q contains a line break", path)
	}
	return RelativePath(cleaned), nil
}

func (rp RelativePath) String() string {
	return string(rp)
}

// Components returns the slash-separated parts.
func (rp RelativePath) Components() []string {
	return strings.Split(string(rp), "/")
}

// IsInSubdir reports whether rp is dir itself or lives below it.
func (rp RelativePath) IsInSubdir(dir string) bool {
	s := string(rp)
	return s == dir || strings.HasPrefix(s, dir+"/")
}
