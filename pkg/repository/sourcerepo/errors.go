package sourcerepo

import (
	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "sourcerepo"

// NewRepositoryExistsError reports an init over an existing repository.
func NewRepositoryExistsError(path string) error {
	return err.New(pkgName, err.CodeRepositoryExists, "init", "repository already exists in "+path, nil).
		WithContext("path", path)
}

// NewNotARepositoryError reports a directory with no repository above it.
func NewNotARepositoryError(path string) error {
	return err.New(pkgName, err.CodeNotARepository, "find", "no repository found at or above "+path, nil).
		WithContext("path", path)
}
