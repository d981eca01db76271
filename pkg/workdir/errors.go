package workdir

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "workdir"

// NewFileNotFoundError reports a working file that does not exist.
func NewFileNotFoundError(path string) error {
	return err.New(pkgName, err.CodeFileNotFound, "read", fmt.Sprintf("%s does not exist", path), nil).
		WithContext("path", path)
}

// NewInvalidPathError reports a path outside the working tree or otherwise unusable.
func NewInvalidPathError(path string, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, "resolve", fmt.Sprintf("invalid path %q", path), cause)
}

// NewUntrackedConflictError lists untracked files a checkout would overwrite.
func NewUntrackedConflictError(paths []string) error {
	return err.New(pkgName, err.CodeUntrackedConflict, "check",
		"untracked files would be overwritten: "+strings.Join(paths, ", "), nil).
		WithContext("paths", paths)
}

// NewApplyError wraps a failed snapshot application.
func NewApplyError(cause error) error {
	return err.New(pkgName, err.CodeInternal, "apply", "updating the working directory failed", cause)
}
