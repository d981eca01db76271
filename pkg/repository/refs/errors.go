package refs

import (
	"fmt"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "refs"

// NewNoSuchBranchError reports a branch without a ref file.
func NewNoSuchBranchError(name BranchName) error {
	return err.New(pkgName, err.CodeNoSuchBranch, "read", fmt.Sprintf("branch %q does not exist", name), nil).
		WithContext("branch", name.String())
}

// NewInvalidBranchNameError wraps a name validation failure.
func NewInvalidBranchNameError(name string, cause error) error {
	return err.New(pkgName, err.CodeInvalidBranchName, "validate", fmt.Sprintf("invalid branch name %q", name), cause)
}

// NewCorruptRefError reports a ref file whose content is not a commit id or
// a symbolic ref.
func NewCorruptRefError(path string, content string, cause error) error {
	return err.New(pkgName, err.CodeCorruptObject, "read", fmt.Sprintf("ref %s holds %q", path, content), cause)
}
