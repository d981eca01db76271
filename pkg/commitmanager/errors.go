package commitmanager

import (
	"fmt"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "commitmanager"

// NewNothingToRemoveError reports rm on a path that is neither staged nor tracked.
func NewNothingToRemoveError(path string) error {
	return err.New(pkgName, err.CodeNothingToRemove, "rm", fmt.Sprintf("%s is not staged or tracked", path), nil).
		WithContext("path", path)
}

// NewNothingStagedError reports a commit with an empty index.
func NewNothingStagedError() error {
	return err.New(pkgName, err.CodeNothingStaged, "commit", "no changes added to the commit", nil)
}

// NewFileNotInCommitError reports a checkout of a path the commit does not track.
func NewFileNotInCommitError(path, id string) error {
	return err.New(pkgName, err.CodeFileNotInCommit, "checkout", fmt.Sprintf("%s is not in commit %s", path, id), nil).
		WithContext("path", path)
}

// NewAlreadyOnBranchError reports a checkout of the current branch.
func NewAlreadyOnBranchError(name string) error {
	return err.New(pkgName, err.CodeAlreadyOnBranch, "checkout", fmt.Sprintf("already on %q", name), nil)
}

// NewNoMatchingCommitError reports a find with no results.
func NewNoMatchingCommitError(message string) error {
	return err.New(pkgName, err.CodeNoMatchingCommit, "find", fmt.Sprintf("no commit has message %q", message), nil)
}
