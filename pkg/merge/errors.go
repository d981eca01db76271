package merge

import (
	"fmt"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "merge"

// NewUncommittedChangesError reports a merge attempted with a non-empty index.
func NewUncommittedChangesError() error {
	return err.New(pkgName, err.CodeUncommittedChanges, "merge", "the staging index is not empty", nil)
}

// NewCannotMergeSelfError reports a merge of the current branch into itself.
func NewCannotMergeSelfError(name string) error {
	return err.New(pkgName, err.CodeCannotMergeSelf, "merge", fmt.Sprintf("%q is the current branch", name), nil)
}

// NewNoSplitPointError reports two heads with no common ancestor, which only
// happens in a damaged repository.
func NewNoSplitPointError(current, given string) error {
	return err.New(pkgName, err.CodeCorruptObject, "split", fmt.Sprintf("%s and %s share no ancestor", current, given), nil)
}
