package graph

import (
	"fmt"
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/repository/refs"
)

const pkgName = "graph"

// NewNoSuchCommitError reports an id or prefix that names no stored commit.
func NewNoSuchCommitError(ref string, cause error) error {
	return err.New(pkgName, err.CodeNoSuchCommit, "resolve", fmt.Sprintf("no commit matches %q", ref), cause).
		WithContext("ref", ref)
}

// NewAmbiguousShortIDError lists the commits a prefix matches.
func NewAmbiguousShortIDError(prefix string, candidates []objects.ObjectHash) error {
	short := make([]string, len(candidates))
	for i, c := range candidates {
		short[i] = c.Short().String()
	}
	return err.New(pkgName, err.CodeAmbiguousShortID, "resolve",
		fmt.Sprintf("prefix %q matches %s", prefix, strings.Join(short, ", ")), nil).
		WithContext("candidates", candidates)
}

// NewEmptyMessageError reports a blank commit message.
func NewEmptyMessageError(cause error) error {
	return err.New(pkgName, err.CodeEmptyMessage, "commit", "commit message is empty", cause)
}

// NewBranchExistsError reports a name already in the branch table.
func NewBranchExistsError(name refs.BranchName) error {
	return err.New(pkgName, err.CodeBranchExists, "branch", fmt.Sprintf("branch %q already exists", name), nil)
}

// NewCannotDeleteCurrentError reports an attempt to delete the checked out branch.
func NewCannotDeleteCurrentError(name refs.BranchName) error {
	return err.New(pkgName, err.CodeCannotDeleteCurrent, "rm-branch", fmt.Sprintf("branch %q is checked out", name), nil)
}

// NewInvalidCommitError wraps a builder validation failure.
func NewInvalidCommitError(cause error) error {
	return err.New(pkgName, err.CodeValidation, "commit", "invalid commit", cause)
}
