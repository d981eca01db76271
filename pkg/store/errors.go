package store

import (
	"fmt"

	"github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/objects"
)

const pkgName = "store"

// NewNotFoundError reports a missing object of the given kind.
func NewNotFoundError(kind objects.ObjectType, id objects.ObjectHash) error {
	return err.New(pkgName, err.CodeNotFound, "read",
		fmt.Sprintf("%s %s not found", kind, id), nil).
		WithContext("id", id.String())
}

// NewCorruptObjectError reports an object that exists but cannot be trusted.
func NewCorruptObjectError(kind objects.ObjectType, id objects.ObjectHash, cause error) error {
	return err.New(pkgName, err.CodeCorruptObject, "read",
		fmt.Sprintf("%s %s is corrupt", kind, id), cause).
		WithContext("id", id.String())
}

// NewInvalidIDError reports a malformed object id passed by a caller.
func NewInvalidIDError(id objects.ObjectHash, cause error) error {
	return err.New(pkgName, err.CodeInvalidInput, "resolve", fmt.Sprintf("invalid object id %q", id), cause)
}
