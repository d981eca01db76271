package index

import (
	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "index"

// NewCorruptIndexError reports an index file that cannot be loaded.
func NewCorruptIndexError(cause error) error {
	return err.New(pkgName, err.CodeCorruptObject, "read", "staging index is corrupt", cause)
}
