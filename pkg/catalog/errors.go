package catalog

import (
	"github.com/utkarsh5026/gitlet/pkg/common/err"
)

const pkgName = "catalog"

// NewCatalogError wraps a database failure.
func NewCatalogError(op string, cause error) error {
	return err.New(pkgName, err.CodeInternal, op, "commit catalog", cause)
}
