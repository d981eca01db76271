package workdir

import (
	"github.com/utkarsh5026/gitlet/pkg/workdir/internal"
)

// Re-export types from internal package for public API
type (
	// ActionType represents the type of file operation to perform
	ActionType = internal.ActionType

	// Operation represents a single file operation to be performed on the working directory.
	Operation = internal.Operation

	// ChangeSummary provides statistics about detected changes
	ChangeSummary = internal.ChangeSummary
)

// Re-export action type constants
const (
	ActionCreate = internal.ActionCreate
	ActionModify = internal.ActionModify
	ActionDelete = internal.ActionDelete
)

// ApplyResult reports what ApplySnapshot changed.
type ApplyResult struct {
	Operations []Operation
	Summary    ChangeSummary
}
