package internal

import (
	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// ActionType represents the type of file operation to perform
type ActionType int

const (
	// ActionCreate writes a file that HEAD does not track
	ActionCreate ActionType = iota
	// ActionModify overwrites a file that HEAD tracks
	ActionModify
	// ActionDelete removes a file HEAD tracks and the target does not
	ActionDelete
)

// String returns the string representation of the action type
func (a ActionType) String() string {
	switch a {
	case ActionCreate:
		return "create"
	case ActionModify:
		return "modify"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Operation is one file change in the working directory. Path is slash
// separated and relative to the working tree root.
type Operation struct {
	Path   string
	Action ActionType
	Blob   objects.ObjectHash
}

// Backup is the content a file had before an operation touched it.
type Backup struct {
	Path    string
	Content []byte
	Existed bool
}

// ChangeSummary provides statistics about detected changes
type ChangeSummary struct {
	Created  int
	Modified int
	Deleted  int
}

// Total is the number of operations summarized.
func (s ChangeSummary) Total() int {
	return s.Created + s.Modified + s.Deleted
}

// ChangeAnalysis contains the operations that turn one snapshot into another
type ChangeAnalysis struct {
	Operations []Operation
	Summary    ChangeSummary
}
