package internal

import (
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
)

// Analyze lists the operations that make a working directory holding current
// hold target instead. Every target file is written, even when current already
// tracks it at the same blob, because the working copy may have been edited.
// Files tracked by current and absent from target are deleted. Operations are
// ordered deletes first, then writes, each in path order.
func Analyze(current, target commit.Snapshot) ChangeAnalysis {
	var (
		ops     []Operation
		summary ChangeSummary
	)

	for _, path := range current.Paths() {
		if !target.Has(path) {
			ops = append(ops, Operation{Path: path, Action: ActionDelete})
			summary.Deleted++
		}
	}

	for _, path := range target.Paths() {
		action := ActionCreate
		if current.Has(path) {
			action = ActionModify
			summary.Modified++
		} else {
			summary.Created++
		}
		ops = append(ops, Operation{Path: path, Action: action, Blob: target[path]})
	}

	return ChangeAnalysis{Operations: ops, Summary: summary}
}
