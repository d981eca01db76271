// Package merge combines the head of another branch into the current branch
// with a three-way comparison against their split point.
package merge

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/samber/lo"

	"github.com/utkarsh5026/gitlet/pkg/commitmanager"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/graph"
	"github.com/utkarsh5026/gitlet/pkg/index"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/store"
	"github.com/utkarsh5026/gitlet/pkg/workdir"
)

// Outcome is the kind of merge that took place.
type Outcome int

const (
	// Merged means a merge commit was created.
	Merged Outcome = iota
	// Ancestor means the given head was already in the current history.
	Ancestor
	// FastForward means the current branch moved to the given head.
	FastForward
)

const (
	ancestorMessage    = "Given branch is an ancestor of the current branch."
	fastForwardMessage = "Current branch fast-forwarded."
	conflictMessage    = "Encountered a merge conflict."
)

// Result describes a finished merge.
type Result struct {
	Outcome      Outcome
	SplitPoint   objects.ObjectHash
	Commit       *commit.Commit
	HadConflicts bool
	Conflicts    []string
}

// Message is the line printed for the outcome, empty for a clean merge.
func (r *Result) Message() string {
	switch {
	case r.Outcome == Ancestor:
		return ancestorMessage
	case r.Outcome == FastForward:
		return fastForwardMessage
	case r.HadConflicts:
		return conflictMessage
	default:
		return ""
	}
}

// Engine merges branches of one repository.
type Engine struct {
	store   store.ObjectStore
	graph   *graph.Graph
	index   *index.Manager
	workdir *workdir.Manager
	commits *commitmanager.Manager
	logger  *slog.Logger
}

// NewEngine wires an Engine to the components of one repository.
func NewEngine(s store.ObjectStore, g *graph.Graph, idx *index.Manager, wd *workdir.Manager, cm *commitmanager.Manager) *Engine {
	return &Engine{
		store:   s,
		graph:   g,
		index:   idx,
		workdir: wd,
		commits: cm,
		logger:  logger.With("component", "merge"),
	}
}

// Merge merges branch given into the current branch. All preconditions are
// checked before anything is written.
func (e *Engine) Merge(ctx context.Context, given string) (*Result, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !e.index.IsEmpty() {
		return nil, NewUncommittedChangesError()
	}
	givenID, err := e.graph.BranchHead(ctx, given)
	if err != nil {
		return nil, err
	}
	current, err := e.graph.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	if current.String() == given {
		return nil, NewCannotMergeSelfError(given)
	}

	head, err := e.graph.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}
	other, err := e.graph.GetCommit(ctx, givenID)
	if err != nil {
		return nil, err
	}
	if err := e.workdir.CheckUntracked(head.Snapshot, other.Snapshot, nil); err != nil {
		return nil, err
	}

	split, err := SplitPoint(ctx, e.graph, head.ID, other.ID)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("split point found", "split", split.Short(), "current", head.ID.Short(), "given", other.ID.Short())

	switch split {
	case other.ID:
		return &Result{Outcome: Ancestor, SplitPoint: split}, nil
	case head.ID:
		if err := e.commits.MoveCurrentBranch(ctx, other); err != nil {
			return nil, err
		}
		e.logger.Debug("fast-forwarded", "branch", current, "to", other.ID.Short())
		return &Result{Outcome: FastForward, SplitPoint: split}, nil
	}

	base, err := e.graph.GetCommit(ctx, split)
	if err != nil {
		return nil, err
	}
	conflicts, err := e.apply(ctx, base.Snapshot, other.Snapshot, head.Snapshot)
	if err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Merged %s into %s.", given, current)
	c, err := e.commits.CommitMerge(ctx, msg, other.ID)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("merge committed", "id", c.ID.Short(), "conflicts", len(conflicts))
	return &Result{
		Outcome:      Merged,
		SplitPoint:   split,
		Commit:       c,
		HadConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
	}, nil
}

// apply resolves every path of the three snapshots. All blob contents are
// read and conflict blobs stored first, then the working directory changes
// in one transaction and finally the index is staged, so a failed read
// leaves both untouched. It returns the conflicted paths.
func (e *Engine) apply(ctx context.Context, split, given, current commit.Snapshot) ([]string, error) {
	paths := lo.Union(split.Paths(), given.Paths(), current.Paths())
	slices.Sort(paths)

	var (
		ops       []workdir.Operation
		contents  = make(map[string][]byte)
		conflicts []string
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		givenID := given[path]
		currentID := current[path]
		res := Decide(split[path], givenID, currentID)

		action := workdir.ActionCreate
		if current.Has(path) {
			action = workdir.ActionModify
		}

		switch res {
		case Keep:
			continue
		case TakeGiven:
			data, err := e.store.ReadBlob(ctx, givenID)
			if err != nil {
				return nil, err
			}
			contents[path] = data
			ops = append(ops, workdir.Operation{Path: path, Action: action, Blob: givenID})
		case Remove:
			ops = append(ops, workdir.Operation{Path: path, Action: workdir.ActionDelete})
		case Conflict:
			content, id, err := e.storeConflict(ctx, currentID, givenID)
			if err != nil {
				return nil, err
			}
			contents[path] = content
			ops = append(ops, workdir.Operation{Path: path, Action: action, Blob: id})
			conflicts = append(conflicts, path)
		}
		e.logger.Debug("path resolved", "path", path, "resolution", res)
	}

	if _, err := e.workdir.ApplyOperations(ctx, ops, contents); err != nil {
		e.logger.Error("merge apply failed", "error", err)
		return nil, err
	}

	err := e.index.Update(func(idx *index.Index) error {
		for _, op := range ops {
			if op.Action == workdir.ActionDelete {
				idx.StageRemoval(op.Path)
			} else {
				idx.StageAddition(op.Path, op.Blob)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

// storeConflict builds the conflict content of one path and writes it to the
// object store. A zero id stands for a side that deleted the file.
func (e *Engine) storeConflict(ctx context.Context, currentID, givenID objects.ObjectHash) ([]byte, objects.ObjectHash, error) {
	read := func(id objects.ObjectHash) ([]byte, error) {
		if id.IsZero() {
			return nil, nil
		}
		return e.store.ReadBlob(ctx, id)
	}
	cur, err := read(currentID)
	if err != nil {
		return nil, "", err
	}
	giv, err := read(givenID)
	if err != nil {
		return nil, "", err
	}

	content := ConflictContent(cur, giv)
	id, err := e.store.WriteBlob(ctx, content)
	if err != nil {
		return nil, "", err
	}
	return content, id, nil
}
