// Package commitmanager implements the user-level operations that move data
// between the working directory, the staging index and the commit graph.
package commitmanager

import (
	"context"
	"log/slog"
	"strings"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/graph"
	"github.com/utkarsh5026/gitlet/pkg/index"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/store"
	"github.com/utkarsh5026/gitlet/pkg/workdir"
)

// Manager handles staging, committing and checking out.
//
// The commit process:
//  1. Read the staged additions and removals
//  2. Apply them to the HEAD snapshot
//  3. Store a commit whose only parent is HEAD
//  4. Advance the current branch and clear the index
//
// Manager is not safe for concurrent use; a repository has one writer.
type Manager struct {
	store   store.ObjectStore
	graph   *graph.Graph
	index   *index.Manager
	workdir *workdir.Manager
	history History
	logger  *slog.Logger
}

// NewManager wires a Manager to the components of one repository.
func NewManager(s store.ObjectStore, g *graph.Graph, idx *index.Manager, wd *workdir.Manager, h History) *Manager {
	return &Manager{
		store:   s,
		graph:   g,
		index:   idx,
		workdir: wd,
		history: h,
		logger:  logger.With("component", "commitmanager"),
	}
}

// Add stages the current content of a working file. Content equal to the
// HEAD version is not staged, and any staged addition of it is dropped.
// A pending removal of the path is always cleared.
func (m *Manager) Add(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rel, err := m.workdir.Normalize(path)
	if err != nil {
		return err
	}
	data, err := m.workdir.ReadFile(rel)
	if err != nil {
		return err
	}
	id, err := m.store.WriteBlob(ctx, data)
	if err != nil {
		m.logger.Error("blob write failed", "path", rel, "error", err)
		return err
	}
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return err
	}

	return m.index.Update(func(idx *index.Index) error {
		if tracked, ok := head.Snapshot.Get(rel); ok && tracked == id {
			idx.Unstage(rel)
			m.logger.Debug("add: content matches HEAD", "path", rel)
			return nil
		}
		idx.StageAddition(rel, id)
		m.logger.Debug("staged for addition", "path", rel, "blob", id.Short())
		return nil
	})
}

// Remove unstages a staged file, or stages a tracked file for removal and
// deletes it from the working directory.
func (m *Manager) Remove(ctx context.Context, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rel, err := m.workdir.Normalize(path)
	if err != nil {
		return err
	}
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return err
	}

	var deleteFile bool
	err = m.index.Update(func(idx *index.Index) error {
		if idx.IsStagedForAddition(rel) {
			idx.Unstage(rel)
			return nil
		}
		if !head.Snapshot.Has(rel) {
			return NewNothingToRemoveError(rel)
		}
		idx.StageRemoval(rel)
		deleteFile = true
		return nil
	})
	if err != nil {
		return err
	}

	if deleteFile {
		if err := m.workdir.DeleteFile(rel); err != nil {
			return err
		}
	}
	m.logger.Debug("removed", "path", rel, "deleted", deleteFile)
	return nil
}

// Commit records the staged changes as a new commit on the current branch.
func (m *Manager) Commit(ctx context.Context, message string) (*commit.Commit, error) {
	if m.index.IsEmpty() {
		return nil, NewNothingStagedError()
	}
	return m.commit(ctx, message, "")
}

// CommitMerge records the staged changes as a merge commit whose second
// parent is mergeParent. An empty index is allowed.
func (m *Manager) CommitMerge(ctx context.Context, message string, mergeParent objects.ObjectHash) (*commit.Commit, error) {
	return m.commit(ctx, message, mergeParent)
}

func (m *Manager) commit(ctx context.Context, message string, mergeParent objects.ObjectHash) (*commit.Commit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.TrimSpace(message) == "" {
		return nil, graph.NewEmptyMessageError(nil)
	}

	branch, err := m.graph.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}

	var snapshot commit.Snapshot
	if err := m.index.View(func(idx *index.Index) error {
		snapshot = idx.Apply(head.Snapshot)
		return nil
	}); err != nil {
		return nil, err
	}

	parents := []objects.ObjectHash{head.ID}
	if !mergeParent.IsZero() {
		parents = append(parents, mergeParent)
	}

	c, err := m.graph.CreateCommit(ctx, message, parents, snapshot)
	if err != nil {
		return nil, err
	}
	if err := m.graph.SetHead(ctx, branch, c.ID); err != nil {
		return nil, err
	}
	if err := m.index.Clear(); err != nil {
		return nil, err
	}

	m.logger.Debug("committed", "id", c.ID.Short(), "branch", branch, "files", len(snapshot))
	return c, nil
}

// Resolve returns the commit named by ref, or HEAD when ref is empty.
func (m *Manager) Resolve(ctx context.Context, ref string) (*commit.Commit, error) {
	if ref == "" {
		return m.graph.HeadCommit(ctx)
	}
	return m.graph.ResolveCommit(ctx, ref)
}

// StagedPaths returns a predicate reporting whether a path is staged for
// addition or removal.
func (m *Manager) StagedPaths() (func(path string) bool, error) {
	staged := make(map[string]bool)
	err := m.index.View(func(idx *index.Index) error {
		for _, p := range idx.Additions() {
			staged[p] = true
		}
		for _, p := range idx.Removals() {
			staged[p] = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return func(path string) bool { return staged[path] }, nil
}

// IsUntrackedConflict reports whether err is an untracked file conflict.
func IsUntrackedConflict(e error) bool {
	return scerr.IsCode(e, scerr.CodeUntrackedConflict)
}
