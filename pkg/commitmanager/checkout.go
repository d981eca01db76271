package commitmanager

import (
	"context"

	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/workdir"
)

// CheckoutFile overwrites one working file with its version in the commit
// named by ref (HEAD when ref is empty). The index is not touched.
func (m *Manager) CheckoutFile(ctx context.Context, ref, path string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	rel, err := m.workdir.Normalize(path)
	if err != nil {
		return err
	}
	c, err := m.Resolve(ctx, ref)
	if err != nil {
		return err
	}
	id, ok := c.Snapshot.Get(rel)
	if !ok {
		return NewFileNotInCommitError(rel, c.ID.Short().String())
	}
	data, err := m.store.ReadBlob(ctx, id)
	if err != nil {
		return err
	}
	if err := m.workdir.WriteFile(rel, data); err != nil {
		return err
	}

	m.logger.Debug("file checked out", "path", rel, "commit", c.ID.Short())
	return nil
}

// CheckoutBranch makes name the current branch and rewrites the working
// directory to its head snapshot.
func (m *Manager) CheckoutBranch(ctx context.Context, name string) (workdir.ApplyResult, error) {
	select {
	case <-ctx.Done():
		return workdir.ApplyResult{}, ctx.Err()
	default:
	}

	target, err := m.graph.BranchHead(ctx, name)
	if err != nil {
		return workdir.ApplyResult{}, err
	}
	current, err := m.graph.CurrentBranch(ctx)
	if err != nil {
		return workdir.ApplyResult{}, err
	}
	if current.String() == name {
		return workdir.ApplyResult{}, NewAlreadyOnBranchError(name)
	}

	targetCommit, err := m.graph.GetCommit(ctx, target)
	if err != nil {
		return workdir.ApplyResult{}, err
	}
	staged, err := m.StagedPaths()
	if err != nil {
		return workdir.ApplyResult{}, err
	}
	res, err := m.switchSnapshot(ctx, targetCommit, staged)
	if err != nil {
		return workdir.ApplyResult{}, err
	}

	if err := m.graph.SwitchBranch(ctx, name); err != nil {
		return workdir.ApplyResult{}, err
	}
	if err := m.index.Clear(); err != nil {
		return workdir.ApplyResult{}, err
	}

	m.logger.Debug("branch checked out", "branch", name, "commit", target.Short())
	return res, nil
}

// Reset moves the current branch to the commit named by ref and rewrites
// the working directory to match it. The commit need not be reachable from
// the current branch.
func (m *Manager) Reset(ctx context.Context, ref string) (*commit.Commit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	target, err := m.graph.ResolveCommit(ctx, ref)
	if err != nil {
		return nil, err
	}
	if err := m.MoveCurrentBranch(ctx, target); err != nil {
		return nil, err
	}
	return target, nil
}

// MoveCurrentBranch rewrites the working directory to target, points the
// current branch at it and clears the index. Any working file missing from
// HEAD but tracked by target blocks the move, staged or not.
func (m *Manager) MoveCurrentBranch(ctx context.Context, target *commit.Commit) error {
	branch, err := m.graph.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if _, err := m.switchSnapshot(ctx, target, nil); err != nil {
		return err
	}
	if err := m.graph.SetHead(ctx, branch, target.ID); err != nil {
		return err
	}
	if err := m.index.Clear(); err != nil {
		return err
	}

	m.logger.Debug("branch moved", "branch", branch, "commit", target.ID.Short())
	return nil
}

// switchSnapshot checks for untracked files in the way and then applies
// target over the HEAD snapshot. Nothing is written when the check fails.
func (m *Manager) switchSnapshot(ctx context.Context, target *commit.Commit, staged func(string) bool) (workdir.ApplyResult, error) {
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return workdir.ApplyResult{}, err
	}
	if err := m.workdir.CheckUntracked(head.Snapshot, target.Snapshot, staged); err != nil {
		return workdir.ApplyResult{}, err
	}
	return m.workdir.ApplySnapshot(ctx, head.Snapshot, target.Snapshot)
}
