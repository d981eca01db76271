package graph

import (
	"context"

	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/refs"
)

// CreateBranch adds name to the branch table pointing at the commit at.
func (g *Graph) CreateBranch(ctx context.Context, name string, at objects.ObjectHash) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	branch, err := refs.NewBranchName(name)
	if err != nil {
		return refs.NewInvalidBranchNameError(name, err)
	}

	exists, err := g.refs.BranchExists(branch)
	if err != nil {
		return err
	}
	if exists {
		return NewBranchExistsError(branch)
	}
	if _, err := g.GetCommit(ctx, at); err != nil {
		return err
	}

	if err := g.refs.WriteBranch(branch, at); err != nil {
		return err
	}
	g.logger.Debug("branch created", "branch", branch, "at", at)
	return nil
}

// DeleteBranch removes name from the branch table. The commits it pointed at
// are untouched.
func (g *Graph) DeleteBranch(ctx context.Context, name string) error {
	branch, err := g.existingBranch(name)
	if err != nil {
		return err
	}

	current, err := g.CurrentBranch(ctx)
	if err != nil {
		return err
	}
	if current == branch {
		return NewCannotDeleteCurrentError(branch)
	}

	if _, err := g.refs.DeleteBranch(branch); err != nil {
		return err
	}
	g.logger.Debug("branch deleted", "branch", branch)
	return nil
}

// SetHead moves the head of an existing branch to id.
func (g *Graph) SetHead(ctx context.Context, name refs.BranchName, id objects.ObjectHash) error {
	if _, err := g.existingBranch(name.String()); err != nil {
		return err
	}
	if _, err := g.GetCommit(ctx, id); err != nil {
		return err
	}
	if err := g.refs.WriteBranch(name, id); err != nil {
		return err
	}
	g.logger.Debug("branch moved", "branch", name, "to", id)
	return nil
}

// ListBranches returns every branch name, sorted.
func (g *Graph) ListBranches(ctx context.Context) ([]refs.BranchName, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return g.refs.ListBranches()
}

// CurrentBranch returns the branch HEAD names.
func (g *Graph) CurrentBranch(ctx context.Context) (refs.BranchName, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	return g.refs.ReadHead()
}

// SwitchBranch points HEAD at an existing branch. The working directory is
// the caller's concern.
func (g *Graph) SwitchBranch(ctx context.Context, name string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	branch, err := g.existingBranch(name)
	if err != nil {
		return err
	}
	return g.refs.WriteHead(branch)
}

// BranchHead returns the commit id name points at.
func (g *Graph) BranchHead(ctx context.Context, name string) (objects.ObjectHash, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}
	branch, err := refs.NewBranchName(name)
	if err != nil {
		return "", refs.NewNoSuchBranchError(refs.BranchName(name))
	}
	return g.refs.ReadBranch(branch)
}

// HeadCommit returns the head commit of the current branch.
func (g *Graph) HeadCommit(ctx context.Context) (*commit.Commit, error) {
	current, err := g.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	id, err := g.refs.ReadBranch(current)
	if err != nil {
		return nil, err
	}
	return g.GetCommit(ctx, id)
}

// existingBranch validates name and checks that it has a ref file. Invalid
// names cannot exist, so they report NoSuchBranch.
func (g *Graph) existingBranch(name string) (refs.BranchName, error) {
	branch, err := refs.NewBranchName(name)
	if err != nil {
		return "", refs.NewNoSuchBranchError(refs.BranchName(name))
	}
	exists, err := g.refs.BranchExists(branch)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", refs.NewNoSuchBranchError(branch)
	}
	return branch, nil
}
