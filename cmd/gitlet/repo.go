package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

// withRepository opens the repository enclosing the current directory, runs
// fn against it and closes it again.
func withRepository(cmd *cobra.Command, fn func(ctx context.Context, repo *sourcerepo.SourceRepository) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}
	root, err := sourcerepo.FindRoot(cwd)
	if err != nil {
		return err
	}

	cfg, err := sourcerepo.LoadConfig(root)
	if err != nil {
		return err
	}
	configureLogging(cmd, cfg)

	ctx := cmd.Context()
	repo, err := sourcerepo.Open(ctx, root)
	if err != nil {
		return err
	}
	defer repo.Close()

	return fn(ctx, repo)
}

// worktreePath turns a path given on the command line, relative to the
// current directory, into a slash-separated path relative to the working
// tree root.
func worktreePath(repo *sourcerepo.SourceRepository, arg string) (string, error) {
	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(repo.WorkingDirectory().String(), abs)
	if err != nil {
		return "", err
	}
	return repo.Workdir().Normalize(filepath.ToSlash(rel))
}
