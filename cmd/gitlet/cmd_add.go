package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>...",
		Short: "Stage files for the next commit",
		Long: `Stage the current contents of each file for the next commit.
A file whose contents match the current commit is unstaged instead, and a
pending removal of it is cancelled.`,
		Args: operands(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				for _, arg := range args {
					path, err := worktreePath(repo, arg)
					if err != nil {
						return err
					}
					if err := repo.Commits().Add(ctx, path); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <path>",
		Short: "Unstage a file or stage its removal",
		Long: `Unstage the file if it is staged for addition. If it is tracked in the
current commit, stage it for removal and delete it from the working tree.`,
		Args: operands(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				path, err := worktreePath(repo, args[0])
				if err != nil {
					return err
				}
				return repo.Commits().Remove(ctx, path)
			})
		},
	}
}
