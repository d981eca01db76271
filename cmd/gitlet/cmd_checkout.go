package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout -- <path> | <commit> -- <path> | <branch>",
		Short: "Restore a file or switch branches",
		Long: `checkout -- <path>            restore path from the current commit
checkout <commit> -- <path>   restore path from the given commit
checkout <branch>             switch to branch, replacing tracked files`,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash := cmd.ArgsLenAtDash()
			switch {
			case dash == 0 && len(args) == 1:
				return checkoutFile(cmd, "", args[0])
			case dash == 1 && len(args) == 2:
				return checkoutFile(cmd, args[0], args[1])
			case dash == -1 && len(args) == 1:
				return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
					result, err := repo.Commits().CheckoutBranch(ctx, args[0])
					if err != nil {
						return err
					}
					logger.Info("switched branch", "branch", args[0],
						"created", result.Summary.Created,
						"modified", result.Summary.Modified,
						"deleted", result.Summary.Deleted)
					return nil
				})
			default:
				return newIncorrectOperandsError(nil)
			}
		},
	}
}

func checkoutFile(cmd *cobra.Command, ref, arg string) error {
	return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
		path, err := worktreePath(repo, arg)
		if err != nil {
			return err
		}
		return repo.Commits().CheckoutFile(ctx, ref, path)
	})
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <commit>",
		Short: "Move the current branch to a commit",
		Long: `Check out every file of the given commit, remove tracked files it does
not contain, clear the staging area and point the current branch at it.`,
		Args: operands(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				_, err := repo.Commits().Reset(ctx, args[0])
				return err
			})
		},
	}
}
