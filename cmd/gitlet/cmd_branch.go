package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/cmd/ui"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "Create a branch at the current commit, or list branches",
		Long: `With a name, create a branch pointing at the current commit without
switching to it. Without one, list every branch and mark the current one.`,
		Args: operands(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				g := repo.Graph()
				if len(args) == 0 {
					branches, err := g.ListBranches(ctx)
					if err != nil {
						return err
					}
					current, err := g.CurrentBranch(ctx)
					if err != nil {
						return err
					}
					for _, b := range branches {
						marker := " "
						if b == current {
							marker = "*"
						}
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, ui.BranchInfo(b.String()))
					}
					return nil
				}

				head, err := g.HeadCommit(ctx)
				if err != nil {
					return err
				}
				return g.CreateBranch(ctx, args[0], head.ID)
			})
		},
	}
}

func newRmBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-branch <name>",
		Short: "Delete a branch pointer",
		Long:  `Delete the named branch. Its commits are kept.`,
		Args:  operands(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				return repo.Graph().DeleteBranch(ctx, args[0])
			})
		},
	}
}
