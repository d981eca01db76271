package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newCommitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commit <message>",
		Short: "Record the staged changes",
		Args:  operands(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			}
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				c, err := repo.Commits().Commit(ctx, message)
				if err != nil {
					return err
				}
				logger.Info("committed", "commit", c.ID.Short())
				return nil
			})
		},
	}
}
