package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/cmd/ui"
	"github.com/utkarsh5026/gitlet/pkg/config"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newInitCmd() *cobra.Command {
	var hash, defaultBranch string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new repository in the current directory",
		Long: `Create a new repository in the current directory.
This writes a .gitlet directory holding the initial commit and a single
branch pointing at it.`,
		Args: operands(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			algo, err := objects.ParseAlgorithm(hash)
			if err != nil {
				return newIncorrectOperandsError(err)
			}

			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to get current directory: %w", err)
			}
			path, err := scpath.NewRepositoryPath(cwd)
			if err != nil {
				return err
			}

			repo, err := sourcerepo.Initialize(cmd.Context(), path, sourcerepo.InitOptions{
				HashAlgorithm: algo,
				DefaultBranch: defaultBranch,
			})
			if err != nil {
				return err
			}
			defer repo.Close()

			fmt.Fprintln(cmd.OutOrStdout(), ui.SuccessMessage("Initialized empty Gitlet repository in", path.SourcePath().String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&hash, "hash", string(objects.AlgorithmSHA1), "Object hash algorithm (sha1, blake3)")
	cmd.Flags().StringVar(&defaultBranch, "default-branch", config.DefaultBranch, "Name of the initial branch")
	return cmd
}
