package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/cmd/ui"
	"github.com/utkarsh5026/gitlet/pkg/config"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [key [value]]",
		Short: "Show or change repository settings",
		Long: `With no arguments, list every setting. With a key, print its value.
With a key and a value, store the value in .gitlet/config.yaml.

Settings can also be overridden per invocation with environment variables,
for example GITLET_CORE_STRICTSHORTIDS=true.`,
		Args: operands(cobra.MaximumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				out := cmd.OutOrStdout()
				cfg := repo.Config()

				switch len(args) {
				case 0:
					for _, key := range config.Keys {
						value, err := cfg.Get(key)
						if err != nil {
							return err
						}
						fmt.Fprintln(out, ui.KeyValue(key, value))
					}
				case 1:
					value, err := cfg.Get(args[0])
					if err != nil {
						return err
					}
					fmt.Fprintln(out, value)
				default:
					return repo.ConfigManager().Set(args[0], args[1])
				}
				return nil
			})
		},
	}
}
