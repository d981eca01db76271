package main

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/utkarsh5026/gitlet/cmd/ui"
	"github.com/utkarsh5026/gitlet/pkg/commitmanager"
	"github.com/utkarsh5026/gitlet/pkg/repository/sourcerepo"
)

const tableMessageWidth = 50

func newLogCmd() *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the history of the current branch",
		Long: `Show the commits from the head of the current branch back to the initial
commit, following first parents only.`,
		Args: operands(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				entries, err := repo.Commits().Log(ctx)
				if err != nil {
					return err
				}
				return printLog(cmd.OutOrStdout(), " Commit History ", entries, useTable)
			})
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")
	return cmd
}

func newGlobalLogCmd() *cobra.Command {
	var useTable bool

	cmd := &cobra.Command{
		Use:   "global-log",
		Short: "Show every commit ever made",
		Args:  operands(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				entries, err := repo.Commits().GlobalLog(ctx)
				if err != nil {
					return err
				}
				return printLog(cmd.OutOrStdout(), " All Commits ", entries, useTable)
			})
		},
	}

	cmd.Flags().BoolVarP(&useTable, "table", "t", false, "Display commits in table format")
	return cmd
}

func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find <message>",
		Short: "Print the ids of commits with the given message",
		Args:  operands(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRepository(cmd, func(ctx context.Context, repo *sourcerepo.SourceRepository) error {
				ids, err := repo.Commits().Find(ctx, args[0])
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			})
		},
	}
}

func printLog(w io.Writer, title string, entries []commitmanager.LogEntry, useTable bool) error {
	if !useTable {
		for _, e := range entries {
			fmt.Fprint(w, e.String())
		}
		return nil
	}

	fmt.Fprintln(w, ui.Header(title))
	fmt.Fprintln(w)

	table := tablewriter.NewWriter(w)
	table.Header("Commit", "Date", "Age", "Message")
	for _, e := range entries {
		message := e.Message
		if len(message) > tableMessageWidth {
			message = message[:tableMessageWidth-3] + "..."
		}
		if err := table.Append(
			ui.ShortID(e.ID.Short().String(), e.IsMerge()),
			ui.Magenta(e.Timestamp.Format("2006-01-02 15:04")),
			ui.Gray(humanize.Time(e.Timestamp)),
			message,
		); err != nil {
			return err
		}
	}
	return table.Render()
}
