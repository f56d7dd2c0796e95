package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/datecalc/internal/presentation"
)

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		diff   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the location history",
		Long: `List the location history, oldest first. The current entry is marked
with '*'. --diff shows what changed from the previous entry as
[-removed-]{+added+}.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, closeDB, err := opts.openHistory(false)
			if err != nil {
				return err
			}
			defer closeDB()

			entries, err := repo.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			dtos := presentation.FromEntries(entries)
			if asJSON {
				return formatter.JSON(dtos)
			}
			return formatter.FormatHistory(dtos, diff)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show, 0 for all")
	cmd.Flags().BoolVar(&diff, "diff", false, "show changes between consecutive entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
