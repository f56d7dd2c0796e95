package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/log"
)

func newOpenCmd(opts *options) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "open <query>",
		Short: "Open a location in the history",
		Long: `Open a location query in the history database.

The query becomes a new history entry, or rewrites the current entry with
--replace. A running datecalc that watches the same database follows it.

Examples:
  datecalc open '?start=2024-01-01&end=2024-12-25'
  datecalc open 'start=2024-03-01&weeks=6' --replace`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := location.Parse(args[0])
			if err != nil {
				return err
			}

			repo, closeDB, err := opts.openHistory(false)
			if err != nil {
				return err
			}
			defer closeDB()

			router, err := location.NewRouter(cmd.Context(), repo)
			if err != nil {
				return err
			}
			defer router.Close()

			if replace {
				err = router.Replace(q)
			} else {
				err = router.Push(cmd.Context(), q)
			}
			if err != nil {
				return err
			}

			log.Info(log.CatLocation, "opened location", "query", router.String(), "replace", replace)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "?%s\n", router.String())
			return err
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "rewrite the current entry instead of adding one")
	return cmd
}
