package cmd

import (
	"github.com/spf13/cobra"

	"github.com/zjrosen/datecalc/internal/daterange"
	"github.com/zjrosen/datecalc/internal/location"
	"github.com/zjrosen/datecalc/internal/presentation"
	"github.com/zjrosen/datecalc/internal/querystore"
)

// calcClock is the clock missing start dates default from.
var calcClock daterange.Clock = daterange.RealClock{}

func newCalcCmd(_ *options) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "calc <query>",
		Short: "Print the canonical location and result of a query",
		Long: `Calculate a date range without the terminal UI.

Missing fields are derived the same way the UI derives them: a missing end
is start plus the duration, a missing start is end minus the duration or
today, and a missing duration is the span between start and end.

Examples:
  datecalc calc 'start=2024-01-01&years=1'
  datecalc calc '?end=2024-01-01&weeks=2' --json | jq .start`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := location.Parse(args[0])
			if err != nil {
				return err
			}

			reg := daterange.Registry(calcClock)
			rec := querystore.ParseRecord(reg, q)
			dto := presentation.FromRecord(reg, rec)

			formatter := presentation.NewFormatter(cmd.OutOrStdout())
			if asJSON {
				return formatter.JSON(dto)
			}
			span := daterange.SpanOf(rec)
			return formatter.FormatCalc(dto, daterange.Summarize(span.Start, span.End))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
