package ctl

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fooddiary/internal/bot/handler"
	"github.com/dmitrijs2005/fooddiary/internal/common"
	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/spf13/cobra"
)

func newReportCmd(opts *rootOptions) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"stats"},
		Short:   "Show calorie totals for the most recent logged days",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}

			totals, err := journal.NewReader(opts.journalPath()).DailyTotals(cmd.Context(), days)
			if errors.Is(err, common.ErrNoData) {
				fmt.Fprintln(cmd.OutOrStdout(), "No entries found.")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), handler.FormatReport(totals, days))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", common.DefaultReportWindow, "number of logged days to show")
	return cmd
}
