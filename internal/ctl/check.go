package ctl

import (
	"fmt"

	"github.com/dmitrijs2005/fooddiary/internal/diary/journal"
	"github.com/spf13/cobra"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Count valid and skipped journal lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, stats, err := journal.NewReader(opts.journalPath()).Entries(cmd.Context())
			if err != nil {
				return err
			}

			kcal := 0
			for _, e := range entries {
				kcal += e.Calories
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "journal: %s\n", opts.journalPath())
			fmt.Fprintf(out, "valid: %d\nskipped: %d\npartial: %d\n", stats.Valid, stats.Skipped, stats.Partial)
			fmt.Fprintf(out, "calories: %d\n", kcal)

			if strict && (stats.Skipped > 0 || stats.Partial > 0) {
				return fmt.Errorf("journal has %d unreadable line(s)", stats.Skipped+stats.Partial)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail when any line is unreadable")
	return cmd
}
