package ctl

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/fooddiary/internal/flagx"
	"github.com/dmitrijs2005/fooddiary/internal/timecmd"
	"github.com/spf13/cobra"
)

func newTimeCmd() *cobra.Command {
	var (
		refZone string
		outZone string
		outName string
	)

	refDefault, ok := flagx.Getenv("DIARY_TZ")
	if !ok {
		refDefault = timecmd.DefaultZone
	}
	outDefault, ok := flagx.Getenv("DIARY_OUTPUT_TZ")
	if !ok {
		outDefault = timecmd.DefaultZone
	}

	cmd := &cobra.Command{
		Use:     "time <[today|yesterday|weekday] H am/pm>",
		Short:   "Resolve a /time expression the way the bot does",
		Example: `  diaryctl time "yesterday 6 pm"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := time.LoadLocation(refZone)
			if err != nil {
				return fmt.Errorf("load reference timezone %q: %w", refZone, err)
			}

			r, err := timecmd.NewResolver(outZone, outName)
			if err != nil {
				return err
			}
			r.Now = now

			expr := strings.Join(args, " ")
			if !strings.HasPrefix(strings.TrimSpace(expr), "/time") {
				expr = "/time " + expr
			}

			at, conf, err := r.Resolve(expr, ref)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), conf)
			fmt.Fprintf(cmd.OutOrStdout(), "UTC: %s\n", at.UTC().Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&refZone, "tz", refDefault, "zone the expression is read in")
	cmd.Flags().StringVar(&outZone, "output-tz", outDefault, "zone the result is shown in")
	cmd.Flags().StringVar(&outName, "output-name", "", "label for the output zone")
	return cmd
}
