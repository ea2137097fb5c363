package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/meenmo/modates/utils"
)

func daycountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "daycount <start> <end>...",
		Short: "Count days between a start date and each end date",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := parseDates(args)
			if err != nil {
				return err
			}
			counts := a.conv.DayCount.DayCountVector(dates[0], dates[1:])
			out := make([]string, len(counts))
			for i, n := range counts {
				out[i] = strconv.Itoa(n)
			}
			printLines(cmd, out)
			return nil
		},
	}
}

func yearfracCmd(a *app) *cobra.Command {
	var decimals uint32

	c := &cobra.Command{
		Use:   "yearfrac <start> <end>...",
		Short: "Year fraction between a start date and each end date",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := parseDates(args)
			if err != nil {
				return err
			}
			fracs := a.conv.YearFraction.TimeFractionVector(dates[0], dates[1:])
			out := make([]string, len(fracs))
			for i, f := range fracs {
				if cmd.Flags().Changed("round") {
					f = utils.RoundTo(f, decimals)
				}
				out[i] = strconv.FormatFloat(f, 'f', -1, 64)
			}
			printLines(cmd, out)
			return nil
		},
	}

	c.Flags().Uint32Var(&decimals, "round", 0, "round to this many decimals")
	return c
}
