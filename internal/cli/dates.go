package cli

import (
	"fmt"
	"strconv"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/meenmo/modates/tenor"
	"github.com/meenmo/modates/utils"
)

func tenorCmd(a *app) *cobra.Command {
	var unadjusted bool

	c := &cobra.Command{
		Use:   "tenor <date> <tenor>...",
		Short: "Move a date forward by one or more tenors",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := utils.DateParser(args[0])
			if err != nil {
				return err
			}
			adj := a.conv.Adjuster
			if unadjusted {
				adj = nil
			}
			eom := a.eomRoll(cmd)

			out := make([]string, 0, len(args)-1)
			for _, s := range args[1:] {
				t, err := tenor.Parse(s)
				if err != nil {
					return err
				}
				out = append(out, t.AddToDate(start, adj, eom).String())
			}
			printLines(cmd, out)
			return nil
		},
	}

	c.Flags().Bool("eom", false, "roll month end dates to month end (defaults to the profile)")
	c.Flags().BoolVar(&unadjusted, "unadjusted", false, "skip the business day adjustment")
	return c
}

func spotCmd(a *app) *cobra.Command {
	var forward string
	var spotLag int

	c := &cobra.Command{
		Use:   "spot <trade date> <tenor>",
		Short: "Compute spot, effective and maturity dates of a trade",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			trade, err := utils.DateParser(args[0])
			if err != nil {
				return err
			}
			length, err := tenor.Parse(args[1])
			if err != nil {
				return err
			}
			var fwd tenor.Tenor
			if forward != "" {
				if fwd, err = tenor.Parse(forward); err != nil {
					return err
				}
			}
			lag := a.conv.SpotLagDays
			if cmd.Flags().Changed("spot-lag") {
				lag = spotLag
			}

			spot, eff, mat := tenor.SpotMaturity(trade, lag, fwd, length, a.conv.Adjuster, a.eomRoll(cmd))
			a.log.Debug().Int("spot_lag", lag).Str("forward", forward).Msg("spot dates")
			fmt.Fprintf(cmd.OutOrStdout(), "spot=%s effective=%s maturity=%s\n", spot, eff, mat)
			return nil
		},
	}

	c.Flags().StringVar(&forward, "forward", "", "forward start tenor, e.g. 1Y")
	c.Flags().IntVar(&spotLag, "spot-lag", 0, "business days from trade to spot (defaults to the market)")
	c.Flags().Bool("eom", false, "roll month end dates to month end (defaults to the profile)")
	return c
}

func adjustCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "adjust <date>...",
		Short: "Roll dates onto business days",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dates, err := parseDates(args)
			if err != nil {
				return err
			}
			out := make([]civil.Date, len(dates))
			for i, d := range dates {
				out[i] = a.conv.Adjuster.Adjust(d)
			}
			printLines(cmd, utils.FormatDates(out))
			return nil
		},
	}
}

func holidaysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "holidays <year>",
		Short: "List the holidays of a year",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("holidays: invalid year %q", args[0])
			}
			printLines(cmd, utils.FormatDates(a.conv.Calendar.HolidaysInYear(year)))
			return nil
		},
	}
}

func parseDates(args []string) ([]civil.Date, error) {
	dates := make([]civil.Date, 0, len(args))
	for _, s := range args {
		d, err := utils.DateParser(s)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
