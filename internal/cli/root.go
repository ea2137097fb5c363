// Package cli implements the datecalc command line tool.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/meenmo/modates/config"
	"github.com/meenmo/modates/internal/logger"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// app carries the resolved state shared by every subcommand.
type app struct {
	configPath   string
	logLevel     string
	pretty       bool
	markets      []string
	adjustment   string
	dayCount     string
	yearFraction string

	log  zerolog.Logger
	conv config.Conventions
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:          "datecalc",
		Short:        "Business day calendars, tenors, day counts and year fractions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.configPath, "config", "c", "", "convention profile (.yaml, .yml, .toml or .json)")
	pf.StringVar(&a.logLevel, "log-level", "warn", "debug, info, warn, error or disabled")
	pf.BoolVar(&a.pretty, "pretty", false, "human readable logs")
	pf.StringSliceVar(&a.markets, "calendar", nil, "market calendars to combine, e.g. USD,GBP")
	pf.StringVar(&a.adjustment, "adjust", "", "business day convention, e.g. MF")
	pf.StringVar(&a.dayCount, "day-count", "", "day count convention, e.g. 30E/360")
	pf.StringVar(&a.yearFraction, "year-fraction", "", "year fraction convention, e.g. ACT/365F")

	cmd.AddCommand(
		tenorCmd(a),
		spotCmd(a),
		adjustCmd(a),
		holidaysCmd(a),
		daycountCmd(a),
		yearfracCmd(a),
		batchCmd(a),
	)
	return cmd
}

// setup loads the profile, applies flag overrides and resolves the conventions.
func (a *app) setup(cmd *cobra.Command) error {
	a.log = logger.New(logger.Config{
		Level:  a.logLevel,
		Pretty: a.pretty,
		Out:    cmd.ErrOrStderr(),
	})

	cfg := config.GetConfig()
	if path := strings.TrimSpace(a.configPath); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return err
		}
		cfg = loaded
		a.log.Debug().Str("path", path).Msg("profile loaded")
	}

	if len(a.markets) > 0 {
		cfg.Calendar.Markets = a.markets
	}
	if a.adjustment != "" {
		cfg.Adjustment = a.adjustment
	}
	if a.dayCount != "" {
		cfg.DayCount = a.dayCount
	}
	if a.yearFraction != "" {
		cfg.YearFraction = a.yearFraction
	}
	config.SetConfig(cfg)

	conv, err := cfg.Resolve(a.log)
	if err != nil {
		return err
	}
	a.conv = conv
	return nil
}

// eomRoll reads the --eom flag of cmd, falling back to the profile.
func (a *app) eomRoll(cmd *cobra.Command) bool {
	if f := cmd.Flags().Lookup("eom"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("eom")
		return v
	}
	return a.conv.EndOfMonth
}

func printLines(cmd *cobra.Command, lines []string) {
	out := cmd.OutOrStdout()
	for _, l := range lines {
		fmt.Fprintln(out, l)
	}
}
