// Package config holds the convention profile used to build calendars,
// adjusters and year fraction calculators.
package config

import (
	"errors"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/meenmo/modates/calendar"
	"github.com/meenmo/modates/daycount"
	"github.com/meenmo/modates/utils"
	"github.com/meenmo/modates/yearfrac"
)

// ErrInvalidConfig wraps every validation or decoding failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is a convention profile.
type Config struct {
	Calendar CalendarConfig `yaml:"calendar" toml:"calendar" json:"calendar"`

	// Adjustment is the business day convention, e.g. MODIFIED_FOLLOWING or MF.
	Adjustment string `yaml:"adjustment" toml:"adjustment" json:"adjustment"`

	// DayCount is the raw day counting rule, e.g. ACT or 30E/360.
	DayCount string `yaml:"day_count" toml:"day_count" json:"day_count"`

	// YearFraction is the quoted convention, e.g. ACT/360 or ACT/ACT ISDA.
	YearFraction string `yaml:"year_fraction" toml:"year_fraction" json:"year_fraction"`

	// EndOfMonth enables the end-of-month roll for month and year tenors.
	EndOfMonth bool `yaml:"end_of_month" toml:"end_of_month" json:"end_of_month"`
}

// CalendarConfig describes the holiday calendar. Several markets are combined.
type CalendarConfig struct {
	Markets []string `yaml:"markets" toml:"markets" json:"markets"`

	// StartYear and EndYear materialize rule holidays; leave both zero to evaluate rules on demand.
	StartYear int `yaml:"start_year" toml:"start_year" json:"start_year"`
	EndYear   int `yaml:"end_year" toml:"end_year" json:"end_year"`

	// Holidays are extra closures in YYYY-MM-DD form.
	Holidays []string `yaml:"holidays" toml:"holidays" json:"holidays"`
}

// DefaultConfig is the New York profile.
var DefaultConfig = Config{
	Calendar:     CalendarConfig{Markets: []string{string(calendar.USD)}},
	Adjustment:   string(calendar.ModifiedFollowing),
	DayCount:     string(daycount.Actual),
	YearFraction: yearfrac.Act360,
	EndOfMonth:   true,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}

// WithMarketDefaults fills empty fields from the first market's conventions.
func (c Config) WithMarketDefaults() Config {
	if len(c.Calendar.Markets) == 0 {
		c.Calendar.Markets = []string{string(calendar.USD)}
	}
	id, err := calendar.ParseCalendarID(c.Calendar.Markets[0])
	if err != nil {
		return c
	}
	mc := MarketConventions(id)
	if c.Adjustment == "" {
		c.Adjustment = string(mc.Adjustment)
	}
	if c.DayCount == "" {
		c.DayCount = string(mc.DayCount)
	}
	if c.YearFraction == "" {
		c.YearFraction = mc.YearFraction
	}
	return c
}

// Validate checks every field without building anything.
func (c Config) Validate() error {
	_, err := c.Resolve(zerolog.Nop())
	return err
}

// Conventions is a resolved Config ready for use.
type Conventions struct {
	Calendar     *calendar.Calendar
	Adjuster     *calendar.Adjuster
	DayCount     daycount.Convention
	YearFraction yearfrac.Calc
	EndOfMonth   bool
	SpotLagDays  int
}

// Resolve parses the profile and builds the combined calendar.
func (c Config) Resolve(log zerolog.Logger) (Conventions, error) {
	c = c.WithMarketDefaults()

	holidays := make([]civil.Date, 0, len(c.Calendar.Holidays))
	for _, h := range c.Calendar.Holidays {
		d, err := utils.DateParser(h)
		if err != nil {
			return Conventions{}, fmt.Errorf("%w: calendar.holidays: %v", ErrInvalidConfig, err)
		}
		holidays = append(holidays, d)
	}
	opts := calendar.Options{StartYear: c.Calendar.StartYear, EndYear: c.Calendar.EndYear}
	if err := opts.Validate(); err != nil {
		return Conventions{}, fmt.Errorf("%w: calendar: %v", ErrInvalidConfig, err)
	}

	var cal *calendar.Calendar
	var spotLag int
	for i, name := range c.Calendar.Markets {
		id, err := calendar.ParseCalendarID(name)
		if err != nil {
			return Conventions{}, fmt.Errorf("%w: calendar.markets: %v", ErrInvalidConfig, err)
		}
		market, err := calendar.ForMarket(id, opts)
		if err != nil {
			return Conventions{}, fmt.Errorf("%w: calendar.markets: %v", ErrInvalidConfig, err)
		}
		spotLag = max(spotLag, MarketConventions(id).SpotLagDays)
		if i == 0 {
			cal = market
			continue
		}
		cal = calendar.Combine(cal, market)
	}
	cal.AddHolidays(holidays)
	cal.WithLogger(log)

	adj, err := calendar.ParseConvention(c.Adjustment)
	if err != nil {
		return Conventions{}, fmt.Errorf("%w: adjustment: %v", ErrInvalidConfig, err)
	}
	dc, err := daycount.ParseConvention(c.DayCount)
	if err != nil {
		return Conventions{}, fmt.Errorf("%w: day_count: %v", ErrInvalidConfig, err)
	}
	yf, err := yearfrac.ForConvention(c.YearFraction)
	if err != nil {
		return Conventions{}, fmt.Errorf("%w: year_fraction: %v", ErrInvalidConfig, err)
	}

	log.Debug().
		Strs("markets", c.Calendar.Markets).
		Int("rules", len(cal.Rules())).
		Int("holidays", len(cal.Holidays())).
		Str("adjustment", string(adj)).
		Str("day_count", string(dc)).
		Str("year_fraction", c.YearFraction).
		Msg("conventions resolved")

	return Conventions{
		Calendar:     cal,
		Adjuster:     calendar.NewAdjuster(adj, cal),
		DayCount:     dc,
		YearFraction: yf,
		EndOfMonth:   c.EndOfMonth,
		SpotLagDays:  spotLag,
	}, nil
}
