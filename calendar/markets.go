package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// CalendarID identifies a holiday calendar.
type CalendarID string

const (
	USD    CalendarID = "USD"
	TARGET CalendarID = "TARGET"
	GBP    CalendarID = "GBP"
)

var (
	// ErrUnknownMarket is returned for a CalendarID with no factory.
	ErrUnknownMarket = errors.New("unknown market calendar")
	// ErrYearRange is returned when a materialization year range is partial or inverted.
	ErrYearRange = errors.New("invalid holiday year range")
)

// Options configures a market calendar factory.
// StartYear and EndYear are both zero (rules only) or both set with EndYear >= StartYear.
type Options struct {
	Holidays  []civil.Date
	StartYear int
	EndYear   int
}

// Validate checks the year range.
func (o Options) Validate() error {
	switch {
	case (o.StartYear == 0) != (o.EndYear == 0):
		return fmt.Errorf("%w: if start_year or end_year are set, both must be set", ErrYearRange)
	case o.EndYear < o.StartYear:
		return fmt.Errorf("%w: start_year %d must not exceed end_year %d", ErrYearRange, o.StartYear, o.EndYear)
	}
	return nil
}

func build(rules []Rule, opts Options) *Calendar {
	if err := opts.Validate(); err != nil {
		panic(err.Error())
	}
	cal := New(rules, opts.Holidays)
	if opts.StartYear != 0 {
		cal.AddHolidaysWithRules(opts.StartYear, opts.EndYear)
	}
	return cal
}

// USRules are the New York market holidays.
func USRules() []Rule {
	return []Rule{
		NewMonthDayRule("New Year's Day", time.January, 1),
		NewOrdinalWeekdayRule("Martin Luther King Jr. Day", 3, time.Monday, time.January),
		NewOrdinalWeekdayRule("Presidents' Day", 3, time.Monday, time.February),
		NewGoodFridayRule("Good Friday"),
		NewLastWeekdayRule("Memorial Day", time.Monday, time.May),
		NewMonthDayRule("Juneteenth", time.June, 19),
		NewMonthDayRule("Independence Day", time.July, 4),
		NewOrdinalWeekdayRule("Labor Day", 1, time.Monday, time.September),
		NewOrdinalWeekdayRule("Columbus Day", 2, time.Monday, time.October),
		NewMonthDayRule("Veterans Day", time.November, 11),
		NewOrdinalWeekdayRule("Thanksgiving Day", 4, time.Thursday, time.November),
		NewMonthDayRule("Christmas Day", time.December, 25),
	}
}

// TARGETRules are the TARGET2 closing days.
func TARGETRules() []Rule {
	return []Rule{
		NewMonthDayRule("New Year's Day", time.January, 1),
		NewGoodFridayRule("Good Friday"),
		NewEasterMondayRule("Easter Monday"),
		NewMonthDayRule("Labour Day", time.May, 1),
		NewMonthDayRule("Christmas Day", time.December, 25),
		NewMonthDayRule("Christmas Holiday", time.December, 26),
	}
}

// GBPRules are the London bank holidays. Weekend substitute days and one-off
// closures are not rules; add them as explicit holidays.
func GBPRules() []Rule {
	return []Rule{
		NewMonthDayRule("New Year's Day", time.January, 1),
		NewGoodFridayRule("Good Friday"),
		NewEasterMondayRule("Easter Monday"),
		NewOrdinalWeekdayRule("Early May Bank Holiday", 1, time.Monday, time.May),
		NewLastWeekdayRule("Spring Bank Holiday", time.Monday, time.May),
		NewLastWeekdayRule("Summer Bank Holiday", time.Monday, time.August),
		NewMonthDayRule("Christmas Day", time.December, 25),
		NewMonthDayRule("Boxing Day", time.December, 26),
	}
}

// NewUSCalendar builds the New York calendar, optionally materialized over a year range.
// A partial or inverted year range is a programming error and panics.
func NewUSCalendar(opts Options) *Calendar {
	return build(USRules(), opts)
}

// NewTARGETCalendar builds the TARGET2 calendar. Panics like NewUSCalendar.
func NewTARGETCalendar(opts Options) *Calendar {
	return build(TARGETRules(), opts)
}

// NewGBPCalendar builds the London calendar. Panics like NewUSCalendar.
func NewGBPCalendar(opts Options) *Calendar {
	return build(GBPRules(), opts)
}

// ParseCalendarID maps a case-insensitive market name to a CalendarID.
func ParseCalendarID(s string) (CalendarID, error) {
	switch id := CalendarID(strings.ToUpper(strings.TrimSpace(s))); id {
	case USD, TARGET, GBP:
		return id, nil
	case "NY", "US", "NYC":
		return USD, nil
	case "EUR":
		return TARGET, nil
	case "LON", "UK":
		return GBP, nil
	}
	return "", fmt.Errorf("ParseCalendarID: %w: %q", ErrUnknownMarket, s)
}

// ForMarket builds the calendar for id, returning errors instead of panicking.
func ForMarket(id CalendarID, opts Options) (*Calendar, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("ForMarket %s: %w", id, err)
	}
	switch id {
	case USD:
		return NewUSCalendar(opts), nil
	case TARGET:
		return NewTARGETCalendar(opts), nil
	case GBP:
		return NewGBPCalendar(opts), nil
	default:
		return nil, fmt.Errorf("ForMarket: %w: %q", ErrUnknownMarket, string(id))
	}
}
