package calendar

import (
	"slices"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"

	"github.com/meenmo/modates/utils"
)

// Calendar is a set of explicit holiday dates plus recurring holiday rules.
//
// Rules are evaluated on demand by IsHoliday, so materializing them with
// AddHolidaysWithRules is optional. The explicit holiday list is always
// sorted ascending without duplicates. A nil *Calendar has no holidays.
type Calendar struct {
	mu       sync.RWMutex
	holidays []civil.Date
	rules    []Rule
	log      zerolog.Logger
}

// New builds a calendar from rules and explicit holidays. Both may be nil.
func New(rules []Rule, holidays []civil.Date) *Calendar {
	return &Calendar{
		holidays: utils.SortedUnique(append([]civil.Date(nil), holidays...)),
		rules:    append([]Rule(nil), rules...),
		log:      zerolog.Nop(),
	}
}

// WithLogger attaches a logger used for debug output on bulk mutations.
func (c *Calendar) WithLogger(l zerolog.Logger) *Calendar {
	c.mu.Lock()
	c.log = l
	c.mu.Unlock()
	return c
}

// Holidays returns a copy of the explicit holiday list.
func (c *Calendar) Holidays() []civil.Date {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]civil.Date(nil), c.holidays...)
}

// Rules returns a copy of the attached rules.
func (c *Calendar) Rules() []Rule {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Rule(nil), c.rules...)
}

// DeleteHolidays clears the explicit holiday list. Rules stay attached.
func (c *Calendar) DeleteHolidays() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log.Debug().Int("count", len(c.holidays)).Msg("holidays deleted")
	c.holidays = nil
}

// AddHolidaysWithRules materializes every rule for each year in [startYear, endYear].
// An empty range adds nothing.
func (c *Calendar) AddHolidaysWithRules(startYear, endYear int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for year := startYear; year <= endYear; year++ {
		for _, r := range c.rules {
			c.holidays = append(c.holidays, r.Date(year))
		}
	}
	c.holidays = utils.SortedUnique(c.holidays)
	c.log.Debug().
		Int("start_year", startYear).
		Int("end_year", endYear).
		Int("rules", len(c.rules)).
		Int("holidays", len(c.holidays)).
		Msg("holidays materialized from rules")
}

// AddHolidays merges dates into the explicit holiday list.
func (c *Calendar) AddHolidays(dates []civil.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holidays = utils.SortedUnique(append(c.holidays, dates...))
	c.log.Debug().Int("added", len(dates)).Int("holidays", len(c.holidays)).Msg("holidays added")
}

// AddHoliday adds a single explicit holiday.
func (c *Calendar) AddHoliday(d civil.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holidays = utils.SortedUnique(append(c.holidays, d))
}

// IsHoliday reports whether d is an explicit holiday or the date any rule yields for d's year.
func (c *Calendar) IsHoliday(d civil.Date) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	if _, found := slices.BinarySearchFunc(c.holidays, d, utils.CompareDates); found {
		return true
	}
	for _, r := range c.rules {
		if r.Date(d.Year) == d {
			return true
		}
	}
	return false
}

// IsBusinessDay checks weekends and holidays.
func (c *Calendar) IsBusinessDay(d civil.Date) bool {
	return !utils.IsWeekend(d) && !c.IsHoliday(d)
}

// AddBusinessDays advances n business days. Negative n moves backwards.
func (c *Calendar) AddBusinessDays(d civil.Date, n int) civil.Date {
	if n < 0 {
		return c.SubtractBusinessDays(d, -n)
	}
	for n > 0 {
		d = nextWeekday(d)
		if c.IsHoliday(d) {
			continue
		}
		n--
	}
	return d
}

// SubtractBusinessDays moves back n business days. Negative n moves forwards.
func (c *Calendar) SubtractBusinessDays(d civil.Date, n int) civil.Date {
	if n < 0 {
		return c.AddBusinessDays(d, -n)
	}
	for n > 0 {
		d = prevWeekday(d)
		if c.IsHoliday(d) {
			continue
		}
		n--
	}
	return d
}

// HolidaysInYear lists every holiday of year, explicit or rule-based, ascending.
func (c *Calendar) HolidaysInYear(year int) []civil.Date {
	if c == nil {
		return nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]civil.Date, 0, len(c.rules))
	for _, h := range c.holidays {
		if h.Year == year {
			out = append(out, h)
		}
	}
	for _, r := range c.rules {
		out = append(out, r.Date(year))
	}
	return utils.SortedUnique(out)
}

// Combine returns a new calendar holding the union of both calendars'
// explicit holidays and the rules of a followed by the rules of b,
// e.g. New York + London for a USD/GBP trade.
func Combine(a, b *Calendar) *Calendar {
	holidays := append(a.Holidays(), b.Holidays()...)
	rules := append(a.Rules(), b.Rules()...)
	return New(rules, holidays)
}

// nextWeekday steps to the next Monday-Friday date.
func nextWeekday(d civil.Date) civil.Date {
	switch utils.Weekday(d) {
	case time.Friday:
		return d.AddDays(3)
	case time.Saturday:
		return d.AddDays(2)
	default:
		return d.AddDays(1)
	}
}

// prevWeekday steps to the previous Monday-Friday date.
func prevWeekday(d civil.Date) civil.Date {
	switch utils.Weekday(d) {
	case time.Monday:
		return d.AddDays(-3)
	case time.Sunday:
		return d.AddDays(-2)
	default:
		return d.AddDays(-1)
	}
}
