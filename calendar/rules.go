package calendar

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/utils"
)

// RuleKind enumerates the supported recurring holiday shapes.
type RuleKind int

const (
	// OrdinalWeekday is the n-th given weekday of a month (e.g. 3rd Monday of January).
	OrdinalWeekday RuleKind = iota + 1
	// LastWeekday is the last given weekday of a month (e.g. last Monday of May).
	LastWeekday
	// MonthDay is a fixed month and day every year.
	MonthDay
	// EasterMonday is the day after Easter Sunday.
	EasterMonday
	// GoodFriday is two days before Easter Sunday.
	GoodFriday
)

func (k RuleKind) String() string {
	switch k {
	case OrdinalWeekday:
		return "ORDINAL_WEEKDAY"
	case LastWeekday:
		return "LAST_WEEKDAY"
	case MonthDay:
		return "MONTH_DAY"
	case EasterMonday:
		return "EASTER_MONDAY"
	case GoodFriday:
		return "GOOD_FRIDAY"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule produces one holiday date per year. Only the fields relevant to Kind are set.
type Rule struct {
	Kind    RuleKind
	Name    string
	Month   time.Month
	Weekday time.Weekday
	Ordinal int
	Day     int
}

// NewOrdinalWeekdayRule returns the rule for the ordinal-th weekday of month.
// Columbus Day is NewOrdinalWeekdayRule("Columbus Day", 2, time.Monday, time.October).
func NewOrdinalWeekdayRule(name string, ordinal int, weekday time.Weekday, month time.Month) Rule {
	if ordinal < 1 || ordinal > 4 {
		panic(fmt.Sprintf("NewOrdinalWeekdayRule: ordinal %d outside 1..4", ordinal))
	}
	mustMonth("NewOrdinalWeekdayRule", month)
	return Rule{Kind: OrdinalWeekday, Name: name, Ordinal: ordinal, Weekday: weekday, Month: month}
}

// NewLastWeekdayRule returns the rule for the last weekday of month.
func NewLastWeekdayRule(name string, weekday time.Weekday, month time.Month) Rule {
	mustMonth("NewLastWeekdayRule", month)
	return Rule{Kind: LastWeekday, Name: name, Weekday: weekday, Month: month}
}

// NewMonthDayRule returns a fixed-date rule. The day must exist in every year,
// so February 29 is rejected.
func NewMonthDayRule(name string, month time.Month, day int) Rule {
	mustMonth("NewMonthDayRule", month)
	if !utils.ValidDate(civil.Date{Year: 2001, Month: month, Day: day}) {
		panic(fmt.Sprintf("NewMonthDayRule: day %d does not exist every year in %s", day, month))
	}
	return Rule{Kind: MonthDay, Name: name, Month: month, Day: day}
}

// NewEasterMondayRule returns the Monday-after-Easter rule.
func NewEasterMondayRule(name string) Rule {
	return Rule{Kind: EasterMonday, Name: name}
}

// NewGoodFridayRule returns the Friday-before-Easter rule.
func NewGoodFridayRule(name string) Rule {
	return Rule{Kind: GoodFriday, Name: name}
}

// Date evaluates the rule for year.
func (r Rule) Date(year int) civil.Date {
	switch r.Kind {
	case OrdinalWeekday:
		first := civil.Date{Year: year, Month: r.Month, Day: 1}
		offset := (int(r.Weekday) - int(utils.Weekday(first)) + 7) % 7
		return first.AddDays(offset + 7*(r.Ordinal-1))
	case LastWeekday:
		last := utils.EndOfMonth(civil.Date{Year: year, Month: r.Month, Day: 1})
		offset := (int(utils.Weekday(last)) - int(r.Weekday) + 7) % 7
		return last.AddDays(-offset)
	case MonthDay:
		return civil.Date{Year: year, Month: r.Month, Day: r.Day}
	case EasterMonday:
		return EasterSunday(year).AddDays(1)
	case GoodFriday:
		return EasterSunday(year).AddDays(-2)
	default:
		panic(fmt.Sprintf("calendar: unsupported rule kind %s", r.Kind))
	}
}

func mustMonth(fn string, month time.Month) {
	if month < time.January || month > time.December {
		panic(fmt.Sprintf("%s: invalid month %d", fn, int(month)))
	}
}
