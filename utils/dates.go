package utils

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

const dateLayout = "2006-01-02"

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// SortDates sorts a slice of dates in ascending order.
func SortDates(dates []civil.Date) {
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})
}

// SortedUnique sorts dates in place and drops duplicates, returning the shortened slice.
func SortedUnique(dates []civil.Date) []civil.Date {
	SortDates(dates)
	return slices.Compact(dates)
}

// CompareDates returns -1, 0 or +1 depending on whether a is before, equal to or after b.
func CompareDates(a, b civil.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

// DateParser converts YYYY-MM-DD to a civil.Date.
func DateParser(strDate string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(strDate))
	if err != nil {
		return civil.Date{}, fmt.Errorf("DateParser: %q is not a %s date: %w", strDate, dateLayout, err)
	}
	return d, nil
}

// MustDate builds a date and panics if it does not exist in the Gregorian calendar.
func MustDate(year int, month time.Month, day int) civil.Date {
	d := civil.Date{Year: year, Month: month, Day: day}
	if !ValidDate(d) {
		panic(fmt.Sprintf("MustDate: %04d-%02d-%02d is not a valid date", year, int(month), day))
	}
	return d
}

// ValidDate reports whether d names an existing proleptic Gregorian day.
func ValidDate(d civil.Date) bool {
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Year, d.Month)
}

// IsLeapYear applies the Gregorian leap year rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && year%100 != 0 || year%400 == 0
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	if month == time.February && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}

// EndOfMonth returns the last calendar day of d's month.
func EndOfMonth(d civil.Date) civil.Date {
	return civil.Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// IsEndOfMonth reports whether d is the last calendar day of its month.
func IsEndOfMonth(d civil.Date) bool {
	return d.Day == DaysInMonth(d.Year, d.Month)
}

// EndOfFebruary returns Feb 28 or Feb 29 of the given year.
func EndOfFebruary(year int) civil.Date {
	return civil.Date{Year: year, Month: time.February, Day: DaysInMonth(year, time.February)}
}

// AddMonth behaves like Excel's EDATE: the day is kept unless the target month is
// shorter, in which case the result is the target month's last day.
func AddMonth(d civil.Date, months int) civil.Date {
	total := d.Year*12 + int(d.Month) - 1 + months
	year := floorDiv(total, 12)
	month := time.Month(total - year*12 + 1)
	day := min(d.Day, DaysInMonth(year, month))
	return civil.Date{Year: year, Month: month, Day: day}
}

// SerialDay numbers days consecutively with 0001-01-01 as day 1.
func SerialDay(d civil.Date) int {
	y := d.Year
	m := int(d.Month)
	if m <= 2 {
		y--
	}
	era := floorDiv(y, 400)
	yoe := y - era*400
	mp := (m + 9) % 12
	doy := (153*mp+2)/5 + d.Day - 1
	doe := yoe*365 + yoe/4 - yoe/100 + doy
	// 0000-03-01 is offset 0; 0001-01-01 lands on 306.
	return era*146097 + doe - 305
}

// Weekday returns the day of the week of d. 0001-01-01 was a Monday.
func Weekday(d civil.Date) time.Weekday {
	w := SerialDay(d) % 7
	if w < 0 {
		w += 7
	}
	return time.Weekday(w)
}

// IsWeekend reports whether d is a Saturday or a Sunday.
func IsWeekend(d civil.Date) bool {
	w := Weekday(d)
	return w == time.Saturday || w == time.Sunday
}

// FormatDates renders dates as YYYY-MM-DD strings.
func FormatDates(dates []civil.Date) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.String()
	}
	return out
}

// RoundTo rounds a float to the specified decimal places.
func RoundTo(val float64, decimals uint32) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
