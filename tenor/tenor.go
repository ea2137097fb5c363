// Package tenor parses symbolic offsets such as "3M", "1Y6M" or "2BD" and
// applies them to dates.
package tenor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/calendar"
	"github.com/meenmo/modates/utils"
)

// ErrInvalidTenor is returned for strings that do not describe a tenor.
var ErrInvalidTenor = errors.New("invalid tenor")

// Unit is the time unit of a tenor.
type Unit byte

const (
	Day         Unit = 'D'
	BusinessDay Unit = 'B'
	Week        Unit = 'W'
	Month       Unit = 'M'
	Year        Unit = 'Y'
)

// Tenor is an immutable (magnitude, unit) pair. The zero value is not a valid tenor;
// obtain one from Parse or MustParse.
type Tenor struct {
	magnitude uint8
	unit      Unit
}

// Parse reads a tenor, case-insensitively and ignoring surrounding whitespace.
// Known market tenors are looked up first; anything else must be
// <1..255><D|W|M|Y|B|BD>.
func Parse(s string) (Tenor, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	if t, ok := canonical[key]; ok {
		return t, nil
	}

	num, unit := key, Unit(0)
	switch {
	case strings.HasSuffix(key, "BD"):
		num, unit = strings.TrimSuffix(key, "BD"), BusinessDay
	case len(key) > 1:
		num, unit = key[:len(key)-1], Unit(key[len(key)-1])
	}
	switch unit {
	case Day, BusinessDay, Week, Month, Year:
	default:
		return Tenor{}, fmt.Errorf("Parse: %w: %q has no recognised unit", ErrInvalidTenor, s)
	}

	n, err := strconv.ParseUint(num, 10, 8)
	if err != nil || n == 0 {
		return Tenor{}, fmt.Errorf("Parse: %w: %q needs a magnitude between 1 and 255", ErrInvalidTenor, s)
	}
	return Tenor{magnitude: uint8(n), unit: unit}, nil
}

// MustParse is Parse that panics on error, for tenors fixed at compile time.
func MustParse(s string) Tenor {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Magnitude returns the number of units.
func (t Tenor) Magnitude() int { return int(t.magnitude) }

// Unit returns the tenor unit.
func (t Tenor) Unit() Unit { return t.unit }

// IsZero reports whether t is the unusable zero value.
func (t Tenor) IsZero() bool { return t.magnitude == 0 }

func (t Tenor) String() string {
	if t.IsZero() {
		return ""
	}
	if t.unit == BusinessDay {
		return fmt.Sprintf("%dBD", t.magnitude)
	}
	return fmt.Sprintf("%d%c", t.magnitude, t.unit)
}

// MarshalText implements encoding.TextMarshaler.
func (t Tenor) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tenor) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// AddToDate moves d forward by the tenor.
//
// Business day tenors step on the adjuster's calendar (weekends only when adj is nil).
// For month and year tenors, when eomRoll is set and d is the last day of its month the
// result is moved to the last day of its month; otherwise a start day of 28 or 31 is
// re-applied to the result, falling back 31→30→29→28 when the month is shorter.
// Finally adj, if any, rolls the result onto a business day.
func (t Tenor) AddToDate(d civil.Date, adj *calendar.Adjuster, eomRoll bool) civil.Date {
	n := int(t.magnitude)

	var out civil.Date
	switch t.unit {
	case Day:
		out = d.AddDays(n)
	case BusinessDay:
		var cal *calendar.Calendar
		if adj != nil {
			cal = adj.Calendar
		}
		out = cal.AddBusinessDays(d, n)
	case Week:
		out = d.AddDays(7 * n)
	case Month:
		out = rollMonthEnd(d, utils.AddMonth(d, n), eomRoll)
	case Year:
		out = rollMonthEnd(d, utils.AddMonth(d, 12*n), eomRoll)
	default:
		panic(fmt.Sprintf("tenor: no arithmetic for unit %q", rune(t.unit)))
	}
	return adj.Adjust(out)
}

func rollMonthEnd(start, out civil.Date, eomRoll bool) civil.Date {
	if eomRoll && utils.IsEndOfMonth(start) {
		return utils.EndOfMonth(out)
	}
	switch start.Day {
	case 28:
		out.Day = 28
	case 31:
		out.Day = min(31, utils.DaysInMonth(out.Year, out.Month))
	}
	return out
}

// Years approximates the tenor as a year fraction (days over 365, months over 12).
func (t Tenor) Years() float64 {
	n := float64(t.magnitude)
	switch t.unit {
	case Day, BusinessDay:
		return n / 365.0
	case Week:
		return n * 7.0 / 365.0
	case Month:
		return n / 12.0
	case Year:
		return n
	default:
		return 0
	}
}
