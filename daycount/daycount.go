// Package daycount counts the days between two dates under a day count convention.
package daycount

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/utils"
)

// ErrUnknownConvention is returned when a day count name is not recognised.
var ErrUnknownConvention = errors.New("unknown day count convention")

// Convention selects how days are counted.
type Convention string

const (
	// Actual counts calendar days.
	Actual Convention = "ACT"
	// Thirty360Bond is 30/360 with the bond basis day rules.
	Thirty360Bond Convention = "30/360"
	// Thirty360E is 30E/360 (Eurobond basis). Counts identically to Thirty360Bond.
	Thirty360E Convention = "30E/360"
	// Thirty360U is 30/360 with the end-of-February rules.
	Thirty360U Convention = "30U/360"
	// Thirty360EISDA is 30E/360 ISDA: month-end days count as 30.
	Thirty360EISDA Convention = "30E/360 ISDA"
)

var conventionAliases = map[string]Convention{
	"ACT":          Actual,
	"ACTUAL":       Actual,
	"30/360":       Thirty360Bond,
	"30/360 BOND":  Thirty360Bond,
	"BOND":         Thirty360Bond,
	"30E/360":      Thirty360E,
	"EUROBOND":     Thirty360E,
	"30U/360":      Thirty360U,
	"30/360 US":    Thirty360U,
	"30E/360 ISDA": Thirty360EISDA,
	"30E/360ISDA":  Thirty360EISDA,
	"30EISDA/360":  Thirty360EISDA,
}

// ParseConvention maps a case-insensitive name to a Convention.
func ParseConvention(s string) (Convention, error) {
	key := strings.Join(strings.Fields(strings.ToUpper(s)), " ")
	if c, ok := conventionAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("ParseConvention: %w: %q", ErrUnknownConvention, s)
}

// Backend returns the 30/360 day rules behind c, or false for Actual.
func (c Convention) Backend() (Backend, bool) {
	switch c {
	case Thirty360Bond:
		return Bond, true
	case Thirty360E:
		return E, true
	case Thirty360U:
		return U, true
	case Thirty360EISDA:
		return EISDA, true
	default:
		return 0, false
	}
}

// DayCount returns the signed number of days from start to end.
func (c Convention) DayCount(start, end civil.Date) int {
	if c == Actual {
		return utils.SerialDay(end) - utils.SerialDay(start)
	}
	b, ok := c.Backend()
	if !ok {
		panic(fmt.Sprintf("daycount: unsupported convention %q", string(c)))
	}
	return Days30(b, start, end)
}

// DayCountVector returns DayCount(start, ends[i]) for every i.
func (c Convention) DayCountVector(start civil.Date, ends []civil.Date) []int {
	out := make([]int, len(ends))
	if c == Actual {
		s := utils.SerialDay(start)
		for i, end := range ends {
			out[i] = utils.SerialDay(end) - s
		}
		return out
	}
	for i, end := range ends {
		out[i] = c.DayCount(start, end)
	}
	return out
}

// Days30 applies 360*(y2-y1) + 30*(m2-m1) + d2 - d1 with the backend's d1 and d2.
func Days30(b Backend, start, end civil.Date) int {
	d1 := b.D1(start, end)
	d2 := b.D2(start, end)
	return 360*(end.Year-start.Year) + 30*(int(end.Month)-int(start.Month)) + d2 - d1
}
