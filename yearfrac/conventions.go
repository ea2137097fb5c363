package yearfrac

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/daycount"
)

// ErrUnknownConvention is returned when a year fraction convention name is not recognised.
var ErrUnknownConvention = errors.New("unknown year fraction convention")

// Quoted year fraction conventions.
const (
	Act360     = "ACT/360"
	Act365F    = "ACT/365F"
	Dc30360    = "30/360"
	Dc30E360   = "30E/360"
	Dc30U360   = "30U/360"
	Dc30E360I  = "30E/360 ISDA"
	ActActISDA = "ACT/ACT ISDA"
)

// ForConvention returns the calculator for a quoted convention name.
// Supported conventions: ACT/360, ACT/365F (alias ACT/365), 30/360, 30E/360,
// 30U/360, 30E/360 ISDA, ACT/ACT ISDA (alias ACT/ACT).
func ForConvention(name string) (Calc, error) {
	switch strings.Join(strings.Fields(strings.ToUpper(name)), " ") {
	case Act360:
		return FixedBase(daycount.Actual, 360), nil
	case Act365F, "ACT/365", "ACT/365 FIXED":
		return FixedBase(daycount.Actual, 365), nil
	case Dc30360:
		return FixedBase(daycount.Thirty360Bond, 360), nil
	case Dc30E360:
		return FixedBase(daycount.Thirty360E, 360), nil
	case Dc30U360:
		return FixedBase(daycount.Thirty360U, 360), nil
	case Dc30E360I:
		return FixedBase(daycount.Thirty360EISDA, 360), nil
	case ActActISDA, "ACT/ACT", "ACTUAL/ACTUAL ISDA":
		return ActualActualISDA(), nil
	default:
		return Calc{}, fmt.Errorf("ForConvention: %w: %q", ErrUnknownConvention, name)
	}
}

// YearFraction computes the year fraction between two dates using the named convention.
func YearFraction(start, end civil.Date, convention string) (float64, error) {
	c, err := ForConvention(convention)
	if err != nil {
		return 0, err
	}
	return c.TimeFraction(start, end), nil
}
