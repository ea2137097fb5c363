// Package yearfrac turns day counts into year fractions.
package yearfrac

import (
	"fmt"

	"cloud.google.com/go/civil"
	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/modates/daycount"
	"github.com/meenmo/modates/utils"
)

type kind int

const (
	fixedBase kind = iota + 1
	actualActualISDA
)

// Calc computes year fractions. Build it with FixedBase, ActualActualISDA or ForConvention.
type Calc struct {
	kind    kind
	counter daycount.Convention
	base    float64
}

// FixedBase divides counter's day count by base (e.g. 360 or 365).
func FixedBase(counter daycount.Convention, base float64) Calc {
	if base <= 0 {
		panic(fmt.Sprintf("FixedBase: base must be positive, got %v", base))
	}
	return Calc{kind: fixedBase, counter: counter, base: base}
}

// ActualActualISDA splits the period at year boundaries and divides each
// piece by the length of its own year.
func ActualActualISDA() Calc {
	return Calc{kind: actualActualISDA, counter: daycount.Actual}
}

// Counter returns the underlying day count convention.
func (c Calc) Counter() daycount.Convention { return c.counter }

// Base returns the fixed divisor, or 0 for Actual/Actual ISDA.
func (c Calc) Base() float64 { return c.base }

// TimeFraction returns the year fraction from start to end.
func (c Calc) TimeFraction(start, end civil.Date) float64 {
	switch c.kind {
	case fixedBase:
		return float64(c.counter.DayCount(start, end)) / c.base
	case actualActualISDA:
		return isdaFraction(start, end)
	default:
		panic("yearfrac: zero Calc, use FixedBase or ActualActualISDA")
	}
}

// TimeFractionVector returns TimeFraction(start, ends[i]) for every i.
func (c Calc) TimeFractionVector(start civil.Date, ends []civil.Date) []float64 {
	out := make([]float64, len(ends))
	if c.kind != fixedBase {
		for i, end := range ends {
			out[i] = c.TimeFraction(start, end)
		}
		return out
	}

	for i, n := range c.counter.DayCountVector(start, ends) {
		out[i] = float64(n)
	}
	bases := make([]float64, len(out))
	floats.AddConst(c.base, bases)
	floats.Div(out, bases)
	return out
}

func isdaFraction(start, end civil.Date) float64 {
	if end.Before(start) {
		return -isdaFraction(end, start)
	}

	startYearDays := float64(utils.DaysInYear(start.Year))
	if start.Year == end.Year {
		return float64(daycount.Actual.DayCount(start, end)) / startYearDays
	}

	endOfStartYear := civil.Date{Year: start.Year, Month: 12, Day: 31}
	startOfEndYear := civil.Date{Year: end.Year, Month: 1, Day: 1}

	fraction := float64(daycount.Actual.DayCount(start, endOfStartYear)) / startYearDays
	fraction += float64(daycount.Actual.DayCount(startOfEndYear, end)) / float64(utils.DaysInYear(end.Year))
	for year := start.Year + 1; year < end.Year; year++ {
		fraction += 1.0
	}
	return fraction
}
