package config

import (
	"github.com/meenmo/modates/calendar"
	"github.com/meenmo/modates/daycount"
	"github.com/meenmo/modates/yearfrac"
)

// MarketConvention holds the money market defaults of a calendar.
type MarketConvention struct {
	// YearFraction is the quoted basis of the overnight index (SOFR, ESTR, SONIA).
	YearFraction string

	// DayCount is the raw day counting rule behind YearFraction.
	DayCount daycount.Convention

	// Adjustment is the business day convention for accrual dates.
	Adjustment calendar.Convention

	// SpotLagDays is the number of business days from trade to spot.
	SpotLagDays int
}

// MarketConventions returns the defaults for a given calendar.
func MarketConventions(id calendar.CalendarID) MarketConvention {
	switch id {
	case calendar.TARGET:
		// EUR: ESTR ACT/360, T+2
		return MarketConvention{
			YearFraction: yearfrac.Act360,
			DayCount:     daycount.Actual,
			Adjustment:   calendar.ModifiedFollowing,
			SpotLagDays:  2,
		}

	case calendar.GBP:
		// GBP: SONIA ACT/365F, same day spot
		return MarketConvention{
			YearFraction: yearfrac.Act365F,
			DayCount:     daycount.Actual,
			Adjustment:   calendar.ModifiedFollowing,
			SpotLagDays:  0,
		}

	default:
		// USD: SOFR ACT/360, T+2
		return MarketConvention{
			YearFraction: yearfrac.Act360,
			DayCount:     daycount.Actual,
			Adjustment:   calendar.ModifiedFollowing,
			SpotLagDays:  2,
		}
	}
}
