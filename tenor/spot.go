package tenor

import (
	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/calendar"
)

// SpotMaturity computes spot, effective and maturity dates from a trade date.
//
// Conventions:
//   - spot = trade + spotLag business days on the adjuster's calendar
//   - effective = spot + forward, adjusted (spot itself when forward is zero)
//   - maturity = effective + length, adjusted
func SpotMaturity(trade civil.Date, spotLag int, forward, length Tenor, adj *calendar.Adjuster, eomRoll bool) (spot, effective, maturity civil.Date) {
	var cal *calendar.Calendar
	if adj != nil {
		cal = adj.Calendar
	}
	spot = cal.AddBusinessDays(trade, spotLag)

	effective = spot
	if !forward.IsZero() {
		effective = forward.AddToDate(spot, adj, eomRoll)
	}
	maturity = length.AddToDate(effective, adj, eomRoll)
	return spot, effective, maturity
}
