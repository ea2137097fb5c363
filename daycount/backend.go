package daycount

import (
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/meenmo/modates/utils"
)

// Backend supplies the adjusted day-of-month values of the 30/360 family.
type Backend int

const (
	Bond Backend = iota + 1
	E
	U
	EISDA
)

func (b Backend) String() string {
	switch b {
	case Bond:
		return "BOND"
	case E:
		return "E"
	case U:
		return "U"
	case EISDA:
		return "EISDA"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// D1 is the adjusted start day.
func (b Backend) D1(start, end civil.Date) int {
	switch b {
	case Bond, E:
		return min(start.Day, 30)
	case U:
		if start == utils.EndOfFebruary(start.Year) {
			return 30
		}
		return min(start.Day, 30)
	case EISDA:
		if utils.IsEndOfMonth(start) {
			return 30
		}
		return start.Day
	default:
		panic(fmt.Sprintf("daycount: unsupported backend %s", b))
	}
}

// D2 is the adjusted end day.
func (b Backend) D2(start, end civil.Date) int {
	switch b {
	case Bond, E:
		// 30E/360 proper would cap end.Day unconditionally; both share the bond rule here.
		d2 := end.Day
		if b.D1(start, end) > 29 {
			d2 = min(d2, 30)
		}
		return d2
	case U:
		startFeb := start == utils.EndOfFebruary(start.Year)
		endFeb := end == utils.EndOfFebruary(end.Year)
		d1 := start.Day
		d2 := end.Day
		if startFeb && endFeb {
			d2 = 30
		}
		if startFeb {
			d1 = 30
		}
		if d2 == 31 && (d1 == 30 || d1 == 31) {
			d2 = 30
		}
		return d2
	case EISDA:
		if utils.IsEndOfMonth(end) {
			return 30
		}
		return end.Day
	default:
		panic(fmt.Sprintf("daycount: unsupported backend %s", b))
	}
}
