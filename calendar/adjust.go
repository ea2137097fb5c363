package calendar

import (
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// ErrUnknownConvention is returned when a business day convention name is not recognised.
var ErrUnknownConvention = errors.New("unknown business day convention")

// Convention is a business day adjustment rule.
type Convention string

const (
	Unadjusted        Convention = "UNADJUSTED"
	Following         Convention = "FOLLOWING"
	Preceding         Convention = "PRECEDING"
	ModifiedFollowing Convention = "MODIFIED_FOLLOWING"
	ModifiedPreceding Convention = "MODIFIED_PRECEDING"
)

var conventionAliases = map[string]Convention{
	"UNADJUSTED":         Unadjusted,
	"NONE":               Unadjusted,
	"FOLLOWING":          Following,
	"F":                  Following,
	"PRECEDING":          Preceding,
	"P":                  Preceding,
	"MODIFIED_FOLLOWING": ModifiedFollowing,
	"MODIFIEDFOLLOWING":  ModifiedFollowing,
	"MF":                 ModifiedFollowing,
	"MODIFIED_PRECEDING": ModifiedPreceding,
	"MODIFIEDPRECEDING":  ModifiedPreceding,
	"MP":                 ModifiedPreceding,
}

// ParseConvention maps a case-insensitive name such as "MF" or "modified following".
func ParseConvention(s string) (Convention, error) {
	key := strings.ToUpper(strings.TrimSpace(s))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	if c, ok := conventionAliases[key]; ok {
		return c, nil
	}
	return "", fmt.Errorf("ParseConvention: %w: %q", ErrUnknownConvention, s)
}

// Adjust rolls d onto a business day of cal.
func (c Convention) Adjust(cal *Calendar, d civil.Date) civil.Date {
	switch c {
	case Unadjusted:
		return d
	case Following:
		return following(cal, d)
	case Preceding:
		return preceding(cal, d)
	case ModifiedFollowing:
		if adj := following(cal, d); adj.Month == d.Month {
			return adj
		}
		return preceding(cal, d)
	case ModifiedPreceding:
		if adj := preceding(cal, d); adj.Month == d.Month {
			return adj
		}
		return following(cal, d)
	default:
		panic(fmt.Sprintf("calendar: unsupported business day convention %q", string(c)))
	}
}

func following(cal *Calendar, d civil.Date) civil.Date {
	for !cal.IsBusinessDay(d) {
		d = d.AddDays(1)
	}
	return d
}

func preceding(cal *Calendar, d civil.Date) civil.Date {
	for !cal.IsBusinessDay(d) {
		d = d.AddDays(-1)
	}
	return d
}

// Adjuster pairs a convention with the calendar it reads. The calendar is
// shared and must not be mutated while the adjuster is in use elsewhere
// without going through the calendar's own methods.
type Adjuster struct {
	Convention Convention
	Calendar   *Calendar
}

// NewAdjuster returns an adjuster for convention on cal.
func NewAdjuster(convention Convention, cal *Calendar) *Adjuster {
	return &Adjuster{Convention: convention, Calendar: cal}
}

// Adjust rolls d according to the adjuster's convention. A nil adjuster leaves d unchanged.
func (a *Adjuster) Adjust(d civil.Date) civil.Date {
	if a == nil {
		return d
	}
	return a.Convention.Adjust(a.Calendar, d)
}
