package calendar_test

import (
	"sync"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/modates/calendar"
	"github.com/meenmo/modates/utils"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestEasterSunday(t *testing.T) {
	t.Parallel()

	tests := []struct {
		year int
		want civil.Date
	}{
		{1961, date(1961, time.April, 2)},
		{2000, date(2000, time.April, 23)},
		{2008, date(2008, time.March, 23)},
		{2019, date(2019, time.April, 21)},
		{2024, date(2024, time.March, 31)},
		{2025, date(2025, time.April, 20)},
		{2026, date(2026, time.April, 5)},
		{2027, date(2027, time.March, 28)},
		{2028, date(2028, time.April, 16)},
		{2029, date(2029, time.April, 1)},
		{2030, date(2030, time.April, 21)},
		{2038, date(2038, time.April, 25)},
		{2285, date(2285, time.March, 22)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, calendar.EasterSunday(tt.year), "year %d", tt.year)
	}
}

func TestEasterRelatedRules(t *testing.T) {
	t.Parallel()

	gf := calendar.NewGoodFridayRule("Good Friday")
	em := calendar.NewEasterMondayRule("Easter Monday")
	for year := 1583; year <= 2600; year++ {
		easter := calendar.EasterSunday(year)
		require.Equal(t, time.Sunday, utils.Weekday(easter), "year %d", year)
		require.Equal(t, easter.AddDays(-2), gf.Date(year), "year %d", year)
		require.Equal(t, easter.AddDays(1), em.Date(year), "year %d", year)
		require.True(t, easter.Month == time.March || easter.Month == time.April)
	}
}

func TestRuleDates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule calendar.Rule
		year int
		want civil.Date
	}{
		{"columbus", calendar.NewOrdinalWeekdayRule("Columbus Day", 2, time.Monday, time.October), 2024, date(2024, time.October, 14)},
		{"labor first day", calendar.NewOrdinalWeekdayRule("Labor Day", 1, time.Monday, time.September), 2025, date(2025, time.September, 1)},
		{"labor", calendar.NewOrdinalWeekdayRule("Labor Day", 1, time.Monday, time.September), 2024, date(2024, time.September, 2)},
		{"thanksgiving", calendar.NewOrdinalWeekdayRule("Thanksgiving", 4, time.Thursday, time.November), 2024, date(2024, time.November, 28)},
		{"memorial", calendar.NewLastWeekdayRule("Memorial Day", time.Monday, time.May), 2024, date(2024, time.May, 27)},
		{"summer bank holiday", calendar.NewLastWeekdayRule("Summer", time.Monday, time.August), 2025, date(2025, time.August, 25)},
		{"last day is target weekday", calendar.NewLastWeekdayRule("x", time.Saturday, time.May), 2025, date(2025, time.May, 31)},
		{"fixed", calendar.NewMonthDayRule("Independence Day", time.July, 4), 2030, date(2030, time.July, 4)},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.rule.Date(tt.year)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.rule.Date(tt.year), got, "rules must be deterministic")
		})
	}
}

func TestRuleConstructorsRejectInvalidParameters(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { calendar.NewMonthDayRule("leap", time.February, 29) })
	assert.Panics(t, func() { calendar.NewMonthDayRule("bad", time.April, 31) })
	assert.Panics(t, func() { calendar.NewOrdinalWeekdayRule("fifth", 5, time.Monday, time.May) })
	assert.Panics(t, func() { calendar.NewLastWeekdayRule("bad month", time.Monday, 13) })
}

func TestUSCalendar2025(t *testing.T) {
	t.Parallel()

	cal := calendar.NewUSCalendar(calendar.Options{})
	want := []civil.Date{
		date(2025, time.January, 1),
		date(2025, time.January, 20),
		date(2025, time.February, 17),
		date(2025, time.April, 18),
		date(2025, time.May, 26),
		date(2025, time.June, 19),
		date(2025, time.July, 4),
		date(2025, time.September, 1),
		date(2025, time.October, 13),
		date(2025, time.November, 11),
		date(2025, time.November, 27),
		date(2025, time.December, 25),
	}
	assert.Equal(t, want, cal.HolidaysInYear(2025))
	for _, d := range want {
		assert.True(t, cal.IsHoliday(d), d.String())
	}
	assert.False(t, cal.IsHoliday(date(2025, time.July, 3)))
	assert.Empty(t, cal.Holidays(), "rules are not materialized unless asked")
}

func TestUSCalendarMaterialization(t *testing.T) {
	t.Parallel()

	cal := calendar.NewUSCalendar(calendar.Options{StartYear: 2024, EndYear: 2025})
	holidays := cal.Holidays()
	require.Len(t, holidays, 24)
	for i := 1; i < len(holidays); i++ {
		assert.True(t, holidays[i-1].Before(holidays[i]), "holidays must be strictly ascending")
	}

	cal.DeleteHolidays()
	assert.Empty(t, cal.Holidays())
	assert.True(t, cal.IsHoliday(date(2024, time.December, 25)), "rules survive DeleteHolidays")
}

func TestUSCalendarYearRangeMisuse(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { calendar.NewUSCalendar(calendar.Options{StartYear: 2000}) })
	assert.Panics(t, func() { calendar.NewUSCalendar(calendar.Options{EndYear: 2000}) })
	assert.Panics(t, func() { calendar.NewUSCalendar(calendar.Options{StartYear: 2010, EndYear: 2000}) })

	_, err := calendar.ForMarket(calendar.USD, calendar.Options{StartYear: 2010, EndYear: 2000})
	assert.ErrorIs(t, err, calendar.ErrYearRange)
}

func TestIsHolidayMaterializedAgreesWithRules(t *testing.T) {
	t.Parallel()

	byRule := calendar.NewUSCalendar(calendar.Options{})
	materialized := calendar.NewUSCalendar(calendar.Options{StartYear: 2023, EndYear: 2026})
	explicitOnly := calendar.New(nil, materialized.Holidays())

	for d := date(2023, time.January, 1); d.Before(date(2027, time.January, 1)); d = d.AddDays(1) {
		require.Equal(t, byRule.IsHoliday(d), explicitOnly.IsHoliday(d), d.String())
		require.Equal(t, byRule.IsHoliday(d), materialized.IsHoliday(d), d.String())
	}
}

func TestExplicitHolidaysAreSortedAndUnique(t *testing.T) {
	t.Parallel()

	cal := calendar.New(nil, []civil.Date{
		date(2025, time.March, 3),
		date(2025, time.January, 9),
		date(2025, time.March, 3),
	})
	cal.AddHoliday(date(2025, time.February, 1))
	cal.AddHolidays([]civil.Date{date(2025, time.January, 9), date(2024, time.December, 31)})

	assert.Equal(t, []civil.Date{
		date(2024, time.December, 31),
		date(2025, time.January, 9),
		date(2025, time.February, 1),
		date(2025, time.March, 3),
	}, cal.Holidays())
	assert.True(t, cal.IsHoliday(date(2025, time.January, 9)))
	assert.False(t, cal.IsHoliday(date(2025, time.January, 10)))
}

func TestBusinessDayStepping(t *testing.T) {
	t.Parallel()

	cal := calendar.NewUSCalendar(calendar.Options{})

	// Thursday before the Independence Day Friday.
	assert.Equal(t, date(2025, time.July, 7), cal.AddBusinessDays(date(2025, time.July, 3), 1))
	assert.Equal(t, date(2025, time.July, 3), cal.SubtractBusinessDays(date(2025, time.July, 7), 1))
	// Saturday start steps to Monday.
	assert.Equal(t, date(2025, time.January, 6), cal.AddBusinessDays(date(2025, time.January, 4), 1))
	assert.Equal(t, date(2025, time.January, 3), cal.SubtractBusinessDays(date(2025, time.January, 6), 1))
	// Negative counts move the other way.
	assert.Equal(t, date(2025, time.July, 3), cal.AddBusinessDays(date(2025, time.July, 7), -1))
	assert.Equal(t, date(2025, time.July, 8), cal.AddBusinessDays(date(2025, time.July, 3), 2))
	// Zero is a no-op even on a holiday.
	assert.Equal(t, date(2025, time.July, 4), cal.AddBusinessDays(date(2025, time.July, 4), 0))
}

func TestBusinessDayRoundTrip(t *testing.T) {
	t.Parallel()

	cal := calendar.NewUSCalendar(calendar.Options{})
	for d := date(2025, time.January, 1); d.Before(date(2026, time.January, 1)); d = d.AddDays(1) {
		for n := 1; n <= 10; n++ {
			back := cal.SubtractBusinessDays(cal.AddBusinessDays(d, n), n)
			if cal.IsBusinessDay(d) {
				require.Equal(t, d, back, "%s n=%d", d, n)
			} else {
				require.True(t, back.Before(d), "%s n=%d", d, n)
				require.True(t, cal.IsBusinessDay(back))
			}
		}
	}
}

func TestNilCalendarHasOnlyWeekends(t *testing.T) {
	t.Parallel()

	var cal *calendar.Calendar
	assert.False(t, cal.IsHoliday(date(2025, time.December, 25)))
	assert.Equal(t, date(2025, time.December, 29), cal.AddBusinessDays(date(2025, time.December, 26), 1))
	assert.Nil(t, cal.Holidays())
}

func TestCombine(t *testing.T) {
	t.Parallel()

	ny := calendar.NewUSCalendar(calendar.Options{Holidays: []civil.Date{date(2025, time.January, 9)}})
	lon := calendar.NewGBPCalendar(calendar.Options{Holidays: []civil.Date{date(2025, time.January, 9), date(2025, time.June, 2)}})

	both := calendar.Combine(ny, lon)
	assert.Len(t, both.Rules(), len(ny.Rules())+len(lon.Rules()))
	assert.Equal(t, []civil.Date{date(2025, time.January, 9), date(2025, time.June, 2)}, both.Holidays())

	assert.True(t, both.IsHoliday(date(2025, time.May, 5)), "early May bank holiday")
	assert.True(t, both.IsHoliday(date(2025, time.July, 4)), "independence day")
	assert.False(t, ny.IsHoliday(date(2025, time.May, 5)))
	assert.False(t, lon.IsHoliday(date(2025, time.July, 4)))

	both.AddHoliday(date(2025, time.August, 1))
	assert.False(t, ny.IsHoliday(date(2025, time.August, 1)), "inputs stay untouched")
}

func TestTARGETAndGBPRules(t *testing.T) {
	t.Parallel()

	target := calendar.NewTARGETCalendar(calendar.Options{})
	assert.Equal(t, []civil.Date{
		date(2025, time.January, 1),
		date(2025, time.April, 18),
		date(2025, time.April, 21),
		date(2025, time.May, 1),
		date(2025, time.December, 25),
		date(2025, time.December, 26),
	}, target.HolidaysInYear(2025))

	gbp := calendar.NewGBPCalendar(calendar.Options{})
	assert.True(t, gbp.IsHoliday(date(2025, time.May, 26)))
	assert.True(t, gbp.IsHoliday(date(2025, time.August, 25)))
}

func TestForMarket(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"usd", "NY", "target", "EUR", "gbp", "LON"} {
		id, err := calendar.ParseCalendarID(name)
		require.NoError(t, err, name)
		cal, err := calendar.ForMarket(id, calendar.Options{})
		require.NoError(t, err, name)
		assert.NotEmpty(t, cal.Rules(), name)
	}

	_, err := calendar.ParseCalendarID("KRW")
	assert.ErrorIs(t, err, calendar.ErrUnknownMarket)
	_, err = calendar.ForMarket("JPN", calendar.Options{})
	assert.ErrorIs(t, err, calendar.ErrUnknownMarket)
}

func TestConcurrentReadersAndWriter(t *testing.T) {
	t.Parallel()

	cal := calendar.NewUSCalendar(calendar.Options{})
	adj := calendar.NewAdjuster(calendar.ModifiedFollowing, cal)

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := date(2025, time.January, 1); d.Before(date(2025, time.April, 1)); d = d.AddDays(1) {
				_ = adj.Adjust(d)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for year := 2020; year < 2030; year++ {
			cal.AddHolidaysWithRules(year, year)
		}
	}()
	wg.Wait()

	assert.Len(t, cal.Holidays(), 120)
}
