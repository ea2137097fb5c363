package yearfrac_test

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/modates/daycount"
	"github.com/meenmo/modates/utils"
	"github.com/meenmo/modates/yearfrac"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestFixedBase(t *testing.T) {
	t.Parallel()

	act360 := yearfrac.FixedBase(daycount.Actual, 360)
	assert.Equal(t, 184.0/360.0, act360.TimeFraction(date(2024, time.May, 12), date(2024, time.November, 12)))

	d30 := yearfrac.FixedBase(daycount.Thirty360E, 360)
	assert.Equal(t, 1.0, d30.TimeFraction(date(2024, time.May, 12), date(2025, time.May, 12)))
	assert.Equal(t, daycount.Thirty360E, d30.Counter())
	assert.Equal(t, 360.0, d30.Base())

	assert.Panics(t, func() { yearfrac.FixedBase(daycount.Actual, 0) })
}

func TestActualActualISDASameYear(t *testing.T) {
	t.Parallel()

	aa := yearfrac.ActualActualISDA()
	assert.Equal(t, 364.0/365.0, aa.TimeFraction(date(2023, time.January, 1), date(2023, time.December, 31)))
	assert.Equal(t, 59.0/366.0, aa.TimeFraction(date(2024, time.January, 1), date(2024, time.February, 29)))
	assert.Zero(t, aa.TimeFraction(date(2024, time.May, 12), date(2024, time.May, 12)))
}

func TestActualActualISDAAcrossYears(t *testing.T) {
	t.Parallel()

	aa := yearfrac.ActualActualISDA()
	start := date(2023, time.June, 15)
	end := date(2025, time.June, 15)

	startPiece := float64(daycount.Actual.DayCount(start, date(2023, time.December, 31)))
	endPiece := float64(daycount.Actual.DayCount(date(2025, time.January, 1), end))
	require.Equal(t, 199.0, startPiece)
	require.Equal(t, 165.0, endPiece)

	want := startPiece/365.0 + endPiece/365.0 + 1.0
	assert.Equal(t, want, aa.TimeFraction(start, end))

	// Each partial year uses its own length.
	got := aa.TimeFraction(date(2024, time.July, 1), date(2025, time.July, 1))
	assert.InDelta(t, 183.0/366.0+181.0/365.0, got, 1e-15)

	assert.Equal(t, -aa.TimeFraction(start, end), aa.TimeFraction(end, start))
}

func TestTimeFractionVectorMatchesPairwise(t *testing.T) {
	t.Parallel()

	start := date(2024, time.May, 12)
	ends := make([]civil.Date, 0, 20)
	for i := 1; i <= 20; i++ {
		ends = append(ends, utils.AddMonth(start, 6*i))
	}

	calcs := []yearfrac.Calc{
		yearfrac.FixedBase(daycount.Actual, 360),
		yearfrac.FixedBase(daycount.Actual, 365),
		yearfrac.FixedBase(daycount.Thirty360E, 360),
		yearfrac.FixedBase(daycount.Thirty360EISDA, 360),
		yearfrac.ActualActualISDA(),
	}
	for _, c := range calcs {
		got := c.TimeFractionVector(start, ends)
		require.Len(t, got, len(ends))
		for i, end := range ends {
			assert.Equal(t, c.TimeFraction(start, end), got[i], "%s %s", c.Counter(), end)
		}
	}
}

func TestForConvention(t *testing.T) {
	t.Parallel()

	start := date(2024, time.January, 31)
	end := date(2024, time.July, 31)

	tests := []struct {
		name string
		want float64
	}{
		{"ACT/360", 182.0 / 360.0},
		{"act/365f", 182.0 / 365.0},
		{"ACT/365", 182.0 / 365.0},
		{"30/360", 180.0 / 360.0},
		{"30E/360", 180.0 / 360.0},
		{"30U/360", 180.0 / 360.0},
		{"30E/360 ISDA", 180.0 / 360.0},
		{"ACT/ACT ISDA", 182.0 / 366.0},
		{"act/act", 182.0 / 366.0},
	}
	for _, tt := range tests {
		got, err := yearfrac.YearFraction(start, end, tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := yearfrac.ForConvention("BUS/252")
	assert.ErrorIs(t, err, yearfrac.ErrUnknownConvention)
}

func TestZeroCalcPanics(t *testing.T) {
	t.Parallel()

	var c yearfrac.Calc
	assert.Panics(t, func() { c.TimeFraction(date(2024, 1, 1), date(2024, 2, 1)) })
}
