package lunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mingli/ziwei/errors"
)

func TestNewYearAnchors(t *testing.T) {
	// Well-known Chinese New Year dates; each must map to lunar 1/1.
	cases := []struct {
		gy, gm, gd int
		lunarYear  int
	}{
		{1900, 1, 31, 1900},
		{1984, 2, 2, 1984},
		{1989, 2, 6, 1989},
		{1990, 1, 27, 1990},
		{1991, 2, 15, 1991},
		{2000, 2, 5, 2000},
		{2020, 1, 25, 2020},
		{2023, 1, 22, 2023},
		{2024, 2, 10, 2024},
	}
	for _, c := range cases {
		d, err := FromYMD(c.gy, c.gm, c.gd)
		require.NoError(t, err)
		assert.Equal(t, Date{Year: c.lunarYear, Month: 1, Day: 1}, d,
			"%04d-%02d-%02d", c.gy, c.gm, c.gd)
	}
}

func TestFromYMD(t *testing.T) {
	cases := []struct {
		name       string
		gy, gm, gd int
		want       Date
	}{
		{"mid-year", 1990, 6, 15, Date{Year: 1990, Month: 5, Day: 23}},
		{"day before new year", 1990, 1, 26, Date{Year: 1989, Month: 12, Day: 30}},
		{"millennium eve", 2000, 1, 1, Date{Year: 1999, Month: 11, Day: 25}},
		{"first month boundary", 1900, 3, 1, Date{Year: 1900, Month: 2, Day: 1}},
		{"leap month start", 2020, 5, 23, Date{Year: 2020, Month: 4, Day: 1, Leap: true}},
		{"month after leap", 2020, 6, 21, Date{Year: 2020, Month: 5, Day: 1}},
		{"dragon boat 2020", 2020, 6, 25, Date{Year: 2020, Month: 5, Day: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			d, err := FromYMD(c.gy, c.gm, c.gd)
			require.NoError(t, err)
			assert.Equal(t, c.want, d)
		})
	}
}

func TestFromGregorianIgnoresTime(t *testing.T) {
	noon := time.Date(1990, 6, 15, 12, 30, 0, 0, time.UTC)
	midnight := time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC)

	a, err := FromGregorian(noon)
	require.NoError(t, err)
	b, err := FromGregorian(midnight)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOutOfRange(t *testing.T) {
	_, err := FromYMD(1899, 12, 31)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = FromYMD(1900, 1, 30)
	require.Error(t, err, "one day before the table epoch")

	_, err = FromYMD(2101, 6, 1)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestInvalidCalendarDates(t *testing.T) {
	cases := []struct {
		gy, gm, gd int
	}{
		{2023, 2, 29},
		{2023, 13, 1},
		{2023, 0, 10},
		{2023, 4, 31},
		{2023, 6, 0},
	}
	for _, c := range cases {
		_, err := FromYMD(c.gy, c.gm, c.gd)
		require.Error(t, err, "%04d-%02d-%02d", c.gy, c.gm, c.gd)
		assert.True(t, errors.IsInvalidInput(err))
	}
}

func TestLeapMonth(t *testing.T) {
	cases := []struct {
		year, leap int
	}{
		{1984, 10},
		{1987, 6},
		{1990, 5},
		{1991, 0},
		{1995, 8},
		{1998, 5},
		{2001, 4},
		{2004, 2},
		{2006, 7},
		{2009, 5},
		{2012, 4},
		{2014, 9},
		{2017, 6},
		{2020, 4},
		{2021, 0},
		{2023, 2},
		{2025, 6},
		{2033, 11},
	}
	for _, c := range cases {
		assert.Equal(t, c.leap, LeapMonth(c.year), "year %d", c.year)
	}
}

func TestYearDaysPlausible(t *testing.T) {
	// Every lunisolar year is 353-355 days, or 383-385 with a leap month.
	for y := MinYear; y <= MaxYear; y++ {
		days := yearDays(y)
		if LeapMonth(y) == 0 {
			assert.GreaterOrEqual(t, days, 353, "year %d", y)
			assert.LessOrEqual(t, days, 355, "year %d", y)
		} else {
			assert.GreaterOrEqual(t, days, 383, "year %d", y)
			assert.LessOrEqual(t, days, 385, "year %d", y)
		}
	}
}

func TestConsecutiveDaysAdvance(t *testing.T) {
	// Walking one Gregorian day forward either advances the lunar day by
	// one or resets it to 1 at a month boundary.
	start := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	prev, err := FromGregorian(start)
	require.NoError(t, err)
	for i := 1; i < 800; i++ {
		cur, err := FromGregorian(start.AddDate(0, 0, i))
		require.NoError(t, err)
		if cur.Day != 1 {
			assert.Equal(t, prev.Day+1, cur.Day, "day %d", i)
			assert.Equal(t, prev.Month, cur.Month, "day %d", i)
			assert.Equal(t, prev.Leap, cur.Leap, "day %d", i)
		} else if prev.Day != 30 {
			assert.Equal(t, 29, prev.Day, "day %d: month ended early", i)
		}
		prev = cur
	}
}

func TestNames(t *testing.T) {
	d := Date{Year: 1990, Month: 5, Day: 23}
	assert.Equal(t, "五月", d.MonthName())
	assert.Equal(t, "廿三", d.DayName())
	assert.Equal(t, "1990年五月廿三", d.String())

	leap := Date{Year: 2020, Month: 4, Day: 1, Leap: true}
	assert.Equal(t, "闰四月", leap.MonthName())
	assert.Equal(t, "初一", leap.DayName())

	assert.Equal(t, "初十", Date{Day: 10}.DayName())
	assert.Equal(t, "二十", Date{Day: 20}.DayName())
	assert.Equal(t, "三十", Date{Day: 30}.DayName())
	assert.Equal(t, "十五", Date{Day: 15}.DayName())

	assert.Equal(t, "正月", Date{Month: 1}.MonthName())
	assert.Equal(t, "冬月", Date{Month: 11}.MonthName())
	assert.Equal(t, "腊月", Date{Month: 12}.MonthName())
}
