// Package lunar converts Gregorian dates to the Chinese lunisolar calendar.
//
// The conversion is table-driven: one packed uint32 per year from 1900
// through 2100 encodes that lunar year's month lengths and leap month.
// Within an entry, bits 0x8000 >> (m-1) mark 30-day months, the low four
// bits hold the leap month number (0 when the year has none), and bit
// 0x10000 marks a 30-day leap month. The epoch 1900-01-31 is lunar
// 1900-01-01.
package lunar

import (
	"fmt"
	"time"

	"github.com/mingli/ziwei/errors"
)

// Supported year range of the packed table.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Date is a lunisolar calendar date. Leap marks a date inside the
// intercalary month; Month then holds the number of the month being
// repeated.
type Date struct {
	Year  int
	Month int
	Day   int
	Leap  bool
}

// yearInfo holds one packed entry per lunar year, MinYear through MaxYear.
var yearInfo = [...]uint32{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900-1909
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910-1919
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920-1929
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930-1939
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940-1949
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950-1959
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960-1969
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b6a0, 0x195a6, // 1970-1979
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980-1989
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x055c0, 0x0ab60, 0x096d5, 0x092e0, // 1990-1999
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000-2009
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010-2019
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020-2029
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030-2039
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040-2049
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050-2059
	0x092e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060-2069
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070-2079
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080-2089
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090-2099
	0x0d520, // 2100
}

// epoch is Gregorian 1900-01-31, the first day of lunar year 1900.
var epoch = time.Date(1900, time.January, 31, 0, 0, 0, 0, time.UTC)

// tableDays is the total day count covered by the table, computed at init.
var tableDays int

func init() {
	for y := MinYear; y <= MaxYear; y++ {
		tableDays += yearDays(y)
	}
}

func info(year int) uint32 {
	return yearInfo[year-MinYear]
}

// LeapMonth returns the leap month number of a lunar year, or 0 when the
// year has none.
func LeapMonth(year int) int {
	return int(info(year) & 0xf)
}

// leapDays returns the length of the leap month, or 0 when the year has none.
func leapDays(year int) int {
	if LeapMonth(year) == 0 {
		return 0
	}
	if info(year)&0x10000 != 0 {
		return 30
	}
	return 29
}

// monthDays returns the length of regular month m (1..12) of a lunar year.
func monthDays(year, m int) int {
	if info(year)&(0x8000>>uint(m-1)) != 0 {
		return 30
	}
	return 29
}

// yearDays returns the total day count of a lunar year including its leap
// month.
func yearDays(year int) int {
	days := 0
	for m := 1; m <= 12; m++ {
		days += monthDays(year, m)
	}
	return days + leapDays(year)
}

// FromGregorian converts a Gregorian instant to its lunisolar date. Only
// the calendar day matters; the time of day and location are ignored.
func FromGregorian(t time.Time) (Date, error) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Sub(epoch) / (24 * time.Hour))
	if offset < 0 || offset >= tableDays {
		return Date{}, errors.Wrapf(errors.ErrInvalidInput,
			"date %s outside the %d-%d lunisolar table", day.Format("2006-01-02"), MinYear, MaxYear)
	}

	year := MinYear
	for offset >= yearDays(year) {
		offset -= yearDays(year)
		year++
	}

	leap := LeapMonth(year)
	month := 1
	isLeap := false
	for ; month <= 12; month++ {
		d := monthDays(year, month)
		if offset < d {
			break
		}
		offset -= d
		if month == leap {
			ld := leapDays(year)
			if offset < ld {
				isLeap = true
				break
			}
			offset -= ld
		}
	}

	return Date{Year: year, Month: month, Day: offset + 1, Leap: isLeap}, nil
}

// FromYMD converts a Gregorian calendar date given as plain integers. The
// date must exist on the civil calendar; 2023-02-29 is rejected rather
// than normalized.
func FromYMD(year, month, day int) (Date, error) {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return Date{}, errors.Wrapf(errors.ErrInvalidInput,
			"no such calendar date %04d-%02d-%02d", year, month, day)
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return Date{}, errors.Wrapf(errors.ErrInvalidInput,
			"no such calendar date %04d-%02d-%02d", year, month, day)
	}
	return FromGregorian(t)
}

// Calendar is a handle for callers that take the converter as a
// dependency rather than calling the package functions.
type Calendar struct{}

// FromYMD converts a Gregorian calendar date.
func (Calendar) FromYMD(year, month, day int) (Date, error) {
	return FromYMD(year, month, day)
}

var monthNames = [...]string{"正", "二", "三", "四", "五", "六", "七", "八", "九", "十", "冬", "腊"}

var (
	dayTens = [...]string{"初", "十", "廿", "三"}
	dayOnes = [...]string{"十", "一", "二", "三", "四", "五", "六", "七", "八", "九"}
)

// MonthName returns the traditional month label, with the 闰 prefix for a
// leap month.
func (d Date) MonthName() string {
	name := monthNames[d.Month-1] + "月"
	if d.Leap {
		return "闰" + name
	}
	return name
}

// DayName returns the traditional day label (初一 through 三十).
func (d Date) DayName() string {
	switch d.Day {
	case 10:
		return "初十"
	case 20:
		return "二十"
	case 30:
		return "三十"
	}
	return dayTens[d.Day/10] + dayOnes[d.Day%10]
}

// String renders the date in the traditional form, e.g. 1990年五月廿三.
func (d Date) String() string {
	return fmt.Sprintf("%d年%s%s", d.Year, d.MonthName(), d.DayName())
}
