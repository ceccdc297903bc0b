package calendar

import (
	"sort"
	"time"
)

// Holiday is one observed non-trading date for a year.
type Holiday struct {
	Name     string
	Date     time.Time // nominal calendar date
	Observed time.Time // actual non-trading date after the weekend-shift rule
}

// easterSunday computes Gregorian Easter via the anonymous algorithm.
func easterSunday(year int, loc *time.Location) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
}

// nthWeekday returns the nth (1-based) weekday of a month.
func nthWeekday(year int, month time.Month, wd time.Weekday, n int, loc *time.Location) time.Time {
	d := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	offset := (int(wd) - int(d.Weekday()) + 7) % 7
	return d.AddDate(0, 0, offset+(n-1)*7)
}

// lastWeekday returns the last weekday of a month.
func lastWeekday(year int, month time.Month, wd time.Weekday, loc *time.Location) time.Time {
	d := time.Date(year, month+1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	offset := (int(d.Weekday()) - int(wd) + 7) % 7
	return d.AddDate(0, 0, -offset)
}

// observedDate applies the exchange shift rule to a fixed-date holiday:
// Saturday observes the preceding Friday, Sunday the following Monday.
func observedDate(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, -1)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// holidaysForYear computes the full US-market holiday set for a year.
// Floating "nth weekday" holidays need no shift; they cannot land on a weekend.
func holidaysForYear(year int, loc *time.Location) []Holiday {
	fixed := func(name string, month time.Month, day int) Holiday {
		d := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return Holiday{Name: name, Date: d, Observed: observedDate(d)}
	}
	floating := func(name string, d time.Time) Holiday {
		return Holiday{Name: name, Date: d, Observed: d}
	}

	goodFriday := easterSunday(year, loc).AddDate(0, 0, -2)

	hs := []Holiday{
		fixed("New Year's Day", time.January, 1),
		floating("Martin Luther King Jr. Day", nthWeekday(year, time.January, time.Monday, 3, loc)),
		floating("Presidents' Day", nthWeekday(year, time.February, time.Monday, 3, loc)),
		floating("Good Friday", goodFriday),
		floating("Memorial Day", lastWeekday(year, time.May, time.Monday, loc)),
		fixed("Independence Day", time.July, 4),
		floating("Labor Day", nthWeekday(year, time.September, time.Monday, 1, loc)),
		floating("Thanksgiving Day", nthWeekday(year, time.November, time.Thursday, 4, loc)),
		fixed("Christmas Day", time.December, 25),
	}
	if year >= 2021 {
		hs = append(hs, fixed("Juneteenth", time.June, 19))
	}

	sort.Slice(hs, func(i, j int) bool { return hs[i].Observed.Before(hs[j].Observed) })
	return hs
}
