// Package calendar implements the US-market trading calendar: computed
// holidays for arbitrary years and business-day arithmetic on top of them.
package calendar

import (
	"sync"
	"time"
)

// MarketTZ is the exchange time zone name.
const MarketTZ = "America/New_York"

// Calendar answers trading-day questions. Holiday sets are computed once per
// year and memoized for the lifetime of the instance; holiday rules are a pure
// function of the year, so entries are never invalidated.
type Calendar struct {
	loc *time.Location

	mu    sync.RWMutex
	years map[int]map[string]string // observed "2006-01-02" -> holiday name
}

// New creates a Calendar in the market time zone.
func New() (*Calendar, error) {
	loc, err := time.LoadLocation(MarketTZ)
	if err != nil {
		return nil, err
	}
	return &Calendar{loc: loc, years: make(map[int]map[string]string)}, nil
}

// Location returns the market time zone.
func (c *Calendar) Location() *time.Location { return c.loc }

// Midnight normalizes t to midnight of its calendar day in the market zone.
func (c *Calendar) Midnight(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// IsWeekend reports whether d falls on Saturday or Sunday.
func (c *Calendar) IsWeekend(d time.Time) bool {
	wd := d.In(c.loc).Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsMarketHoliday reports whether d is an observed market holiday.
func (c *Calendar) IsMarketHoliday(d time.Time) bool {
	_, ok := c.HolidayName(d)
	return ok
}

// HolidayName returns the holiday observed on d, if any.
func (c *Calendar) HolidayName(d time.Time) (string, bool) {
	d = d.In(c.loc)
	name, ok := c.yearSet(d.Year())[d.Format("2006-01-02")]
	return name, ok
}

// Holidays returns the observed holiday set for a year, sorted by date.
func (c *Calendar) Holidays(year int) []Holiday {
	return holidaysForYear(year, c.loc)
}

// IsTradingDay reports whether d is neither a weekend nor an observed holiday.
func (c *Calendar) IsTradingDay(d time.Time) bool {
	return !c.IsWeekend(d) && !c.IsMarketHoliday(d)
}

// AddTradingDays walks n trading days forward from d. n=0 returns d unchanged.
func (c *Calendar) AddTradingDays(d time.Time, n int) time.Time {
	return c.walk(d, n, 1)
}

// SubtractTradingDays walks n trading days backward from d. n=0 returns d unchanged.
func (c *Calendar) SubtractTradingDays(d time.Time, n int) time.Time {
	return c.walk(d, n, -1)
}

// ResolveOffset resolves a signed trading-day offset against a base date.
func (c *Calendar) ResolveOffset(base time.Time, offset int) time.Time {
	if offset > 0 {
		return c.AddTradingDays(base, offset)
	}
	if offset < 0 {
		return c.SubtractTradingDays(base, -offset)
	}
	return base
}

// PrevTradingDay returns d itself when it trades, otherwise the most recent
// trading day before it.
func (c *Calendar) PrevTradingDay(d time.Time) time.Time {
	for !c.IsTradingDay(d) {
		d = d.AddDate(0, 0, -1)
	}
	return d
}

// walk iterates single calendar days, counting only trading days.
func (c *Calendar) walk(d time.Time, n, dir int) time.Time {
	for n > 0 {
		d = d.AddDate(0, 0, dir)
		if c.IsTradingDay(d) {
			n--
		}
	}
	return d
}

func (c *Calendar) yearSet(year int) map[string]string {
	c.mu.RLock()
	set, ok := c.years[year]
	c.mu.RUnlock()
	if ok {
		return set
	}

	// New Year's Day on a Saturday observes into December of the prior year,
	// so the next year's rules can contribute dates to this set.
	set = make(map[string]string)
	for _, y := range []int{year, year + 1} {
		for _, h := range holidaysForYear(y, c.loc) {
			if h.Observed.Year() != year {
				continue
			}
			set[h.Observed.Format("2006-01-02")] = h.Name
		}
	}

	c.mu.Lock()
	c.years[year] = set
	c.mu.Unlock()
	return set
}
