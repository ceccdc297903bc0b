package calendar

import (
	"testing"
	"time"
)

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	c, err := New()
	if err != nil {
		t.Fatalf("new calendar: %v", err)
	}
	return c
}

func date(c *Calendar, y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, c.Location())
}

func TestFixedHolidays2024(t *testing.T) {
	c := newTestCalendar(t)

	cases := []struct {
		day  time.Time
		name string
	}{
		{date(c, 2024, time.January, 1), "New Year's Day"},
		{date(c, 2024, time.June, 19), "Juneteenth"},
		{date(c, 2024, time.July, 4), "Independence Day"},
		{date(c, 2024, time.December, 25), "Christmas Day"},
	}
	for _, tc := range cases {
		name, ok := c.HolidayName(tc.day)
		if !ok {
			t.Fatalf("%v should be a holiday", tc.day)
		}
		if name != tc.name {
			t.Fatalf("%v: got %q, want %q", tc.day, name, tc.name)
		}
	}
}

func TestFloatingHolidays(t *testing.T) {
	c := newTestCalendar(t)

	cases := []time.Time{
		date(c, 2024, time.January, 15),  // MLK, 3rd Monday of January
		date(c, 2024, time.February, 19), // Presidents Day, 3rd Monday of February
		date(c, 2024, time.May, 27),      // Memorial Day, last Monday of May
		date(c, 2024, time.September, 2), // Labor Day, 1st Monday of September
		date(c, 2024, time.November, 28), // Thanksgiving, 4th Thursday of November
	}
	for _, d := range cases {
		if !c.IsMarketHoliday(d) {
			t.Fatalf("%v should be a holiday", d)
		}
	}
}

func TestGoodFriday(t *testing.T) {
	c := newTestCalendar(t)

	// Easter 2024 is March 31, Good Friday two days earlier.
	if !c.IsMarketHoliday(date(c, 2024, time.March, 29)) {
		t.Fatalf("2024-03-29 should be Good Friday")
	}
	// Easter 2025 is April 20.
	if !c.IsMarketHoliday(date(c, 2025, time.April, 18)) {
		t.Fatalf("2025-04-18 should be Good Friday")
	}
}

func TestObservedShift(t *testing.T) {
	c := newTestCalendar(t)

	// July 4 2026 is a Saturday, observed Friday July 3.
	if !c.IsMarketHoliday(date(c, 2026, time.July, 3)) {
		t.Fatalf("2026-07-03 should be observed Independence Day")
	}
	if c.IsMarketHoliday(date(c, 2026, time.July, 6)) {
		t.Fatalf("2026-07-06 should not be a holiday")
	}

	// Christmas 2021 fell on Saturday, observed Friday December 24.
	if !c.IsMarketHoliday(date(c, 2021, time.December, 24)) {
		t.Fatalf("2021-12-24 should be observed Christmas")
	}

	// New Year's Day 2023 fell on Sunday, observed Monday January 2.
	if !c.IsMarketHoliday(date(c, 2023, time.January, 2)) {
		t.Fatalf("2023-01-02 should be observed New Year's Day")
	}
}

func TestObservedShiftAcrossYear(t *testing.T) {
	c := newTestCalendar(t)

	// New Year's Day 2022 fell on a Saturday, observed Friday December 31 2021.
	name, ok := c.HolidayName(date(c, 2021, time.December, 31))
	if !ok {
		t.Fatalf("2021-12-31 should be observed New Year's Day")
	}
	if name != "New Year's Day" {
		t.Fatalf("2021-12-31 name = %q, want New Year's Day", name)
	}
	if c.IsTradingDay(date(c, 2021, time.December, 31)) {
		t.Fatalf("2021-12-31 should not be a trading day")
	}
	// The shift empties January 1 2022's own year of the holiday.
	if c.IsMarketHoliday(date(c, 2022, time.January, 3)) {
		t.Fatalf("2022-01-03 should not be a holiday")
	}

	// Walking backward from the first 2022 session must skip the observed date.
	got := c.SubtractTradingDays(date(c, 2022, time.January, 3), 1)
	want := date(c, 2021, time.December, 30)
	if !got.Equal(want) {
		t.Fatalf("prev trading day before 2022-01-03 = %v, want %v", got, want)
	}
}

func TestJuneteenthCutoff(t *testing.T) {
	c := newTestCalendar(t)

	if c.IsMarketHoliday(date(c, 2020, time.June, 19)) {
		t.Fatalf("Juneteenth should not be observed before 2021")
	}
	if !c.IsMarketHoliday(date(c, 2021, time.June, 18)) {
		// June 19 2021 is a Saturday, observed Friday the 18th.
		t.Fatalf("Juneteenth 2021 should be observed on June 18")
	}
}

func TestIsTradingDay(t *testing.T) {
	c := newTestCalendar(t)

	if c.IsTradingDay(date(c, 2024, time.January, 6)) {
		t.Fatalf("Saturday should not trade")
	}
	if c.IsTradingDay(date(c, 2024, time.January, 1)) {
		t.Fatalf("holiday should not trade")
	}
	if !c.IsTradingDay(date(c, 2024, time.January, 2)) {
		t.Fatalf("2024-01-02 should trade")
	}
}

func TestTradingDayArithmetic(t *testing.T) {
	c := newTestCalendar(t)

	// Friday before MLK weekend: one trading day forward skips Sat, Sun
	// and the Monday holiday.
	fri := date(c, 2024, time.January, 12)
	got := c.AddTradingDays(fri, 1)
	want := date(c, 2024, time.January, 16)
	if !got.Equal(want) {
		t.Fatalf("add: got %v, want %v", got, want)
	}

	back := c.SubtractTradingDays(want, 1)
	if !back.Equal(fri) {
		t.Fatalf("subtract: got %v, want %v", back, fri)
	}
}

func TestTradingDayRoundTrip(t *testing.T) {
	c := newTestCalendar(t)

	d := date(c, 2024, time.March, 6)
	for n := 0; n <= 30; n++ {
		got := c.AddTradingDays(c.SubtractTradingDays(d, n), n)
		if !got.Equal(d) {
			t.Fatalf("n=%d: got %v, want %v", n, got, d)
		}
	}
}

func TestResolveOffset(t *testing.T) {
	c := newTestCalendar(t)

	base := date(c, 2024, time.January, 16)
	if got := c.ResolveOffset(base, 0); !got.Equal(base) {
		t.Fatalf("zero offset should return base, got %v", got)
	}
	if got := c.ResolveOffset(base, -1); !got.Equal(date(c, 2024, time.January, 12)) {
		t.Fatalf("offset -1: got %v", got)
	}
	if got := c.ResolveOffset(base, 1); !got.Equal(date(c, 2024, time.January, 17)) {
		t.Fatalf("offset +1: got %v", got)
	}
}

func TestPrevTradingDay(t *testing.T) {
	c := newTestCalendar(t)

	// Sunday resolves back to Friday.
	got := c.PrevTradingDay(date(c, 2024, time.January, 14))
	if !got.Equal(date(c, 2024, time.January, 12)) {
		t.Fatalf("got %v", got)
	}
	// A trading day resolves to itself.
	d := date(c, 2024, time.January, 10)
	if got := c.PrevTradingDay(d); !got.Equal(d) {
		t.Fatalf("got %v", got)
	}
}

func TestHolidaysSorted(t *testing.T) {
	c := newTestCalendar(t)

	hs := c.Holidays(2024)
	if len(hs) != 10 {
		t.Fatalf("expected 10 holidays in 2024, got %d", len(hs))
	}
	for i := 1; i < len(hs); i++ {
		if hs[i].Observed.Before(hs[i-1].Observed) {
			t.Fatalf("holidays out of order at %d", i)
		}
	}
}
