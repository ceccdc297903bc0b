package indicators

import (
	"math"
	"testing"
	"time"

	"IntraPull/internal/domain/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestEMA(t *testing.T) {
	got := EMA([]float64{10, 11, 12, 13}, 3)
	want := []float64{10, 10.5, 11.25, 12.125}
	if len(got) != len(want) {
		t.Fatalf("length: got %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("ema[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEMAEmpty(t *testing.T) {
	if got := EMA(nil, 3); len(got) != 0 {
		t.Fatalf("expected empty output")
	}
}

func TestVWAPSessionReset(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	day1 := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)
	day2 := time.Date(2024, 3, 5, 9, 30, 0, 0, loc)
	bars := []models.Bar{
		{Timestamp: day1.UnixMilli(), Open: 10, High: 12, Low: 9, Close: 9, Volume: 100},
		{Timestamp: day1.Add(time.Minute).UnixMilli(), Open: 9, High: 21, Low: 15, Close: 18, Volume: 300},
		{Timestamp: day2.UnixMilli(), Open: 20, High: 33, Low: 27, Close: 30, Volume: 50},
	}
	// Fix low <= open/close for validity of the fixture.
	bars[1].Low = 9
	bars[1].Open = 15
	bars[2].Low = 27
	bars[2].Open = 30

	got := VWAP(bars, loc)

	// Bar 1: typical (12+9+9)/3 = 10.
	if !approx(got[0], 10) {
		t.Fatalf("vwap[0]: got %v", got[0])
	}
	// Bar 2: typical (21+9+18)/3 = 16; cum = (10*100 + 16*300) / 400 = 14.5.
	if !approx(got[1], 14.5) {
		t.Fatalf("vwap[1]: got %v", got[1])
	}
	// Bar 3 starts a new session: typical (33+27+30)/3 = 30.
	if !approx(got[2], 30) {
		t.Fatalf("vwap[2]: got %v, session should reset", got[2])
	}
}

func TestVWAPZeroVolumeFallback(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	ts := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)
	bars := []models.Bar{
		{Timestamp: ts.UnixMilli(), Open: 10, High: 11, Low: 9, Close: 10.5, Volume: 0},
	}
	got := VWAP(bars, loc)
	if !approx(got[0], 10.5) {
		t.Fatalf("expected close fallback, got %v", got[0])
	}
}

func TestATRWarmupAndAverage(t *testing.T) {
	bars := []models.Bar{
		{Open: 10, High: 12, Low: 9, Close: 11, Volume: 1},  // tr = 3 (range)
		{Open: 11, High: 14, Low: 10, Close: 13, Volume: 1}, // tr = max(4, 3, 1) = 4
		{Open: 13, High: 15, Low: 13, Close: 14, Volume: 1}, // tr = max(2, 2, 0) = 2
		{Open: 14, High: 17, Low: 14, Close: 16, Volume: 1}, // tr = max(3, 3, 0) = 3
	}

	got := ATR(bars, 3)
	want := []float64{3, 4, 3, 3} // raw, raw, avg(3,4,2), avg(4,2,3)
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Fatalf("atr[%d]: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestATRGapUsesPrevClose(t *testing.T) {
	bars := []models.Bar{
		{Open: 10, High: 10.5, Low: 9.5, Close: 10, Volume: 1},
		// Gap up: range is 1 but distance from prior close dominates.
		{Open: 15, High: 15.5, Low: 14.5, Close: 15, Volume: 1},
	}
	got := ATR(bars, 14)
	if !approx(got[1], 5.5) {
		t.Fatalf("atr[1]: got %v, want 5.5", got[1])
	}
}

func TestCloses(t *testing.T) {
	bars := []models.Bar{{Close: 1}, {Close: 2.5}}
	got := Closes(bars)
	if len(got) != 2 || got[0] != 1 || got[1] != 2.5 {
		t.Fatalf("unexpected closes %v", got)
	}
}
