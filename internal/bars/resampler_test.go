package bars

import (
	"testing"
	"time"

	"IntraPull/internal/domain/models"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func barAt(ts time.Time, o, h, l, c float64, v int64) models.Bar {
	return models.Bar{Timestamp: ts.UnixMilli(), Open: o, High: h, Low: l, Close: c, Volume: v}
}

func TestResampleFiveMinute(t *testing.T) {
	loc := mustLoc(t)
	base := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)

	in := []models.Bar{
		barAt(base, 10, 11, 9.8, 10.5, 100),
		barAt(base.Add(1*time.Minute), 10.5, 12, 10.4, 11.8, 80),
		barAt(base.Add(2*time.Minute), 11.8, 14.5, 11.5, 14.0, 150),
		barAt(base.Add(3*time.Minute), 14.0, 14.2, 9.5, 13.5, 90),
		barAt(base.Add(4*time.Minute), 13.5, 14.0, 13.0, 14.2, 80),
	}

	out, err := Resample(in, 5, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected one bucket, got %d", len(out))
	}

	b := out[0]
	if b.Timestamp != base.UnixMilli() {
		t.Fatalf("bucket start: got %d, want %d", b.Timestamp, base.UnixMilli())
	}
	if b.Open != 10 || b.High != 14.5 || b.Low != 9.5 || b.Close != 14.2 {
		t.Fatalf("unexpected OHLC %+v", b)
	}
	if b.Volume != 500 {
		t.Fatalf("volume: got %d, want 500", b.Volume)
	}
}

func TestResampleBucketBoundary(t *testing.T) {
	loc := mustLoc(t)
	base := time.Date(2024, 3, 4, 9, 33, 0, 0, loc)

	in := []models.Bar{
		barAt(base, 10, 10, 10, 10, 10),                    // 09:33 -> 09:30 bucket
		barAt(base.Add(2*time.Minute), 11, 11, 11, 11, 10), // 09:35 -> 09:35 bucket
	}

	out, err := Resample(in, 5, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two buckets, got %d", len(out))
	}
	want0 := time.Date(2024, 3, 4, 9, 30, 0, 0, loc).UnixMilli()
	want1 := time.Date(2024, 3, 4, 9, 35, 0, 0, loc).UnixMilli()
	if out[0].Timestamp != want0 || out[1].Timestamp != want1 {
		t.Fatalf("bucket starts: got %d, %d", out[0].Timestamp, out[1].Timestamp)
	}
}

func TestResampleHourlyAligned(t *testing.T) {
	loc := mustLoc(t)

	in := []models.Bar{
		barAt(time.Date(2024, 3, 4, 9, 45, 0, 0, loc), 10, 11, 9, 10.5, 100),
		barAt(time.Date(2024, 3, 4, 10, 15, 0, 0, loc), 10.5, 12, 10, 11.5, 100),
	}

	out, err := Resample(in, 60, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected two hourly buckets, got %d", len(out))
	}
	if out[0].Timestamp != time.Date(2024, 3, 4, 9, 0, 0, 0, loc).UnixMilli() {
		t.Fatalf("first bucket should align to 09:00")
	}
	if out[1].Timestamp != time.Date(2024, 3, 4, 10, 0, 0, 0, loc).UnixMilli() {
		t.Fatalf("second bucket should align to 10:00")
	}
}

func TestResampleNoEmptyBuckets(t *testing.T) {
	loc := mustLoc(t)

	// One bar at 09:30, next at 11:00. Nothing between them.
	in := []models.Bar{
		barAt(time.Date(2024, 3, 4, 9, 30, 0, 0, loc), 10, 10, 10, 10, 10),
		barAt(time.Date(2024, 3, 4, 11, 0, 0, 0, loc), 11, 11, 11, 11, 10),
	}

	out, err := Resample(in, 5, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("gap periods must not produce buckets, got %d", len(out))
	}
}

func TestResampleAscendingFromUnsortedInput(t *testing.T) {
	loc := mustLoc(t)
	base := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)

	in := []models.Bar{
		barAt(base.Add(10*time.Minute), 12, 12, 12, 12, 10),
		barAt(base, 10, 10, 10, 10, 10),
		barAt(base.Add(5*time.Minute), 11, 11, 11, 11, 10),
	}

	out, err := Resample(in, 5, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i].Timestamp <= out[i-1].Timestamp {
			t.Fatalf("output not ascending at %d", i)
		}
	}
}

func TestResampleReaggregation(t *testing.T) {
	loc := mustLoc(t)
	base := time.Date(2024, 3, 4, 9, 30, 0, 0, loc)

	in := make([]models.Bar, 15)
	for i := range in {
		p := 10 + float64(i)*0.1
		in[i] = barAt(base.Add(time.Duration(i)*time.Minute), p, p+0.5, p-0.5, p+0.2, 100)
	}

	direct, err := Resample(in, 15, loc)
	if err != nil {
		t.Fatalf("direct: %v", err)
	}
	fives, err := Resample(in, 5, loc)
	if err != nil {
		t.Fatalf("fives: %v", err)
	}
	twoStep, err := Resample(fives, 15, loc)
	if err != nil {
		t.Fatalf("two step: %v", err)
	}

	if len(direct) != 1 || len(twoStep) != 1 {
		t.Fatalf("expected single buckets, got %d and %d", len(direct), len(twoStep))
	}
	if direct[0] != twoStep[0] {
		t.Fatalf("aggregation not associative: %+v vs %+v", direct[0], twoStep[0])
	}
}

func TestResampleInvalidInterval(t *testing.T) {
	loc := mustLoc(t)
	if _, err := Resample(nil, 0, loc); err == nil {
		t.Fatalf("expected error for zero interval")
	}
	if _, err := Resample(nil, -5, loc); err == nil {
		t.Fatalf("expected error for negative interval")
	}
}

func TestResampleEmptyInput(t *testing.T) {
	loc := mustLoc(t)
	out, err := Resample(nil, 5, loc)
	if err != nil {
		t.Fatalf("resample: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("expected empty output")
	}
}
