package util

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	got, ok := ParseDate("2024-03-04", loc)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 4 {
		t.Fatalf("unexpected date %v", got)
	}
	if got.Location() != loc {
		t.Fatalf("expected market location")
	}
}

func TestParseDateInvalid(t *testing.T) {
	loc := time.UTC
	if _, ok := ParseDate("", loc); ok {
		t.Fatalf("empty string should not parse")
	}
	if _, ok := ParseDate("03/04/2024", loc); ok {
		t.Fatalf("wrong layout should not parse")
	}
}

func TestParseDateDefault(t *testing.T) {
	def := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	if got := ParseDateDefault("", time.UTC, def); !got.Equal(def) {
		t.Fatalf("expected default")
	}
	if got := ParseDateDefault("2024-03-05", time.UTC, def); got.Day() != 5 {
		t.Fatalf("expected parsed date, got %v", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, 3, 4, 15, 30, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2024-03-04" {
		t.Fatalf("got %q", got)
	}
}

func TestParseIntDefault(t *testing.T) {
	if got := ParseIntDefault("", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("abc", 7); got != 7 {
		t.Fatalf("got %d", got)
	}
	if got := ParseIntDefault("-42", 7); got != -42 {
		t.Fatalf("got %d", got)
	}
}
