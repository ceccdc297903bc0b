package repository

// Timeframe is a caller-facing bar granularity.
type Timeframe string

const (
	TF1m  Timeframe = "1m"
	TF5m  Timeframe = "5m"
	TF15m Timeframe = "15m"
	TF1h  Timeframe = "1h"
	TF1d  Timeframe = "1d"
)

// Interval is the provider-facing fetch granularity. Sub-daily timeframes are
// always built from minute bars; daily comes from a distinct daily fetch.
type Interval string

const (
	IntervalMinute Interval = "minute"
	IntervalDay    Interval = "day"
)

// IsValidTimeframe returns true if tf is a supported timeframe.
func IsValidTimeframe(tf Timeframe) bool {
	switch tf {
	case TF1m, TF5m, TF15m, TF1h, TF1d:
		return true
	default:
		return false
	}
}

// DefaultTimeframe returns the default timeframe.
func DefaultTimeframe() Timeframe { return TF1d }

// NormalizeTimeframe converts raw string to a valid timeframe (or default).
func NormalizeTimeframe(s string) Timeframe {
	if s == "" {
		return DefaultTimeframe()
	}
	tf := Timeframe(s)
	if IsValidTimeframe(tf) {
		return tf
	}
	return DefaultTimeframe()
}

// IntervalMinutes returns the bucket width in minutes, or 0 for daily.
func (tf Timeframe) IntervalMinutes() int {
	switch tf {
	case TF1m:
		return 1
	case TF5m:
		return 5
	case TF15m:
		return 15
	case TF1h:
		return 60
	default:
		return 0
	}
}

// IsDaily reports whether tf bypasses minute aggregation.
func (tf Timeframe) IsDaily() bool { return tf == TF1d }

// LookbackDays returns the default fetch window size in calendar days.
// The requested date is always the right edge of the window.
func (tf Timeframe) LookbackDays() int {
	switch tf {
	case TF1d:
		return 60
	case TF1h:
		return 15
	case TF15m:
		return 5
	case TF5m:
		return 2
	default:
		return 1
	}
}

// FetchInterval returns the provider granularity backing this timeframe.
func (tf Timeframe) FetchInterval() Interval {
	if tf.IsDaily() {
		return IntervalDay
	}
	return IntervalMinute
}
