package models

import "time"

// RawBar is the provider wire shape for a single aggregate bar.
// It is normalized into a Bar exactly once, at the ingestion boundary.
type RawBar struct {
	Timestamp int64   `json:"t"` // ms epoch
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    float64 `json:"v"`
}

// Bar is a single OHLCV bar. Immutable after creation.
type Bar struct {
	Timestamp int64   `json:"t"` // ms epoch
	Open      float64 `json:"o"`
	High      float64 `json:"h"`
	Low       float64 `json:"l"`
	Close     float64 `json:"c"`
	Volume    int64   `json:"v"`
}

// Time returns the bar timestamp in the given location.
func (b Bar) Time(loc *time.Location) time.Time {
	return time.UnixMilli(b.Timestamp).In(loc)
}

// LiveBar is a minute aggregate pushed over the provider stream.
type LiveBar struct {
	Symbol string
	Bar    Bar
}

// FromRaw normalizes a provider bar. Fractional volumes are truncated.
func FromRaw(r RawBar) Bar {
	return Bar{
		Timestamp: r.Timestamp,
		Open:      r.Open,
		High:      r.High,
		Low:       r.Low,
		Close:     r.Close,
		Volume:    int64(r.Volume),
	}
}

// FromRawBars normalizes a provider bar slice.
func FromRawBars(raw []RawBar) []Bar {
	bars := make([]Bar, len(raw))
	for i, r := range raw {
		bars[i] = FromRaw(r)
	}
	return bars
}
