// Package indicators provides stateless transforms over cleaned bar series.
package indicators

import (
	"time"

	"IntraPull/internal/domain/models"
)

// VWAP computes the session-anchored volume-weighted average price.
// Cumulative price×volume and volume reset at the first bar of each new
// market-time calendar day. Bars with no accumulated volume fall back to
// their close.
func VWAP(bars []models.Bar, loc *time.Location) []float64 {
	out := make([]float64, len(bars))

	var cumPV, cumV float64
	var session string
	for i, b := range bars {
		day := b.Time(loc).Format("2006-01-02")
		if day != session {
			session = day
			cumPV, cumV = 0, 0
		}

		typical := (b.High + b.Low + b.Close) / 3
		cumPV += typical * float64(b.Volume)
		cumV += float64(b.Volume)

		if cumV == 0 {
			out[i] = b.Close
		} else {
			out[i] = cumPV / cumV
		}
	}
	return out
}
