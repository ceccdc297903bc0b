package indicators

import "IntraPull/internal/domain/models"

// ATR computes the average true range: a simple moving average over the
// trailing period of true-range values. While fewer than period values are
// available the raw true range is used.
func ATR(bars []models.Bar, period int) []float64 {
	out := make([]float64, len(bars))
	if len(bars) == 0 || period <= 0 {
		return out
	}

	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		prevClose := bars[i-1].Close
		tr[i] = max3(
			bars[i].High-bars[i].Low,
			abs(bars[i].High-prevClose),
			abs(bars[i].Low-prevClose),
		)
	}

	var sum float64
	for i := range tr {
		sum += tr[i]
		if i >= period {
			sum -= tr[i-period]
		}
		if i+1 >= period {
			out[i] = sum / float64(period)
		} else {
			out[i] = tr[i]
		}
	}
	return out
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}
