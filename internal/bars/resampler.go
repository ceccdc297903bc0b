package bars

import (
	"fmt"
	"sort"
	"time"

	"IntraPull/internal/domain/models"
)

// Resample buckets minute bars into intervalMinutes-wide bars.
//
// Buckets of 60+ minutes align to hour boundaries of the bar's market-time
// timestamp (multi-hour intervals align the hour down to a multiple of the
// interval); sub-hour buckets align to floor(minute/interval)*interval within
// the hour. Each bucket keeps the first open, max high, min low, last close
// and volume sum. Empty buckets are never emitted. Output is ascending by
// bucket start.
func Resample(in []models.Bar, intervalMinutes int, loc *time.Location) ([]models.Bar, error) {
	if intervalMinutes <= 0 {
		return nil, fmt.Errorf("resample: interval must be positive, got %d", intervalMinutes)
	}
	if len(in) == 0 {
		return nil, nil
	}

	type bucket struct {
		bar       models.Bar
		lastStamp int64
	}
	buckets := make(map[int64]*bucket)

	for _, b := range in {
		start := bucketStart(b.Time(loc), intervalMinutes).UnixMilli()
		bk, ok := buckets[start]
		if !ok {
			buckets[start] = &bucket{
				bar: models.Bar{
					Timestamp: start,
					Open:      b.Open,
					High:      b.High,
					Low:       b.Low,
					Close:     b.Close,
					Volume:    b.Volume,
				},
				lastStamp: b.Timestamp,
			}
			continue
		}
		if b.High > bk.bar.High {
			bk.bar.High = b.High
		}
		if b.Low < bk.bar.Low {
			bk.bar.Low = b.Low
		}
		if b.Timestamp >= bk.lastStamp {
			bk.bar.Close = b.Close
			bk.lastStamp = b.Timestamp
		}
		bk.bar.Volume += b.Volume
	}

	out := make([]models.Bar, 0, len(buckets))
	for _, bk := range buckets {
		out = append(out, bk.bar)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

func bucketStart(t time.Time, intervalMinutes int) time.Time {
	if intervalMinutes >= 60 {
		hours := intervalMinutes / 60
		hour := t.Hour() - t.Hour()%hours
		return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
	}
	minute := t.Minute() - t.Minute()%intervalMinutes
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), minute, 0, 0, t.Location())
}
