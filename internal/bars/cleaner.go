// Package bars validates, filters and resamples raw minute bars.
package bars

import "IntraPull/internal/domain/models"

// Default anomaly thresholds. Carried over from the original data source;
// kept configurable because they are untested for other volatility profiles.
const (
	DefaultSpikeFactor  = 15.0
	DefaultVolumeFactor = 100.0
)

// CleanerConfig holds the anomaly-rejection thresholds.
type CleanerConfig struct {
	SpikeFactor  float64 `yaml:"spike_factor"`
	VolumeFactor float64 `yaml:"volume_factor"`
}

// DropStats counts bars removed by Clean, by reason.
type DropStats struct {
	Malformed     int
	ZeroVolume    int
	Spikes        int
	VolumeOutlier int
}

// Total returns the number of dropped bars.
func (s DropStats) Total() int {
	return s.Malformed + s.ZeroVolume + s.Spikes + s.VolumeOutlier
}

// Cleaner is a pure, order-preserving bar filter. Bars are never mutated,
// only included or excluded; one bad bar never fails a whole series.
type Cleaner struct {
	spikeFactor  float64
	volumeFactor float64
}

// NewCleaner creates a Cleaner, substituting defaults for non-positive thresholds.
func NewCleaner(cfg CleanerConfig) *Cleaner {
	if cfg.SpikeFactor <= 0 {
		cfg.SpikeFactor = DefaultSpikeFactor
	}
	if cfg.VolumeFactor <= 0 {
		cfg.VolumeFactor = DefaultVolumeFactor
	}
	return &Cleaner{spikeFactor: cfg.SpikeFactor, volumeFactor: cfg.VolumeFactor}
}

// Clean filters malformed bars, fake prints and volume outliers.
// Spike and volume checks only apply to interior bars, judged against their
// original neighbors.
func (c *Cleaner) Clean(in []models.Bar) ([]models.Bar, DropStats) {
	var stats DropStats
	out := make([]models.Bar, 0, len(in))

	for i, b := range in {
		if malformed(b) {
			stats.Malformed++
			continue
		}
		if b.Volume == 0 {
			stats.ZeroVolume++
			continue
		}
		if i > 0 && i < len(in)-1 {
			prev, next := in[i-1], in[i+1]
			if c.isSpike(b, prev, next) {
				stats.Spikes++
				continue
			}
			if c.isVolumeOutlier(b, prev, next) {
				stats.VolumeOutlier++
				continue
			}
		}
		out = append(out, b)
	}
	return out, stats
}

func malformed(b models.Bar) bool {
	if b.High < b.Low || b.Volume < 0 {
		return true
	}
	if b.Open < b.Low || b.Open > b.High {
		return true
	}
	if b.Close < b.Low || b.Close > b.High {
		return true
	}
	return false
}

// isSpike flags fake prints: a bar whose excursion from the previous close is
// far larger than the gap its neighbors actually bridged.
func (c *Cleaner) isSpike(b, prev, next models.Bar) bool {
	typical := abs(prev.Close - next.Open)
	if typical <= 0 {
		return false
	}
	current := max4(
		abs(b.High-prev.Close),
		abs(b.Low-prev.Close),
		abs(b.Open-prev.Close),
		abs(b.Close-prev.Close),
	)
	return current > c.spikeFactor*typical
}

func (c *Cleaner) isVolumeOutlier(b, prev, next models.Bar) bool {
	avg := float64(prev.Volume+next.Volume) / 2
	if avg <= 0 {
		return false
	}
	return float64(b.Volume) > c.volumeFactor*avg
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max4(a, b, c, d float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	if d > m {
		m = d
	}
	return m
}
