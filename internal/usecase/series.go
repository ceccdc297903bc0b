// Package usecase contains the pipeline orchestration: series retrieval,
// scan execution, bar archiving and live-stream cache invalidation.
package usecase

import (
	"context"
	"fmt"
	"time"

	"IntraPull/internal/bars"
	"IntraPull/internal/calendar"
	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	fcache "IntraPull/internal/service/cache"
	"IntraPull/pkg/logger"
)

// SeriesUseCase resolves a (symbol, timeframe, offset, base date) request into
// a cleaned, resampled bar series through the fetch cache.
type SeriesUseCase struct {
	cal      *calendar.Calendar
	cache    *fcache.FetchCache
	provider drepo.Provider
	cleaner  *bars.Cleaner
	session  bars.SessionConfig
	archiver *Archiver // optional, may be nil
	metrics  drepo.Metrics
	log      *logger.Logger
}

// NewSeriesUseCase wires the pipeline stages together.
func NewSeriesUseCase(
	cal *calendar.Calendar,
	cache *fcache.FetchCache,
	provider drepo.Provider,
	cleaner *bars.Cleaner,
	session bars.SessionConfig,
	archiver *Archiver,
	metrics drepo.Metrics,
	log *logger.Logger,
) *SeriesUseCase {
	return &SeriesUseCase{
		cal:      cal,
		cache:    cache,
		provider: provider,
		cleaner:  cleaner,
		session:  session,
		archiver: archiver,
		metrics:  metrics,
		log:      log,
	}
}

// GetSeriesParams identifies one series request.
type GetSeriesParams struct {
	Symbol    string
	Timeframe drepo.Timeframe
	Offset    int       // signed trading-day offset against BaseDate
	BaseDate  time.Time // zero means today
}

// GetSeriesResult is the retrieved series plus its resolved window.
type GetSeriesResult struct {
	Symbol    string       `json:"symbol"`
	Timeframe string       `json:"timeframe"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Count     int          `json:"count"`
	Bars      []models.Bar `json:"bars"`
}

// GetSeries resolves the calendar window, then returns the cached series or
// fetches, cleans and resamples it through the fetch cache. An empty series
// after cleaning is a normal outcome, not an error.
func (uc *SeriesUseCase) GetSeries(ctx context.Context, p GetSeriesParams) (*GetSeriesResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if !drepo.IsValidTimeframe(p.Timeframe) {
		return nil, fmt.Errorf("unsupported timeframe %q", p.Timeframe)
	}

	base := p.BaseDate
	if base.IsZero() {
		base = time.Now()
	}
	base = uc.cal.Midnight(base)

	// The offset date is the right edge of the window, not its center.
	target := uc.cal.ResolveOffset(base, p.Offset)
	start := target.AddDate(0, 0, -p.Timeframe.LookbackDays())

	key := seriesKey(p.Symbol, p.Timeframe, start, target)
	series, err := uc.cache.GetOrFetchBars(ctx, key, func(fctx context.Context) ([]models.Bar, error) {
		return uc.fetchAndClean(fctx, p.Symbol, p.Timeframe, start, target)
	})
	if err != nil {
		return nil, err
	}

	return &GetSeriesResult{
		Symbol:    p.Symbol,
		Timeframe: string(p.Timeframe),
		From:      start.Format("2006-01-02"),
		To:        target.Format("2006-01-02"),
		Count:     len(series),
		Bars:      series,
	}, nil
}

func (uc *SeriesUseCase) fetchAndClean(ctx context.Context, symbol string, tf drepo.Timeframe, from, to time.Time) ([]models.Bar, error) {
	interval := tf.FetchInterval()
	uc.metrics.RecordFetch(string(interval))

	raw, err := uc.provider.FetchBars(ctx, symbol, interval, from, to)
	if err != nil {
		uc.metrics.RecordError("provider")
		return nil, err
	}

	cleaned, drops := uc.cleaner.Clean(models.FromRawBars(raw))
	uc.recordDrops(symbol, drops)

	if uc.archiver != nil {
		uc.archiver.Archive(symbol, cleaned)
	}

	if tf.IsDaily() {
		return cleaned, nil
	}

	session := bars.FilterSession(cleaned, uc.session, uc.cal)
	return bars.Resample(session, tf.IntervalMinutes(), uc.cal.Location())
}

func (uc *SeriesUseCase) recordDrops(symbol string, drops bars.DropStats) {
	uc.metrics.RecordDroppedBars("malformed", drops.Malformed)
	uc.metrics.RecordDroppedBars("zero_volume", drops.ZeroVolume)
	uc.metrics.RecordDroppedBars("spike", drops.Spikes)
	uc.metrics.RecordDroppedBars("volume_outlier", drops.VolumeOutlier)
	if drops.Total() > 0 {
		uc.log.Debug("dropped bars during cleaning",
			logger.String("symbol", symbol),
			logger.Int("malformed", drops.Malformed),
			logger.Int("zero_volume", drops.ZeroVolume),
			logger.Int("spikes", drops.Spikes),
			logger.Int("volume_outliers", drops.VolumeOutlier),
		)
	}
}

// CacheStats returns the cache occupancy snapshot.
func (uc *SeriesUseCase) CacheStats() models.CacheStats {
	return uc.cache.Stats()
}

// Optimize sweeps expired cache entries and returns how many were removed.
func (uc *SeriesUseCase) Optimize() int {
	removed := uc.cache.Sweep()
	if removed > 0 {
		uc.log.Info("cache sweep", logger.Int("removed", removed))
	}
	return removed
}

// Calendar exposes the trading calendar to collaborators.
func (uc *SeriesUseCase) Calendar() *calendar.Calendar {
	return uc.cal
}

func seriesKey(symbol string, tf drepo.Timeframe, from, to time.Time) string {
	return fmt.Sprintf("%s|%s|%s|%s", symbol, tf, from.Format("2006-01-02"), to.Format("2006-01-02"))
}
