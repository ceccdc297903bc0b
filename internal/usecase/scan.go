package usecase

import (
	"context"
	"sort"
	"time"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	"IntraPull/internal/indicators"
	fcache "IntraPull/internal/service/cache"
	"IntraPull/pkg/logger"
)

const (
	scanEMAPeriod = 20
	scanATRPeriod = 14
)

// ScanUseCase runs the daily indicator scan over the configured watchlist.
// One scan per trading date is cached under its own key class.
type ScanUseCase struct {
	series  *SeriesUseCase
	cache   *fcache.FetchCache
	symbols []string
	log     *logger.Logger
}

// NewScanUseCase creates the scan runner over a fixed watchlist.
func NewScanUseCase(series *SeriesUseCase, cache *fcache.FetchCache, symbols []string, log *logger.Logger) *ScanUseCase {
	return &ScanUseCase{series: series, cache: cache, symbols: symbols, log: log}
}

// RunScan returns the indicator snapshot for each watchlist symbol as of the
// given date. A zero date means the most recent trading day. Symbols whose
// fetch fails are skipped; the scan succeeds with the rows it could build.
func (uc *ScanUseCase) RunScan(ctx context.Context, date time.Time) (*models.ScanResult, error) {
	cal := uc.series.Calendar()
	if date.IsZero() {
		date = time.Now()
	}
	date = cal.PrevTradingDay(cal.Midnight(date))

	key := "scan|" + date.Format("2006-01-02")
	return uc.cache.GetOrFetchScan(ctx, key, func(fctx context.Context) (*models.ScanResult, error) {
		return uc.compute(fctx, date)
	})
}

func (uc *ScanUseCase) compute(ctx context.Context, date time.Time) (*models.ScanResult, error) {
	result := &models.ScanResult{
		Date: date.Format("2006-01-02"),
		Rows: make([]models.ScanRow, 0, len(uc.symbols)),
	}

	for _, symbol := range uc.symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := uc.scanSymbol(ctx, symbol, date)
		if err != nil {
			uc.log.Warn("scan symbol skipped",
				logger.String("symbol", symbol),
				logger.Error(err),
			)
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		return result.Rows[i].Symbol < result.Rows[j].Symbol
	})
	return result, nil
}

func (uc *ScanUseCase) scanSymbol(ctx context.Context, symbol string, date time.Time) (models.ScanRow, error) {
	res, err := uc.series.GetSeries(ctx, GetSeriesParams{
		Symbol:    symbol,
		Timeframe: drepo.TF1d,
		BaseDate:  date,
	})
	if err != nil {
		return models.ScanRow{}, err
	}

	row := models.ScanRow{Symbol: symbol, Bars: res.Count}
	if res.Count == 0 {
		return row, nil
	}

	closes := indicators.Closes(res.Bars)
	row.Close = closes[len(closes)-1]

	if ema := indicators.EMA(closes, scanEMAPeriod); len(ema) > 0 {
		row.EMA20 = ema[len(ema)-1]
	}
	if atr := indicators.ATR(res.Bars, scanATRPeriod); len(atr) > 0 {
		row.ATR14 = atr[len(atr)-1]
	}
	return row, nil
}
