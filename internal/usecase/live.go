package usecase

import (
	"context"
	"time"

	drepo "IntraPull/internal/domain/repository"
	fcache "IntraPull/internal/service/cache"
	"IntraPull/pkg/logger"
)

// LiveCollector consumes the provider's live minute-aggregate stream and
// keeps the fetch cache honest: every aggregate invalidates the symbol's
// cached bar series and updates the last-price gauge.
type LiveCollector struct {
	stream  drepo.BarStream
	cache   *fcache.FetchCache
	symbols []string
	metrics drepo.Metrics
	log     *logger.Logger
}

// NewLiveCollector creates a collector over the given watchlist.
func NewLiveCollector(stream drepo.BarStream, cache *fcache.FetchCache, symbols []string, metrics drepo.Metrics, log *logger.Logger) *LiveCollector {
	return &LiveCollector{stream: stream, cache: cache, symbols: symbols, metrics: metrics, log: log}
}

// Run connects, subscribes and consumes until ctx is cancelled. A dropped
// connection is retried with a fixed backoff; Run only returns on ctx.Done.
func (lc *LiveCollector) Run(ctx context.Context) {
	const retryDelay = 5 * time.Second

	for {
		if err := lc.consume(ctx); err != nil {
			lc.metrics.RecordError("stream")
			lc.log.Warn("live stream interrupted", logger.Error(err))
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryDelay):
		}
	}
}

func (lc *LiveCollector) consume(ctx context.Context) error {
	if err := lc.stream.Connect(ctx); err != nil {
		return err
	}
	defer lc.stream.Close()

	if err := lc.stream.Subscribe(ctx, lc.symbols); err != nil {
		return err
	}
	lc.log.Info("live stream connected", logger.Strings("symbols", lc.symbols))

	bars, errs := lc.stream.Read(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return err
		case lb, ok := <-bars:
			if !ok {
				return nil
			}
			lc.cache.InvalidateSymbol(lb.Symbol)
			lc.metrics.RecordLastPrice(lb.Symbol, lb.Bar.Close)
		}
	}
}
