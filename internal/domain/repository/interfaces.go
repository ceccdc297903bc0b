package repository

import (
	"context"
	"time"

	"IntraPull/internal/domain/models"
)

// Provider fetches raw aggregate bars from the upstream market-data API.
// Implementations must return bars in ascending timestamp order.
type Provider interface {
	FetchBars(ctx context.Context, symbol string, interval Interval, from, to time.Time) ([]models.RawBar, error)
}

// BarStream delivers live minute aggregates pushed by the provider.
type BarStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, symbols []string) error
	Read(ctx context.Context) (<-chan *models.LiveBar, <-chan error)
	Close() error
}

// Publisher sends cleaned bars to a message broker.
type Publisher interface {
	PublishBatch(ctx context.Context, symbol string, bars []models.Bar) error
	Close() error
}

// Storage persists cleaned bars for offline analysis.
type Storage interface {
	StoreBatch(ctx context.Context, symbol string, bars []models.Bar) error
	Health(ctx context.Context) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordCacheHit(kind string)
	RecordCacheMiss(kind string)
	RecordFetch(interval string)
	RecordDroppedBars(reason string, n int)
	RecordRateWarning()
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordLastPrice(symbol string, price float64)
}
