package usecase

import (
	"context"
	"time"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	"IntraPull/pkg/logger"
)

// Archiver routes cleaned bar batches to the configured archive backend.
// Archiving is best effort and asynchronous; a backend failure never fails
// the series pipeline.
type Archiver struct {
	publisher drepo.Publisher // kafka backend, may be nil
	storage   drepo.Storage   // clickhouse backend, may be nil
	timeout   time.Duration
	log       *logger.Logger
	metrics   drepo.Metrics
}

// NewArchiver creates an Archiver. Returns nil when no backend is configured,
// so callers can branch on a nil receiver.
func NewArchiver(publisher drepo.Publisher, storage drepo.Storage, log *logger.Logger, metrics drepo.Metrics) *Archiver {
	if publisher == nil && storage == nil {
		return nil
	}
	return &Archiver{
		publisher: publisher,
		storage:   storage,
		timeout:   10 * time.Second,
		log:       log,
		metrics:   metrics,
	}
}

// Archive ships a cleaned batch to the backend in the background.
func (a *Archiver) Archive(symbol string, batch []models.Bar) {
	if a == nil || len(batch) == 0 {
		return
	}
	// Detached copy: the pipeline keeps the original slice.
	snapshot := make([]models.Bar, len(batch))
	copy(snapshot, batch)
	go a.ship(symbol, snapshot)
}

func (a *Archiver) ship(symbol string, batch []models.Bar) {
	ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
	defer cancel()

	var err error
	switch {
	case a.publisher != nil:
		err = a.publisher.PublishBatch(ctx, symbol, batch)
	case a.storage != nil:
		err = a.storage.StoreBatch(ctx, symbol, batch)
	}
	if err != nil {
		a.metrics.RecordError("archive")
		a.log.Warn("bar archive failed",
			logger.String("symbol", symbol),
			logger.Int("bars", len(batch)),
			logger.Error(err),
		)
	}
}

// Close releases the underlying backend connections.
func (a *Archiver) Close() error {
	if a == nil {
		return nil
	}
	var firstErr error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			firstErr = err
		}
	}
	if a.storage != nil {
		if err := a.storage.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
