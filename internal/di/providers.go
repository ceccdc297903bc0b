// Package di assembles the application graph for Wire.
package di

import (
	"context"
	"fmt"
	"time"

	"IntraPull/internal/bars"
	"IntraPull/internal/calendar"
	drepo "IntraPull/internal/domain/repository"
	"IntraPull/internal/handler/api"
	internalrepo "IntraPull/internal/repository"
	fcache "IntraPull/internal/service/cache"
	"IntraPull/internal/service/polygon"
	"IntraPull/internal/usecase"
	pkgcache "IntraPull/pkg/cache"
	pkgch "IntraPull/pkg/clickhouse"
	"IntraPull/pkg/config"
	xhttp "IntraPull/pkg/http"
	pkgkafka "IntraPull/pkg/kafka"
	"IntraPull/pkg/logger"
	"IntraPull/pkg/metrics"
	"IntraPull/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCalendar creates the trading calendar.
func ProvideCalendar() (*calendar.Calendar, error) {
	return calendar.New()
}

// ProvideRemoteCache creates the optional Redis mirror. Returns nil when
// Redis is not enabled; the fetch cache runs in-memory only.
func ProvideRemoteCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, nil
	}
	remote, err := pkgcache.NewRedis(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return remote, nil
}

// ProvideFetchCache creates the core fetch cache.
func ProvideFetchCache(cfg *config.Config, remote pkgcache.Service, log *logger.Logger, m drepo.Metrics) *fcache.FetchCache {
	return fcache.New(fcache.Config{
		BarTTL:     cfg.Cache.BarTTL,
		ScanTTL:    cfg.Cache.ScanTTL,
		Debounce:   cfg.Cache.Debounce,
		WindowSpan: cfg.Cache.WindowSpan,
		WindowCap:  cfg.Cache.WindowCap,
	}, remote, log, m)
}

// ProvideProvider creates the market-data REST client.
func ProvideProvider(cfg *config.Config) drepo.Provider {
	return polygon.NewClient(cfg.Provider.APIKey, cfg.Provider.BaseURL, cfg.Provider.Timeout)
}

// ProvideCleaner creates the bar cleaner.
func ProvideCleaner(cfg *config.Config) *bars.Cleaner {
	return bars.NewCleaner(bars.CleanerConfig{
		SpikeFactor:  cfg.Cleaning.SpikeFactor,
		VolumeFactor: cfg.Cleaning.VolumeFactor,
	})
}

// ProvideSession creates the session window config.
func ProvideSession(cfg *config.Config) bars.SessionConfig {
	return bars.SessionConfig{
		OpenHour:  cfg.Session.OpenHour,
		CloseHour: cfg.Session.CloseHour,
	}
}

// ProvideArchiver creates the archive backend per config, or nil for "none".
func ProvideArchiver(cfg *config.Config, log *logger.Logger, m drepo.Metrics) (*usecase.Archiver, error) {
	switch cfg.Archive.Backend {
	case "kafka":
		producer, err := pkgkafka.NewProducer(
			pkgkafka.WithBrokers(cfg.Archive.Kafka.Brokers),
			pkgkafka.WithCompression(cfg.Archive.Kafka.Compression),
			pkgkafka.WithRequiredAcks(cfg.Archive.Kafka.RequiredAcks),
			pkgkafka.WithBatchSize(cfg.Archive.Kafka.BatchSize),
			pkgkafka.WithBatchTimeout(cfg.Archive.Kafka.Linger),
			pkgkafka.WithWriteTimeout(cfg.Archive.Kafka.WriteTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("kafka producer: %w", err)
		}
		pub := internalrepo.NewKafkaBarPublisher(producer, cfg.Archive.Kafka.Topic)
		return usecase.NewArchiver(pub, nil, log, m), nil

	case "clickhouse":
		client, err := pkgch.NewClient(
			pkgch.WithHost(cfg.Archive.ClickHouse.Host),
			pkgch.WithPort(cfg.Archive.ClickHouse.Port),
			pkgch.WithDatabase(cfg.Archive.ClickHouse.Database),
			pkgch.WithCredentials(cfg.Archive.ClickHouse.User, cfg.Archive.ClickHouse.Password),
			pkgch.WithTimeouts(cfg.Archive.ClickHouse.DialTimeout, cfg.Archive.ClickHouse.ReadTimeout),
		)
		if err != nil {
			return nil, fmt.Errorf("clickhouse client: %w", err)
		}

		table := cfg.Archive.ClickHouse.Database + "." + cfg.Archive.ClickHouse.Table
		store := internalrepo.NewClickHouseBarStore(client.DB(), table)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.InitSchema(ctx, store.Schema(cfg.Archive.ClickHouse.Database)); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
		return usecase.NewArchiver(nil, store, log, m), nil

	default:
		return nil, nil
	}
}

// ProvideSeriesUseCase creates the series pipeline.
func ProvideSeriesUseCase(
	cal *calendar.Calendar,
	cache *fcache.FetchCache,
	provider drepo.Provider,
	cleaner *bars.Cleaner,
	session bars.SessionConfig,
	archiver *usecase.Archiver,
	m drepo.Metrics,
	log *logger.Logger,
) *usecase.SeriesUseCase {
	return usecase.NewSeriesUseCase(cal, cache, provider, cleaner, session, archiver, m, log)
}

// ProvideScanUseCase creates the watchlist scan runner.
func ProvideScanUseCase(series *usecase.SeriesUseCase, cache *fcache.FetchCache, cfg *config.Config, log *logger.Logger) *usecase.ScanUseCase {
	return usecase.NewScanUseCase(series, cache, cfg.Symbols, log)
}

// ProvideLiveCollector creates the live-stream consumer, or nil when the
// stream is disabled.
func ProvideLiveCollector(cfg *config.Config, cache *fcache.FetchCache, m drepo.Metrics, log *logger.Logger) *usecase.LiveCollector {
	if !cfg.Provider.Stream || cfg.Provider.WebSocketURL == "" {
		return nil
	}
	stream := polygon.NewStream(cfg.Provider.APIKey, cfg.Provider.WebSocketURL)
	return usecase.NewLiveCollector(stream, cache, cfg.Symbols, m, log)
}

// ProvideHandler creates the HTTP API handler.
func ProvideHandler(series *usecase.SeriesUseCase, scan *usecase.ScanUseCase, log *logger.Logger) xhttp.Handler {
	return api.NewSeriesHandler(series, scan, log)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	cache *fcache.FetchCache,
	remote pkgcache.Service,
	live *usecase.LiveCollector,
	archiver *usecase.Archiver,
	log *logger.Logger,
) *server.App {
	return server.New(cfg, handler, cache, remote, live, archiver, log)
}
