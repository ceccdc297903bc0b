package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain repository.Metrics using Prometheus.
type Recorder struct {
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	fetchesTotal *prometheus.CounterVec
	barsDropped  *prometheus.CounterVec
	rateWarnings prometheus.Counter
	errorsTotal  *prometheus.CounterVec
	latency      *prometheus.HistogramVec
	lastPrice    *prometheus.GaugeVec
}

// New creates a Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		cacheHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intrapull_cache_hits_total",
				Help: "Cache hits by key class",
			},
			[]string{"kind"},
		),
		cacheMisses: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intrapull_cache_misses_total",
				Help: "Cache misses by key class",
			},
			[]string{"kind"},
		),
		fetchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intrapull_provider_fetches_total",
				Help: "Provider fetches by interval",
			},
			[]string{"interval"},
		),
		barsDropped: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intrapull_bars_dropped_total",
				Help: "Bars dropped during cleaning, by reason",
			},
			[]string{"reason"},
		),
		rateWarnings: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "intrapull_rate_warnings_total",
				Help: "Advisory rate-limit cap breaches",
			},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intrapull_errors_total",
				Help: "Errors by type",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "intrapull_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		lastPrice: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "intrapull_last_price",
				Help: "Last seen price for a symbol",
			},
			[]string{"symbol"},
		),
	}
}

func (r *Recorder) RecordCacheHit(kind string) {
	r.cacheHits.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordCacheMiss(kind string) {
	r.cacheMisses.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordFetch(interval string) {
	r.fetchesTotal.WithLabelValues(interval).Inc()
}

func (r *Recorder) RecordDroppedBars(reason string, n int) {
	if n > 0 {
		r.barsDropped.WithLabelValues(reason).Add(float64(n))
	}
}

func (r *Recorder) RecordRateWarning() {
	r.rateWarnings.Inc()
}

func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}
