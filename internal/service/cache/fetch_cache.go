// Package cache implements the keyed fetch cache: TTL expiry per key class,
// single-flight request deduplication, debounce of near-duplicate requests and
// an advisory sliding-window rate limiter around the underlying fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"IntraPull/internal/domain/models"
	drepo "IntraPull/internal/domain/repository"
	"IntraPull/internal/service/ratelimit"
	pkgcache "IntraPull/pkg/cache"
	"IntraPull/pkg/logger"
)

// Kind is a cache key class. Scan results live longer and are never debounced.
type Kind string

const (
	KindBars Kind = "bars"
	KindScan Kind = "scan"
)

// ErrTooSoon rejects a near-duplicate request inside the debounce window.
var ErrTooSoon = errors.New("fetch cache: identical request too soon")

// Config holds TTLs and rate-limit settings.
type Config struct {
	BarTTL     time.Duration `yaml:"bar_ttl"`
	ScanTTL    time.Duration `yaml:"scan_ttl"`
	Debounce   time.Duration `yaml:"debounce"`
	WindowSpan time.Duration `yaml:"window_span"`
	WindowCap  int           `yaml:"window_cap"`
}

// DefaultConfig returns the standard TTL and window settings.
func DefaultConfig() Config {
	return Config{
		BarTTL:     5 * time.Minute,
		ScanTTL:    10 * time.Minute,
		Debounce:   200 * time.Millisecond,
		WindowSpan: time.Minute,
		WindowCap:  60,
	}
}

type entry struct {
	payload  any
	kind     Kind
	storedAt time.Time
}

type call struct {
	done chan struct{}
	val  any
	err  error
}

// FetchCache is the get-or-fetch cache. Each key moves through
// absent -> in-flight -> cached -> expired -> absent; transitions happen only
// on fetch start, fetch settle and TTL sweep.
type FetchCache struct {
	mu        sync.Mutex
	entries   map[string]*entry
	inflight  map[string]*call
	lastStart map[string]time.Time

	window  *ratelimit.Window
	remote  pkgcache.Service // optional mirror, may be nil
	cfg     Config
	log     *logger.Logger
	metrics drepo.Metrics
	now     func() time.Time
}

// New creates a FetchCache. remote may be nil.
func New(cfg Config, remote pkgcache.Service, log *logger.Logger, metrics drepo.Metrics) *FetchCache {
	def := DefaultConfig()
	if cfg.BarTTL <= 0 {
		cfg.BarTTL = def.BarTTL
	}
	if cfg.ScanTTL <= 0 {
		cfg.ScanTTL = def.ScanTTL
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = def.Debounce
	}
	if cfg.WindowSpan <= 0 {
		cfg.WindowSpan = def.WindowSpan
	}
	if cfg.WindowCap <= 0 {
		cfg.WindowCap = def.WindowCap
	}
	return &FetchCache{
		entries:   make(map[string]*entry),
		inflight:  make(map[string]*call),
		lastStart: make(map[string]time.Time),
		window:    ratelimit.New(cfg.WindowSpan, cfg.WindowCap),
		remote:    remote,
		cfg:       cfg,
		log:       log,
		metrics:   metrics,
		now:       time.Now,
	}
}

// GetOrFetchBars returns the cached bar series for key, or fetches it.
// When a remote mirror is configured it is consulted on miss before the
// provider fetch, and populated write-through after a successful one.
func (c *FetchCache) GetOrFetchBars(ctx context.Context, key string, fetch func(context.Context) ([]models.Bar, error)) ([]models.Bar, error) {
	v, err := c.getOrFetch(ctx, key, KindBars, func(fctx context.Context) (any, error) {
		if c.remote != nil {
			if data, rerr := c.remote.Get(fctx, key); rerr == nil {
				var bars []models.Bar
				if jerr := json.Unmarshal(data, &bars); jerr == nil {
					return bars, nil
				}
			}
		}
		bars, ferr := fetch(fctx)
		if ferr != nil {
			return nil, ferr
		}
		if c.remote != nil {
			if data, jerr := json.Marshal(bars); jerr == nil {
				if rerr := c.remote.Set(fctx, key, data, c.cfg.BarTTL); rerr != nil {
					c.log.Warn("remote cache set failed", logger.String("key", key), logger.Error(rerr))
				}
			}
		}
		return bars, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.Bar), nil
}

// GetOrFetchScan returns the cached scan result for key, or computes it.
// Scan keys are exempt from debounce.
func (c *FetchCache) GetOrFetchScan(ctx context.Context, key string, compute func(context.Context) (*models.ScanResult, error)) (*models.ScanResult, error) {
	v, err := c.getOrFetch(ctx, key, KindScan, func(fctx context.Context) (any, error) {
		return compute(fctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.ScanResult), nil
}

func (c *FetchCache) getOrFetch(ctx context.Context, key string, kind Kind, fetch func(context.Context) (any, error)) (any, error) {
	c.mu.Lock()

	if e, ok := c.entries[key]; ok {
		if c.now().Sub(e.storedAt) <= c.ttl(e.kind) {
			c.mu.Unlock()
			c.metrics.RecordCacheHit(string(kind))
			return e.payload, nil
		}
		delete(c.entries, key)
	}

	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		return c.wait(ctx, cl)
	}

	c.metrics.RecordCacheMiss(string(kind))

	if kind != KindScan {
		if last, ok := c.lastStart[key]; ok && c.now().Sub(last) < c.cfg.Debounce {
			c.mu.Unlock()
			return nil, ErrTooSoon
		}
	}

	cl := &call{done: make(chan struct{})}
	c.inflight[key] = cl
	c.lastStart[key] = c.now()
	c.mu.Unlock()

	// The fetch outlives the initiating caller: other waiters may still be
	// attached, and a settled result should populate the cache either way.
	go c.run(context.WithoutCancel(ctx), key, kind, cl, fetch)

	return c.wait(ctx, cl)
}

func (c *FetchCache) run(ctx context.Context, key string, kind Kind, cl *call, fetch func(context.Context) (any, error)) {
	if count, over := c.window.Admit(); over {
		c.metrics.RecordRateWarning()
		c.log.Warn("fetch rate above advisory cap",
			logger.Int("window_count", count),
			logger.Int("cap", c.cfg.WindowCap),
		)
	}

	start := c.now()
	val, err := fetch(ctx)
	c.metrics.RecordLatency("fetch", c.now().Sub(start).Seconds())

	c.mu.Lock()
	if err == nil {
		c.entries[key] = &entry{payload: val, kind: kind, storedAt: c.now()}
	}
	// The in-flight marker clears on success and failure so the next call may retry.
	delete(c.inflight, key)
	c.mu.Unlock()

	cl.val, cl.err = val, err
	close(cl.done)
}

// wait attaches to an in-flight call. Abandoning a wait does not cancel the
// underlying fetch.
func (c *FetchCache) wait(ctx context.Context, cl *call) (any, error) {
	select {
	case <-cl.done:
		return cl.val, cl.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Sweep removes all expired entries and returns how many were dropped.
// Safe to call concurrently with lookups and fetches.
func (c *FetchCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl(e.kind) {
			delete(c.entries, key)
			removed++
		}
	}
	for key, last := range c.lastStart {
		if now.Sub(last) > c.cfg.Debounce {
			delete(c.lastStart, key)
		}
	}
	return removed
}

// Stats returns live entry counts by key class.
func (c *FetchCache) Stats() models.CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	var stats models.CacheStats
	now := c.now()
	for _, e := range c.entries {
		if now.Sub(e.storedAt) > c.ttl(e.kind) {
			continue
		}
		if e.kind == KindScan {
			stats.ScanResultCount++
		} else {
			stats.EntryCount++
		}
	}
	return stats
}

// InvalidateSymbol drops all bar entries whose key starts with symbol,
// used when live aggregates arrive for it.
func (c *FetchCache) InvalidateSymbol(symbol string) int {
	prefix := symbol + "|"
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if e.kind == KindBars && strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

func (c *FetchCache) ttl(kind Kind) time.Duration {
	if kind == KindScan {
		return c.cfg.ScanTTL
	}
	return c.cfg.BarTTL
}
