// Package server owns the application lifecycle: HTTP serving, the optional
// live stream consumer, the periodic cache sweep and graceful shutdown.
package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	fcache "IntraPull/internal/service/cache"
	"IntraPull/internal/usecase"
	pkgcache "IntraPull/pkg/cache"
	"IntraPull/pkg/config"
	xhttp "IntraPull/pkg/http"
	"IntraPull/pkg/logger"
)

const defaultSweepInterval = time.Minute

// App encapsulates the application lifecycle.
type App struct {
	cfg      *config.Config
	handler  xhttp.Handler
	cache    *fcache.FetchCache
	remote   pkgcache.Service       // may be nil
	live     *usecase.LiveCollector // may be nil
	archiver *usecase.Archiver      // may be nil
	log      *logger.Logger

	httpServer *xhttp.Server
}

// New creates an App. remote, live and archiver are optional.
func New(
	cfg *config.Config,
	handler xhttp.Handler,
	cache *fcache.FetchCache,
	remote pkgcache.Service,
	live *usecase.LiveCollector,
	archiver *usecase.Archiver,
	log *logger.Logger,
) *App {
	return &App{
		cfg:      cfg,
		handler:  handler,
		cache:    cache,
		remote:   remote,
		live:     live,
		archiver: archiver,
		log:      log,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	)
	if err := a.httpServer.Start(); err != nil {
		return err
	}
	a.log.Info("http server started", logger.Int("port", a.cfg.Server.Port))

	if a.live != nil {
		go a.live.Run(ctx)
		a.log.Info("live collector started", logger.Strings("symbols", a.cfg.Symbols))
	}

	go a.sweepLoop(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	return a.shutdown()
}

// sweepLoop evicts expired cache entries on a fixed interval.
func (a *App) sweepLoop(ctx context.Context) {
	interval := a.cfg.Cache.SweepInterval
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := a.cache.Sweep(); removed > 0 {
				a.log.Debug("cache sweep", logger.Int("removed", removed))
			}
		}
	}
}

func (a *App) shutdown() error {
	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var firstErr error
	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error("http shutdown failed", logger.Error(err))
		firstErr = err
	}
	if a.archiver != nil {
		if err := a.archiver.Close(); err != nil {
			a.log.Error("archiver close failed", logger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	if a.remote != nil {
		if err := a.remote.Close(); err != nil {
			a.log.Error("remote cache close failed", logger.Error(err))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	a.log.Info("shutdown complete")
	return firstErr
}
