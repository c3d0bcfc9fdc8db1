package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	drepo "QuotePulse/internal/domain/repository"
	"QuotePulse/internal/usecase"
	"QuotePulse/pkg/cache"
	pkgch "QuotePulse/pkg/clickhouse"
	"QuotePulse/pkg/config"
	xhttp "QuotePulse/pkg/http"
	applogger "QuotePulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	stream     *usecase.QuoteStream
	publisher  drepo.SnapshotPublisher
	chClient   *pkgch.Client
	quoteCache cache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	stream *usecase.QuoteStream,
	publisher drepo.SnapshotPublisher,
	chClient *pkgch.Client,
	quoteCache cache.Service,
) *App {
	return &App{
		cfg:        cfg,
		logger:     logger,
		handler:    handler,
		stream:     stream,
		publisher:  publisher,
		chClient:   chClient,
		quoteCache: quoteCache,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsPath(a.cfg.Metrics.Path),
	)

	if a.stream != nil {
		a.stream.Start(ctx)
		a.logger.Info("quote stream started",
			applogger.Duration("interval_ms", a.cfg.Stream.Interval),
			applogger.Bool("kafka", a.publisher != nil),
		)
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.stream != nil {
		a.stream.Stop()
	}

	timeout := a.cfg.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}
	if a.quoteCache != nil {
		if err := a.quoteCache.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
