package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TokenPulse/internal/handler/api"
	mid "TokenPulse/internal/middleware"
	"TokenPulse/internal/usecase"
	pkgch "TokenPulse/pkg/clickhouse"
	"TokenPulse/pkg/config"
	xhttp "TokenPulse/pkg/http"
	pkgkafka "TokenPulse/pkg/kafka"
	applogger "TokenPulse/pkg/logger"
	"TokenPulse/pkg/queue"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	handler    *api.TokensEchoHandler
	consumer   *pkgkafka.Consumer
	ah         *usecase.AlertsHandler
	chClient   *pkgch.Client
	queue      *queue.RedisQueue
	scheduler  *usecase.RescanScheduler
	pipe       *mid.AnalysisPipeline
	batcher    *usecase.AnalysisBatcher
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	handler *api.TokensEchoHandler,
	consumer *pkgkafka.Consumer,
	ah *usecase.AlertsHandler,
	chClient *pkgch.Client,
	q *queue.RedisQueue,
	scheduler *usecase.RescanScheduler,
	pipe *mid.AnalysisPipeline,
	batcher *usecase.AnalysisBatcher,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		handler:   handler,
		consumer:  consumer,
		ah:        ah,
		chClient:  chClient,
		queue:     q,
		scheduler: scheduler,
		pipe:      pipe,
		batcher:   batcher,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start the persistence path before anything that produces analyses
	if a.batcher != nil {
		a.batcher.Start(ctx)
	}
	if a.pipe != nil {
		a.pipe.Start(ctx)
	}

	// Start rescan queue workers and the scheduler that feeds them
	if a.queue != nil {
		if err := a.queue.Start(); err != nil {
			a.log.Error("rescan queue start error", applogger.Error(err))
			return err
		}
		a.log.Info("rescan queue started",
			applogger.Int("workers", a.cfg.Analyzer.Rescan.Workers))
	}
	if a.scheduler != nil {
		go a.scheduler.Run(ctx)
		a.log.Info("rescan scheduler started",
			applogger.String("interval", a.cfg.Analyzer.Rescan.Interval.String()))
	}

	// Start alerts consumer if configured
	if a.consumer != nil && a.ah != nil {
		a.consumer.RegisterHandler(a.ah)
		go func() {
			if err := a.consumer.Start(); err != nil {
				a.log.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		a.log.Info("kafka consumer started", applogger.String("topic", a.ah.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("api ready", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown()
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.queue != nil {
		if err := a.queue.Stop(shutdownCtx); err != nil {
			a.log.Warn("rescan queue stop error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(shutdownCtx); err != nil {
			a.log.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	if a.pipe != nil {
		a.pipe.Stop()
	}
	if a.batcher != nil {
		if err := a.batcher.Close(); err != nil {
			a.log.Warn("batcher flush error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
