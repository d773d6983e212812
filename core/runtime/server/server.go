package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/smartbridge/smartbridge/core/config"
	"github.com/smartbridge/smartbridge/core/infrastructure/di"
	httptransport "github.com/smartbridge/smartbridge/core/infrastructure/transport/http"
	"github.com/smartbridge/smartbridge/core/infrastructure/transport/http/middleware"
	"github.com/smartbridge/smartbridge/core/logger"
	"github.com/smartbridge/smartbridge/core/observability"
)

const shutdownTimeout = 10 * time.Second

// Runtime represents the Smart Bridge server
type Runtime struct {
	config    *config.Config
	container *di.Container
	server    *httptransport.Server
	limiter   middleware.RateLimiter
	providers *observability.Providers
	version   string
	log       *logger.Logger
}

// NewRuntime builds the dependency container and routes for cfg
func NewRuntime(ctx context.Context, cfg *config.Config, opts ...RuntimeOption) (*Runtime, error) {
	r := &Runtime{
		config:  cfg,
		version: "dev",
		log:     logger.New("runtime"),
	}
	for _, opt := range opts {
		opt(r)
	}

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r.container = container

	if r.limiter == nil && cfg.RateLimit.Enabled {
		r.limiter, err = newRateLimiter(cfg.RateLimit)
		if err != nil {
			_ = container.Close()
			return nil, r.log.Errorf("failed to configure rate limiter: %w", err)
		}
	}

	r.server = httptransport.NewServer(cfg.Server)
	httptransport.RegisterRoutes(r.server.Router(), httptransport.Dependencies{
		Queries:   container.QueryService,
		Databases: container.DatabaseService,
		History:   container.History,
		Limiter:   r.limiter,
		RateLimit: cfg.RateLimit,
		BaseURL:   fmt.Sprintf("http://localhost:%s", r.server.Port()),
	})
	return r, nil
}

func newRateLimiter(cfg config.RateLimitConfig) (middleware.RateLimiter, error) {
	if cfg.RedisURL == "" {
		return middleware.NewLocalRateLimiter(), nil
	}
	return middleware.NewRedisRateLimiterFromURL(cfg.RedisURL)
}

// Container exposes the wired services
func (r *Runtime) Container() *di.Container {
	return r.container
}

// Addr returns the bound listen address after StartAsync
func (r *Runtime) Addr() string {
	return r.server.Addr()
}

// Start starts the runtime server and blocks until SIGTERM/SIGINT
func (r *Runtime) Start() error {
	if err := r.StartAsync(); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return r.Stop()
}

// StartAsync starts telemetry and the HTTP server without blocking
func (r *Runtime) StartAsync() error {
	providers, err := observability.Setup(context.Background(), r.version)
	if err != nil {
		r.log.Warnf("Telemetry disabled: %v", err)
	} else {
		r.providers = providers
	}

	if err := r.server.StartAsync(); err != nil {
		return r.log.Errorf("failed to start HTTP server: %w", err)
	}

	status := r.container.DatabaseService.Status()
	r.log.Infof("Serving '%s' (%s)", status.CurrentDB, status.Dialect)
	if !status.LLMConfigured {
		r.log.Warnf("No %s API key configured; questions will fail until one is set", r.config.LLM.Provider)
	}
	return nil
}

// ReloadConfig swaps the translation gateway for the model settings of cfg.
// The database and HTTP server keep running.
func (r *Runtime) ReloadConfig(cfg *config.Config) error {
	gateway, err := di.NewTranslator(cfg.LLM)
	if err != nil {
		return r.log.Errorf("failed to reload model settings: %w", err)
	}
	r.container.Translator.Swap(gateway)
	r.config.LLM = cfg.LLM
	r.log.Infof("Model settings reloaded (%s, %s)", cfg.LLM.Provider, cfg.LLM.Model)
	return nil
}

// Stop shuts down the HTTP server and telemetry, then closes the database
func (r *Runtime) Stop() error {
	r.log.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.server.Stop(gctx)
	})
	if r.providers != nil {
		g.Go(func() error {
			return r.providers.Shutdown(gctx)
		})
	}
	if closer, ok := r.limiter.(io.Closer); ok {
		g.Go(closer.Close)
	}
	stopErr := g.Wait()

	if err := r.container.Close(); err != nil {
		r.log.Warnf("Errors closing database: %v", err)
	}

	r.log.Debugf("Shutdown complete")
	return stopErr
}
