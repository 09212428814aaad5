package cli

import (
	"context"
	"errors"

	httpAdapter "github.com/fdurupinar/bioagents/internal/adapters/http"
	"github.com/fdurupinar/bioagents/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// RunOptions contains the flag values of the run command.
// Zero values leave the config file (or default) setting untouched.
type RunOptions struct {
	ConfigPath        string
	Host              string
	Port              int
	LogLevel          string
	Format            string
	MetricsAddr       string
	Cache             string
	RelaySpoken       bool
	StartConversation bool
}

// Execute connects to the bus and runs the bridge until ctx is cancelled
// or the connection fails. The ops server, when configured, runs alongside.
func Execute(ctx context.Context, opts RunOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger, err := createLogger(cfg.LogLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	cache := createCache(cfg.Cache)
	if cache != nil && cache.closer != nil {
		defer cache.closer.Close()
	}

	translator, err := createTranslator(cfg.Format, cache, metrics, logger)
	if err != nil {
		return err
	}

	s := createSession(cfg, translator, metrics, logger)
	if err := s.Connect(ctx); err != nil {
		return err
	}
	logger.Info("bridge listening", "session_id", s.ID(), "format", cfg.Format, "cache", cfg.Cache.Backend)

	g, gctx := errgroup.WithContext(ctx)

	// The ops server stops with the session, whichever way it ends.
	opsCtx, stopOps := context.WithCancel(gctx)
	defer stopOps()

	g.Go(func() error {
		defer stopOps()
		return s.Run(gctx)
	})

	if cfg.MetricsAddr != "" {
		server := &httpAdapter.Server{
			Session:  s,
			Gatherer: reg,
			Logger:   logger,
		}
		if cache != nil && cache.pinger != nil {
			server.Cache = cache.pinger
		}
		handler := httpAdapter.NewHandler(server)
		g.Go(func() error {
			return httpAdapter.ListenAndServe(opsCtx, cfg.MetricsAddr, handler, logger)
		})
	}

	err = g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
