package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fdurupinar/bioagents/internal/config"
	"github.com/fdurupinar/bioagents/internal/logging"
	"github.com/fdurupinar/bioagents/pkg/adapters/file"
	"github.com/fdurupinar/bioagents/pkg/adapters/memory"
	"github.com/fdurupinar/bioagents/pkg/adapters/redis"
	"github.com/fdurupinar/bioagents/pkg/diagram"
	"github.com/fdurupinar/bioagents/pkg/domain"
	"github.com/fdurupinar/bioagents/pkg/observability"
	"github.com/fdurupinar/bioagents/pkg/ports"
	"github.com/fdurupinar/bioagents/pkg/session"
)

// createLogger builds the application logger from a level name.
func createLogger(level string) (*slog.Logger, error) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return logging.New(lvl), nil
}

// cacheHandle is the configured diagram cache plus its lifecycle.
type cacheHandle struct {
	cache  ports.DiagramCache
	pinger interface{ Ping(context.Context) error }
	closer io.Closer
}

// createCache returns nil for the "none" backend.
func createCache(cfg config.CacheConfig) *cacheHandle {
	switch cfg.Backend {
	case config.CacheMemory:
		return &cacheHandle{cache: memory.NewCache()}
	case config.CacheFile:
		return &cacheHandle{cache: file.NewCache(cfg.Dir)}
	case config.CacheRedis:
		c := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		return &cacheHandle{cache: c, pinger: c, closer: c}
	}
	return nil
}

// createTranslator builds the translator for the configured format,
// wrapped in the cache when one is configured.
func createTranslator(format string, cache *cacheHandle, metrics *observability.Metrics, logger *slog.Logger) (diagram.Translator, error) {
	f, err := diagram.ParseFormat(format)
	if err != nil {
		return nil, err
	}
	translator, err := diagram.NewTranslator(f)
	if err != nil {
		return nil, err
	}
	if cache == nil {
		return translator, nil
	}

	opts := []diagram.CacheOption{diagram.WithCacheLogger(logger)}
	if metrics != nil {
		opts = append(opts, diagram.WithCacheObserver(metrics.CacheLookup))
	}
	return diagram.Cached(translator, cache.cache, f, opts...), nil
}

// createSession wires a session with the standard CLI conventions.
func createSession(cfg config.Config, translator diagram.Translator, metrics *observability.Metrics, logger *slog.Logger) *session.Session {
	opts := []session.Option{
		session.WithLogger(logger),
		session.WithTranslator(translator),
		session.WithHooks(createDebugHooks(logger)),
		session.WithSpeechHandler(func(ctx context.Context, text string) {
			logger.Info("utterance", "what", text)
		}),
	}
	if metrics != nil {
		opts = append(opts, session.WithHooks(metrics.Hooks()))
	}
	return session.New(cfg.Session(), opts...)
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateChange: func(ctx context.Context, e *domain.StateEvent) {
			logger.Debug("state", "from", e.From, "to", e.To)
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			logger.Debug("dispatched", "verb", e.Verb, "kind", e.Kind, "duration", e.Duration)
		},
		OnSend: func(ctx context.Context, e *domain.SendEvent) {
			if e.Err != nil {
				logger.Debug("send failed", "kind", e.Kind, "err", e.Err)
			}
		},
	}
}

// applyOverrides copies explicitly set flag values over the file config.
func applyOverrides(cfg *config.Config, opts RunOptions) {
	if opts.Host != "" {
		cfg.Host = opts.Host
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Format != "" {
		cfg.Format = opts.Format
	}
	if opts.MetricsAddr != "" {
		cfg.MetricsAddr = opts.MetricsAddr
	}
	if opts.Cache != "" {
		cfg.Cache.Backend = opts.Cache
	}
	if opts.RelaySpoken {
		cfg.RelaySpoken = true
	}
	if opts.StartConversation {
		cfg.StartConversation = true
	}
}

func loadConfig(opts RunOptions) (config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return cfg, err
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
