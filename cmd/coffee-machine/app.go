package main

import (
	"log/slog"
	"net/http"

	"coffee-machine/brew"
	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
	"coffee-machine/brew/infra"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type app struct {
	handler http.Handler
	limiter *infra.TokenBucketStore
}

// newApp monta as dependências e as rotas. rdb pode ser nil quando nenhum
// backend redis foi configurado.
func newApp(cfg config, rdb *redis.Client, logger *slog.Logger) *app {
	var counter domain.Counter = infra.NewMemoryCounter(0)
	if cfg.counterBackend == backendRedis {
		counter = infra.NewRedisCounter(rdb, infra.WithCounterKey(cfg.counterKey))
	}

	var (
		stats  domain.StatsStore
		reader domain.StatsReader
	)
	switch cfg.statsBackend {
	case backendMemory:
		s := infra.NewMemoryStatsStore(infra.WithTrackKeys(cfg.statsTrackKeys))
		stats, reader = s, s
	case backendRedis:
		s := infra.NewRedisStatsStore(
			rdb,
			infra.WithStatsPrefix(cfg.statsPrefix),
			infra.WithStatsTTL(cfg.statsTTL),
			infra.WithStatsBucket(cfg.statsBucket),
			infra.WithStatsTrackKeys(cfg.statsTrackKeys),
		)
		stats, reader = s, s
	}

	engine := application.BrewService{
		Clock:     infra.SystemClock{},
		Counter:   counter,
		Weather:   infra.NewOpenWeatherProvider(cfg.weatherURL, cfg.weatherKey, cfg.weatherTimeout),
		ShedEvery: cfg.shedEvery,
	}
	recovery := application.Recovery{Brewer: engine, Logger: logger}

	keyFn := brew.DefaultKeyFunc(cfg.keyHeader, cfg.trustXFF)
	limiter := infra.NewTokenBucketStore(cfg.rateRPS, cfg.rateBurst)

	h := brew.Handler(brew.HandlerOptions{
		Recovery: recovery,
		Stats:    stats,
		KeyFn:    keyFn,
		Logger:   logger,
	})
	h = brew.Concurrency(brew.ConcurrencyOptions{
		Max:            cfg.concurrencyMax,
		RejectStatus:   http.StatusServiceUnavailable,
		AcquireTimeout: cfg.concurrencyTimeout,
		Stats:          stats,
		KeyFn:          keyFn,
	})(h)
	if cfg.rateEnabled {
		h = brew.Throttle(brew.ThrottleOptions{
			Store:               limiter,
			Stats:               stats,
			KeyFn:               keyFn,
			RejectStatus:        http.StatusTooManyRequests,
			RetryAfter:          cfg.retryAfter,
			AddRateLimitHeaders: cfg.addHeaders,
		})(h)
	}
	h = brew.Recoverer(logger)(h)
	h = brew.RequestID(h)
	h = brew.Metrics("/brew-coffee")(h)

	mux := http.NewServeMux()
	mux.Handle("/brew-coffee", h)
	mux.Handle("/health", brew.HealthHandler())
	mux.Handle("/stats", brew.StatsHandler(reader))
	mux.Handle("/metrics", promhttp.Handler())

	return &app{handler: mux, limiter: limiter}
}
