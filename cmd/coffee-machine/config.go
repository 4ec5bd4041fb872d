package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

type config struct {
	listenAddr      string
	shutdownTimeout time.Duration
	logLevel        slog.Level

	weatherURL     string
	weatherKey     string
	weatherTimeout time.Duration

	shedEvery      int64
	counterBackend string
	counterKey     string

	redisAddr     string
	redisPassword string
	redisDB       int

	rateEnabled bool
	rateRPS     float64
	rateBurst   int
	keyHeader   string
	trustXFF    bool
	retryAfter  time.Duration
	addHeaders  bool

	concurrencyMax     int
	concurrencyTimeout time.Duration

	statsBackend   string
	statsPrefix    string
	statsTTL       time.Duration
	statsBucket    string
	statsTrackKeys bool
}

const (
	backendNone   = "none"
	backendMemory = "memory"
	backendRedis  = "redis"
)

func readConfig() (config, error) {
	cfg := config{}
	cfg.listenAddr = getenvDefault("LISTEN_ADDR", ":8080")
	cfg.shutdownTimeout = getenvDurationDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	cfg.logLevel = slog.LevelInfo
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		if err := cfg.logLevel.UnmarshalText([]byte(v)); err != nil {
			return config{}, fmt.Errorf("LOG_LEVEL: %w", err)
		}
	}

	cfg.weatherURL = getenvDefault("WEATHER_API_URL", "https://api.openweathermap.org/data/2.5/weather")
	cfg.weatherKey = os.Getenv("WEATHER_API_KEY")
	cfg.weatherTimeout = getenvDurationDefault("WEATHER_TIMEOUT", 5*time.Second)

	cfg.shedEvery = int64(getenvIntDefault("SHED_EVERY", 5))
	cfg.counterBackend = strings.ToLower(getenvDefault("COUNTER_BACKEND", backendMemory))
	cfg.counterKey = getenvDefault("COUNTER_KEY", "coffee:requests")

	cfg.redisAddr = os.Getenv("REDIS_ADDR")
	cfg.redisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.redisDB = getenvIntDefault("REDIS_DB", 0)

	cfg.rateEnabled = getenvBoolDefault("RATE_ENABLED", false)
	cfg.rateRPS = getenvFloatDefault("RATE_RPS", 10)
	// com RPS muito baixo (ex: 0.02) um burst de 20 esconde o limite;
	// nesse caso o padrão cai para 1
	if burst, ok := getenvInt("RATE_BURST"); ok {
		cfg.rateBurst = burst
	} else {
		cfg.rateBurst = 20
		if getenvIsSet("RATE_RPS") && cfg.rateRPS > 0 && cfg.rateRPS < 1 {
			cfg.rateBurst = 1
		}
	}
	cfg.keyHeader = os.Getenv("RATE_KEY_HEADER")
	cfg.trustXFF = getenvBoolDefault("TRUST_XFF", false)
	cfg.retryAfter = getenvDurationDefault("RETRY_AFTER", 1*time.Second)
	cfg.addHeaders = getenvBoolDefault("ADD_RATELIMIT_HEADERS", false)

	cfg.concurrencyMax = getenvIntDefault("CONCURRENCY_MAX", 100)
	cfg.concurrencyTimeout = getenvDurationDefault("CONCURRENCY_TIMEOUT", 0)

	cfg.statsBackend = strings.ToLower(getenvDefault("STATS_BACKEND", backendMemory))
	cfg.statsPrefix = getenvDefault("STATS_PREFIX", "coffee:stats")
	cfg.statsTTL = getenvDurationDefault("STATS_TTL", 24*time.Hour)
	cfg.statsBucket = getenvDefault("STATS_BUCKET", "minute")
	cfg.statsTrackKeys = getenvBoolDefault("STATS_TRACK_KEYS", false)

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func (c config) validate() error {
	if c.shedEvery <= 0 {
		return errors.New("SHED_EVERY must be > 0")
	}
	switch c.counterBackend {
	case backendMemory, backendRedis:
	default:
		return fmt.Errorf("COUNTER_BACKEND must be memory or redis, got %q", c.counterBackend)
	}
	switch c.statsBackend {
	case backendNone, backendMemory, backendRedis:
	default:
		return fmt.Errorf("STATS_BACKEND must be none, memory or redis, got %q", c.statsBackend)
	}
	if c.needsRedis() && strings.TrimSpace(c.redisAddr) == "" {
		return errors.New("REDIS_ADDR is required when COUNTER_BACKEND or STATS_BACKEND is redis")
	}
	if strings.TrimSpace(c.weatherURL) == "" {
		return errors.New("WEATHER_API_URL is required")
	}
	if c.rateEnabled && c.rateRPS <= 0 {
		return errors.New("RATE_RPS must be > 0")
	}
	if c.rateEnabled && c.rateBurst <= 0 {
		return errors.New("RATE_BURST must be > 0")
	}
	if c.concurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return nil
}

func (c config) needsRedis() bool {
	return c.counterBackend == backendRedis || c.statsBackend == backendRedis
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvIntDefault(k string, def int) int {
	if i, ok := getenvInt(k); ok {
		return i
	}
	return def
}

func getenvInt(k string) (int, bool) {
	v, ok := os.LookupEnv(k)
	if !ok || v == "" {
		return 0, false
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return i, true
}

func getenvIsSet(k string) bool {
	v, ok := os.LookupEnv(k)
	return ok && v != ""
}

func getenvFloatDefault(k string, def float64) float64 {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBoolDefault(k string, def bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDurationDefault(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
