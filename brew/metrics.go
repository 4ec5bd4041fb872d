package brew

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffee_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coffee_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coffee_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	brewOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coffee_brew_outcomes_total",
			Help: "Brew requests by outcome (served, override, shed, fallback, failed, throttled, busy)",
		},
		[]string{"outcome"},
	)

	brewSlotsInUse = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "coffee_brew_slots_in_use",
			Help: "Brew concurrency slots currently held",
		},
	)

	throttleRejects = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coffee_throttle_rejects_total",
			Help: "Total number of requests rejected by the per-client rate limit",
		},
	)

	panicRecoveries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coffee_panic_recoveries_total",
			Help: "Total number of panics recovered in HTTP handlers",
		},
	)
)

// Metrics instrumenta a rota com contagem, latência e requisições em voo.
// route é um rótulo fixo para não explodir cardinalidade com paths arbitrários.
func Metrics(route string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			httpRequestsInFlight.Inc()
			defer httpRequestsInFlight.Dec()

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.Status())).Inc()
			httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		})
	}
}
