package brew

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
)

type HandlerOptions struct {
	Recovery application.Recovery
	Stats    domain.StatsStore
	KeyFn    KeyFunc
	Logger   *slog.Logger
}

// Handler atende GET /brew-coffee.
//
// Coordenadas inválidas ou ausentes nunca rejeitam a requisição: geram um
// aviso e seguem como "sem localização".
func Handler(opts HandlerOptions) http.Handler {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc("", false)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			writeResponse(w, application.ErrorResponse(http.StatusMethodNotAllowed,
				fmt.Errorf("method %s not allowed", r.Method)))
			return
		}

		loc := parseCoordinates(r.URL.Query(), opts.Logger)
		resp, outcome := opts.Recovery.Handle(r.Context(), loc)

		recordOutcome(r, opts.Stats, opts.KeyFn(r), outcome, resp.StatusCode)
		writeResponse(w, resp)
	})
}

func parseCoordinates(q url.Values, logger *slog.Logger) *domain.Coordinates {
	lat, latOK := parseFloat(q, "lat")
	lon, lonOK := parseFloat(q, "lon")

	if !latOK || !lonOK {
		logger.Warn("both 'lat' and 'lon' parameters are required and must be valid numbers")
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		logger.Warn("'lat' must be between -90 and 90 and 'lon' must be between -180 and 180",
			"lat", lat, "lon", lon)
		return nil
	}
	return &domain.Coordinates{Lat: lat, Lon: lon}
}

func parseFloat(q url.Values, name string) (float64, bool) {
	v := q.Get(name)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func writeResponse(w http.ResponseWriter, resp domain.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if resp.Body != nil {
		_, _ = w.Write(resp.Body)
	}
}

// recordOutcome alimenta métricas e estatísticas. Erro do store é ignorado.
func recordOutcome(r *http.Request, stats domain.StatsStore, key string, outcome domain.Outcome, status int) {
	brewOutcomes.WithLabelValues(string(outcome)).Inc()
	if stats == nil {
		return
	}
	_ = stats.Record(r.Context(), domain.StatsEvent{
		Key:     domain.Key(key),
		Outcome: outcome,
		Status:  status,
		Method:  r.Method,
		Path:    r.URL.Path,
		At:      time.Now(),
	})
}
