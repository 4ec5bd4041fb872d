package brew

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
)

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type statsResponse struct {
	Totals    map[domain.Outcome]int64 `json:"totals"`
	Timestamp time.Time                `json:"timestamp"`
}

// HealthHandler responde sempre 200 enquanto o processo estiver de pé.
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeResponse(w, application.ErrorResponse(http.StatusMethodNotAllowed,
				errors.New("method not allowed")))
			return
		}
		writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
	})
}

// StatsHandler expõe os totais por Outcome. Com reader nil (estatísticas
// desligadas) responde 404.
func StatsHandler(reader domain.StatsReader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			writeResponse(w, application.ErrorResponse(http.StatusNotFound,
				errors.New("stats are disabled")))
			return
		}

		totals, err := reader.Totals(r.Context())
		if err != nil {
			writeResponse(w, application.ErrorResponse(http.StatusInternalServerError, err))
			return
		}
		if totals == nil {
			totals = make(map[domain.Outcome]int64, len(domain.Outcomes))
		}
		for _, o := range domain.Outcomes {
			if _, ok := totals[o]; !ok {
				totals[o] = 0
			}
		}

		writeJSON(w, http.StatusOK, statsResponse{Totals: totals, Timestamp: time.Now().UTC()})
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
