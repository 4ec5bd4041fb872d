package brew

import (
	"fmt"
	"log/slog"
	"net/http"

	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
)

// Recoverer converte pânicos em 500 com o mesmo corpo {"Error": ...}.
func Recoverer(logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}
				panicRecoveries.Inc()

				err, ok := v.(error)
				if !ok {
					err = fmt.Errorf("%v", v)
				}
				logger.Error("panic recovered",
					"error", err,
					"requestID", domain.RequestID(r.Context()),
					"path", r.URL.Path,
					"method", r.Method,
				)
				writeResponse(w, application.ErrorResponse(http.StatusInternalServerError, err))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
