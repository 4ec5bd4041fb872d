package brew

import (
	"net/http"

	"coffee-machine/brew/domain"

	"github.com/google/uuid"
)

const headerRequestID = "X-Request-Id"

// RequestID aceita um X-Request-Id (UUID) do cliente ou gera um novo.
// O id vai para o contexto (domain.RequestID) e para o header de resposta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}

		w.Header().Set(headerRequestID, id)
		next.ServeHTTP(w, r.WithContext(domain.WithRequestID(r.Context(), id)))
	})
}
