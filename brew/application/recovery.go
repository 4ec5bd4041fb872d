package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"coffee-machine/brew/domain"
)

// Brewer é o contrato do motor de preparo visto pela camada de recuperação.
type Brewer interface {
	Brew(ctx context.Context, loc *domain.Coordinates) (domain.Response, error)
}

// Recovery fica acima do motor: serve o fallback embalado em
// domain.FallbackError e transforma qualquer outro erro em 500.
//
// É a única camada que registra log do fluxo de preparo.
type Recovery struct {
	Brewer Brewer
	Logger *slog.Logger
}

// Handle executa o preparo e normaliza o resultado.
// O Outcome acompanha a resposta para estatísticas e métricas.
func (r Recovery) Handle(ctx context.Context, loc *domain.Coordinates) (domain.Response, domain.Outcome) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	resp, err := r.Brewer.Brew(ctx, loc)
	if err == nil {
		return resp, outcomeOf(resp)
	}

	var fe *domain.FallbackError
	if errors.As(err, &fe) {
		logger.WarnContext(ctx, "weather service error",
			"requestID", domain.RequestID(ctx),
			"diagnostic", fe.Diagnostic,
		)
		return fe.Fallback, domain.OutcomeFallback
	}

	logger.ErrorContext(ctx, "brew failed",
		"requestID", domain.RequestID(ctx),
		"error", err,
	)
	return ErrorResponse(statusInternalError, err), domain.OutcomeFailed
}

// ErrorResponse monta a resposta no formato {"Error": "..."}.
func ErrorResponse(status int, err error) domain.Response {
	body, mErr := json.Marshal(domain.ErrorBody{
		Error: "An error occurred while processing your request: " + err.Error(),
	})
	if mErr != nil {
		body = []byte(`{"Error":"An error occurred while processing your request"}`)
	}
	return domain.Response{StatusCode: status, Body: body}
}

func outcomeOf(resp domain.Response) domain.Outcome {
	switch resp.StatusCode {
	case statusTeapot:
		return domain.OutcomeOverride
	case statusUnavailable:
		return domain.OutcomeShed
	case statusOK:
		return domain.OutcomeServed
	default:
		return domain.OutcomeFailed
	}
}
