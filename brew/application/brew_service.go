package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"coffee-machine/brew/domain"
)

// DefaultShedEvery faz toda 5ª requisição que passa pelo contador receber 503.
const DefaultShedEvery = 5

// BrewService é o motor de decisão do preparo.
//
// A ordem das regras é contrato: override de calendário, depois contador,
// depois clima. Requisições de 1º de abril não consomem posição no contador.
type BrewService struct {
	Clock     domain.Clock
	Counter   domain.Counter
	Weather   domain.WeatherProvider
	ShedEvery int64
}

// Brew retorna a resposta do preparo.
//
// Se a consulta de clima falhar, o erro retornado é sempre um
// *domain.FallbackError com a resposta substituta já montada.
// Outros erros (ex: contador indisponível) voltam apenas embrulhados.
func (s BrewService) Brew(ctx context.Context, loc *domain.Coordinates) (domain.Response, error) {
	if s.ShedEvery <= 0 {
		s.ShedEvery = DefaultShedEvery
	}

	now := s.Clock.Now()

	if now.Month() == time.April && now.Day() == 1 {
		return domain.Response{StatusCode: statusTeapot}, nil
	}

	n, err := s.Counter.Next(ctx)
	if err != nil {
		return domain.Response{}, fmt.Errorf("request counter: %w", err)
	}
	if n%s.ShedEvery == 0 {
		return domain.Response{StatusCode: statusUnavailable}, nil
	}

	prepared := now.Format(domain.PreparedLayout)

	// única suspensão: nenhuma trava é mantida durante a consulta
	m, err := s.Weather.Current(ctx, loc)
	if err != nil {
		fallback, encErr := brewResponse(domain.MessageHot, prepared)
		if encErr != nil {
			return domain.Response{}, encErr
		}
		return domain.Response{}, &domain.FallbackError{
			Fallback:   fallback,
			Diagnostic: err.Error(),
			Err:        err,
		}
	}

	msg := domain.MessageHot
	if m.Temperature > domain.IcedThreshold {
		msg = domain.MessageIced
	}
	return brewResponse(msg, prepared)
}

func brewResponse(msg, prepared string) (domain.Response, error) {
	body, err := json.Marshal(domain.BrewBody{Message: msg, Prepared: prepared})
	if err != nil {
		return domain.Response{}, fmt.Errorf("encode brew body: %w", err)
	}
	return domain.Response{StatusCode: statusOK, Body: body}, nil
}

// códigos usados pelo motor; mantidos aqui para não importar net/http
const (
	statusOK            = 200
	statusTeapot        = 418
	statusInternalError = 500
	statusUnavailable   = 503
)
