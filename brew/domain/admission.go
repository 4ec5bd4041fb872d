package domain

import (
	"context"
	"time"
)

// Controle de admissão na frente do motor de preparo. Não confundir com o
// load shedding do BrewService: aquele é determinístico (toda N-ésima
// requisição admitida), este depende do cliente e da carga do momento.

// Key identifica um cliente (IP, header de API key...).
type Key string

// Limiter diz se o cliente pode preparar agora. A infra usa golang.org/x/time/rate.
type Limiter interface {
	Allow() bool
}

// LimiterStore entrega o Limiter de cada cliente; nil significa sem limite.
type LimiterStore interface {
	Get(Key) Limiter
}

// Admission é o veredito do rate limit para uma requisição.
type Admission struct {
	Allowed bool
	// RetryAfter vai no header Retry-After quando bloqueado; 0 sem recomendação.
	RetryAfter time.Duration
}

// SlotPool limita os preparos em andamento. Acquire bloqueia até obter uma
// vaga ou o ctx encerrar; release deve ser chamado exatamente uma vez.
type SlotPool interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
