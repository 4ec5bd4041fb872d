package application

import (
	"context"
	"time"

	"coffee-machine/brew/domain"
)

func noRelease() {}

// ConcurrencyService segura uma vaga durante todo o preparo, consulta de
// clima incluída. Sem Pool não há limite.
type ConcurrencyService struct {
	Pool domain.SlotPool
	// AcquireTimeout <= 0 espera pela vaga enquanto o ctx da requisição viver.
	AcquireTimeout time.Duration
}

func (s ConcurrencyService) Acquire(ctx context.Context) (release func(), ok bool) {
	if s.Pool == nil {
		return noRelease, true
	}
	if s.AcquireTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.AcquireTimeout)
		defer cancel()
	}
	return s.Pool.Acquire(ctx)
}
