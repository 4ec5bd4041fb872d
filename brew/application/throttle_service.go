package application

import (
	"time"

	"coffee-machine/brew/domain"
)

const defaultRetryAfter = time.Second

// ThrottleService aplica o rate limit por cliente. Não conhece HTTP; quem
// traduz a decisão em status e headers é o middleware.
type ThrottleService struct {
	Store      domain.LimiterStore
	RetryAfter time.Duration
}

func (s ThrottleService) Decide(key domain.Key) domain.Admission {
	var lim domain.Limiter
	if s.Store != nil {
		lim = s.Store.Get(key)
	}
	if lim == nil || lim.Allow() {
		return domain.Admission{Allowed: true}
	}

	retry := s.RetryAfter
	if retry <= 0 {
		retry = defaultRetryAfter
	}
	return domain.Admission{RetryAfter: retry}
}
