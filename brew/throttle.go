package brew

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
)

var errThrottled = errors.New("too many brew requests, slow down")

type ThrottleOptions struct {
	Store domain.LimiterStore
	Stats domain.StatsStore
	KeyFn KeyFunc
	// RejectStatus padrão 429.
	RejectStatus int
	// RetryAfter padrão 1s; o header é arredondado para cima em segundos.
	RetryAfter time.Duration
	// AddRateLimitHeaders expõe X-RateLimit-Key/RPS/Burst em toda resposta.
	AddRateLimitHeaders bool
}

// rateInfo é implementado por stores que conhecem a própria configuração.
type rateInfo interface {
	RPS() float64
	Burst() int
}

// Throttle aplica rate limit por cliente antes de qualquer preparo.
// Requisições bloqueadas não chegam ao contador de load shedding e recebem
// o mesmo corpo {"Error": ...} do restante do serviço.
func Throttle(opts ThrottleOptions) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc("", false)
	}

	svc := application.ThrottleService{Store: opts.Store, RetryAfter: opts.RetryAfter}
	info, _ := opts.Store.(rateInfo)
	rejected := application.ErrorResponse(opts.RejectStatus, errThrottled)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)
			if opts.AddRateLimitHeaders {
				setRateHeaders(w.Header(), key, info)
			}

			if dec := svc.Decide(domain.Key(key)); !dec.Allowed {
				throttleRejects.Inc()
				recordOutcome(r, opts.Stats, key, domain.OutcomeThrottled, opts.RejectStatus)
				w.Header().Set("Retry-After", retryAfterSeconds(dec.RetryAfter))
				writeResponse(w, rejected)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setRateHeaders(h http.Header, key string, info rateInfo) {
	h.Set("X-RateLimit-Key", key)
	if info == nil {
		return
	}
	h.Set("X-RateLimit-RPS", strconv.FormatFloat(info.RPS(), 'f', -1, 64))
	h.Set("X-RateLimit-Burst", strconv.Itoa(info.Burst()))
}

// Retry-After só aceita segundos inteiros; nunca anuncia 0.
func retryAfterSeconds(d time.Duration) string {
	return strconv.Itoa(max(1, int(math.Ceil(d.Seconds()))))
}
