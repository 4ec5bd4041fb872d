package brew

import (
	"net/http"
	"time"

	"coffee-machine/brew/application"
	"coffee-machine/brew/domain"
	"coffee-machine/brew/infra"
)

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	Stats          domain.StatsStore
	KeyFn          KeyFunc
}

// Concurrency limita os preparos simultâneos. Sem vaga, responde RejectStatus
// (503 por padrão) sem passar pelo motor de preparo.
func Concurrency(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	if opts.Max <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc("", false)
	}

	pool := infra.NewSlotPool(opts.Max)
	svc := application.ConcurrencyService{
		Pool:           pool,
		AcquireTimeout: opts.AcquireTimeout,
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, ok := svc.Acquire(r.Context())
			if !ok {
				recordOutcome(r, opts.Stats, opts.KeyFn(r), domain.OutcomeBusy, opts.RejectStatus)
				// sem corpo, como o 503 do load shedding
				writeResponse(w, domain.Response{StatusCode: opts.RejectStatus})
				return
			}
			brewSlotsInUse.Set(float64(pool.InUse()))
			defer func() {
				release()
				brewSlotsInUse.Set(float64(pool.InUse()))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
