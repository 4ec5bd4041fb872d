package domain

// Outcome classifica como uma requisição terminou.
// É usado em estatísticas e métricas; nunca vai para o corpo da resposta.
type Outcome string

const (
	OutcomeServed    Outcome = "served"
	OutcomeOverride  Outcome = "override"
	OutcomeShed      Outcome = "shed"
	OutcomeFallback  Outcome = "fallback"
	OutcomeFailed    Outcome = "failed"
	OutcomeThrottled Outcome = "throttled"
	OutcomeBusy      Outcome = "busy"
)

// Outcomes lista todos os valores conhecidos, em ordem estável.
var Outcomes = []Outcome{
	OutcomeServed,
	OutcomeOverride,
	OutcomeShed,
	OutcomeFallback,
	OutcomeFailed,
	OutcomeThrottled,
	OutcomeBusy,
}
