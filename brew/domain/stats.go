package domain

import (
	"context"
	"time"
)

// StatsEvent registra como uma requisição de preparo terminou.
//
// Observação: cuidado com cardinalidade (ex.: salvar Key/Path sem controle pode
// explodir o número de chaves em uma base como Redis).
type StatsEvent struct {
	Key     Key
	Outcome Outcome
	Status  int

	Method string
	Path   string

	At time.Time
}

// StatsStore é a estratégia de persistência para estatísticas de preparo.
//
// O handler trata erro como best-effort (não derruba a request).
type StatsStore interface {
	Record(ctx context.Context, ev StatsEvent) error
}

// StatsReader expõe os totais acumulados por Outcome.
type StatsReader interface {
	Totals(ctx context.Context) (map[Outcome]int64, error)
}
