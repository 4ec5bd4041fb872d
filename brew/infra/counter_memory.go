package infra

import (
	"context"
	"sync/atomic"
)

// MemoryCounter é o contador de requisições do processo.
//
// Usa um inteiro de 32 bits com sinal: depois de math.MaxInt32 o próximo
// valor é math.MinInt32 (wrap em complemento de dois), sem pânico.
type MemoryCounter struct {
	n atomic.Int32
}

// NewMemoryCounter cria um contador cujo próximo Next retorna start+1.
func NewMemoryCounter(start int32) *MemoryCounter {
	c := &MemoryCounter{}
	c.n.Store(start)
	return c
}

func (c *MemoryCounter) Next(context.Context) (int64, error) {
	return int64(c.n.Add(1)), nil
}

// Value retorna o último valor entregue, sem incrementar.
func (c *MemoryCounter) Value() int64 {
	return int64(c.n.Load())
}
