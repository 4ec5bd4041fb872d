package domain

import "context"

type requestIDKey struct{}

// WithRequestID anexa o id da requisição ao contexto para os logs de diagnóstico.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID retorna o id anexado por WithRequestID, ou "" se não houver.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
