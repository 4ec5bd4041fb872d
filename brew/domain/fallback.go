package domain

// FallbackError carrega uma resposta pronta para servir junto com o
// diagnóstico da falha que a originou.
//
// É criado uma única vez, quando a consulta de clima falha dentro do
// BrewService, e só deve ser desembrulhado pela camada de recuperação
// (application.Recovery), que serve Fallback e registra Diagnostic.
type FallbackError struct {
	Fallback   Response
	Diagnostic string
	Err        error
}

func (e *FallbackError) Error() string {
	return "weather service error: " + e.Diagnostic
}

func (e *FallbackError) Unwrap() error { return e.Err }
