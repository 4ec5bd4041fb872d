// Package application contém os casos de uso da cafeteira.
//
// Ele depende apenas do pacote domain e não conhece net/http.
//   - BrewService.Brew decide 418 / 503 / 200 e embala falhas do clima em domain.FallbackError
//   - Recovery.Handle desembrulha o FallbackError, registra o diagnóstico e mapeia o resto para 500
//   - ThrottleService e ConcurrencyService são as decisões de rate limit e de vagas
package application
