// Package brew fornece os adapters HTTP (net/http) da cafeteira.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: motor de preparo, recuperação de falhas, rate limit e vagas
//   - infra: contador, clima via HTTP, token bucket, semáforo, estatísticas
//   - brew (este pacote): handler /brew-coffee, middlewares e tradução para status/headers
//
// Fluxo de uma requisição em /brew-coffee:
//
//   1) Metrics / RequestID / Recoverer envolvem tudo
//   2) Throttle (opcional) responde 429 por cliente
//   3) Concurrency responde 503 quando não há vaga de preparo
//   4) Handler lê lat/lon, chama application.Recovery e escreve a resposta
//
// Variáveis de ambiente do binário (cmd/coffee-machine) controlam o comportamento,
// como SHED_EVERY, RATE_RPS, CONCURRENCY_MAX e WEATHER_API_URL.
package brew
