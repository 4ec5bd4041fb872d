// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - MemoryCounter / RedisCounter: contador de requisições do load shedding
//   - OpenWeatherProvider: consulta de temperatura via HTTP
//   - TokenBucketStore: token bucket por chave usando golang.org/x/time/rate
//   - SlotPool: semáforo simples para limite de concorrência
//   - MemoryStatsStore / RedisStatsStore: totais por Outcome
package infra
