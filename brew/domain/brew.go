package domain

import (
	"context"
	"time"
)

const (
	// MessageHot é a mensagem padrão (e a do fallback quando o clima falha).
	MessageHot = "Your piping hot coffee is ready"
	// MessageIced é usada quando a temperatura passa de IcedThreshold.
	MessageIced = "Your refreshing iced coffee is ready"

	// IcedThreshold em graus Celsius. Comparação estrita (> 30).
	IcedThreshold = 30.0

	// PreparedLayout gera "2030-05-02T14:00:01+0900" (offset sem ":").
	PreparedLayout = "2006-01-02T15:04:05-0700"
)

// Coordinates é a localização opcional do cliente.
// Ausência (ponteiro nil) é válida e significa "sem localização".
type Coordinates struct {
	Lat float64
	Lon float64
}

// Measurement é o resultado de uma consulta de clima bem sucedida.
type Measurement struct {
	Temperature float64
	StatusCode  int
}

// Response é o que volta para o cliente.
//
// Body nil significa "sem corpo" (418 e 503). Para 200 é um BrewBody
// serializado; para 500 é um ErrorBody.
type Response struct {
	StatusCode int
	Body       []byte
}

// BrewBody é o payload de sucesso. Os nomes dos campos são o formato de fio.
type BrewBody struct {
	Message  string
	Prepared string
}

// ErrorBody é o payload de erro (500, 405).
type ErrorBody struct {
	Error string
}

// Clock fornece o instante atual.
type Clock interface {
	Now() time.Time
}

// WeatherProvider consulta a temperatura atual para coordenadas opcionais.
// Qualquer erro é tratado de forma uniforme pelo motor de preparo.
type WeatherProvider interface {
	Current(ctx context.Context, loc *Coordinates) (Measurement, error)
}

// Counter é o contador de requisições compartilhado entre todas as chamadas.
//
// Next incrementa e retorna o novo valor de forma atômica: para N chamadas
// concorrentes os valores retornados são exatamente {start+1 ... start+N}.
type Counter interface {
	Next(ctx context.Context) (int64, error)
}
