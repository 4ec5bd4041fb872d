package infra

import "time"

// SystemClock retorna o instante atual em UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// ClockFunc adapta uma função para domain.Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }
