package infra

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
	"unicode/utf8"

	"coffee-machine/brew/domain"
)

var (
	// ErrNoLocation é retornado quando a requisição não trouxe coordenadas.
	ErrNoLocation = errors.New("weather: no location supplied")
	// ErrUpstreamStatus indica resposta não-200 da API de clima.
	ErrUpstreamStatus = errors.New("weather: unexpected upstream status")
)

const maxWeatherBody = 1 << 20

// OpenWeatherProvider consulta a temperatura atual em uma API no formato
// do OpenWeatherMap: GET {url}?lat=..&lon=..&units=metric&appid=..
//
// Uma única tentativa por chamada; não há retry.
type OpenWeatherProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewOpenWeatherProvider(baseURL, apiKey string, timeout time.Duration) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

func (p *OpenWeatherProvider) Current(ctx context.Context, loc *domain.Coordinates) (domain.Measurement, error) {
	if loc == nil {
		return domain.Measurement{}, ErrNoLocation
	}

	u, err := url.Parse(p.baseURL)
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("weather url: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", p.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("create weather request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWeatherBody))
	if err != nil {
		return domain.Measurement{}, fmt.Errorf("read weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.Measurement{}, fmt.Errorf("%w: http %d: %s", ErrUpstreamStatus, resp.StatusCode, firstN(string(body), 200))
	}

	var payload struct {
		Main *struct {
			Temp *float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Measurement{}, fmt.Errorf("parse weather response: %w", err)
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		return domain.Measurement{}, errors.New("parse weather response: missing main.temp")
	}

	return domain.Measurement{
		Temperature: *payload.Main.Temp,
		StatusCode:  resp.StatusCode,
	}, nil
}

// firstN corta em no máximo n bytes sem partir um caractere UTF-8.
func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
