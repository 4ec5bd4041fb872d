package brew

import (
	"net"
	"net/http"
	"strings"
)

// KeyFunc identifica o cliente (rate limit e estatísticas por chave).
type KeyFunc func(r *http.Request) string

// DefaultKeyFunc tenta, em ordem: o header keyHeader (se configurado), o
// primeiro IP do X-Forwarded-For (só com trustXFF) e o host do RemoteAddr.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	var sources []KeyFunc
	if keyHeader != "" {
		sources = append(sources, headerKey(keyHeader))
	}
	if trustXFF {
		sources = append(sources, forwardedKey)
	}
	sources = append(sources, remoteKey)

	return func(r *http.Request) string {
		for _, src := range sources {
			if k := src(r); k != "" {
				return k
			}
		}
		return "unknown"
	}
}

func headerKey(name string) KeyFunc {
	return func(r *http.Request) string {
		return strings.TrimSpace(r.Header.Get(name))
	}
}

// forwardedKey usa o cliente original, o primeiro da lista.
func forwardedKey(r *http.Request) string {
	first, _, _ := strings.Cut(r.Header.Get("X-Forwarded-For"), ",")
	return strings.TrimSpace(first)
}

func remoteKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	return addr
}
