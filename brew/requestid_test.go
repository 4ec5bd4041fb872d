package brew

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"coffee-machine/brew/domain"

	"github.com/google/uuid"
)

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = domain.RequestID(r.Context())
	}))

	w := doGet(h, "http://example/brew-coffee")

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated uuid in context, got %q", seen)
	}
	if got := w.Header().Get(headerRequestID); got != seen {
		t.Fatalf("expected response header %q, got %q", seen, got)
	}
}

func TestRequestID_KeepsValidClientID(t *testing.T) {
	id := uuid.New().String()

	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = domain.RequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "http://example/brew-coffee", nil)
	r.Header.Set(headerRequestID, id)
	h.ServeHTTP(httptest.NewRecorder(), r)

	if seen != id {
		t.Fatalf("expected client id %q, got %q", id, seen)
	}
}

func TestRequestID_ReplacesInvalidClientID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = domain.RequestID(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "http://example/brew-coffee", nil)
	r.Header.Set(headerRequestID, "<script>")
	h.ServeHTTP(httptest.NewRecorder(), r)

	if seen == "<script>" || seen == "" {
		t.Fatalf("expected a generated id, got %q", seen)
	}
}
