package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func serveRequestID(r *http.Request) (*httptest.ResponseRecorder, string) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec, seen
}

func TestRequestIDGeneratedWhenAbsent(t *testing.T) {
	rec, seen := serveRequestID(httptest.NewRequest(http.MethodGet, "/v1/healthz", nil))

	echoed := rec.Header().Get("X-Request-ID")
	if echoed == "" {
		t.Fatal("no id echoed on response")
	}
	if seen != echoed {
		t.Fatalf("context id %q differs from response header %q", seen, echoed)
	}
}

func TestRequestIDEchoesClientID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	r.Header.Set("X-Request-ID", "booth-7f3a")

	rec, seen := serveRequestID(r)
	if seen != "booth-7f3a" || rec.Header().Get("X-Request-ID") != "booth-7f3a" {
		t.Fatalf("client id not propagated: context %q, header %q", seen, rec.Header().Get("X-Request-ID"))
	}
}

func TestRequestIDReplacesOversizedID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/v1/healthz", nil)
	r.Header.Set("X-Request-ID", strings.Repeat("a", maxInboundIDLength+1))

	rec, _ := serveRequestID(r)
	echoed := rec.Header().Get("X-Request-ID")
	if echoed == "" || len(echoed) > maxInboundIDLength {
		t.Fatalf("oversized id not replaced, got %q", echoed)
	}
}

func TestRequestIDFromContextMissing(t *testing.T) {
	if got := RequestIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()); got != "" {
		t.Fatalf("want empty id outside the middleware, got %q", got)
	}
}
