package booth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) (*Client, *[]time.Duration) {
	var sleeps []time.Duration
	c := New(Options{BaseURL: serverURL})
	c.sleep = func(_ context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		return nil
	}
	return c, &sleeps
}

func TestTransform_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transform" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"imageUrl":"https://cdn.example.com/photos/e1/p.jpg"}`))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(srv.URL)
	url, err := c.Transform(context.Background(), TransformRequest{ImageBase64: "aGk=", StyleID: "vintage", EventID: "e1"})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if url != "https://cdn.example.com/photos/e1/p.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	if len(*sleeps) != 0 {
		t.Fatalf("expected no backoff on success, got %v", *sleeps)
	}
}

func TestTransform_RetriesTransientFailures(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"code":"upstream_error","message":"try again"}`))
			return
		}
		w.Write([]byte(`{"imageUrl":"https://cdn.example.com/ok.jpg"}`))
	}))
	defer srv.Close()

	c, sleeps := newTestClient(srv.URL)
	url, err := c.Transform(context.Background(), TransformRequest{ImageBase64: "aGk=", StyleID: "comic", EventID: "e1"})
	if err != nil {
		t.Fatalf("transform: %v", err)
	}
	if url == "" {
		t.Fatal("expected an image url after retries")
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	want := []time.Duration{2 * time.Second, 4 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("expected backoffs %v, got %v", want, *sleeps)
	}
	for i, d := range want {
		if (*sleeps)[i] != d {
			t.Fatalf("backoff %d: got %v, want %v", i, (*sleeps)[i], d)
		}
	}
}

func TestTransform_GivesUpAfterRetryBudget(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusGatewayTimeout)
		w.Write([]byte(`{"code":"timeout","message":"generation timed out"}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	_, err := c.Transform(context.Background(), TransformRequest{ImageBase64: "aGk=", StyleID: "comic", EventID: "e1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 3 {
		t.Fatalf("expected initial attempt plus 2 retries, got %d attempts", attempts)
	}
}

func TestTransform_DoesNotRetryRejections(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"invalid input", http.StatusBadRequest, `{"code":"invalid_argument","message":"image too large"}`},
		{"rate limited", http.StatusTooManyRequests, `{"code":"resource_exhausted","message":"slow down"}`},
		{"moderated", http.StatusUnprocessableEntity, `{"code":"processing_failed","message":"image could not be processed"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			attempts := 0
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts++
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c, sleeps := newTestClient(srv.URL)
			_, err := c.Transform(context.Background(), TransformRequest{ImageBase64: "aGk=", StyleID: "comic", EventID: "e1"})
			if err == nil {
				t.Fatal("expected an error")
			}
			if attempts != 1 {
				t.Fatalf("rejection should not be retried, got %d attempts", attempts)
			}
			if len(*sleeps) != 0 {
				t.Fatalf("expected no backoff, got %v", *sleeps)
			}
		})
	}
}

func TestTransform_ClassifiesBareServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	_, err := c.Transform(context.Background(), TransformRequest{ImageBase64: "aGk=", StyleID: "comic", EventID: "e1"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if attempts != 3 {
		t.Fatalf("bare 500s should be retried, got %d attempts", attempts)
	}
}

func TestStyles_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[{"id":"vintage","displayName":"Vintage"},{"id":"pop-art","displayName":"Pop Art"}]}`))
	}))
	defer srv.Close()

	c, _ := newTestClient(srv.URL)
	styles, err := c.Styles(context.Background())
	if err != nil {
		t.Fatalf("styles: %v", err)
	}
	if len(styles) != 2 || styles[1].DisplayName != "Pop Art" {
		t.Fatalf("unexpected styles %+v", styles)
	}
}
