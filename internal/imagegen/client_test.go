package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"photobooth/internal/domain"
)

func TestClientSubmit(t *testing.T) {
	var captured submitRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("x-key"); got != "test-key" {
			t.Fatalf("unexpected api key header: %s", got)
		}
		if r.URL.Path != "/flux-kontext-pro" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(submitResponse{ID: "job-1", PollingURL: "https://example.com/poll/job-1"})
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	job, err := client.Submit(context.Background(), "make it vintage", "data:image/jpeg;base64,aGVsbG8=")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if job.ID != "job-1" || job.PollingURL != "https://example.com/poll/job-1" {
		t.Fatalf("unexpected job: %+v", job)
	}
	if captured.InputImage != "aGVsbG8=" {
		t.Fatalf("data-URI prefix not stripped: %q", captured.InputImage)
	}
	if captured.OutputFormat != "jpeg" || captured.SafetyTolerance != 2 || captured.AspectRatio != "4:3" {
		t.Fatalf("unexpected payload: %+v", captured)
	}
}

func TestClientSubmitUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte("credits exhausted"))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "test-key", BaseURL: ts.URL})
	_, err := client.Submit(context.Background(), "prompt", "aGVsbG8=")
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeUpstreamError {
		t.Fatalf("want upstream error, got %v", err)
	}
	if de.UpstreamStatus != http.StatusPaymentRequired || de.UpstreamBody != "credits exhausted" {
		t.Fatalf("missing upstream context: %+v", de)
	}
}

func TestClientSubmitMissingKey(t *testing.T) {
	client := NewClient(Options{})
	if _, err := client.Submit(context.Background(), "prompt", "aGVsbG8="); err == nil {
		t.Fatalf("expected error when api key missing")
	}
}

func TestClientPoll(t *testing.T) {
	tests := []struct {
		name string
		body string
		want PollResult
	}{
		{
			name: "pending",
			body: `{"id":"job-1","status":"Pending"}`,
			want: PollResult{Status: StatusPending},
		},
		{
			name: "ready with sample",
			body: `{"id":"job-1","status":"Ready","result":{"sample":"https://example.com/out.jpg"}}`,
			want: PollResult{Status: StatusReady, SampleURL: "https://example.com/out.jpg"},
		},
		{
			name: "content moderated",
			body: `{"id":"job-1","status":"Content Moderated"}`,
			want: PollResult{Status: StatusContentModerated},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			client := NewClient(Options{APIKey: "test-key"})
			got, err := client.Poll(context.Background(), ts.URL)
			if err != nil {
				t.Fatalf("Poll error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Poll = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestClientPollNon2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "test-key"})
	_, err := client.Poll(context.Background(), ts.URL)
	var de *domain.Error
	if !errors.As(err, &de) || de.UpstreamStatus != http.StatusServiceUnavailable {
		t.Fatalf("want upstream error with status 503, got %v", err)
	}
}

func TestClientFetchResult(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer ts.Close()

	client := NewClient(Options{APIKey: "test-key"})
	data, err := client.FetchResult(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("FetchResult error: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected data: %q", data)
	}
}

func TestStripDataURIPrefix(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"data:image/jpeg;base64,abc", "abc"},
		{"data:image/png;base64,xyz", "xyz"},
		{"alreadyraw", "alreadyraw"},
		{"data:nocommahere", "data:nocommahere"},
	}
	for _, tc := range tests {
		if got := stripDataURIPrefix(tc.in); got != tc.want {
			t.Fatalf("stripDataURIPrefix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
