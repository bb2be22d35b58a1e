package booth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultRetries = 2
	defaultBackoff = 2 * time.Second
)

// Client is the kiosk-side API client. Transient failures are retried a
// fixed number of times with linear backoff; rejections that retrying
// cannot fix (bad input, rate limits, moderation) surface immediately.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backoff    time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
}

type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Retries    int
	Backoff    time.Duration
}

func New(opts Options) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
		retries:    opts.Retries,
		backoff:    opts.Backoff,
		sleep:      sleepContext,
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 3 * time.Minute}
	}
	if c.retries == 0 {
		c.retries = defaultRetries
	}
	if c.backoff == 0 {
		c.backoff = defaultBackoff
	}
	return c
}

// APIError is a structured rejection from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Code, e.Message)
}

// Retryable reports whether a fresh attempt could plausibly succeed.
// Rate limits are excluded: retrying into a closed window only keeps
// it closed longer.
func (e *APIError) Retryable() bool {
	switch e.Code {
	case "timeout", "upstream_error", "internal":
		return true
	}
	return false
}

type TransformRequest struct {
	ImageBase64 string `json:"imageBase64"`
	StyleID     string `json:"styleId"`
	EventID     string `json:"eventId"`
}

// Transform submits a capture and returns the public URL of the styled
// image.
func (c *Client) Transform(ctx context.Context, req TransformRequest) (string, error) {
	var result struct {
		ImageURL string `json:"imageUrl"`
	}
	if err := c.postWithRetry(ctx, "/v1/transform", req, &result); err != nil {
		return "", err
	}
	return result.ImageURL, nil
}

type Style struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// Styles fetches the styles the kiosk can offer.
func (c *Client) Styles(ctx context.Context) ([]Style, error) {
	var result struct {
		Items []Style `json:"items"`
	}
	if err := c.get(ctx, "/v1/styles", &result); err != nil {
		return nil, err
	}
	return result.Items, nil
}

func (c *Client) postWithRetry(ctx context.Context, path string, payload, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			// Linear backoff: 2s after the first failure, 4s after the second.
			if err := c.sleep(ctx, c.backoff*time.Duration(attempt)); err != nil {
				return err
			}
		}
		lastErr = c.post(ctx, path, payload, out)
		if lastErr == nil {
			return nil
		}
		var apiErr *APIError
		if errors.As(lastErr, &apiErr) && !apiErr.Retryable() {
			return lastErr
		}
	}
	return lastErr
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var body struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil {
			apiErr.Code = body.Code
			apiErr.Message = body.Message
		}
		if apiErr.Code == "" && resp.StatusCode >= 500 {
			apiErr.Code = "internal"
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
