// Package imagegen talks to the external image-generation service. The
// service is asynchronous: a submission is acknowledged immediately with a
// polling URL, and the result materializes minutes later through that
// separate status channel.
package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"photobooth/internal/domain"
)

const defaultAspectRatio = "4:3"

type Options struct {
	BaseURL     string
	APIKey      string
	AspectRatio string
	HTTPClient  *http.Client
	Timeout     time.Duration
}

// Client issues submissions and status queries against the generation API.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	aspectRatio string
}

func NewClient(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "https://api.bfl.ai/v1"
	}
	aspect := opts.AspectRatio
	if aspect == "" {
		aspect = defaultAspectRatio
	}
	client := opts.HTTPClient
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{
		httpClient:  client,
		baseURL:     base,
		apiKey:      strings.TrimSpace(opts.APIKey),
		aspectRatio: aspect,
	}
}

type submitRequest struct {
	Prompt          string `json:"prompt"`
	InputImage      string `json:"input_image"`
	OutputFormat    string `json:"output_format"`
	SafetyTolerance int    `json:"safety_tolerance"`
	AspectRatio     string `json:"aspect_ratio"`
}

type submitResponse struct {
	ID         string `json:"id"`
	PollingURL string `json:"polling_url"`
}

// Submit sends the transform request and returns the poll handle. A non-2xx
// answer is terminal for this call; whether the whole pipeline is re-run is
// the caller's retry policy, not the submitter's.
func (c *Client) Submit(ctx context.Context, prompt, imageBase64 string) (Job, error) {
	if c.apiKey == "" {
		return Job{}, errors.New("imagegen: API key is missing")
	}

	payload := submitRequest{
		Prompt:          prompt,
		InputImage:      stripDataURIPrefix(imageBase64),
		OutputFormat:    "jpeg",
		SafetyTolerance: 2,
		AspectRatio:     c.aspectRatio,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Job{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/flux-kontext-pro", bytes.NewReader(body))
	if err != nil {
		return Job{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Job{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Job{}, domain.UpstreamError(resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Job{}, domain.UpstreamError(resp.StatusCode, "malformed submit response")
	}
	if decoded.PollingURL == "" {
		return Job{}, domain.UpstreamError(resp.StatusCode, "submit response missing polling_url")
	}
	return Job{ID: decoded.ID, PollingURL: decoded.PollingURL}, nil
}

type pollResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Result *struct {
		Sample string `json:"sample"`
	} `json:"result"`
}

// Poll issues one status query against the poll handle. Non-2xx answers come
// back as UpstreamError carrying the HTTP status so the poll loop can tell
// transient overload (429/5xx) from unrecoverable failures.
func (c *Client) Poll(ctx context.Context, pollingURL string) (PollResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pollingURL, nil)
	if err != nil {
		return PollResult{}, err
	}
	req.Header.Set("x-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PollResult{}, err
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return PollResult{}, domain.UpstreamError(resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var decoded pollResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return PollResult{}, domain.UpstreamError(resp.StatusCode, "malformed poll response")
	}

	result := PollResult{Status: JobStatus(decoded.Status)}
	if decoded.Result != nil {
		result.SampleURL = decoded.Result.Sample
	}
	return result, nil
}

// FetchResult downloads the generated asset from its signed URL. The URL is
// only valid briefly, so this happens immediately after the poll loop returns.
func (c *Client) FetchResult(ctx context.Context, signedURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, domain.UpstreamError(resp.StatusCode, "failed to download processed image")
	}
	return io.ReadAll(resp.Body)
}

func stripDataURIPrefix(image string) string {
	if !strings.HasPrefix(image, "data:") {
		return image
	}
	if i := strings.Index(image, ","); i >= 0 {
		return image[i+1:]
	}
	return image
}
