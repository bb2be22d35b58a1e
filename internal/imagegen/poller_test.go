package imagegen

import (
	"context"
	"errors"
	"testing"
	"time"

	"photobooth/internal/domain"
)

// scriptedClient replays a fixed sequence of poll answers.
type scriptedClient struct {
	steps []func() (PollResult, error)
	calls int
}

func (c *scriptedClient) Poll(ctx context.Context, pollingURL string) (PollResult, error) {
	if c.calls >= len(c.steps) {
		last := c.steps[len(c.steps)-1]
		c.calls++
		return last()
	}
	step := c.steps[c.calls]
	c.calls++
	return step()
}

func pending() func() (PollResult, error) {
	return func() (PollResult, error) { return PollResult{Status: StatusPending}, nil }
}

func ready(sample string) func() (PollResult, error) {
	return func() (PollResult, error) { return PollResult{Status: StatusReady, SampleURL: sample}, nil }
}

// fakeClock drives the poller on simulated time: sleeps advance the clock
// instead of blocking.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newTestPoller(client StatusClient) (*Poller, *fakeClock) {
	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	p := NewPoller(client)
	p.now = func() time.Time { return clock.now }
	p.sleep = func(ctx context.Context, d time.Duration) error {
		clock.sleeps = append(clock.sleeps, d)
		clock.now = clock.now.Add(d)
		return nil
	}
	return p, clock
}

func TestPollUntilReadyAfterPending(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){
		pending(), pending(), ready("https://example.com/out.jpg"),
	}}
	p, clock := newTestPoller(client)

	got, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute))
	if err != nil {
		t.Fatalf("PollUntilReady error: %v", err)
	}
	if got != "https://example.com/out.jpg" {
		t.Fatalf("unexpected sample url: %s", got)
	}
	if len(clock.sleeps) != 2 {
		t.Fatalf("slept %d times, want 2", len(clock.sleeps))
	}
	for i, d := range clock.sleeps {
		if d != pollInterval {
			t.Fatalf("sleep %d was %v, want poll interval %v", i, d, pollInterval)
		}
	}
}

func TestPollUntilReadyBacksOffOnOverload(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){
		func() (PollResult, error) { return PollResult{}, domain.UpstreamError(503, "overloaded") },
		ready("https://example.com/out.jpg"),
	}}
	p, clock := newTestPoller(client)

	got, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute))
	if err != nil {
		t.Fatalf("PollUntilReady error: %v", err)
	}
	if got != "https://example.com/out.jpg" {
		t.Fatalf("unexpected sample url: %s", got)
	}
	if len(clock.sleeps) != 1 || clock.sleeps[0] != transientBackoff {
		t.Fatalf("sleeps = %v, want a single backoff of %v", clock.sleeps, transientBackoff)
	}
}

func TestPollUntilReadyRetriesOn429(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){
		func() (PollResult, error) { return PollResult{}, domain.UpstreamError(429, "slow down") },
		ready("https://example.com/out.jpg"),
	}}
	p, clock := newTestPoller(client)

	if _, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute)); err != nil {
		t.Fatalf("PollUntilReady error: %v", err)
	}
}

func TestPollUntilReadyTimesOut(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){pending()}}
	p, clock := newTestPoller(client)
	deadline := clock.now.Add(5 * time.Second)

	_, err := p.PollUntilReady(context.Background(), "poll-url", deadline)
	if domain.CodeOf(err) != domain.CodeTimeout {
		t.Fatalf("want timeout, got %v", err)
	}
	if clock.now.Before(deadline) {
		t.Fatalf("timed out at %v, before the deadline %v", clock.now, deadline)
	}
}

func TestPollUntilReadyFailsFastOnClientError(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){
		func() (PollResult, error) { return PollResult{}, domain.UpstreamError(401, "bad key") },
	}}
	p, clock := newTestPoller(client)

	_, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute))
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeUpstreamError || de.UpstreamStatus != 401 {
		t.Fatalf("want immediate upstream error, got %v", err)
	}
	if len(clock.sleeps) != 0 {
		t.Fatalf("slept %d times, want none", len(clock.sleeps))
	}
	if client.calls != 1 {
		t.Fatalf("polled %d times, want 1", client.calls)
	}
}

func TestPollUntilReadyModerationVerdicts(t *testing.T) {
	for _, status := range []JobStatus{StatusError, StatusRequestModerated, StatusContentModerated} {
		t.Run(string(status), func(t *testing.T) {
			client := &scriptedClient{steps: []func() (PollResult, error){
				func() (PollResult, error) { return PollResult{Status: status}, nil },
			}}
			p, clock := newTestPoller(client)

			_, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute))
			var de *domain.Error
			if !errors.As(err, &de) || de.Code != domain.CodeProcessingFailed {
				t.Fatalf("want processing_failed, got %v", err)
			}
			if de.JobStatus != string(status) {
				t.Fatalf("job status = %q, want %q", de.JobStatus, status)
			}
			if domain.Retryable(err) {
				t.Fatalf("moderation verdict must not be retryable")
			}
		})
	}
}

func TestPollUntilReadyMissingSample(t *testing.T) {
	client := &scriptedClient{steps: []func() (PollResult, error){ready("")}}
	p, clock := newTestPoller(client)

	_, err := p.PollUntilReady(context.Background(), "poll-url", clock.now.Add(time.Minute))
	if domain.CodeOf(err) != domain.CodeUpstreamError {
		t.Fatalf("ready without sample must be an upstream error, got %v", err)
	}
}
