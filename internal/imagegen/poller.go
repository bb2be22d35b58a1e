package imagegen

import (
	"context"
	"errors"
	"time"

	"photobooth/internal/domain"
)

const (
	// pollInterval is the cadence between queries while the job is Pending.
	pollInterval = time.Second
	// transientBackoff is the longer wait after the upstream signals overload
	// (429 or 5xx); being throttled is not the same as normal progress.
	transientBackoff = 2 * time.Second
)

// StatusClient is the slice of Client the poll loop needs.
type StatusClient interface {
	Poll(ctx context.Context, pollingURL string) (PollResult, error)
}

// Poller drives a submitted job to a terminal state. The clock and sleep
// function are injectable so tests run against simulated time.
type Poller struct {
	client   StatusClient
	interval time.Duration
	backoff  time.Duration
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewPoller(client StatusClient) *Poller {
	return &Poller{
		client:   client,
		interval: pollInterval,
		backoff:  transientBackoff,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// PollUntilReady queries the poll handle until the job reaches a terminal
// state or the deadline passes, and returns the signed result URL.
//
// Pending consumes one poll interval; an upstream 429/5xx consumes one backoff
// instead, since overload and normal progress warrant different waits. Both
// spend the same wall-clock budget: whatever happens, the loop never runs past
// the deadline. Any other non-2xx fails immediately, waiting will not fix a
// bad handle or a rejected key.
func (p *Poller) PollUntilReady(ctx context.Context, pollingURL string, deadline time.Time) (string, error) {
	for p.now().Before(deadline) {
		result, err := p.client.Poll(ctx, pollingURL)
		if err != nil {
			if transientUpstream(err) {
				if serr := p.sleep(ctx, p.backoff); serr != nil {
					return "", domain.WrapError(serr, "poll interrupted")
				}
				continue
			}
			return "", domain.WrapError(err, "poll request failed")
		}

		switch result.Status {
		case StatusPending:
			if serr := p.sleep(ctx, p.interval); serr != nil {
				return "", domain.WrapError(serr, "poll interrupted")
			}
		case StatusReady:
			if result.SampleURL == "" {
				return "", domain.NewError(domain.CodeUpstreamError, "ready result missing sample url")
			}
			return result.SampleURL, nil
		case StatusError, StatusRequestModerated, StatusContentModerated:
			return "", domain.ProcessingFailed(string(result.Status))
		default:
			return "", domain.Errorf(domain.CodeUpstreamError, "unknown job status %q", result.Status)
		}
	}
	return "", domain.NewError(domain.CodeTimeout, "image processing timed out")
}

func transientUpstream(err error) bool {
	var de *domain.Error
	if !errors.As(err, &de) || de.Code != domain.CodeUpstreamError {
		return false
	}
	return de.UpstreamStatus == 429 || de.UpstreamStatus >= 500
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
