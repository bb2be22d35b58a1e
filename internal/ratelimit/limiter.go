// Package ratelimit implements a sliding-window rate limiter over a
// transactional key-value store. One record per identifier holds the request
// instants inside the trailing window; the check and the append happen inside
// a single atomic read-modify-write so concurrent callers can never push a
// record past its limit.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"photobooth/internal/domain"
)

// Limit pairs a request ceiling with its trailing window.
type Limit struct {
	MaxRequests int
	Window      time.Duration
}

// Configured windows per caller path.
var (
	LoginLimit     = Limit{MaxRequests: 5, Window: 5 * time.Minute}
	TransformLimit = Limit{MaxRequests: 30, Window: time.Minute}
	AdminLimit     = Limit{MaxRequests: 30, Window: time.Minute}
)

// Limiter checks and records requests against a shared Store. The clock is
// injectable so tests can advance simulated time.
type Limiter struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

func NewLimiter(store Store, log zerolog.Logger) *Limiter {
	return &Limiter{store: store, log: log, now: time.Now}
}

// CheckAndRecord admits the request and records its instant, or fails with
// ResourceExhausted when the identifier already has maxRequests instants
// inside the window. When the backing store itself is unreachable the limiter
// fails open: the paid external call staying available is worth more than
// strict quota enforcement during a storage outage.
func (l *Limiter) CheckAndRecord(ctx context.Context, identifier string, limit Limit) error {
	now := l.now()
	windowStart := now.Add(-limit.Window)

	err := l.store.Update(ctx, identifier, func(rec Record) (Record, error) {
		kept := rec.Timestamps[:0:0]
		for _, ts := range rec.Timestamps {
			if ts.After(windowStart) {
				kept = append(kept, ts)
			}
		}
		if len(kept) >= limit.MaxRequests {
			return Record{}, domain.NewError(domain.CodeResourceExhausted, "too many requests, please try again later")
		}
		kept = append(kept, now)
		return Record{Timestamps: kept, UpdatedAt: now}, nil
	})
	if err == nil {
		return nil
	}

	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	l.log.Warn().Err(err).Str("identifier", identifier).Msg("rate limit store unavailable, failing open")
	return nil
}

// TransformKey identifies transform calls per event and client address.
func TransformKey(eventID, clientIP string) string {
	return fmt.Sprintf("transform:%s:%s", eventID, clientIP)
}

// LoginKey identifies admin login attempts per client address.
func LoginKey(clientIP string) string {
	return "login:" + clientIP
}

// AdminKey identifies admin mutations per credential. Only the token suffix
// goes into the store so the full credential never leaves the process.
func AdminKey(token string) string {
	if len(token) > 8 {
		token = token[len(token)-8:]
	}
	return "admin:" + token
}
