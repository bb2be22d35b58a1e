package ratelimit

import (
	"context"
	"time"
)

// Record is the per-identifier sliding-window state kept in the backing store.
type Record struct {
	Timestamps []time.Time `json:"timestamps"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Store provides an atomic read-modify-write over the record for one
// identifier. Implementations must retry the transaction when a concurrent
// writer touches the same identifier (compare-and-swap semantics), so mutate
// may run more than once and must be free of side effects. An error returned
// by mutate aborts the transaction and is passed through unchanged.
type Store interface {
	Update(ctx context.Context, identifier string, mutate func(Record) (Record, error)) error
}
