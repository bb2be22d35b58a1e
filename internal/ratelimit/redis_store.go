package ratelimit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// recordTTL bounds how long an idle record survives; it only needs to
	// outlive the longest configured window.
	recordTTL = time.Hour

	// maxTxRetries caps optimistic-lock retries before the store reports the
	// contention as an infrastructure error.
	maxTxRetries = 10
)

// RedisStore keeps rate-limit records in Redis and implements the
// compare-and-swap contract with WATCH/MULTI/EXEC: the transaction is
// discarded and retried whenever another writer modifies the key between the
// read and the write.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

func (s *RedisStore) Update(ctx context.Context, identifier string, mutate func(Record) (Record, error)) error {
	key := s.prefix + identifier

	txn := func(tx *redis.Tx) error {
		var rec Record
		raw, err := tx.Get(ctx, key).Bytes()
		switch {
		case err == redis.Nil:
			// no record yet, start empty
		case err != nil:
			return err
		default:
			if err := json.Unmarshal(raw, &rec); err != nil {
				// corrupt record, start over rather than wedging the key
				rec = Record{}
			}
		}

		next, err := mutate(rec)
		if err != nil {
			return err
		}
		encoded, err := json.Marshal(next)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, recordTTL)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txn, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("ratelimit: update %q: too many transaction conflicts", identifier)
}

var _ Store = (*RedisStore)(nil)
