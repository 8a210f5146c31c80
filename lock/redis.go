package lock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "turnlock:"

// redisLocker implements Locker with a SetNX lease per session token, so
// turns are serialized even across stateless service instances.
type redisLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// Acquire implements Locker.
func (l *redisLocker) Acquire(ctx context.Context, token string) (func(), error) {
	key := keyPrefix + token
	holder := uuid.NewString()

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, holder, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() { l.release(key, holder) }, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// release deletes the lease only if this holder still owns it; an expired
// lease reacquired by another turn is left alone.
func (l *redisLocker) release(key, holder string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = l.client.Watch(ctx, func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Result()
		if err == redis.Nil {
			return nil
		}
		if err != nil {
			return err
		}
		if val != holder {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			return nil
		})
		return err
	}, key)
}

// Close implements Locker.
func (l *redisLocker) Close() error {
	return l.client.Close()
}

// Compile-time check that redisLocker implements Locker
var _ Locker = (*redisLocker)(nil)
