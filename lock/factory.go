package lock

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// LockType represents the type of locker.
type LockType string

const (
	LockTypeMemory LockType = "memory"
	LockTypeRedis  LockType = "redis"
)

// Option is a functional option for configuring a locker.
type Option func(*lockConfig)

// lockConfig holds configuration for lockers.
type lockConfig struct {
	redisClient *redis.Client
	ttl         time.Duration
}

// WithRedisClient sets the Redis client for the Redis locker.
func WithRedisClient(client *redis.Client) Option {
	return func(c *lockConfig) {
		c.redisClient = client
	}
}

// WithTTL bounds how long a lease may be held before it expires on its own.
// This keeps a crashed instance from wedging a session forever.
func WithTTL(ttl time.Duration) Option {
	return func(c *lockConfig) {
		c.ttl = ttl
	}
}

// NewLocker creates a new Locker of the given type.
// The memory locker serializes within one process; the Redis locker
// serializes across stateless service instances and requires the
// WithRedisClient option.
func NewLocker(lockType LockType, opts ...Option) (Locker, error) {
	config := &lockConfig{}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	ttl := config.ttl
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}

	switch lockType {
	case LockTypeMemory:
		return &memoryLocker{
			locks: make(map[string]chan struct{}),
		}, nil

	case LockTypeRedis:
		if config.redisClient == nil {
			return nil, ErrInvalidConfig
		}
		return &redisLocker{
			client: config.redisClient,
			ttl:    ttl,
		}, nil

	default:
		return nil, ErrInvalidLockType
	}
}
