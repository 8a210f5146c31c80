// Package lock serializes turns that belong to the same session token.
//
// Dedup correctness depends on each turn reading a fully-appended history:
// two concurrent turns on one session could both compute a stale seen-set
// and both introduce the same entity. Turns on different tokens must run
// concurrently, so locks are keyed by session token.
package lock

import (
	"context"
	"errors"
)

// Common errors for lock operations.
var (
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidLockType = errors.New("invalid lock type")
)

// Locker grants per-session mutual exclusion for the duration of one turn.
type Locker interface {
	// Acquire blocks until the token's lock is held or ctx is done.
	// The returned release function must be called exactly once.
	Acquire(ctx context.Context, token string) (release func(), err error)

	// Close releases any resources held by the locker.
	Close() error
}
