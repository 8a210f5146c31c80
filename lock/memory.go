package lock

import (
	"context"
	"sync"
)

// memoryLocker implements Locker with per-token channel mutexes.
type memoryLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// Acquire implements Locker.
func (l *memoryLocker) Acquire(ctx context.Context, token string) (func(), error) {
	l.mu.Lock()
	ch, ok := l.locks[token]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[token] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() { <-ch })
		}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close implements Locker.
func (l *memoryLocker) Close() error {
	return nil
}

// Compile-time check that memoryLocker implements Locker
var _ Locker = (*memoryLocker)(nil)
