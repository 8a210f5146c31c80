package lock

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestMemoryLockerSerializesSameToken(t *testing.T) {
	locker, err := NewLocker(LockTypeMemory)
	if err != nil {
		t.Fatalf("NewLocker: %v", err)
	}
	ctx := context.Background()

	var mu sync.Mutex
	var active, maxActive int

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(ctx, "tok")
			if err != nil {
				t.Errorf("Acquire: %v", err)
				return
			}
			defer release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Fatalf("max concurrent holders = %d, want 1", maxActive)
	}
}

func TestMemoryLockerIndependentTokens(t *testing.T) {
	locker, _ := NewLocker(LockTypeMemory)
	ctx := context.Background()

	releaseA, err := locker.Acquire(ctx, "a")
	if err != nil {
		t.Fatalf("Acquire a: %v", err)
	}
	defer releaseA()

	// A held lock on "a" must not block "b".
	ctxB, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	releaseB, err := locker.Acquire(ctxB, "b")
	if err != nil {
		t.Fatalf("Acquire b blocked by unrelated token: %v", err)
	}
	releaseB()
}

func TestMemoryLockerAcquireRespectsContext(t *testing.T) {
	locker, _ := NewLocker(LockTypeMemory)

	release, err := locker.Acquire(context.Background(), "tok")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := locker.Acquire(ctx, "tok"); err == nil {
		t.Fatal("second Acquire should fail once ctx expires")
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	locker, _ := NewLocker(LockTypeMemory)
	ctx := context.Background()

	release, err := locker.Acquire(ctx, "tok")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	release()
	release() // second call must not panic or over-release

	release2, err := locker.Acquire(ctx, "tok")
	if err != nil {
		t.Fatalf("reacquire: %v", err)
	}
	release2()
}
