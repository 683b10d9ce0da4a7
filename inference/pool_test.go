package inference

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// openTestPool skips the test when the model or the runtime is missing.
func openTestPool(t *testing.T, size int) *Pool {
	t.Helper()
	if _, err := os.Stat(testModelPath); err != nil {
		t.Skipf("Skipping: model not available at %s", testModelPath)
	}

	pool, err := NewPool(testModelPath, DefaultIO, size)
	if err != nil {
		if isORTUnavailableError(err) {
			t.Skipf("Skipping: ONNX runtime not available: %v", err)
		}
		t.Fatalf("NewPool failed: %v", err)
	}
	return pool
}

func TestNewPool_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -5} {
		pool := openTestPool(t, size)
		if pool.Size() != 1 {
			t.Errorf("NewPool(%d): expected size 1, got %d", size, pool.Size())
		}
		_ = pool.Close()
	}
}

func TestNewPool_ModelNotFound(t *testing.T) {
	_, err := NewPool("../testdata/nonexistent.onnx", DefaultIO, 2)
	if err == nil {
		t.Error("expected error for non-existent model file")
	}
}

func TestPool_AcquireRelease(t *testing.T) {
	pool := openTestPool(t, 2)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()

	s1, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 1 failed: %v", err)
	}
	s2, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 2 failed: %v", err)
	}

	// Third acquire should block
	ctx3, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	_, err = pool.Acquire(ctx3)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}

	pool.Release(s1)

	s3, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire 3 failed: %v", err)
	}

	pool.Release(s2)
	pool.Release(s3)
}

func TestPool_ReleaseNil(t *testing.T) {
	pool := openTestPool(t, 1)
	defer func() { _ = pool.Close() }()

	// Should not panic when releasing nil
	pool.Release(nil)
}

func TestPool_Close_Idempotent(t *testing.T) {
	pool := openTestPool(t, 2)

	if err := pool.Close(); err != nil {
		t.Errorf("first Close failed: %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
}

func TestPool_AcquireAfterClose(t *testing.T) {
	pool := openTestPool(t, 1)
	_ = pool.Close()

	_, err := pool.Acquire(context.Background())
	if !errors.Is(err, ErrPoolClosed) {
		t.Errorf("expected ErrPoolClosed, got %v", err)
	}
}

func TestPool_ReleaseAfterClose(t *testing.T) {
	pool := openTestPool(t, 1)

	session, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}

	if err := pool.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Release should close the session instead of returning it to pool
	pool.Release(session)
}

func TestPool_Infer(t *testing.T) {
	pool := openTestPool(t, 1)
	defer func() { _ = pool.Close() }()

	scores, err := pool.Infer(context.Background(), []int64{12, 873, 41}, 1, 3)
	if err != nil {
		t.Fatalf("Infer failed: %v", err)
	}
	if len(scores)%3 != 0 {
		t.Errorf("got %d scores for 3 tokens", len(scores))
	}

	// the session must be back in the pool
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	s, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("session not released: %v", err)
	}
	pool.Release(s)
}

func TestPool_ConcurrentAccess(t *testing.T) {
	pool := openTestPool(t, 3)
	defer func() { _ = pool.Close() }()

	ctx := context.Background()
	numGoroutines := 10
	numIterations := 5

	var wg sync.WaitGroup
	var successCount int64
	var errCount int64

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				acquireCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
				session, err := pool.Acquire(acquireCtx)
				cancel()

				if err != nil {
					atomic.AddInt64(&errCount, 1)
					continue
				}

				time.Sleep(time.Millisecond)

				pool.Release(session)
				atomic.AddInt64(&successCount, 1)
			}
		}()
	}

	wg.Wait()

	if successCount == 0 {
		t.Error("expected at least some successful acquire/release cycles")
	}

	t.Logf("Concurrent test completed: %d successes, %d timeouts", successCount, errCount)
}
