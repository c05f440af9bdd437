package queue

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestHashPool_RunsJob(t *testing.T) {
	pool := NewHashPool(2, zerolog.Nop())
	defer pool.Close()

	ran := false
	if err := pool.Run(context.Background(), func() { ran = true }); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Fatalf("job did not run")
	}
}

func TestHashPool_CancelledContext(t *testing.T) {
	pool := NewHashPool(1, zerolog.Nop())
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := pool.Run(ctx, func() { t.Error("job must not block the caller") }); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestHashPool_CallerUnblocksWhileJobRuns(t *testing.T) {
	pool := NewHashPool(1, zerolog.Nop())
	defer pool.Close()

	release := make(chan struct{})
	started := make(chan struct{})
	go func() {
		_ = pool.Run(context.Background(), func() {
			close(started)
			<-release
		})
	}()
	<-started

	// The single worker is busy; a caller with a deadline must not wait for it.
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := pool.Run(ctx, func() {})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	close(release)
}

func TestHashPool_ConcurrentJobs(t *testing.T) {
	pool := NewHashPool(4, zerolog.Nop())
	defer pool.Close()

	var count atomic.Int64
	done := make(chan error, 32)
	for i := 0; i < 32; i++ {
		go func() {
			done <- pool.Run(context.Background(), func() { count.Add(1) })
		}()
	}
	for i := 0; i < 32; i++ {
		if err := <-done; err != nil {
			t.Fatalf("Run: %v", err)
		}
	}
	if count.Load() != 32 {
		t.Fatalf("expected 32 jobs, got %d", count.Load())
	}
}
