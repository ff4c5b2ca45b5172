package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_RunsAllTasks(t *testing.T) {
	pool := NewPool(4, 16)

	var ran atomic.Int64
	for i := 0; i < 16; i++ {
		pool.Submit(func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	pool.Close()

	count := 0
	for res := range pool.Run(context.Background()) {
		if res.Err != nil {
			t.Fatalf("unexpected task error: %v", res.Err)
		}
		count++
	}

	if got := ran.Load(); got != 16 {
		t.Fatalf("expected 16 tasks run, got %d", got)
	}
	if count != 16 {
		t.Fatalf("expected 16 results, got %d", count)
	}
}

func TestPool_PropagatesTaskErrors(t *testing.T) {
	pool := NewPool(2, 4)
	wantErr := errors.New("boom")

	pool.Submit(func(context.Context) error { return wantErr })
	pool.Submit(func(context.Context) error { return nil })
	pool.Close()

	failed := 0
	for res := range pool.Run(context.Background()) {
		if res.Err != nil {
			if !errors.Is(res.Err, wantErr) {
				t.Fatalf("unexpected error: %v", res.Err)
			}
			failed++
		}
	}
	if failed != 1 {
		t.Fatalf("expected exactly one failed task, got %d", failed)
	}
}

func TestPool_StopsOnContextCancel(t *testing.T) {
	pool := NewPool(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		for range pool.Run(ctx) {
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pool did not stop after cancellation")
	}
}
