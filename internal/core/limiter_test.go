package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIngestLimiter_AcquireRelease(t *testing.T) {
	l := NewIngestLimiter(2, time.Second)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}
	if got := l.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}

	l.Release()
	if got := l.ActiveCount(); got != 1 {
		t.Errorf("ActiveCount() after Release = %d, want 1", got)
	}
	l.Release()
}

func TestIngestLimiter_RejectsWhenFull(t *testing.T) {
	l := NewIngestLimiter(1, 50*time.Millisecond)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	err := l.Acquire(context.Background())
	if !errors.Is(err, ErrTooManyUploads) {
		t.Errorf("Acquire() on full limiter = %v, want ErrTooManyUploads", err)
	}
}

func TestIngestLimiter_ContextCancellation(t *testing.T) {
	l := NewIngestLimiter(1, time.Minute)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := l.Acquire(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() with cancelled context = %v, want context.Canceled", err)
	}
}

func TestIngestLimiter_WaitForDrain(t *testing.T) {
	l := NewIngestLimiter(1, time.Second)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	go func() {
		time.Sleep(150 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
}

func TestIngestLimiter_DefaultsApplied(t *testing.T) {
	l := NewIngestLimiter(0, 0)

	if cap(l.semaphore) != 5 {
		t.Errorf("default capacity = %d, want 5", cap(l.semaphore))
	}
	if l.maxWait != 30*time.Second {
		t.Errorf("default maxWait = %v, want 30s", l.maxWait)
	}
}
