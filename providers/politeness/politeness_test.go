package politeness

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestUnlimited_NeverBlocks verifies the zero policy returns immediately.
func TestUnlimited_NeverBlocks(t *testing.T) {
	p := Unlimited()
	start := time.Now()
	for i := 0; i < 100; i++ {
		if err := p.Wait(context.Background()); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("100 waits took %v, want near zero", elapsed)
	}
}

// TestNilPolicy verifies a nil policy is a no-op.
func TestNilPolicy(t *testing.T) {
	var p *Policy
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("Wait() on nil policy error = %v", err)
	}
}

// TestDelayBounds verifies the random pause stays within [min, max].
func TestDelayBounds(t *testing.T) {
	p := New(0, 1, 10*time.Millisecond, 20*time.Millisecond)

	p.jitter = func(n int64) int64 { return 0 }
	if d := p.delay(); d != 10*time.Millisecond {
		t.Errorf("delay() with zero jitter = %v, want 10ms", d)
	}
	p.jitter = func(n int64) int64 { return n - 1 }
	if d := p.delay(); d != 20*time.Millisecond {
		t.Errorf("delay() with max jitter = %v, want 20ms", d)
	}
}

// TestNew_SwappedBounds verifies a max below min collapses to min.
func TestNew_SwappedBounds(t *testing.T) {
	p := New(0, 1, 50*time.Millisecond, 10*time.Millisecond)
	if d := p.delay(); d != 50*time.Millisecond {
		t.Errorf("delay() = %v, want 50ms", d)
	}
}

// TestWait_ContextCancelled verifies Wait honours cancellation during the pause.
func TestWait_ContextCancelled(t *testing.T) {
	p := New(0, 1, time.Hour, time.Hour)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := p.Wait(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want deadline exceeded", err)
	}
}

// TestWait_RateLimited verifies the limiter spaces requests beyond the burst.
func TestWait_RateLimited(t *testing.T) {
	p := New(20, 1, 0, 0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := p.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed < 80*time.Millisecond {
		t.Errorf("3 waits at 20/s took %v, want at least ~100ms", elapsed)
	}
}
