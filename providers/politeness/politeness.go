package politeness

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultRatePerSecond is the sustained request rate across the process.
	DefaultRatePerSecond = 2.0
	// DefaultBurst is the number of requests allowed back to back.
	DefaultBurst = 2
	// DefaultMinDelay is the lower bound of the random pause after a slot.
	DefaultMinDelay = 300 * time.Millisecond
	// DefaultMaxDelay is the upper bound of the random pause after a slot.
	DefaultMaxDelay = 800 * time.Millisecond
)

// Policy is a token-bucket limiter followed by a random pause. It is safe for
// concurrent use and is meant to be shared by every caller in a process.
type Policy struct {
	limiter  *rate.Limiter
	minDelay time.Duration
	maxDelay time.Duration
	jitter   func(n int64) int64
}

// New returns a Policy allowing ratePerSecond requests with the given burst
// and a random pause in [minDelay, maxDelay] after each slot. A rate <= 0
// disables the limiter.
func New(ratePerSecond float64, burst int, minDelay, maxDelay time.Duration) *Policy {
	limit := rate.Limit(ratePerSecond)
	if ratePerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	if maxDelay < minDelay {
		maxDelay = minDelay
	}
	return &Policy{
		limiter:  rate.NewLimiter(limit, burst),
		minDelay: minDelay,
		maxDelay: maxDelay,
		jitter:   rand.Int64N,
	}
}

// Default returns a Policy with the package defaults.
func Default() *Policy {
	return New(DefaultRatePerSecond, DefaultBurst, DefaultMinDelay, DefaultMaxDelay)
}

// Unlimited returns a Policy that never waits.
func Unlimited() *Policy {
	return New(0, 1, 0, 0)
}

// Wait blocks until the caller may issue one request. It returns early with
// an error when ctx is done.
func (p *Policy) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}
	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("politeness: %w", err)
	}

	d := p.delay()
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("politeness: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

func (p *Policy) delay() time.Duration {
	span := int64(p.maxDelay - p.minDelay)
	if span <= 0 {
		return p.minDelay
	}
	return p.minDelay + time.Duration(p.jitter(span+1))
}
