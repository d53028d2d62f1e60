package vinted

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/time/rate"
)

// ErrCallBudgetExhausted is returned once a run has used its configured
// number of catalog calls.
var ErrCallBudgetExhausted = errors.New("catalog call budget exhausted")

// RateLimiter paces outbound catalog calls with a token bucket and enforces
// an optional per-run call budget.
type RateLimiter struct {
	limiter  *rate.Limiter
	calls    atomic.Int64
	maxCalls int64
}

// NewRateLimiter creates a rate limiter with the given per-second rate,
// burst size, and call budget. A maxCalls of zero disables the budget.
func NewRateLimiter(perSecond float64, burst int, maxCalls int64) *RateLimiter {
	return &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxCalls: maxCalls,
	}
}

// Wait blocks until the limiter allows the call, or the context is canceled.
// Returns ErrCallBudgetExhausted once the budget is used up.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.maxCalls > 0 && r.calls.Load() >= r.maxCalls {
		return fmt.Errorf("%w (%d/%d)", ErrCallBudgetExhausted, r.calls.Load(), r.maxCalls)
	}

	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}

	r.calls.Add(1)
	return nil
}

// Calls returns how many calls have been admitted.
func (r *RateLimiter) Calls() int64 {
	return r.calls.Load()
}

// Remaining returns the calls left in the budget, or -1 when unlimited.
func (r *RateLimiter) Remaining() int64 {
	if r.maxCalls == 0 {
		return -1
	}
	return max(r.maxCalls-r.calls.Load(), 0)
}
