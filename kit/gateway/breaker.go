package gateway

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerAdapter shields the executor from a flapping processor. An open
// breaker is reported as ErrUnavailable so callers classify it like an
// unconfigured provider rather than a decline.
type BreakerAdapter struct {
	next Adapter
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerAdapter(name string, next Adapter) *BreakerAdapter {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     2 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		IsSuccessful: func(err error) bool {
			// Declines are the customer's problem, not the rail's.
			return err == nil ||
				errors.Is(err, ErrDeclined) ||
				errors.Is(err, ErrInsufficientFunds) ||
				errors.Is(err, ErrInvalidDetails) ||
				errors.Is(err, ErrLimitExceeded)
		},
	})
	return &BreakerAdapter{next: next, cb: cb}
}

func (a *BreakerAdapter) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	res, err := a.cb.Execute(func() (any, error) {
		return a.next.Charge(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	return res.(*ChargeResult), nil
}
