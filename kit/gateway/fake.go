package gateway

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"time"
)

// FakeAdapter stands in for a real processor integration. Faults are
// keyed off the charge amount in cents so behavior is reproducible:
// multiples of 5 time out, of 11 are declined, of 7 lack funds.
type FakeAdapter struct {
	Delay    time.Duration
	Redirect bool
}

func NewFakeAdapter() *FakeAdapter {
	return &FakeAdapter{Delay: 50 * time.Millisecond}
}

func (a *FakeAdapter) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if a.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(a.Delay):
		}
	}

	cents := int64(math.Round(req.Amount * 100))
	switch {
	case cents%5 == 0 && cents != 0:
		return nil, ErrTimeout
	case cents%11 == 0 && cents != 0:
		return nil, ErrDeclined
	case cents%7 == 0 && cents != 0:
		return nil, ErrInsufficientFunds
	}

	res := &ChargeResult{Reference: fmt.Sprintf("gw_%s", req.TransactionID)}
	if a.Redirect && req.SuccessURL != "" {
		res.RedirectURL = fmt.Sprintf("%s?provider=%s&transaction_id=%s",
			req.SuccessURL, url.QueryEscape(req.ProcessorID), url.QueryEscape(req.TransactionID))
	}
	return res, nil
}
