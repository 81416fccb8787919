package observability

import "sync/atomic"

type Metrics struct {
	ChargesAttempted atomic.Int64
	ChargesSucceeded atomic.Int64
	ChargesFailed    atomic.Int64
	ChargesSimulated atomic.Int64
	FreeTierGrants   atomic.Int64
	IdempotentHits   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}
